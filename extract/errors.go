package extract

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrIO marks failures to decode the sheet image, encode a part or create the
// output directory. Such failures abort the sheet.
var ErrIO = errors.New("image i/o failure")

// SheetError is the failure of a single sheet. It never stops the batch.
type SheetError struct {
	Sheet string
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q: %v", e.Sheet, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// PartError is a part that was skipped while the rest of its sheet went on.
type PartError struct {
	Part string
	Err  error
}

func (e *PartError) Error() string {
	return fmt.Sprintf("part %q: %v", e.Part, e.Err)
}

func (e *PartError) Unwrap() error {
	return e.Err
}

// ioError keeps the underlying cause while still matching ErrIO.
type ioError struct {
	op   string
	path string
	err  error
}

func (e *ioError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.op, e.path, e.err)
}

func (e *ioError) Unwrap() error {
	return e.err
}

func (e *ioError) Is(target error) bool {
	return target == ErrIO
}
