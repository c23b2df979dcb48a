package extract

import (
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-spritecut/spine"
)

// SheetResult is the outcome of one sheet.
type SheetResult struct {
	Sheet spine.Sheet
	// Parts is the number of records in the descriptor.
	Parts   int
	Written []string
	Skipped []PartError
	Err     error
}

// Missing reports whether the sheet was skipped for lacking its image or
// atlas.
func (r SheetResult) Missing() bool {
	return errors.Is(r.Err, spine.ErrMissingPair)
}

// Report collects sheet results in discovery order, however many sheets ran
// at once.
type Report struct {
	Sheets []SheetResult
}

// Written counts the part files written over the whole run.
func (r *Report) Written() int {
	n := 0
	for _, s := range r.Sheets {
		n += len(s.Written)
	}
	return n
}

// Failed returns the sheets that were aborted. Sheets skipped for a missing
// pair are not included.
func (r *Report) Failed() []SheetResult {
	var failed []SheetResult
	for _, s := range r.Sheets {
		if s.Err != nil && !s.Missing() {
			failed = append(failed, s)
		}
	}
	return failed
}

// SkippedParts counts parts left out because of a bad footprint.
func (r *Report) SkippedParts() int {
	n := 0
	for _, s := range r.Sheets {
		n += len(s.Skipped)
	}
	return n
}
