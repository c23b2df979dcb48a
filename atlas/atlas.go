package atlas

// This file contains the line-level decoding of the .atlas grammar.

import (
	"bufio"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/bradfitz/iter"
	"github.com/pkg/errors"
)

const (
	// HeaderLines is the number of sheet-wide lines preceding the first part.
	HeaderLines = 6
	// RecordLines is the number of lines making up a single part.
	RecordLines = 7
	// MaxLineLength bounds a single descriptor line, in bytes.
	MaxLineLength = 1 << 20
)

// ErrMalformedDescriptor is returned (wrapped) for any grammar violation.
var ErrMalformedDescriptor = errors.New("malformed atlas descriptor")

// Part is the placement of one named sub-image within the sheet.
//
// XY and Size describe the footprint as stored, i.e. after the packer
// rotated the part. For Rotate90 and Rotate270 the natural width is Size.Y.
type Part struct {
	Name   string
	Rotate Rotation
	XY     image.Point
	Size   image.Point

	// Not needed for cutting.
	Orig   image.Point
	Offset image.Point
	Index  int
}

// Bounds returns the stored footprint in sheet coordinates.
func (p Part) Bounds() image.Rectangle {
	return image.Rectangle{Min: p.XY, Max: p.XY.Add(p.Size)}
}

// NaturalSize returns the dimensions of the part once rotated back.
func (p Part) NaturalSize() image.Point {
	if p.Rotate.Swaps() {
		return image.Pt(p.Size.Y, p.Size.X)
	}
	return p.Size
}

// Descriptor is a decoded .atlas file.
type Descriptor struct {
	Header []string
	Parts  []Part
}

// Decode reads a whole descriptor from r.
//
// Windows line endings and a leading byte order mark are tolerated, and empty
// lines at the very end of the file are dropped before parsing. A line longer
// than MaxLineLength makes the descriptor malformed.
func Decode(r io.Reader) (*Descriptor, error) {
	var lines []string
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	for s.Scan() {
		lines = append(lines, strings.TrimSuffix(s.Text(), "\r"))
	}
	if err := s.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, errors.Wrapf(ErrMalformedDescriptor, "line %d is longer than %d bytes", len(lines)+1, MaxLineLength)
		}
		return nil, errors.Wrap(err, "reading atlas")
	}
	if len(lines) > 0 {
		lines[0] = strings.TrimPrefix(lines[0], "\ufeff")
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return Parse(lines)
}

// Parse decodes a descriptor from its lines. Either all parts are returned, or
// an error wrapping ErrMalformedDescriptor.
func Parse(lines []string) (*Descriptor, error) {
	if len(lines) < HeaderLines {
		return nil, errors.Wrapf(ErrMalformedDescriptor, "got %d lines, want at least %d header lines", len(lines), HeaderLines)
	}
	body := lines[HeaderLines:]
	if len(body)%RecordLines != 0 {
		return nil, errors.Wrapf(ErrMalformedDescriptor, "%d lines after header is not a multiple of %d", len(body), RecordLines)
	}

	d := &Descriptor{
		Header: append([]string(nil), lines[:HeaderLines]...),
		Parts:  make([]Part, 0, len(body)/RecordLines),
	}
	for i := range iter.N(len(body) / RecordLines) {
		start := i * RecordLines
		p, err := parsePart(body[start : start+RecordLines])
		if err != nil {
			// 1-based line number of the record's name line.
			return nil, errors.Wrapf(err, "part %d at line %d", i, HeaderLines+start+1)
		}
		d.Parts = append(d.Parts, p)
	}
	return d, nil
}

func parsePart(rec []string) (Part, error) {
	var (
		p   Part
		err error
	)
	p.Name = rec[0]
	p.Rotate = ParseRotation(rec[1])
	if p.XY, err = parsePair(rec[2], "xy"); err != nil {
		return p, err
	}
	if p.Size, err = parsePair(rec[3], "size"); err != nil {
		return p, err
	}
	if p.Orig, err = parsePair(rec[4], "orig"); err != nil {
		return p, err
	}
	if p.Offset, err = parsePair(rec[5], "offset"); err != nil {
		return p, err
	}
	if p.Index, err = parseInt(rec[6], "index"); err != nil {
		return p, err
	}
	return p, nil
}

// fields strips the "key:" label and every whitespace character, then splits
// on commas.
func fields(line, key string) []string {
	v := strings.Replace(line, key+":", "", 1)
	v = strings.Join(strings.Fields(v), "")
	return strings.Split(v, ",")
}

func parsePair(line, key string) (image.Point, error) {
	f := fields(line, key)
	if len(f) != 2 {
		return image.Point{}, errors.Wrapf(ErrMalformedDescriptor, "%s: got %d values in %q, want 2", key, len(f), line)
	}
	x, err := strconv.Atoi(f[0])
	if err != nil {
		return image.Point{}, errors.Wrapf(ErrMalformedDescriptor, "%s: %v", key, err)
	}
	y, err := strconv.Atoi(f[1])
	if err != nil {
		return image.Point{}, errors.Wrapf(ErrMalformedDescriptor, "%s: %v", key, err)
	}
	return image.Pt(x, y), nil
}

func parseInt(line, key string) (int, error) {
	f := fields(line, key)
	if len(f) != 1 {
		return 0, errors.Wrapf(ErrMalformedDescriptor, "%s: got %d values in %q, want 1", key, len(f), line)
	}
	n, err := strconv.Atoi(f[0])
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedDescriptor, "%s: %v", key, err)
	}
	return n, nil
}
