// Package parts cuts a single part out of a decoded sprite sheet and turns it
// back into its natural orientation.
//
// All transforms are lossless: the crop copies pixels as they are and the
// rotations are 90 degree multiples, which only permute pixels.
//
// Parts are always 8 bits per channel non-premultiplied RGBA, the depth of
// the RGBA8888 sheets Spine exports. A 16-bit sheet is cut from the high
// byte of each channel.
package parts

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-spritecut/atlas"
)

// ErrOutOfBounds is returned when a stored footprint does not lie entirely
// within the sheet. Footprints are never clipped.
var ErrOutOfBounds = errors.New("part footprint outside sheet")

// Reconstruct returns the part p described in sheet, rotated clockwise by
// p.Rotate. The result always starts at (0,0) and measures p.NaturalSize().
func Reconstruct(sheet image.Image, p atlas.Part) (*image.NRGBA, error) {
	cropped, err := Crop(sheet, p.Bounds())
	if err != nil {
		return nil, errors.Wrapf(err, "part %q", p.Name)
	}
	glog.V(2).Infof("part %q: cropped %v, rotating %s", p.Name, p.Bounds(), p.Rotate)
	if p.Rotate == atlas.Rotate0 {
		return cropped, nil
	}
	return Rotate(cropped, p.Rotate), nil
}

// Crop copies rect out of sheet. rect is relative to the top-left corner of
// the sheet, whatever the sheet's bounds origin is.
func Crop(sheet image.Image, rect image.Rectangle) (*image.NRGBA, error) {
	b := sheet.Bounds()
	abs := rect.Add(b.Min)
	if rect.Empty() {
		return nil, errors.Wrapf(ErrOutOfBounds, "empty footprint %v", rect)
	}
	if !abs.In(b) {
		return nil, errors.Wrapf(ErrOutOfBounds, "footprint %v, sheet is %dx%d", rect, b.Dx(), b.Dy())
	}
	return imaging.Crop(sheet, abs), nil
}

// Rotate turns img clockwise by r.
//
// imaging rotates counter-clockwise, so a clockwise quarter turn is its
// Rotate270 and vice versa.
func Rotate(img image.Image, r atlas.Rotation) *image.NRGBA {
	switch r {
	case atlas.Rotate90:
		return imaging.Rotate270(img)
	case atlas.Rotate180:
		return imaging.Rotate180(img)
	case atlas.Rotate270:
		return imaging.Rotate90(img)
	default:
		return imaging.Clone(img)
	}
}
