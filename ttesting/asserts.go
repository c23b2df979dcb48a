// Package ttesting contains small assertion helpers shared by the tests of
// this module. Each assertion runs as its own subtest so failures are
// reported under a readable name.
package ttesting

import (
	"image"
	"testing"

	"github.com/pkg/errors"
)

func AssertEqualInt(t *testing.T, name string, got, want int) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualString(t *testing.T, name string, got, want string) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %q; want %q", got, want)
		}
	})
}

func AssertEqualPoint(t *testing.T, name string, got, want image.Point) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %v; want %v", got, want)
		}
	})
}

// AssertErrorIs checks that err wraps target.
func AssertErrorIs(t *testing.T, name string, err, target error) {
	t.Run(name, func(t *testing.T) {
		if !errors.Is(err, target) {
			t.Errorf("got error %v; want one wrapping %v", err, target)
		}
	})
}

// AssertSamePixels compares two images pixel by pixel, ignoring where their
// bounds start.
func AssertSamePixels(t *testing.T, name string, got, want image.Image) {
	t.Run(name, func(t *testing.T) {
		gb, wb := got.Bounds(), want.Bounds()
		if gb.Size() != wb.Size() {
			t.Fatalf("got size %v; want %v", gb.Size(), wb.Size())
		}
		for y := 0; y < wb.Dy(); y++ {
			for x := 0; x < wb.Dx(); x++ {
				gr, gg, gbl, ga := got.At(gb.Min.X+x, gb.Min.Y+y).RGBA()
				wr, wg, wbl, wa := want.At(wb.Min.X+x, wb.Min.Y+y).RGBA()
				if gr != wr || gg != wg || gbl != wbl || ga != wa {
					t.Fatalf("pixel (%d,%d): got %d %d %d %d; want %d %d %d %d", x, y, gr, gg, gbl, ga, wr, wg, wbl, wa)
				}
			}
		}
	})
}
