package extract

// This file contains loading of sheet images and saving of parts.

import (
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/disintegration/imaging"
	"github.com/ericpauley/go-quantize/quantize"
)

func loadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, &ioError{op: "decoding", path: path, err: err}
	}
	return img, nil
}

// saveImage writes img to path. The encoder is chosen from the file
// extension, so parts keep the sheet's PNG format.
func saveImage(img image.Image, path string, colors int) error {
	if colors > 0 {
		img = quantizeImage(img, colors)
	}
	if err := imaging.Save(img, path); err != nil {
		return &ioError{op: "encoding", path: path, err: err}
	}
	return nil
}

func makeDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return &ioError{op: "creating", path: path, err: err}
	}
	return nil
}

// quantizeImage reduces img to a palette of at most colors entries, one of
// which is kept transparent. Unlike a plain cut this is lossy.
func quantizeImage(img image.Image, colors int) *image.Paletted {
	if colors > 256 {
		colors = 256
	}
	q := quantize.MedianCutQuantizer{AddTransparent: true}
	pal := q.Quantize(make(color.Palette, 0, colors), img)
	dst := image.NewPaletted(img.Bounds(), pal)
	draw.Draw(dst, dst.Rect, img, img.Bounds().Min, draw.Src)
	return dst
}
