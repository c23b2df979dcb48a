// Package imageprint prints images on a terminal, for a quick look at cut
// parts without opening an image viewer.
//
// This package has an API with no stability guarantees.
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	ic "image/color"
	"image/png"
	"io"

	"github.com/gookit/color"
)

type mode int

const (
	modeTrueColor mode = iota
	mode256Color
	modeNoColor
)

// shade writes one pixel as two character cells.
func shade(w io.Writer, col ic.Color, m mode, blanks bool) {
	cR, cG, cB, cA := col.RGBA()
	if cA == 0 {
		fmt.Fprint(w, "\x1b[0m  ")
		return
	}
	r, g, b := uint8(cR>>8), uint8(cG>>8), uint8(cB>>8)

	cell := "  "
	if !blanks {
		a := ((cR + cG + cB) / 3) >> 8
		switch {
		case a < 32:
			cell = ".."
		case a < 64:
			cell = "--"
		case a < 128:
			cell = "=="
		default:
			cell = "##"
		}
	}

	switch m {
	case modeNoColor:
		fmt.Fprint(w, cell)
	case mode256Color:
		fmt.Fprint(w, color.RGB(r, g, b, true).Sprint(cell))
	default:
		fmt.Fprintf(w, "\x1b[48;2;%d;%d;%dm%s\x1b[0m", r, g, b, cell)
	}
}

func printImage(w io.Writer, i image.Image, m mode, blanks bool) {
	b := i.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			shade(w, i.At(x, y), m, blanks)
		}
		if m != modeNoColor {
			fmt.Fprint(w, "\x1b[0m")
		}
		fmt.Fprint(w, "\n")
	}
}

// Print256Color draws an image using 256color'd ascii art.
func Print256Color(w io.Writer, i image.Image, blanks bool) {
	printImage(w, i, mode256Color, blanks)
}

// Print24bit draws an image using 24bit color escape sequences by changing background.
func Print24bit(w io.Writer, i image.Image, blanks bool) {
	printImage(w, i, modeTrueColor, blanks)
}

// PrintNoColor draws an image without using color escape sequences. Only makes sense with blanks=false.
func PrintNoColor(w io.Writer, i image.Image, blanks bool) {
	printImage(w, i, modeNoColor, blanks)
}

// PrintITerm draws an image using iTerm2's escape sequences. Nothing is
// written unless the terminal looks like iTerm2 or WezTerm.
//
// https://www.iterm2.com/documentation-images.html
func PrintITerm(w io.Writer, i image.Image, fn string) error {
	if !isTermItermWez() {
		return nil
	}
	return writeITerm(w, i, fn)
}

func writeITerm(w io.Writer, i image.Image, fn string) error {
	name := base64.StdEncoding.EncodeToString([]byte(fn))
	b := &bytes.Buffer{}
	bEnc := base64.NewEncoder(base64.StdEncoding, b)
	if err := png.Encode(bEnc, i); err != nil {
		return err
	}
	bEnc.Close()
	_, err := fmt.Fprintf(w, "\n\033]1337;File=name=%s;inline=1;size=%d,width=%dpx;height=%dpx:%s\a\n", name, b.Len(), i.Bounds().Dx(), i.Bounds().Dy(), b.String())
	return err
}
