//go:build !windows

package imageprint

import (
	"fmt"
	"image"
	"io"

	"github.com/BourgeoisBear/rasterm"
	"github.com/andybons/gogif"
)

func isTermItermWez() bool {
	return rasterm.IsTermItermWez()
}

// PrintRasTerm draws an image using the RasTerm library, picking Kitty,
// iTerm2 or sixel output depending on the terminal. Nothing is written on
// other terminals.
func PrintRasTerm(w io.Writer, i image.Image) error {
	if rasterm.IsTermKitty() {
		if err := (rasterm.Settings{}).KittyWriteImage(w, i); err != nil {
			return err
		}
		fmt.Fprint(w, "\n")
		return nil
	}
	if rasterm.IsTermItermWez() {
		if err := (rasterm.Settings{}).ItermWriteImage(w, i); err != nil {
			return err
		}
		fmt.Fprint(w, "\n")
		return nil
	}
	if capable, err := rasterm.IsSixelCapable(); capable && err == nil {
		palettedImage := image.NewPaletted(i.Bounds(), nil)
		quantizer := gogif.MedianCutQuantizer{NumColor: 64}
		quantizer.Quantize(palettedImage, i.Bounds(), i, i.Bounds().Min)

		if err := (rasterm.Settings{}).SixelWriteImage(w, palettedImage); err != nil {
			return err
		}
		fmt.Fprint(w, "\n")
	}
	return nil
}
