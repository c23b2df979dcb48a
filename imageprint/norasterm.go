//go:build windows

package imageprint

import (
	"flag"
	"fmt"
	"image"
	"io"
)

var (
	forceITerm = flag.Bool("force_iterm", false, "value to force iterm detection to take (implementation variant: no rasterm)")
)

func isTermItermWez() bool {
	return *forceITerm
}

func PrintRasTerm(w io.Writer, i image.Image) error {
	_, err := fmt.Fprintf(w, "rasterm not supported on windows\n")
	return err
}
