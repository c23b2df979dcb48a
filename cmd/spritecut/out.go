package main

import (
	"flag"
	"image"
	"os"

	"github.com/golang/glog"
	"github.com/nfnt/resize"

	"badc0de.net/pkg/go-spritecut/imageprint"
)

var (
	col      *bool
	col256   *bool
	iterm    *bool
	rasterm  *bool
	blanks   *bool
	downsize *bool
)

func setupPreviewFlags() {
	col = flag.Bool("col", true, "whether to use color in --preview")
	col256 = flag.Bool("col256", false, "whether to use 256 col instead of 24 bit")
	iterm = flag.Bool("iterm", false, "whether to print with iterm escape code instead of 24 bit")
	rasterm = flag.Bool("rasterm", false, "whether to print with rasterm (kitty, iterm or sixel)")
	blanks = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	downsize = flag.Bool("downsize", true, "whether to shrink parts to fit the terminal")
}

func out(img image.Image, name string) {
	if *downsize {
		termSize, err := GetTermSize()
		if err == nil {
			if (termSize.WSXPixel != 0 && termSize.WSYPixel != 0) && (*rasterm || *iterm) {
				// Graphics protocols draw real pixels; only shrink to the window.
				img = resize.Thumbnail(termSize.WSXPixel/2, termSize.WSYPixel/2, img, resize.Lanczos3)
			} else {
				img = resize.Thumbnail(termSize.WSCol/2, termSize.WSRow, img, resize.Lanczos3)
			}
		} else {
			glog.V(1).Infof("not downsizing preview: %v", err)
		}
	}

	var err error
	switch {
	case *rasterm:
		err = imageprint.PrintRasTerm(os.Stdout, img)
	case !*col:
		imageprint.PrintNoColor(os.Stdout, img, *blanks)
	case *iterm:
		err = imageprint.PrintITerm(os.Stdout, img, name)
	case *col256:
		imageprint.Print256Color(os.Stdout, img, *blanks)
	default:
		imageprint.Print24bit(os.Stdout, img, *blanks)
	}
	if err != nil {
		glog.Errorf("printing %s: %v", name, err)
	}
}
