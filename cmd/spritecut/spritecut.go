// Binary spritecut cuts every part out of the packed Spine sprite sheets
// found under <root>/spine and writes them to <root>/Character/<Name>/.
//
// Only sheets stored in a directory whose name contains "_spr" are
// processed:
//
//	spine/hina_spr/hina_spr.png
//	spine/hina_spr/hina_spr.atlas
//
// become
//
//	Character/Hina/<part>.png
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"

	"badc0de.net/pkg/go-spritecut/atlas"
	"badc0de.net/pkg/go-spritecut/extract"
	"badc0de.net/pkg/go-spritecut/spine"
)

var (
	root           = flag.String("root", "", "directory containing spine/ and receiving Character/; defaults to the working directory")
	spineDir       = flag.String("spine_dir", "", "directory with the <name>_spr sheet directories; defaults to <root>/spine")
	resultDir      = flag.String("result_dir", "", "directory receiving one directory per character; defaults to <root>/Character")
	parallelism    = flag.Int("parallelism", 1, "number of sheets processed at once")
	quantizeColors = flag.Int("quantize_colors", 0, "if positive, write paletted parts with at most this many colors (lossy)")
	list           = flag.Bool("list", false, "only list the parts of each sheet; write nothing")
	banner         = flag.Bool("banner", false, "print a banner on start")
	preview        = flag.Bool("preview", false, "print every part on the terminal")
)

func config() (extract.Config, error) {
	r := *root
	if r == "" {
		wd, err := os.Getwd()
		if err != nil {
			return extract.Config{}, err
		}
		r = wd
	}
	cfg := extract.DefaultConfig(r)
	if *spineDir != "" {
		cfg.SpineDir = *spineDir
	}
	if *resultDir != "" {
		cfg.ResultDir = *resultDir
	}
	cfg.Parallelism = *parallelism
	cfg.QuantizeColors = *quantizeColors
	cfg.DryRun = *list
	cfg.OnPart = onPart
	return cfg, nil
}

func onPart(s spine.Sheet, p atlas.Part, img image.Image) {
	if *list {
		fmt.Printf("  %s: %s at %v, stored %dx%d, rotated %s\n",
			s.Character, p.Name, p.XY, p.Size.X, p.Size.Y, p.Rotate)
	}
	if *preview {
		fmt.Printf("%s/%s\n", s.Character, spine.PartFileName(p.Name))
		out(img, spine.PartFileName(p.Name))
	}
}

func main() {
	setupPreviewFlags()
	flagutil.Parse()

	if *banner {
		figure.NewFigure("spritecut", "", true).Print()
		fmt.Println()
	}

	cfg, err := config()
	if err != nil {
		glog.Errorf("could not determine root directory: %v", err)
		return
	}
	if *preview && cfg.Parallelism > 1 {
		glog.Warningf("--preview prints parts in order; ignoring --parallelism=%d", cfg.Parallelism)
		cfg.Parallelism = 1
	}
	glog.Infof("reading sheets from %s, writing parts to %s", cfg.SpineDir, cfg.ResultDir)

	rep, err := extract.New(cfg).Run(context.Background())
	if err != nil {
		glog.Errorf("%v", err)
		fmt.Printf("Could not process %s: %v\n", cfg.SpineDir, err)
	}
	if rep != nil {
		glog.Infof("wrote %d parts, skipped %d parts, %d sheets failed", rep.Written(), rep.SkippedParts(), len(rep.Failed()))
		for _, s := range rep.Sheets {
			for _, pe := range s.Skipped {
				fmt.Printf("Skipped %s/%s: %v\n", s.Sheet.Character, pe.Part, pe.Err)
			}
		}
	}
	fmt.Println("Finished processing atlas sprite.")
	glog.Flush()
}
