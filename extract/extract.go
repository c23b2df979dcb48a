// Package extract runs the batch conversion: it walks a spine directory,
// cuts every part out of every sheet and writes the parts grouped by
// character.
//
// Errors are scoped to a sheet. A sheet that cannot be read is reported and
// the batch moves on to the next one.
package extract

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"badc0de.net/pkg/go-spritecut/atlas"
	"badc0de.net/pkg/go-spritecut/parts"
	"badc0de.net/pkg/go-spritecut/spine"
)

// Config holds everything a run needs. There is no process-wide state.
type Config struct {
	// SpineDir holds the <name>_spr sheet directories.
	SpineDir string
	// ResultDir receives one directory per character.
	ResultDir string

	// Parallelism is the number of sheets processed at once. Values below 1
	// mean 1.
	Parallelism int
	// QuantizeColors, when positive, writes paletted parts with at most that
	// many colours.
	QuantizeColors int
	// DryRun cuts parts but writes nothing.
	DryRun bool

	// Progress receives one line per sheet. nil discards it.
	Progress io.Writer
	// OnPart, if set, is called with every part cut. With Parallelism above
	// 1 it is called from several goroutines.
	OnPart func(s spine.Sheet, p atlas.Part, img image.Image)
}

// DefaultConfig returns the layout rooted at root: root/spine is read and
// root/Character is written.
func DefaultConfig(root string) Config {
	return Config{
		SpineDir:    filepath.Join(root, "spine"),
		ResultDir:   filepath.Join(root, "Character"),
		Parallelism: 1,
		Progress:    os.Stdout,
	}
}

type Extractor struct {
	cfg Config

	progressLock sync.Mutex
}

func New(cfg Config) *Extractor {
	if cfg.Progress == nil {
		cfg.Progress = io.Discard
	}
	if cfg.Parallelism < 1 {
		cfg.Parallelism = 1
	}
	return &Extractor{cfg: cfg}
}

func (e *Extractor) printf(format string, args ...interface{}) {
	e.progressLock.Lock()
	defer e.progressLock.Unlock()
	fmt.Fprintf(e.cfg.Progress, format, args...)
}

// Run processes every sheet found in the spine directory. The returned error
// is only set when the spine directory cannot be listed or ctx ends early;
// per-sheet failures are in the report.
func (e *Extractor) Run(ctx context.Context) (*Report, error) {
	sheets, err := spine.Find(e.cfg.SpineDir)
	if err != nil {
		return nil, err
	}

	rep := &Report{Sheets: make([]SheetResult, len(sheets))}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Parallelism)
	for i, s := range sheets {
		i, s := i, s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				rep.Sheets[i] = SheetResult{Sheet: s, Err: &SheetError{Sheet: s.Name, Err: err}}
				return err
			}
			rep.Sheets[i] = e.Sheet(s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return rep, errors.Wrap(err, "extraction interrupted")
	}
	return rep, nil
}

// Sheet cuts all parts of a single sheet.
func (e *Extractor) Sheet(s spine.Sheet) SheetResult {
	res := SheetResult{Sheet: s}
	if err := e.sheet(s, &res); err != nil {
		res.Err = &SheetError{Sheet: s.Name, Err: err}
		if errors.Is(err, spine.ErrMissingPair) {
			glog.V(1).Infof("skipping %s: %v", s.Name, err)
		} else {
			glog.Errorf("sheet %s failed: %v", s.Name, err)
			e.printf("Failed %s: %v\n", s.Character, err)
		}
	}
	return res
}

func (e *Extractor) sheet(s spine.Sheet, res *SheetResult) error {
	if err := s.Check(); err != nil {
		return err
	}
	e.printf("Processing %s...\n", s.Character)

	f, err := os.Open(s.AtlasPath)
	if err != nil {
		return &ioError{op: "opening", path: s.AtlasPath, err: err}
	}
	desc, err := atlas.Decode(f)
	f.Close()
	if errors.Is(err, atlas.ErrMalformedDescriptor) {
		return errors.Wrapf(err, "reading %s", s.AtlasPath)
	} else if err != nil {
		return &ioError{op: "reading", path: s.AtlasPath, err: err}
	}
	res.Parts = len(desc.Parts)
	glog.Infof("%s: %d parts", s.Name, len(desc.Parts))

	// The sheet image is held only for the loop below.
	img, err := loadImage(s.ImagePath)
	if err != nil {
		return err
	}
	glog.V(1).Infof("%s: sheet is %dx%d", s.Name, img.Bounds().Dx(), img.Bounds().Dy())

	outDir := s.ResultDir(e.cfg.ResultDir)
	if !e.cfg.DryRun {
		if err := makeDir(outDir); err != nil {
			return err
		}
	}

	for _, p := range desc.Parts {
		part, err := parts.Reconstruct(img, p)
		if errors.Is(err, parts.ErrOutOfBounds) {
			glog.Warningf("%s: skipping part: %v", s.Name, err)
			res.Skipped = append(res.Skipped, PartError{Part: p.Name, Err: err})
			continue
		} else if err != nil {
			return err
		}

		if !e.cfg.DryRun {
			path := s.PartPath(e.cfg.ResultDir, p.Name)
			if err := saveImage(part, path, e.cfg.QuantizeColors); err != nil {
				return err
			}
			glog.V(2).Infof("%s: wrote %s", s.Name, path)
			res.Written = append(res.Written, path)
		}
		if e.cfg.OnPart != nil {
			e.cfg.OnPart(s, p, part)
		}
	}
	return nil
}
