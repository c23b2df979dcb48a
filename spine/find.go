// Package spine locates packed sprite sheets in a spine directory and derives
// the names their parts are written under.
//
// A sheet lives in its own directory, named after the sheet with a "_spr"
// suffix, and holds the image and its .atlas descriptor:
//
//	spine/hina_spr/hina_spr.png
//	spine/hina_spr/hina_spr.atlas
//
// Directories without "_spr" in their name hold skeletal animation data and
// are ignored.
package spine

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Marker is the directory name fragment identifying cuttable sheets.
const Marker = "_spr"

// ErrMissingPair is returned by Sheet.Check when either file of the pair is
// absent.
var ErrMissingPair = errors.New("sheet image or atlas missing")

// Sheet is one image and descriptor pair.
type Sheet struct {
	Dir       string
	Name      string
	Character string
	ImagePath string
	AtlasPath string
}

// NewSheet describes the sheet stored in dir. It does not touch the
// filesystem.
func NewSheet(dir string) Sheet {
	name := filepath.Base(dir)
	return Sheet{
		Dir:       dir,
		Name:      name,
		Character: CharacterName(name),
		ImagePath: filepath.Join(dir, name+".png"),
		AtlasPath: filepath.Join(dir, name+".atlas"),
	}
}

// Check reports ErrMissingPair unless both the image and the atlas are
// regular files and the sheet has a usable character name. "." and ".."
// would put the parts outside their own character directory.
func (s Sheet) Check() error {
	for _, path := range []string{s.ImagePath, s.AtlasPath} {
		fi, err := os.Stat(path)
		if err != nil {
			return errors.Wrapf(ErrMissingPair, "%s: %v", s.Name, err)
		}
		if !fi.Mode().IsRegular() {
			return errors.Wrapf(ErrMissingPair, "%s: %s is not a regular file", s.Name, path)
		}
	}
	switch s.Character {
	case "", ".", "..":
		return errors.Wrapf(ErrMissingPair, "%s: no usable character name", s.Name)
	}
	return nil
}

// Find lists the sheet directories directly inside spineDir, in name order.
// Pairs are not checked; see Sheet.Check.
func Find(spineDir string) ([]Sheet, error) {
	entries, err := os.ReadDir(spineDir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading spine directory %q", spineDir)
	}

	var sheets []Sheet
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if !strings.Contains(e.Name(), Marker) {
			glog.V(1).Infof("spine.Find: skipping %q, not a %s sheet", e.Name(), Marker)
			continue
		}
		sheets = append(sheets, NewSheet(filepath.Join(spineDir, e.Name())))
	}
	glog.V(1).Infof("spine.Find(%q): %d sheets", spineDir, len(sheets))
	return sheets, nil
}

// CharacterName turns a sheet name such as "hina_spr" into "Hina".
func CharacterName(sheetName string) string {
	n := strings.ReplaceAll(sheetName, Marker, "")
	r, size := utf8.DecodeRuneInString(n)
	if r == utf8.RuneError {
		return n
	}
	return string(unicode.ToUpper(r)) + n[size:]
}
