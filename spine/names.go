package spine

import (
	"path/filepath"
	"strings"
)

var fileNameEscaper = strings.NewReplacer(
	"%", "%25",
	"/", "%2F",
	`\`, "%5C",
)

// PartFileName returns the output file name for a part.
//
// Names are used verbatim except for path separators, which are escaped
// along with the escape character itself so that no two distinct part names
// share a file. "." and ".." are escaped as well.
func PartFileName(partName string) string {
	n := fileNameEscaper.Replace(partName)
	switch n {
	case ".":
		n = "%2E"
	case "..":
		n = "%2E%2E"
	}
	return n + ".png"
}

// ResultDir is the directory the parts of s are written to.
func (s Sheet) ResultDir(resultRoot string) string {
	return filepath.Join(resultRoot, s.Character)
}

// PartPath is the full output path of one part of s.
func (s Sheet) PartPath(resultRoot, partName string) string {
	return filepath.Join(s.ResultDir(resultRoot), PartFileName(partName))
}
