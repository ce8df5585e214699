package cli

import (
	"path/filepath"
	"strings"
)

// caseBase strips the case file extension from a command line argument, so a
// case can be named by its deck, either of its summary files, or the bare
// path. Unrelated extensions are kept: they are part of the case name.
func caseBase(arg string) string {
	ext := filepath.Ext(arg)
	switch strings.ToUpper(ext) {
	case ".DATA", ".SMSPEC", ".UNSMRY":
		return strings.TrimSuffix(arg, ext)
	}
	return arg
}

// casePaths resolves a case argument to its specification and data file
// paths.
func casePaths(arg string) (specPath, dataPath string) {
	base := caseBase(arg)
	return base + ".SMSPEC", base + ".UNSMRY"
}
