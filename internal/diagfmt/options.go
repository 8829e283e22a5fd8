// Package diagfmt renders diagnostics, token dumps, AST trees and query
// matches for the terminal (pretty, optionally colored) or as JSON.
package diagfmt

import (
	"path/filepath"

	"deob/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	PathModeAuto PathMode = iota // relative to the FileSet base when shorter
	PathModeAbsolute
	PathModeBasename
)

type PrettyOpts struct {
	Color     bool
	Context   int // extra source lines shown above the primary line
	PathMode  PathMode
	ShowNotes bool
}

type JSONOpts struct {
	IncludePositions bool // add line/col next to byte offsets
	PathMode         PathMode
	Max              int // 0 = everything
}

func displayPath(fs *source.FileSet, f *source.File, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return abs
		}
		return f.Path
	case PathModeBasename:
		return filepath.Base(f.Path)
	default:
		return f.DisplayPath(fs.BaseDir())
	}
}
