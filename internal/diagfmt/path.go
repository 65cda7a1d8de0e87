package diagfmt

import (
	"path/filepath"

	"plcc/internal/source"
)

const autoPathLimit = 40

func displayPath(fs *source.FileSet, sp source.Span, mode PathMode, base string) string {
	if !sp.IsKnown() {
		return "<synthetic>"
	}
	f := fs.Get(sp.File)
	if f == nil {
		return "<unknown>"
	}
	return formatPath(f.Path, mode, base)
}

func formatPath(path string, mode PathMode, base string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.ToSlash(abs)
		}
		return path
	case PathModeRelative:
		if base == "" {
			return path
		}
		if rel, err := filepath.Rel(base, path); err == nil {
			return filepath.ToSlash(rel)
		}
		return path
	case PathModeBasename:
		return filepath.Base(path)
	default:
		if filepath.IsAbs(path) && len(path) > autoPathLimit {
			return filepath.Base(path)
		}
		return path
	}
}
