// Package classifier walks a scan root and decides, per file, whether it is
// eligible for matching and which language rule set applies.
package classifier

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/scansec/scansec/models"
)

// DefaultSizeLimit is the largest file the matcher will read (1 MiB).
// Files at exactly the limit are scanned; anything larger is counted but
// never matched.
const DefaultSizeLimit int64 = 1 << 20

// DefaultExcludedDirs are directory names pruned wherever they appear in the
// tree.
func DefaultExcludedDirs() []string {
	return []string{
		".git", "node_modules", "venv", "__pycache__",
		".idea", "dist", "build", "target",
	}
}

// DefaultExtensions maps file extensions to languages. The table is total:
// any extension not listed is skipped silently.
func DefaultExtensions() map[string]models.Language {
	return map[string]models.Language{
		".py":  models.LangPython,
		".js":  models.LangJavaScript,
		".jsx": models.LangJavaScript,
		".ts":  models.LangJavaScript,
		".tsx": models.LangJavaScript,
		".cpp": models.LangCPP,
		".cc":  models.LangCPP,
		".cxx": models.LangCPP,
		".c++": models.LangCPP,
		".c":   models.LangCPP,
		".h":   models.LangCPP,
		".hpp": models.LangCPP,
	}
}

// File is one classified file in the scan root.
type File struct {
	// AbsPath is the path on disk; RelPath is relative to the scan root,
	// slash-separated, and is what reports use.
	AbsPath  string
	RelPath  string
	Language models.Language
	Size     int64
	// Oversized files count toward total_files_scanned but never reach the
	// matcher.
	Oversized bool
}

// Classifier applies the exclusion and extension policy during traversal.
type Classifier struct {
	sizeLimit  int64
	excluded   map[string]bool
	extensions map[string]models.Language
}

// Options overrides the default policy. Zero values keep the defaults;
// ExtraExcludedDirs is additive.
type Options struct {
	SizeLimit         int64
	ExtraExcludedDirs []string
	Extensions        map[string]models.Language
}

// New builds a Classifier from opts.
func New(opts Options) *Classifier {
	c := &Classifier{
		sizeLimit:  opts.SizeLimit,
		excluded:   make(map[string]bool),
		extensions: opts.Extensions,
	}
	if c.sizeLimit <= 0 {
		c.sizeLimit = DefaultSizeLimit
	}
	if c.extensions == nil {
		c.extensions = DefaultExtensions()
	}
	for _, d := range DefaultExcludedDirs() {
		c.excluded[d] = true
	}
	for _, d := range opts.ExtraExcludedDirs {
		if d != "" {
			c.excluded[d] = true
		}
	}
	return c
}

// SizeLimit returns the configured limit in bytes.
func (c *Classifier) SizeLimit() int64 {
	return c.sizeLimit
}

// Walk traverses root in lexical order, calling fn for every eligible file.
// The traversal is restartable: calling Walk again re-walks the tree.
// Unreadable directory entries are logged and skipped; an unreadable root is
// the only fatal case.
func (c *Classifier) Walk(root string, fn func(File) error) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving scan root: %w", err)
	}

	return filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == absRoot {
				return fmt.Errorf("reading scan root: %w", walkErr)
			}
			slog.Debug("Skipping unreadable path", "path", path, "error", walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != absRoot && c.excluded[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		lang, ok := c.extensions[strings.ToLower(filepath.Ext(path))]
		if !ok {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			slog.Debug("Skipping unstatable file", "path", path, "error", err)
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return nil
		}

		return fn(File{
			AbsPath:   path,
			RelPath:   filepath.ToSlash(rel),
			Language:  lang,
			Size:      info.Size(),
			Oversized: info.Size() > c.sizeLimit,
		})
	})
}
