// Package scanner discovers video files under a library root and extracts
// their technical duration.
package scanner

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmunix/cinedex/internal/library"
)

// Scanner walks a library root and collects supported video files.
type Scanner struct {
	root  string
	exts  map[string]struct{}
	probe DurationProber
	log   *slog.Logger
}

// New creates a Scanner for the given root. Extensions are matched
// case-insensitively; entries may be given with or without the leading dot.
func New(root string, extensions []string, probe DurationProber, log *slog.Logger) *Scanner {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = struct{}{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Scanner{root: root, exts: exts, probe: probe, log: log}
}

// Scan walks the root recursively and returns one MovieFile per supported
// video file. A missing or non-directory root yields an empty result with a
// logged diagnostic; per-file duration failures degrade to 0 rather than
// aborting the scan.
func (s *Scanner) Scan(ctx context.Context) []library.MovieFile {
	info, err := os.Stat(s.root)
	if err != nil {
		s.log.Warn("library root missing", "root", s.root, "error", err)
		return nil
	}
	if !info.IsDir() {
		s.log.Warn("library root is not a directory", "root", s.root)
		return nil
	}

	var files []library.MovieFile
	walkErr := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.log.Warn("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := s.exts[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}

		minutes, err := s.probe.DurationMinutes(ctx, path)
		if err != nil {
			s.log.Warn("duration extraction failed", "path", path, "error", err)
			minutes = 0
		}

		files = append(files, library.MovieFile{
			Path:            path,
			Filename:        d.Name(),
			DurationMinutes: minutes,
		})
		return nil
	})
	if walkErr != nil {
		s.log.Warn("scan aborted", "root", s.root, "error", walkErr)
	}
	return files
}
