package scanner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeProber serves canned durations keyed by base filename.
type fakeProber struct {
	durations map[string]int
	errs      map[string]error
	calls     int
}

func (p *fakeProber) DurationMinutes(ctx context.Context, path string) (int, error) {
	p.calls++
	name := filepath.Base(path)
	if err, ok := p.errs[name]; ok {
		return 0, err
	}
	return p.durations[name], nil
}

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
}

func TestScanner_Scan(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"Alien.1979.mkv",
		"Brazil.1985.MP4", // extension matching is case-insensitive
		"drama/Magnolia.1999.avi",
		"notes.txt",
		"trailer.webm",
	)

	probe := &fakeProber{durations: map[string]int{
		"Alien.1979.mkv":    117,
		"Brazil.1985.MP4":   132,
		"Magnolia.1999.avi": 188,
	}}
	s := New(root, []string{".mp4", ".mkv", ".avi"}, probe, testLogger())

	files := s.Scan(context.Background())
	require.Len(t, files, 3, "only supported extensions, recursing into subdirectories")

	byName := make(map[string]int, len(files))
	for _, f := range files {
		byName[f.Filename] = f.DurationMinutes
		assert.True(t, filepath.IsAbs(f.Path), "paths are absolute")
	}
	assert.Equal(t, 117, byName["Alien.1979.mkv"])
	assert.Equal(t, 132, byName["Brazil.1985.MP4"])
	assert.Equal(t, 188, byName["Magnolia.1999.avi"])
}

func TestScanner_ProbeFailureDegradesToZero(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "Broken.mkv", "Fine.mkv")

	probe := &fakeProber{
		durations: map[string]int{"Fine.mkv": 90},
		errs:      map[string]error{"Broken.mkv": errors.New("ffprobe: no such stream")},
	}
	s := New(root, []string{".mkv"}, probe, testLogger())

	files := s.Scan(context.Background())
	require.Len(t, files, 2, "probe failure must not abort the scan")

	byName := make(map[string]int, len(files))
	for _, f := range files {
		byName[f.Filename] = f.DurationMinutes
	}
	assert.Equal(t, 0, byName["Broken.mkv"])
	assert.Equal(t, 90, byName["Fine.mkv"])
}

func TestScanner_MissingRoot(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope"), []string{".mkv"}, &fakeProber{}, testLogger())
	assert.Empty(t, s.Scan(context.Background()))
}

func TestScanner_RootIsAFile(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "file.mkv")

	s := New(filepath.Join(root, "file.mkv"), []string{".mkv"}, &fakeProber{}, testLogger())
	assert.Empty(t, s.Scan(context.Background()))
}

func TestScanner_ExtensionsWithoutDot(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "Alien.mkv")

	s := New(root, []string{"mkv"}, &fakeProber{}, testLogger())
	assert.Len(t, s.Scan(context.Background()), 1)
}
