package indexer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/cinedex/internal/enrich"
	"github.com/vmunix/cinedex/internal/library"
	"github.com/vmunix/cinedex/internal/omdb"
	"github.com/vmunix/cinedex/internal/scanner"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubFetcher echoes the query title back as the matched title.
type stubFetcher struct {
	calls atomic.Int64
}

func (f *stubFetcher) Fetch(ctx context.Context, title string) (*omdb.Result, error) {
	f.calls.Add(1)
	return &omdb.Result{Title: title, RuntimeMinutes: 100}, nil
}

// zeroProber reports every duration as 0.
type zeroProber struct{}

func (zeroProber) DurationMinutes(ctx context.Context, path string) (int, error) {
	return 0, nil
}

func TestService_Index(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"The.Matrix.1999.mkv", "Brazil.1985.mkv"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("x"), 0644))
	}

	fetcher := &stubFetcher{}
	sc := scanner.New(root, []string{".mkv"}, zeroProber{}, testLogger())
	svc := New(sc, fetcher, enrich.NewTokenSet(nil), 2, testLogger())

	store := library.NewMemoryStore(nil)
	movies, err := svc.Index(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.EqualValues(t, 2, fetcher.calls.Load())
	assert.Len(t, store.All(), 2)

	// Second pass over the same store is served from cache.
	movies, err = svc.Index(context.Background(), store)
	require.NoError(t, err)
	assert.Len(t, movies, 2)
	assert.EqualValues(t, 2, fetcher.calls.Load(), "cached records skip the source")

	// A throwaway store pays for the lookups again.
	_, err = svc.Index(context.Background(), library.NewMemoryStore(nil))
	require.NoError(t, err)
	assert.EqualValues(t, 4, fetcher.calls.Load())
}
