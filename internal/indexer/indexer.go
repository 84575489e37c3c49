// Package indexer coordinates full scan-and-enrich passes over the library
// and provides a structured handle for background runs.
package indexer

import (
	"context"
	"log/slog"

	"github.com/vmunix/cinedex/internal/enrich"
	"github.com/vmunix/cinedex/internal/library"
	"github.com/vmunix/cinedex/internal/scanner"
)

// Service runs scan-and-enrich passes. It is safe to share across
// goroutines; per-run state lives in the store passed to Index.
type Service struct {
	scanner     *scanner.Scanner
	fetcher     enrich.Fetcher
	tokens      enrich.TokenSet
	concurrency int
	log         *slog.Logger
}

// New creates an indexing service.
func New(sc *scanner.Scanner, fetcher enrich.Fetcher, tokens enrich.TokenSet, concurrency int, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		scanner:     sc,
		fetcher:     fetcher,
		tokens:      tokens,
		concurrency: concurrency,
		log:         log,
	}
}

// Index scans the library root and enriches every discovered file into the
// given store. Returns one record per discovered file, in scan order; the
// only error is cancellation.
func (s *Service) Index(ctx context.Context, store library.Store) ([]library.Movie, error) {
	files := s.scanner.Scan(ctx)
	s.log.Info("library scan complete", "files", len(files))

	e := enrich.New(store, s.fetcher, s.tokens, s.concurrency, s.log)
	movies, err := e.Enrich(ctx, files)
	if err != nil {
		return nil, err
	}

	s.log.Info("enrichment complete", "movies", len(movies))
	return movies, nil
}
