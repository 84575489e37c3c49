// Package enrich turns scanned video files into enriched library records
// by normalizing filenames, querying the metadata source, and memoizing
// results in the shared store.
package enrich

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/hbollon/go-edlib"
	"golang.org/x/sync/errgroup"

	"github.com/vmunix/cinedex/internal/library"
	"github.com/vmunix/cinedex/internal/omdb"
)

//go:generate mockgen -destination mocks/mocks.go -package mocks -source enrich.go

// Fetcher is the metadata lookup capability. The production implementation
// is *omdb.Client.
type Fetcher interface {
	Fetch(ctx context.Context, title string) (*omdb.Result, error)
}

// lowConfidence is the Jaro-Winkler similarity below which a fetched title
// is logged as a doubtful match.
const lowConfidence = 0.7

// Enricher runs the per-file enrichment pipeline.
type Enricher struct {
	store   library.Store
	fetcher Fetcher
	tokens  TokenSet
	limit   int
	log     *slog.Logger
}

// New creates an Enricher. concurrency bounds the fan-out over source
// lookups; values below 1 are clamped to sequential.
func New(store library.Store, fetcher Fetcher, tokens TokenSet, concurrency int, log *slog.Logger) *Enricher {
	if concurrency < 1 {
		concurrency = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Enricher{
		store:   store,
		fetcher: fetcher,
		tokens:  tokens,
		limit:   concurrency,
		log:     log,
	}
}

// Enrich produces one record per input file, in input order.
//
// A cached path short-circuits without touching the source. Source failures
// and misses degrade to a record carrying only the file's own data; they
// never abort the batch. The only error Enrich returns is cancellation, in
// which case no record is stored for files that had not completed.
func (e *Enricher) Enrich(ctx context.Context, files []library.MovieFile) ([]library.Movie, error) {
	results := make([]library.Movie, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if cached, ok := e.store.Get(f.Path); ok {
				results[i] = cached
				return nil
			}

			title := Normalize(f.Path, e.tokens)
			res, err := e.fetch(ctx, title)
			if err != nil {
				return err
			}

			movie := buildMovie(f, res)
			e.store.Set(f.Path, movie)
			results[i] = movie
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// fetch queries the source and folds misses and failures into an absent
// result. Only cancellation propagates as an error.
func (e *Enricher) fetch(ctx context.Context, title string) (*omdb.Result, error) {
	res, err := e.fetcher.Fetch(ctx, title)
	switch {
	case err == nil:
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case errors.Is(err, omdb.ErrNotFound):
		e.log.Debug("no metadata match", "title", title)
		return nil, nil
	default:
		e.log.Warn("metadata lookup failed", "title", title, "error", err)
		return nil, nil
	}

	if title != "" && res.Title != "" {
		sim := edlib.JaroWinklerSimilarity(strings.ToLower(title), strings.ToLower(res.Title))
		if sim < lowConfidence {
			e.log.Warn("low confidence metadata match",
				"query", title, "matched", res.Title, "similarity", sim)
		}
	}
	return res, nil
}

// buildMovie merges the file's technical data with the source result.
// The source runtime is used only when technical extraction yielded 0.
func buildMovie(f library.MovieFile, res *omdb.Result) library.Movie {
	m := library.Movie{
		Path:            f.Path,
		Genres:          []string{},
		DurationMinutes: f.DurationMinutes,
	}
	if res == nil {
		return m
	}

	m.Title = res.Title
	m.Genres = append(m.Genres, res.Genres...)
	m.Plot = res.Plot
	if f.DurationMinutes == 0 && res.RuntimeMinutes > 0 {
		m.DurationMinutes = res.RuntimeMinutes
	}
	return m
}
