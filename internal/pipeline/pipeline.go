// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one search: identifier search, batched detail
// retrieval, and handoff of the result set to the caller.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/get-papers-list/internal/affiliation"
	"github.com/pdiddy/get-papers-list/internal/eutils"
	"github.com/pdiddy/get-papers-list/internal/metrics"
	"github.com/pdiddy/get-papers-list/internal/pubmed"
	"github.com/pdiddy/get-papers-list/pkg/types"
)

// Pipeline owns the collaborators of a single run. Build a new one per run:
// its logger and metrics are scoped to that run.
type Pipeline struct {
	RunID   string
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	searcher *pubmed.Searcher
	batcher  *pubmed.Batcher
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithClassifier replaces the default affiliation cascade.
func WithClassifier(c *affiliation.Classifier) Option {
	return func(p *Pipeline) { p.batcher.Extractor = pubmed.NewExtractor(c) }
}

// WithSleep replaces the pause between detail batches.
func WithSleep(sleep func(context.Context, time.Duration) error) Option {
	return func(p *Pipeline) { p.batcher.Sleep = sleep }
}

// New wires a pipeline around fetcher. A nil logger discards output; a nil
// metrics disables counting.
func New(fetcher eutils.Fetcher, cfg types.SearchConfig, logger *slog.Logger, m *metrics.Metrics, opts ...Option) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	runID := uuid.NewString()
	logger = logger.With(slog.String("run_id", runID))

	p := &Pipeline{
		RunID:   runID,
		Logger:  logger,
		Metrics: m,
		searcher: &pubmed.Searcher{
			Fetcher: fetcher,
			Config:  cfg,
			Logger:  logger.With(slog.String("stage", "search")),
			Metrics: m,
		},
		batcher: &pubmed.Batcher{
			Fetcher:   fetcher,
			Extractor: pubmed.NewExtractor(nil),
			Config:    cfg,
			Logger:    logger.With(slog.String("stage", "fetch")),
			Metrics:   m,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the search for criteria. Invalid criteria are rejected before
// any request is made. Faults inside the run are logged and absorbed; the
// only other error is context cancellation, returned with the partial result.
func (p *Pipeline) Run(ctx context.Context, criteria types.SearchCriteria) (types.ResultSet, error) {
	if err := criteria.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search criteria: %w", err)
	}
	if err := p.searcher.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search configuration: %w", err)
	}

	start := time.Now()
	p.Logger.Info("run started",
		slog.String("query", criteria.Query),
		slog.Int("quota", criteria.Quota),
	)

	pool := p.searcher.Search(ctx, criteria)
	if err := ctx.Err(); err != nil {
		return types.ResultSet{}, err
	}
	if len(pool) == 0 {
		p.Logger.Info("no identifiers found", slog.String("query", criteria.Query))
		return types.ResultSet{}, nil
	}

	results, err := p.batcher.FetchDetails(ctx, pool, criteria.Quota)
	p.Logger.Info("run finished",
		slog.Int("identifiers", len(pool)),
		slog.Int("records", len(results)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return results, err
}
