// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed collects PubMed identifiers for a query, fetches their
// details in batches, and extracts records for papers with at least one
// company-affiliated author.
package pubmed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pdiddy/get-papers-list/internal/eutils"
	"github.com/pdiddy/get-papers-list/internal/metrics"
	"github.com/pdiddy/get-papers-list/pkg/types"
)

const database = "pubmed"

// Searcher pages through ESearch to build the identifier pool.
type Searcher struct {
	Fetcher eutils.Fetcher
	Config  types.SearchConfig
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// Search returns up to criteria.Quota × OverfetchFactor identifiers in
// discovery order. Pagination stops at the bound, on a short or empty page,
// when the offset reaches the reported total, or on the first fault; a fault
// keeps whatever was collected before it.
func (s *Searcher) Search(ctx context.Context, criteria types.SearchCriteria) []string {
	logger := loggerOrDiscard(s.Logger)
	limit := s.Config.PoolLimit(criteria.Quota)
	pageSize := s.Config.PageSize
	if limit <= 0 || pageSize <= 0 {
		return nil
	}

	// Result sets can shift between page requests; the same PMID then
	// shows up on two pages.
	seen, err := lru.New[string, struct{}](limit)
	if err != nil {
		logger.Error("creating identifier cache", slog.Any("error", err))
		return nil
	}

	var pool []string
	for offset := 0; len(pool) < limit; offset += pageSize {
		page, err := s.page(ctx, criteria.Query, offset, pageSize)
		if err != nil {
			reportFault(logger, s.Metrics, "esearch", err, slog.Int("offset", offset))
			break
		}
		for _, id := range page.IDs {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if ok, _ := seen.ContainsOrAdd(id, struct{}{}); ok {
				continue
			}
			pool = append(pool, id)
		}
		logger.Debug("esearch page",
			slog.Int("offset", offset),
			slog.Int("returned", len(page.IDs)),
			slog.Int("pooled", len(pool)),
			slog.Int("total", page.Count),
		)
		if len(page.IDs) < pageSize {
			break
		}
		if page.Count > 0 && offset+pageSize >= page.Count {
			break
		}
	}

	if len(pool) > limit {
		pool = pool[:limit]
	}
	s.Metrics.SetPooled(len(pool))
	logger.Info("identifier search complete",
		slog.Int("pooled", len(pool)),
		slog.Int("limit", limit),
	)
	return pool
}

func (s *Searcher) page(ctx context.Context, query string, offset, size int) (eSearchResult, error) {
	params := url.Values{
		"db":       {database},
		"term":     {query},
		"retmax":   {strconv.Itoa(size)},
		"retstart": {strconv.Itoa(offset)},
		"retmode":  {"xml"},
	}
	body, err := s.Fetcher.Get(ctx, eutils.ESearch, params)
	if err != nil {
		return eSearchResult{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	var res eSearchResult
	if err := xml.Unmarshal(body, &res); err != nil {
		return eSearchResult{}, fmt.Errorf("%w: decoding esearch response: %w", ErrParse, err)
	}
	if msg := strings.TrimSpace(res.Error); msg != "" {
		return eSearchResult{}, fmt.Errorf("%w: esearch error: %s", ErrParse, msg)
	}
	return res, nil
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
