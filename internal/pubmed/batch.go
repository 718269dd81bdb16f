// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/get-papers-list/internal/eutils"
	"github.com/pdiddy/get-papers-list/internal/metrics"
	"github.com/pdiddy/get-papers-list/pkg/types"
)

// Batcher fetches article details for an identifier pool, one EFetch call
// per batch.
type Batcher struct {
	Fetcher   eutils.Fetcher
	Extractor *Extractor
	Config    types.SearchConfig
	Logger    *slog.Logger
	Metrics   *metrics.Metrics

	// Sleep waits between batches. Nil uses a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// FetchDetails walks pool in PageSize batches and returns at most quota
// records in arrival order. A faulted batch contributes nothing and the
// next batch is still attempted. The only error returned is the context's,
// together with the records collected so far.
func (b *Batcher) FetchDetails(ctx context.Context, pool []string, quota int) (types.ResultSet, error) {
	if quota < 1 {
		return nil, nil
	}
	logger := loggerOrDiscard(b.Logger)
	batches := Partition(pool, b.Config.PageSize)
	results := make(types.ResultSet, 0, min(quota, len(pool)))

	for i, batch := range batches {
		if len(results) >= quota {
			break
		}
		if err := ctx.Err(); err != nil {
			return results, err
		}

		articles, err := b.fetch(ctx, batch)
		if err != nil {
			reportFault(logger, b.Metrics, "efetch", err,
				slog.Int("batch", i+1),
				slog.Int("batches", len(batches)),
				slog.Int("size", len(batch)),
			)
		}

		before := len(results)
		for _, a := range articles {
			b.Metrics.IncArticle()
			rec, err := b.safeExtract(a)
			if err != nil {
				reportFault(logger, b.Metrics, "extract", err, slog.Int("batch", i+1))
				continue
			}
			if rec == nil {
				continue
			}
			results = append(results, *rec)
			b.Metrics.IncRecord()
			if len(results) >= quota {
				break
			}
		}
		logger.Info("batch processed",
			slog.Int("batch", i+1),
			slog.Int("batches", len(batches)),
			slog.Int("articles", len(articles)),
			slog.Int("records", len(results)-before),
			slog.Int("total", len(results)),
		)

		if len(results) >= quota || i == len(batches)-1 {
			break
		}
		if err := b.sleep(ctx, b.Config.BatchDelay); err != nil {
			return results, err
		}
	}
	return results, nil
}

// fetch retrieves and decodes one batch. Any fault yields no articles.
func (b *Batcher) fetch(ctx context.Context, ids []string) ([]Article, error) {
	params := url.Values{
		"db":      {database},
		"id":      {strings.Join(ids, ",")},
		"retmode": {"xml"},
	}
	body, err := b.Fetcher.Get(ctx, eutils.EFetch, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return ParseArticles(body)
}

// ParseArticles decodes an EFetch PubmedArticleSet document.
func ParseArticles(body []byte) ([]Article, error) {
	var set articleSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("%w: decoding efetch response: %w", ErrParse, err)
	}
	return set.Articles, nil
}

// safeExtract confines any failure in one article to that article.
func (b *Batcher) safeExtract(a Article) (rec *types.PaperRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = nil
			err = fmt.Errorf("%w: %v", ErrExtraction, r)
		}
	}()
	return b.extractor().Extract(a)
}

func (b *Batcher) extractor() *Extractor {
	if b.Extractor == nil {
		b.Extractor = NewExtractor(nil)
	}
	return b.Extractor
}

func (b *Batcher) sleep(ctx context.Context, d time.Duration) error {
	if b.Sleep != nil {
		return b.Sleep(ctx, d)
	}
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Partition splits ids into consecutive batches of at most size entries.
func Partition(ids []string, size int) [][]string {
	if size <= 0 || len(ids) == 0 {
		return nil
	}
	batches := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[start:end])
	}
	return batches
}
