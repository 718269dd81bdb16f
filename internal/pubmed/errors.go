// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"errors"
	"log/slog"

	"github.com/pdiddy/get-papers-list/internal/metrics"
)

// Fault kinds absorbed by the pipeline. Callers match them with errors.Is.
var (
	// ErrTransport wraps network failures and non-200 responses.
	ErrTransport = errors.New("transport fault")
	// ErrParse wraps malformed XML and E-utilities error documents.
	ErrParse = errors.New("parse fault")
	// ErrExtraction wraps unexpected structure inside one article.
	ErrExtraction = errors.New("extraction fault")
)

// faultKind returns the metric label for err.
func faultKind(err error) string {
	switch {
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrExtraction):
		return "extraction"
	default:
		return "other"
	}
}

// reportFault logs and counts a fault that the pipeline absorbs.
func reportFault(logger *slog.Logger, m *metrics.Metrics, op string, err error, attrs ...any) {
	kind := faultKind(err)
	m.IncFault(kind, op)
	args := append([]any{
		slog.String("op", op),
		slog.String("kind", kind),
		slog.Any("error", err),
	}, attrs...)
	logger.Warn("fault absorbed", args...)
}
