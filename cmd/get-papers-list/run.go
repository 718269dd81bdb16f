// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/get-papers-list/internal/eutils"
	"github.com/pdiddy/get-papers-list/internal/metrics"
	"github.com/pdiddy/get-papers-list/internal/pipeline"
	"github.com/pdiddy/get-papers-list/internal/report"
	"github.com/pdiddy/get-papers-list/internal/secrets"
	"github.com/pdiddy/get-papers-list/pkg/types"
)

func run(cmd *cobra.Command, v *viper.Viper, query string) error {
	stderr := cmd.ErrOrStderr()
	logger := newLogger(v.GetBool(keyDebug), stderr)

	out := types.OutputConfig{
		File:        v.GetString(keyFile),
		Format:      types.OutputFormat(v.GetString(keyFormat)),
		MetricsFile: v.GetString(keyMetricsFile),
	}
	// Reject an unusable format before any request is made.
	if _, err := report.Format(out.File, out.Format); err != nil {
		return err
	}

	creds, err := secrets.Resolve(secrets.Credentials{
		APIKey: v.GetString(keyAPIKey),
		Email:  v.GetString(keyEmail),
	}, v.GetString(keySecretsDir), v.GetString(keyEnvFile), stderr)
	if err != nil {
		return err
	}

	cfg := searchConfig(v)
	cfg.Email = creds.Email

	criteria := types.SearchCriteria{
		Query:  query,
		Quota:  types.ClampQuota(v.GetInt(keyMax)),
		APIKey: creds.APIKey,
	}

	m := metrics.New()
	client := eutils.NewClient(cfg, creds.APIKey, logger, m)
	if base := v.GetString(keyBaseURL); base != "" {
		client.BaseURL = base
	}

	p := pipeline.New(client, cfg, logger, m)
	results, runErr := p.Run(cmd.Context(), criteria)
	if runErr != nil && results == nil {
		return runErr
	}

	if err := report.Render(out, results, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	if out.File != "" {
		fmt.Fprintf(stderr, "Wrote %d paper(s) to %s\n", len(results), out.File)
	}

	if out.MetricsFile != "" {
		if err := m.WriteTextfile(out.MetricsFile); err != nil {
			logger.Warn("writing metrics failed", slog.String("path", out.MetricsFile), slog.Any("error", err))
		}
	}

	if runErr != nil {
		return fmt.Errorf("run interrupted after %d paper(s): %w", len(results), runErr)
	}
	return nil
}

// searchConfig starts from the stock settings and applies the configured
// overrides. Zero values keep the defaults.
func searchConfig(v *viper.Viper) types.SearchConfig {
	cfg := types.DefaultSearchConfig()
	if n := v.GetInt(keyPageSize); n != 0 {
		cfg.PageSize = n
	}
	if n := v.GetInt(keyOverfetch); n != 0 {
		cfg.OverfetchFactor = n
	}
	if v.IsSet(keyBatchDelay) {
		cfg.BatchDelay = v.GetDuration(keyBatchDelay)
	}
	if d := v.GetDuration(keyTimeout); d != 0 {
		cfg.Timeout = d
	}
	return cfg
}

// newLogger writes human-readable logs to a terminal and JSON otherwise.
// Without debug only warnings and errors are shown, so the console report
// stays readable.
func newLogger(debug bool, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if isTerminal(w) {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
