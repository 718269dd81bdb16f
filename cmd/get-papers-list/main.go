// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the get-papers-list CLI. It searches
// PubMed for a query and reports the papers that have at least one author
// affiliated with a pharmaceutical or biotech company.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	envPrefix  = "GET_PAPERS"
	configName = "get-papers-list"
)

// Configuration keys shared by flags, the config file and the environment.
const (
	keyDebug       = "debug"
	keyFile        = "file"
	keyMax         = "max"
	keyAPIKey      = "api_key"
	keyFormat      = "format"
	keyPageSize    = "page_size"
	keyOverfetch   = "overfetch"
	keyBatchDelay  = "batch_delay"
	keyTimeout     = "timeout"
	keyEmail       = "email"
	keyMetricsFile = "metrics_file"
	keyBaseURL     = "base_url"
	keySecretsDir  = "secrets_dir"
	keyEnvFile     = "env_file"
)

// newRootCmd builds the command tree around its own viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "get-papers-list [query]",
		Short: "List PubMed papers with pharmaceutical or biotech company authors",
		Long: `get-papers-list searches PubMed for a query, fetches the matching articles,
and keeps those with at least one author affiliated with a commercial
organization. Results are printed to the console or written to a file
(CSV by default; JSON, YAML or SQLite by extension or --format).

The query accepts full PubMed syntax, e.g.
  get-papers-list "cancer immunotherapy[Title] AND 2023[dp]" -f results.csv`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, args[0])
		},
	}

	flags := root.Flags()
	flags.BoolP("debug", "d", false, "print debug information during execution")
	flags.StringP("file", "f", "", "write results to this file instead of the console")
	flags.IntP("max", "m", types.DefaultQuota, "maximum number of papers to report")
	flags.StringP("api-key", "k", "", "NCBI API key (default: .secrets/ncbi-api-key or NCBI_API_KEY in .env)")
	flags.String("format", "", "output format: console, csv, json, yaml or sqlite (default: from file extension)")
	flags.Int("page-size", types.DefaultPageSize, "identifiers per search page and per fetch batch")
	flags.Int("overfetch", types.DefaultOverfetchFactor, "identifiers collected per requested paper")
	flags.Duration("batch-delay", types.DefaultBatchDelay, "pause between fetch batches")
	flags.Duration("timeout", types.DefaultTimeout, "HTTP request timeout")
	flags.String("email", "", "contact email sent to NCBI with each request")
	flags.String("metrics-file", "", "write run metrics in Prometheus text format to this file")
	flags.String("base-url", "", "E-utilities base URL")
	_ = flags.MarkHidden("base-url")

	root.PersistentFlags().String("config", "", "config file (default: ./get-papers-list.yaml or ~/.config/get-papers-list/get-papers-list.yaml)")

	bindings := map[string]string{
		keyDebug:       "debug",
		keyFile:        "file",
		keyMax:         "max",
		keyAPIKey:      "api-key",
		keyFormat:      "format",
		keyPageSize:    "page-size",
		keyOverfetch:   "overfetch",
		keyBatchDelay:  "batch-delay",
		keyTimeout:     "timeout",
		keyEmail:       "email",
		keyMetricsFile: "metrics-file",
		keyBaseURL:     "base-url",
	}
	for key, flag := range bindings {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}
	v.SetDefault(keySecretsDir, ".secrets")
	v.SetDefault(keyEnvFile, ".env")

	root.AddCommand(newVersionCmd())
	return root
}

func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
