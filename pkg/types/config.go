package types

import (
	"fmt"
	"math"
	"time"
)

// Defaults for the search and fetch stages.
const (
	DefaultPageSize        = 100
	DefaultOverfetchFactor = 5
	DefaultBatchDelay      = 500 * time.Millisecond
	DefaultTimeout         = 30 * time.Second
	DefaultUserAgent       = "get-papers-list/0.1"
	DefaultTool            = "get-papers-list"
)

// HTTPConfig holds shared HTTP settings used by the E-utilities client.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries bounds the retries on HTTP 429 (0 = default of 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// SearchConfig holds settings for identifier search and detail retrieval.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// PageSize is both the ESearch page size and the EFetch batch size (default 100).
	PageSize int `json:"page_size" yaml:"page_size"`

	// OverfetchFactor multiplies the quota to size the identifier pool (default 5).
	OverfetchFactor int `json:"overfetch_factor" yaml:"overfetch_factor"`

	// BatchDelay is the fixed pause between consecutive EFetch batches (default 500ms).
	BatchDelay time.Duration `json:"batch_delay" yaml:"batch_delay"`

	// Email and Tool identify the caller to NCBI as its usage policy asks.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
	Tool  string `json:"tool,omitempty" yaml:"tool,omitempty"`
}

// DefaultSearchConfig returns the stock settings.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		HTTPConfig: HTTPConfig{
			Timeout:   DefaultTimeout,
			UserAgent: DefaultUserAgent,
		},
		PageSize:        DefaultPageSize,
		OverfetchFactor: DefaultOverfetchFactor,
		BatchDelay:      DefaultBatchDelay,
		Tool:            DefaultTool,
	}
}

// PoolLimit returns the largest identifier pool collected for quota. The
// product saturates at math.MaxInt.
func (c SearchConfig) PoolLimit(quota int) int {
	if quota <= 0 || c.OverfetchFactor <= 0 {
		return 0
	}
	if quota > math.MaxInt/c.OverfetchFactor {
		return math.MaxInt
	}
	return quota * c.OverfetchFactor
}

// Validate ensures the configuration values are coherent.
func (c SearchConfig) Validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive")
	}
	if c.OverfetchFactor <= 0 {
		return fmt.Errorf("overfetch factor must be positive")
	}
	if c.BatchDelay < 0 {
		return fmt.Errorf("batch delay cannot be negative")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	return nil
}

// OutputFormat selects how the result set is rendered.
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatCSV     OutputFormat = "csv"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatSQLite  OutputFormat = "sqlite"
)

// OutputConfig holds settings for the report stage.
type OutputConfig struct {
	// File is the output path. Empty means print to the console.
	File string `json:"file" yaml:"file"`

	// Format overrides the format inferred from the file extension.
	Format OutputFormat `json:"format" yaml:"format"`

	// MetricsFile, when set, receives the run metrics in Prometheus text format.
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty"`
}
