// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network
// requests.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with every request,
	// including the NCBI contact address when one is configured
	// (e.g. "pmc-stream/0.1 (mailto:lab@example.org)").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults caps the number of identifiers returned (default 100).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// APIKey is an optional NCBI API key; its presence raises the
	// allowed request rate from 3/s to 10/s.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// DownloadConfig holds settings for a full search-and-download session.
type DownloadConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults caps the number of articles fetched (default 100).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Format selects the persisted record contents: xml, text, or both.
	Format Format `json:"format" yaml:"format"`

	// APIKey is the optional NCBI API key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Sequential disables the worker pool and fetches in identifier order.
	Sequential bool `json:"sequential" yaml:"sequential"`

	// Workers is the worker pool size for concurrent fetches (default 5).
	Workers int `json:"workers" yaml:"workers"`

	// IncludeText embeds the derived plain text in text/both records
	// (default true).
	IncludeText bool `json:"include_text" yaml:"include_text"`

	// OutputDir is the base directory for downloads; each session writes
	// into a keyword-slug subdirectory (default "publications").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// RateLimit is the minimum interval between HTTP requests. Zero
	// selects the API-key-based default: 100ms with a key, 340ms without.
	RateLimit time.Duration `json:"rate_limit" yaml:"rate_limit"`
}

// EffectiveRateLimit returns the configured interval, or the NCBI default
// derived from API key presence when none was set.
func (c DownloadConfig) EffectiveRateLimit() time.Duration {
	if c.RateLimit > 0 {
		return c.RateLimit
	}
	if c.APIKey != "" {
		return 100 * time.Millisecond // 10 requests/second with an API key
	}
	return 340 * time.Millisecond // 3 requests/second without
}
