// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
	"time"
)

// DownloadStats summarizes one download session. The counters satisfy
// Requested == Successful + Skipped + Unavailable + Errors and
// Failed == Unavailable + Errors.
type DownloadStats struct {
	// Keyword is the search term the session ran with.
	Keyword string `json:"keyword" yaml:"keyword"`

	// TotalFound is the archive's own match count for the keyword, which
	// may exceed Requested when results were capped.
	TotalFound int `json:"total_found" yaml:"total_found"`

	// Requested is the number of identifiers the session processed.
	Requested int `json:"requested" yaml:"requested"`

	// Successful counts newly downloaded records.
	Successful int `json:"successful" yaml:"successful"`

	// Failed counts unavailable and errored identifiers together.
	Failed int `json:"failed" yaml:"failed"`

	// Skipped counts identifiers whose record already existed. Kept
	// separate from Successful, though both count as usable output.
	Skipped int `json:"skipped" yaml:"skipped"`

	// Unavailable counts identifiers the archive has no full text for.
	Unavailable int `json:"unavailable" yaml:"unavailable"`

	// Errors counts retry exhaustion, malformed responses, and local
	// write failures.
	Errors int `json:"errors" yaml:"errors"`

	// Duration is the elapsed session time.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// OutputDir is the directory the session wrote records to.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// SuccessRate returns the percentage of requested identifiers that ended
// with a usable record on disk. Skipped records count: they were downloaded
// by an earlier session and are just as available.
func (s DownloadStats) SuccessRate() float64 {
	if s.Requested == 0 {
		return 0
	}
	return float64(s.Successful+s.Skipped) / float64(s.Requested) * 100
}

// String renders the human-readable session summary.
func (s DownloadStats) String() string {
	rule := strings.Repeat("=", 60)
	return fmt.Sprintf(
		"\n%s\n"+
			"Download Summary\n"+
			"%s\n"+
			"Keyword:           %s\n"+
			"Total found:       %d\n"+
			"Requested:         %d\n"+
			"[OK] Successful:   %d\n"+
			"[FAIL] Failed:     %d\n"+
			"  - Unavailable:   %d\n"+
			"  - Errors:        %d\n"+
			"[SKIP] Skipped:    %d\n"+
			"Duration:          %.1fs\n"+
			"Output directory:  %s\n"+
			"%s",
		rule, rule,
		s.Keyword, s.TotalFound, s.Requested,
		s.Successful, s.Failed, s.Unavailable, s.Errors, s.Skipped,
		s.Duration.Seconds(), s.OutputDir, rule)
}
