// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package download orchestrates a session: one search, then a fan-out of
// fetches across a bounded worker pool (or a sequential loop), with
// per-identifier failure isolation and exact outcome accounting.
package download

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/pmc-stream/internal/manifest"
	"github.com/pdiddy/pmc-stream/internal/pmc"
	"github.com/pdiddy/pmc-stream/pkg/types"
)

const defaultWorkers = 5

var slugPattern = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Slug returns a filesystem-safe directory name for a search term: runs of
// non-alphanumeric characters collapse to a single underscore.
func Slug(term string) string {
	s := strings.Trim(slugPattern.ReplaceAllString(strings.TrimSpace(term), "_"), "_")
	if s == "" {
		return "keyword"
	}
	return s
}

// fetchResult carries one worker's outcome back to the aggregator.
type fetchResult struct {
	id      string
	outcome types.Outcome
	article *types.Article
}

// Run searches PMC for keyword and downloads up to cfg.MaxResults articles
// into cfg.OutputDir/<slug>. An empty search result returns zero-valued
// stats, not an error. Individual fetch failures are counted and never abort
// the batch. When store is non-nil every completed identifier is recorded in
// the manifest. The returned counters satisfy
// requested == successful + skipped + unavailable + errors.
func Run(ctx context.Context, client *pmc.Client, keyword string, cfg types.DownloadConfig, store *manifest.Store, w io.Writer) types.DownloadStats {
	start := time.Now()

	ids, totalFound := client.Search(ctx, keyword, cfg.MaxResults, w)
	if len(ids) == 0 {
		fmt.Fprintf(w, "no results found for %q\n", keyword)
		return types.DownloadStats{
			Keyword:    keyword,
			TotalFound: totalFound,
			Duration:   time.Since(start),
			OutputDir:  cfg.OutputDir,
		}
	}

	outDir := filepath.Join(cfg.OutputDir, Slug(keyword))
	fmt.Fprintf(w, "\nfound %d PMC IDs for %q (total PMC results: %d)\noutput directory: %s\n\n",
		len(ids), keyword, totalFound, outDir)

	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	stats := types.DownloadStats{
		Keyword:    keyword,
		TotalFound: totalFound,
		Requested:  len(ids),
		OutputDir:  outDir,
	}

	if !cfg.Sequential && workers > 1 && len(ids) > 1 {
		runConcurrent(ctx, client, ids, outDir, cfg, workers, &stats, store, keyword, w)
	} else {
		runSequential(ctx, client, ids, outDir, cfg, &stats, store, keyword, w)
	}

	stats.Failed = stats.Unavailable + stats.Errors
	stats.Duration = time.Since(start)

	fmt.Fprintln(w, stats.String())
	if stats.Unavailable > 0 {
		fmt.Fprintf(w, "%d articles were not available in PMC full text\n", stats.Unavailable)
	}
	if stats.Errors > 0 {
		fmt.Fprintf(w, "%d articles failed due to errors\n", stats.Errors)
	}
	return stats
}

// runConcurrent fans the identifiers out over a bounded worker pool. The
// aggregating goroutine is the sole owner of the counters; workers only send
// results over the channel, so no counter is mutated across goroutines.
func runConcurrent(ctx context.Context, client *pmc.Client, ids []string, outDir string, cfg types.DownloadConfig, workers int, stats *types.DownloadStats, store *manifest.Store, keyword string, w io.Writer) {
	fmt.Fprintf(w, "using concurrent downloads with %d workers\n", workers)

	idCh := make(chan string)
	results := make(chan fetchResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range idCh {
				outcome, article := fetchOne(ctx, client, id, outDir, cfg, w)
				results <- fetchResult{id: id, outcome: outcome, article: article}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	go func() {
		for _, id := range ids {
			idCh <- id
		}
		close(idCh)
	}()

	done := 0
	for r := range results {
		done++
		tally(stats, r, store, keyword)
		if done%10 == 0 || done == len(ids) {
			fmt.Fprintf(w, "progress: %d/%d processed (OK:%d | FAIL:%d | SKIP:%d)\n",
				done, len(ids), stats.Successful, stats.Unavailable+stats.Errors, stats.Skipped)
		}
	}
}

// runSequential fetches in identifier order with the same per-item isolation.
func runSequential(ctx context.Context, client *pmc.Client, ids []string, outDir string, cfg types.DownloadConfig, stats *types.DownloadStats, store *manifest.Store, keyword string, w io.Writer) {
	fmt.Fprintln(w, "using sequential downloads")

	for i, id := range ids {
		outcome, article := fetchOne(ctx, client, id, outDir, cfg, w)
		tally(stats, fetchResult{id: id, outcome: outcome, article: article}, store, keyword)
		if (i+1)%5 == 0 || i+1 == len(ids) {
			fmt.Fprintf(w, "progress: %d/%d processed\n", i+1, len(ids))
		}
	}
}

// fetchOne wraps one fetch so that nothing escaping a single identifier can
// abort the batch: a panic is counted as an error outcome.
func fetchOne(ctx context.Context, client *pmc.Client, id, outDir string, cfg types.DownloadConfig, w io.Writer) (outcome types.Outcome, article *types.Article) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(w, "error: unexpected failure fetching %s: %v\n", id, r)
			outcome = types.OutcomeError
			article = nil
		}
	}()
	return client.Fetch(ctx, id, outDir, cfg.Format, cfg.IncludeText, w)
}

// tally counts one result and records it in the manifest. Every result
// increments exactly one counter.
func tally(stats *types.DownloadStats, r fetchResult, store *manifest.Store, keyword string) {
	switch r.outcome {
	case types.OutcomeSuccess:
		stats.Successful++
	case types.OutcomeExists:
		stats.Skipped++
	case types.OutcomeUnavailable:
		stats.Unavailable++
	default:
		stats.Errors++
	}

	if store == nil {
		return
	}
	_, display := pmc.NormalizeID(r.id)
	entry := manifest.Entry{
		PMCID:   display,
		Keyword: keyword,
		Outcome: r.outcome,
	}
	if r.outcome.OK() {
		entry.Path = filepath.Join(stats.OutputDir, display+".json")
	}
	if r.article != nil {
		entry.Title = r.article.Metadata.Title
		entry.Journal = r.article.Metadata.Journal
		entry.Year = r.article.Metadata.Year
	}
	// A manifest write failure must not fail the batch; the record on
	// disk is the source of truth.
	_ = store.Record(entry)
}
