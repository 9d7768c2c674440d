// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pmc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/pmc-stream/internal/httputil"
)

// esearch JSON structures.
type esearchResponse struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
}

// Search queries PMC for articles matching term and returns up to maxResults
// identifiers in relevance order, plus the archive's total match count
// (which may exceed the returned list). Searching the PMC database directly
// guarantees every hit has full text available.
//
// Transport errors, non-2xx statuses, and unparsable bodies are retried with
// linearly increasing backoff. After the attempt budget is spent, Search
// degrades to an empty list and zero total so callers report "no results"
// uniformly instead of failing the session.
func (c *Client) Search(ctx context.Context, term string, maxResults int, w io.Writer) ([]string, int) {
	params := url.Values{
		"db":       {"pmc"},
		"term":     {term},
		"retmax":   {strconv.Itoa(maxResults)},
		"retstart": {"0"},
		"retmode":  {"json"},
	}
	if c.APIKey != "" {
		params.Set("api_key", c.APIKey)
	}
	searchURL := BaseURL + "/esearch.fcgi?" + params.Encode()

	policy := httputil.Policy{
		MaxAttempts: c.retries(),
		Backoff:     httputil.LinearBackoff(RetryDelay),
	}

	fmt.Fprintf(w, "searching PMC for full-text articles: %s (target: %d)\n", term, maxResults)

	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		ids, total, err := c.searchOnce(ctx, searchURL)
		if err == nil {
			fmt.Fprintf(w, "found %d PMC IDs (total PMC results: %d)\n", len(ids), total)
			return ids, total
		}

		fmt.Fprintf(w, "warning: search attempt %d/%d failed: %v\n", attempt+1, policy.MaxAttempts, err)
		if !policy.ShouldRetry(httputil.ClassTransient, attempt) {
			break
		}
		if err := policy.Sleep(ctx, attempt); err != nil {
			break
		}
	}

	fmt.Fprintf(w, "all search attempts failed for: %s\n", term)
	return nil, 0
}

func (c *Client) searchOnce(ctx context.Context, searchURL string) ([]string, int, error) {
	c.Limiter.Wait()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("esearch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("esearch returned HTTP %d", resp.StatusCode)
	}

	var sr esearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, 0, fmt.Errorf("parsing esearch response: %w", err)
	}

	total, err := strconv.Atoi(sr.Result.Count)
	if err != nil {
		total = len(sr.Result.IDList)
	}
	return sr.Result.IDList, total, nil
}
