// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pmc

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/pmc-stream/internal/httputil"
	"github.com/pdiddy/pmc-stream/pkg/types"
)

// fetchEnvelope classifies the efetch response root. When an identifier has
// no retrievable full text, PMC answers with <pmc-articleset><error .../>
// instead of an article.
type fetchEnvelope struct {
	XMLName xml.Name
	Error   *struct {
		Text string `xml:",chardata"`
	} `xml:"error"`
}

// NormalizeID splits an identifier into the numeric form efetch expects and
// the prefixed display form used for filenames and reporting. esearch on
// db=pmc returns bare numeric IDs; user input may carry the "PMC" prefix.
func NormalizeID(id string) (numeric, display string) {
	numeric = strings.TrimPrefix(strings.TrimSpace(id), "PMC")
	return numeric, "PMC" + numeric
}

// Fetch retrieves one article and persists it as <destDir>/<display>.json.
// The returned Article is non-nil only for OutcomeSuccess.
//
// Per-identifier state machine: an existing record short-circuits to
// OutcomeExists with no network call. Otherwise up to Retries attempts are
// made, each preceded by Limiter.Wait. Non-200 statuses (429 included) and
// unparsable bodies retry after a fixed delay and surface as OutcomeError
// once the budget is spent. The archive's error wrapper is a definitive
// negative: OutcomeUnavailable, never retried. A failure writing the record
// is local, so it is not retried either.
func (c *Client) Fetch(ctx context.Context, id, destDir string, format types.Format, includeText bool, w io.Writer) (types.Outcome, *types.Article) {
	numeric, display := NormalizeID(id)

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		fmt.Fprintf(w, "error: creating %s: %v\n", destDir, err)
		return types.OutcomeError, nil
	}

	recordPath := filepath.Join(destDir, display+".json")
	if _, err := os.Stat(recordPath); err == nil {
		return types.OutcomeExists, nil
	}

	params := url.Values{
		"db":      {"pmc"},
		"id":      {numeric},
		"rettype": {"full"},
		"retmode": {"xml"},
	}
	if c.APIKey != "" {
		params.Set("api_key", c.APIKey)
	}
	fetchURL := BaseURL + "/efetch.fcgi?" + params.Encode()

	policy := httputil.Policy{
		MaxAttempts: c.retries(),
		Backoff:     httputil.FixedBackoff(RetryDelay),
	}

	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		body, class, err := c.fetchOnce(ctx, fetchURL)
		if err != nil {
			fmt.Fprintf(w, "warning: fetch attempt %d/%d for %s failed: %v\n",
				attempt+1, policy.MaxAttempts, display, err)
			if !policy.ShouldRetry(class, attempt) {
				return types.OutcomeError, nil
			}
			if sleepErr := policy.Sleep(ctx, attempt); sleepErr != nil {
				return types.OutcomeError, nil
			}
			continue
		}

		var env fetchEnvelope
		if err := xml.Unmarshal(body, &env); err != nil {
			fmt.Fprintf(w, "warning: %s returned malformed XML\n", display)
			if !policy.ShouldRetry(httputil.ClassMalformed, attempt) {
				return types.OutcomeError, nil
			}
			if sleepErr := policy.Sleep(ctx, attempt); sleepErr != nil {
				return types.OutcomeError, nil
			}
			continue
		}
		if env.XMLName.Local == "pmc-articleset" && env.Error != nil {
			fmt.Fprintf(w, "%s not available in PMC: %s\n",
				display, strings.TrimSpace(env.Error.Text))
			return types.OutcomeUnavailable, nil
		}

		article := buildArticle(display, body, format, includeText)
		if article.Metadata.IsEmpty() {
			fmt.Fprintf(w, "warning: %s: extracted metadata is empty\n", display)
		}

		if err := writeRecord(recordPath, article); err != nil {
			fmt.Fprintf(w, "error: writing %s: %v\n", filepath.Base(recordPath), err)
			return types.OutcomeError, nil
		}

		fmt.Fprintf(w, "[OK] saved %s\n", filepath.Base(recordPath))
		return types.OutcomeSuccess, article
	}

	return types.OutcomeError, nil
}

// fetchOnce performs a single rate-limited efetch attempt and returns the
// response body, classifying any failure for the retry policy.
func (c *Client) fetchOnce(ctx context.Context, fetchURL string) ([]byte, httputil.FailureClass, error) {
	c.Limiter.Wait()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, httputil.ClassTransient, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, httputil.ClassTransient, fmt.Errorf("efetch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, httputil.ClassTransient, fmt.Errorf("rate limited (HTTP 429)")
		}
		return nil, httputil.ClassTransient, fmt.Errorf("efetch returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, httputil.ClassTransient, fmt.Errorf("reading response: %w", err)
	}
	return body, httputil.ClassTransient, nil
}

// buildArticle assembles the persisted record for one fetched document.
func buildArticle(display string, body []byte, format types.Format, includeText bool) *types.Article {
	article := &types.Article{
		PMCID:        display,
		Source:       "PMC",
		DownloadDate: time.Now().UTC().Format(time.RFC3339),
		Metadata:     ExtractMetadata(body),
	}
	if format.IncludesXML() {
		article.XML = string(body)
	}
	if format.IncludesText() && includeText {
		article.Text = StripTags(string(body))
	}
	return article
}

// writeRecord persists the record in a single write so no partially written
// file is ever observed as an existing record.
func writeRecord(path string, article *types.Article) error {
	data, err := json.MarshalIndent(article, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
