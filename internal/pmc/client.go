// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pmc is the client for the NCBI E-utilities endpoints backing
// PubMed Central: esearch (term to identifier list) and efetch (identifier
// to full-text JATS article). One Client is shared by every worker in a
// session; the rate limiter it carries serializes all outbound requests.
package pmc

import (
	"net/http"
	"time"

	"github.com/pdiddy/pmc-stream/internal/ratelimit"
)

// BaseURL is the E-utilities endpoint root. Declared as a var so tests can
// substitute an httptest server.
var BaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// RetryDelay is the base delay between retry attempts. Tests override this
// to avoid real sleeps.
var RetryDelay = 2 * time.Second

const defaultRetries = 3

// Client talks to the archive. All fields are read-only after construction;
// the Limiter is the single shared mutation point between workers.
type Client struct {
	// HTTP is the session client shared across workers.
	HTTP *http.Client

	// Limiter paces every outbound request, including retries.
	Limiter *ratelimit.Limiter

	// APIKey is the optional NCBI API key appended to each request.
	APIKey string

	// Retries is the attempt budget per operation (default 3).
	Retries int
}

func (c *Client) retries() int {
	if c.Retries > 0 {
		return c.Retries
	}
	return defaultRetries
}
