// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages: construction
// of the session client reused by all workers, and the retry decision table
// the archive client consults per failure class.
package httputil

import (
	"fmt"
	"net/http"
	"time"
)

// DefaultUserAgent is the product token sent when no custom User-Agent is
// configured.
const DefaultUserAgent = "pmc-stream/0.1"

// BuildUserAgent returns the User-Agent header value. A custom string wins
// outright; otherwise the default product token is used, with the contact
// email appended per NCBI guidelines when one is known.
func BuildUserAgent(custom, email string) string {
	if custom != "" {
		return custom
	}
	if email != "" {
		return fmt.Sprintf("%s (mailto:%s)", DefaultUserAgent, email)
	}
	return DefaultUserAgent
}

// userAgentTransport stamps the User-Agent header on every outbound request
// so callers sharing the client never have to set it per request.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}
	return t.base.RoundTrip(req)
}

// NewClient returns the HTTP client shared by all workers in a session. The
// transport sets the User-Agent header on each request; the timeout bounds
// each individual request, not the batch.
func NewClient(timeout time.Duration, userAgent string) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &userAgentTransport{
			base:      http.DefaultTransport,
			userAgent: userAgent,
		},
	}
}
