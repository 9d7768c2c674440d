// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pmc

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/pmc-stream/internal/ratelimit"
)

func init() {
	// Use a tiny retry delay so tests finish quickly.
	RetryDelay = 1 * time.Millisecond
}

// testClient points the package at an httptest server and returns a cleanup
// that restores the real endpoint.
func testClient(t *testing.T, ts *httptest.Server) *Client {
	t.Helper()
	old := BaseURL
	BaseURL = ts.URL
	t.Cleanup(func() { BaseURL = old })

	return &Client{
		HTTP:    ts.Client(),
		Limiter: ratelimit.New(0),
	}
}

const sampleSearchJSON = `{
  "esearchresult": {
    "count": "2500",
    "idlist": ["8675309", "8675310", "8675311"]
  }
}`

func TestSearch_ReturnsIDsInOrder(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "pmc", r.URL.Query().Get("db"))
		assert.Equal(t, "frailty cytokines", r.URL.Query().Get("term"))
		assert.Equal(t, "50", r.URL.Query().Get("retmax"))
		assert.Equal(t, "json", r.URL.Query().Get("retmode"))
		w.Write([]byte(sampleSearchJSON))
	}))
	defer ts.Close()

	c := testClient(t, ts)
	ids, total := c.Search(context.Background(), "frailty cytokines", 50, io.Discard)

	assert.Equal(t, []string{"8675309", "8675310", "8675311"}, ids)
	assert.Equal(t, 2500, total)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSearch_SendsAPIKey(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sekrit", r.URL.Query().Get("api_key"))
		w.Write([]byte(sampleSearchJSON))
	}))
	defer ts.Close()

	c := testClient(t, ts)
	c.APIKey = "sekrit"
	c.Search(context.Background(), "aging", 10, io.Discard)
}

func TestSearch_RetriesThenSucceeds(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(sampleSearchJSON))
	}))
	defer ts.Close()

	c := testClient(t, ts)
	ids, total := c.Search(context.Background(), "aging", 10, io.Discard)

	assert.Len(t, ids, 3)
	assert.Equal(t, 2500, total)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestSearch_ExhaustionDegradesToEmpty(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := testClient(t, ts)
	ids, total := c.Search(context.Background(), "aging", 10, io.Discard)

	assert.Empty(t, ids)
	assert.Zero(t, total)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSearch_MalformedBodyDegradesToEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("this is not json"))
	}))
	defer ts.Close()

	c := testClient(t, ts)
	ids, total := c.Search(context.Background(), "aging", 10, io.Discard)

	assert.Empty(t, ids)
	assert.Zero(t, total)
}

func TestSearch_UnparsableCountFallsBackToListLength(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"esearchresult": {"count": "", "idlist": ["1", "2"]}}`))
	}))
	defer ts.Close()

	c := testClient(t, ts)
	ids, total := c.Search(context.Background(), "aging", 10, io.Discard)

	assert.Len(t, ids, 2)
	assert.Equal(t, 2, total)
}
