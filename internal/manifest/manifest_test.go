// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pmc-stream/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := openTestStore(t)

	entries := []Entry{
		{PMCID: "PMC1", Keyword: "aging", Outcome: types.OutcomeSuccess, Title: "First", Journal: "Aging Cell", Year: "2020", Path: "aging/PMC1.json"},
		{PMCID: "PMC2", Keyword: "aging", Outcome: types.OutcomeUnavailable},
		{PMCID: "PMC3", Keyword: "frailty", Outcome: types.OutcomeSuccess},
	}
	for _, e := range entries {
		require.NoError(t, s.Record(e))
	}

	aging, err := s.List("aging")
	require.NoError(t, err)
	assert.Len(t, aging, 2)

	all, err := s.List("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	for _, e := range all {
		if e.PMCID == "PMC1" {
			assert.Equal(t, "First", e.Title)
			assert.Equal(t, "Aging Cell", e.Journal)
			assert.Equal(t, "2020", e.Year)
			assert.False(t, e.FetchedAt.IsZero())
		}
	}
}

func TestRecord_UpsertOverwrites(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Record(Entry{PMCID: "PMC1", Keyword: "aging", Outcome: types.OutcomeError}))
	require.NoError(t, s.Record(Entry{
		PMCID: "PMC1", Keyword: "aging", Outcome: types.OutcomeSuccess,
		Title: "Recovered", FetchedAt: time.Now().UTC(),
	}))

	all, err := s.List("aging")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, types.OutcomeSuccess, all[0].Outcome)
	assert.Equal(t, "Recovered", all[0].Title)
}

func TestSummary(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Record(Entry{PMCID: "PMC1", Keyword: "aging", Outcome: types.OutcomeSuccess}))
	require.NoError(t, s.Record(Entry{PMCID: "PMC2", Keyword: "aging", Outcome: types.OutcomeSuccess}))
	require.NoError(t, s.Record(Entry{PMCID: "PMC3", Keyword: "aging", Outcome: types.OutcomeExists}))
	require.NoError(t, s.Record(Entry{PMCID: "PMC4", Keyword: "other", Outcome: types.OutcomeError}))

	counts, err := s.Summary("aging")
	require.NoError(t, err)
	assert.Equal(t, 2, counts[types.OutcomeSuccess])
	assert.Equal(t, 1, counts[types.OutcomeExists])
	assert.Zero(t, counts[types.OutcomeError])

	all, err := s.Summary("")
	require.NoError(t, err)
	assert.Equal(t, 1, all[types.OutcomeError])
}
