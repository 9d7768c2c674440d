// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest keeps a SQLite ledger of per-article download outcomes.
// The download coordinator records every completed identifier; the status
// command reads the ledger back without rescanning the archive.
package manifest

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pmc-stream/pkg/types"
)

const dbFile = "manifest.db"

// Store manages the download manifest database.
type Store struct {
	db *sql.DB
}

// Entry is one recorded download outcome.
type Entry struct {
	PMCID     string
	Keyword   string
	Outcome   types.Outcome
	Title     string
	Journal   string
	Year      string
	Path      string
	FetchedAt time.Time
}

// Open opens or creates the manifest database at baseDir/manifest.db,
// creating the schema if it does not exist.
func Open(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating manifest directory: %w", err)
	}

	dbPath := filepath.Join(baseDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening manifest database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating manifest schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS articles (
			pmcid TEXT PRIMARY KEY,
			keyword TEXT NOT NULL,
			outcome TEXT NOT NULL,
			title TEXT,
			journal TEXT,
			year TEXT,
			path TEXT,
			fetched_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_keyword ON articles(keyword)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_outcome ON articles(outcome)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record upserts one outcome. Re-running a session overwrites the previous
// row for the identifier, so the ledger reflects the latest state.
func (s *Store) Record(e Entry) error {
	if e.FetchedAt.IsZero() {
		e.FetchedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO articles (pmcid, keyword, outcome, title, journal, year, path, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(pmcid) DO UPDATE SET
			keyword=excluded.keyword,
			outcome=excluded.outcome,
			title=excluded.title,
			journal=excluded.journal,
			year=excluded.year,
			path=excluded.path,
			fetched_at=excluded.fetched_at`,
		e.PMCID, e.Keyword, string(e.Outcome), e.Title, e.Journal, e.Year, e.Path,
		e.FetchedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", e.PMCID, err)
	}
	return nil
}

// List returns entries for a keyword, or all entries when keyword is empty,
// newest first.
func (s *Store) List(keyword string) ([]Entry, error) {
	query := `SELECT pmcid, keyword, outcome, title, journal, year, path, fetched_at
		FROM articles`
	args := []any{}
	if keyword != "" {
		query += ` WHERE keyword = ?`
		args = append(args, keyword)
	}
	query += ` ORDER BY fetched_at DESC, pmcid`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying manifest: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var outcome, fetchedAt string
		if err := rows.Scan(&e.PMCID, &e.Keyword, &outcome, &e.Title, &e.Journal,
			&e.Year, &e.Path, &fetchedAt); err != nil {
			return nil, fmt.Errorf("scanning manifest row: %w", err)
		}
		e.Outcome = types.Outcome(outcome)
		if t, parseErr := time.Parse(time.RFC3339, fetchedAt); parseErr == nil {
			e.FetchedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Summary returns per-outcome counts for a keyword, or for the whole ledger
// when keyword is empty.
func (s *Store) Summary(keyword string) (map[types.Outcome]int, error) {
	query := `SELECT outcome, COUNT(*) FROM articles`
	args := []any{}
	if keyword != "" {
		query += ` WHERE keyword = ?`
		args = append(args, keyword)
	}
	query += ` GROUP BY outcome`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying manifest summary: %w", err)
	}
	defer rows.Close()

	counts := make(map[types.Outcome]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("scanning summary row: %w", err)
		}
		counts[types.Outcome(outcome)] = n
	}
	return counts, rows.Err()
}
