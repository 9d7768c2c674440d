// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pmc

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// ResultFile is the on-disk representation of a search and its identifier
// list. A search can be saved and its IDs fed to a later download without
// re-querying the archive.
type ResultFile struct {
	Query   ResultQuery   `yaml:"query"`
	IDs     []string      `yaml:"ids"`
	Summary ResultSummary `yaml:"summary"`
}

// ResultQuery stores the search parameters in a serializable form.
type ResultQuery struct {
	Term       string `yaml:"term"`
	MaxResults int    `yaml:"max_results"`
}

// ResultSummary stores result statistics and a timestamp.
type ResultSummary struct {
	TotalFound int       `yaml:"total_found"`
	Returned   int       `yaml:"returned"`
	Timestamp  time.Time `yaml:"timestamp"`
}

// WriteResultFile saves a search's parameters and identifiers to a YAML file.
func WriteResultFile(path, term string, maxResults int, ids []string, total int) error {
	rf := ResultFile{
		Query: ResultQuery{Term: term, MaxResults: maxResults},
		IDs:   ids,
		Summary: ResultSummary{
			TotalFound: total,
			Returned:   len(ids),
			Timestamp:  time.Now().UTC(),
		},
	}

	data, err := yaml.Marshal(rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing result file: %w", err)
	}
	return nil
}

// ReadResultFile loads a previously saved search from path.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return &rf, nil
}
