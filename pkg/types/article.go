// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pmc-stream pipeline:
// article metadata, persisted records, output formats, fetch outcomes, stage
// configuration, and download statistics.
package types

// PubDate is the nested publication-date structure mirrored alongside the
// flat year/month/day fields for compatibility with external tooling that
// expects a pub_date object.
type PubDate struct {
	Year  string `json:"year" yaml:"year"`
	Month string `json:"month,omitempty" yaml:"month,omitempty"`
	Day   string `json:"day,omitempty" yaml:"day,omitempty"`
}

// Metadata holds the fields extracted from a PMC article's JATS front matter.
// Every field is optional: absent values are omitted from serialized output
// rather than written as empty placeholders.
type Metadata struct {
	// Title is the article title with markup stripped.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Journal is the generic journal name alias: the structured journal
	// title when present, else the ISO abbreviation, else the NLM title
	// abbreviation.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// JournalTitle is the structured journal-title-group name.
	JournalTitle string `json:"journal_title,omitempty" yaml:"journal_title,omitempty"`

	// JournalNLMTA is the NLM title abbreviation (journal-id-type="nlm-ta").
	JournalNLMTA string `json:"journal_nlm_ta,omitempty" yaml:"journal_nlm_ta,omitempty"`

	// JournalISOAbbrev is the ISO abbreviation (journal-id-type="iso-abbrev").
	JournalISOAbbrev string `json:"journal_iso_abbrev,omitempty" yaml:"journal_iso_abbrev,omitempty"`

	// PMID, PMCID, and DOI are the typed article identifiers. The first
	// occurrence of each type in the article-id list wins.
	PMID  string `json:"pmid,omitempty" yaml:"pmid,omitempty"`
	PMCID string `json:"pmcid,omitempty" yaml:"pmcid,omitempty"`
	DOI   string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Year, Month, and Day are the flat publication date fields. The
	// electronic publication date is preferred; the collection date
	// supplies a year-only fallback.
	Year  string `json:"year,omitempty" yaml:"year,omitempty"`
	Month string `json:"month,omitempty" yaml:"month,omitempty"`
	Day   string `json:"day,omitempty" yaml:"day,omitempty"`

	// PubDate mirrors Year/Month/Day as a nested structure.
	PubDate *PubDate `json:"pub_date,omitempty" yaml:"pub_date,omitempty"`

	// Authors lists display names ("Surname Given-Names") in document order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Abstract is the concatenated abstract text.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Keywords lists the trimmed kwd-group entries.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// IsEmpty reports whether no field was extracted.
func (m Metadata) IsEmpty() bool {
	return m.Title == "" && m.Journal == "" && m.PMID == "" && m.PMCID == "" &&
		m.DOI == "" && m.Year == "" && len(m.Authors) == 0 &&
		m.Abstract == "" && len(m.Keywords) == 0
}

// Article is the persisted unit: one self-contained JSON file per fetched
// article. PMCID carries the display form (with "PMC" prefix). XML and Text
// are optional depending on the requested output format; identifier, source,
// and timestamp are always present. Records are written once and never
// mutated; a re-fetch of an existing record is skipped.
type Article struct {
	// PMCID is the display-form identifier, e.g. "PMC8675309".
	PMCID string `json:"pmcid" yaml:"pmcid"`

	// Source identifies the archive the record came from (always "PMC").
	Source string `json:"source" yaml:"source"`

	// DownloadDate is the retrieval timestamp in RFC 3339 form.
	DownloadDate string `json:"download_date" yaml:"download_date"`

	// Metadata holds the extracted front-matter fields. It may be empty
	// for atypical documents; the raw XML or text still makes the record
	// useful.
	Metadata Metadata `json:"metadata" yaml:"metadata"`

	// XML is the raw article markup, present for FormatXML and FormatBoth.
	XML string `json:"xml,omitempty" yaml:"xml,omitempty"`

	// Text is the derived plain text, present for FormatText and
	// FormatBoth unless text embedding is disabled.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}
