// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Format selects which content fields a persisted Article carries.
type Format string

const (
	// FormatXML embeds only the raw article markup.
	FormatXML Format = "xml"

	// FormatText embeds only the derived plain text.
	FormatText Format = "text"

	// FormatBoth embeds the raw markup and the derived plain text.
	FormatBoth Format = "both"
)

// ParseFormat resolves a format string to its canonical variant. The legacy
// aliases "json" and "txt" map to FormatText. Unknown values are an error.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "xml":
		return FormatXML, nil
	case "text", "json", "txt":
		return FormatText, nil
	case "both":
		return FormatBoth, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected xml, text, or both)", s)
	}
}

// IncludesXML reports whether the format embeds raw markup.
func (f Format) IncludesXML() bool { return f == FormatXML || f == FormatBoth }

// IncludesText reports whether the format embeds derived plain text.
func (f Format) IncludesText() bool { return f == FormatText || f == FormatBoth }

// Outcome classifies the result of fetching one identifier.
type Outcome string

const (
	// OutcomeSuccess means the article was fetched and persisted.
	OutcomeSuccess Outcome = "success"

	// OutcomeExists means a record for the identifier already existed and
	// no network call was made.
	OutcomeExists Outcome = "exists"

	// OutcomeUnavailable means the archive definitively reported no
	// retrievable full text for the identifier.
	OutcomeUnavailable Outcome = "unavailable"

	// OutcomeError covers exhausted retries, malformed responses, and
	// local write failures.
	OutcomeError Outcome = "error"
)

// OK reports whether the outcome leaves a usable record on disk.
func (o Outcome) OK() bool { return o == OutcomeSuccess || o == OutcomeExists }
