// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pmc

import (
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// StripTags derives plain text from markup: every tag becomes a space,
// runs of whitespace collapse to a single space, and the ends are trimmed.
// Used both for the persisted "text" field and to flatten rich inline
// content (italics, links) inside extracted metadata fields.
func StripTags(markup string) string {
	text := tagPattern.ReplaceAllString(markup, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
