// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pmc

import (
	"encoding/xml"
	"strings"

	"github.com/pdiddy/pmc-stream/pkg/types"
)

// JATS XML structures. Only the front-matter subset needed for metadata is
// modeled; richText fields capture inner markup so inline formatting can be
// flattened with StripTags.
type jatsArticleSet struct {
	XMLName xml.Name
	Article *jatsArticle `xml:"article"`
}

type jatsArticle struct {
	Front *jatsFront `xml:"front"`
}

type jatsFront struct {
	JournalMeta *jatsJournalMeta `xml:"journal-meta"`
	ArticleMeta *jatsArticleMeta `xml:"article-meta"`
}

type jatsJournalMeta struct {
	IDs        []jatsJournalID `xml:"journal-id"`
	TitleGroup *struct {
		Title *richText `xml:"journal-title"`
	} `xml:"journal-title-group"`
}

type jatsJournalID struct {
	Type  string `xml:"journal-id-type,attr"`
	Value string `xml:",chardata"`
}

type jatsArticleMeta struct {
	IDs        []jatsArticleID `xml:"article-id"`
	TitleGroup *struct {
		Title *richText `xml:"article-title"`
	} `xml:"title-group"`
	PubDates []jatsPubDate `xml:"pub-date"`
	Contribs []jatsContrib `xml:"contrib-group>contrib"`
	Abstract *richText     `xml:"abstract"`
	Keywords []richText    `xml:"kwd-group>kwd"`
}

type jatsArticleID struct {
	Type  string `xml:"pub-id-type,attr"`
	Value string `xml:",chardata"`
}

type jatsPubDate struct {
	Type  string `xml:"pub-type,attr"`
	Year  string `xml:"year"`
	Month string `xml:"month"`
	Day   string `xml:"day"`
}

type jatsContrib struct {
	Type string    `xml:"contrib-type,attr"`
	Name *jatsName `xml:"name"`
}

type jatsName struct {
	Initials   string `xml:"initials,attr"`
	Surname    string `xml:"surname"`
	GivenNames string `xml:"given-names"`
}

// richText captures an element's inner markup verbatim.
type richText struct {
	Inner string `xml:",innerxml"`
}

// text flattens the inner markup to plain text.
func (t *richText) text() string {
	if t == nil {
		return ""
	}
	return StripTags(t.Inner)
}

// ExtractMetadata parses a PMC JATS document and returns the front-matter
// fields it can find. It never fails: malformed input yields an empty
// record, and a document without front matter yields whatever was gathered
// before the gap. Partial records are valid; the caller still persists the
// raw markup and derived text.
func ExtractMetadata(doc []byte) types.Metadata {
	var m types.Metadata

	// The response root is either a pmc-articleset wrapping the article or
	// the article itself.
	var set jatsArticleSet
	if err := xml.Unmarshal(doc, &set); err != nil {
		return m
	}
	article := set.Article
	if set.XMLName.Local == "article" {
		var a jatsArticle
		if err := xml.Unmarshal(doc, &a); err != nil {
			return m
		}
		article = &a
	}
	if article == nil || article.Front == nil {
		return m
	}

	extractJournal(article.Front.JournalMeta, &m)

	am := article.Front.ArticleMeta
	if am == nil {
		return m
	}

	// Typed identifiers; first occurrence per type wins.
	for _, id := range am.IDs {
		value := strings.TrimSpace(id.Value)
		switch id.Type {
		case "pmid":
			if m.PMID == "" {
				m.PMID = value
			}
		case "pmcid":
			if m.PMCID == "" {
				m.PMCID = value
			}
		case "doi":
			if m.DOI == "" {
				m.DOI = value
			}
		}
	}

	if am.TitleGroup != nil {
		m.Title = am.TitleGroup.Title.text()
	}

	extractPubDate(am.PubDates, &m)

	for _, contrib := range am.Contribs {
		if contrib.Type != "author" || contrib.Name == nil {
			continue
		}
		if name := displayName(contrib.Name); name != "" {
			m.Authors = append(m.Authors, name)
		}
	}

	m.Abstract = am.Abstract.text()

	for _, kwd := range am.Keywords {
		if text := kwd.text(); text != "" {
			m.Keywords = append(m.Keywords, text)
		}
	}

	return m
}

// extractJournal resolves the journal name variants. The generic alias
// prefers the structured title, then the ISO abbreviation, then the NLM
// title abbreviation.
func extractJournal(jm *jatsJournalMeta, m *types.Metadata) {
	if jm == nil {
		return
	}

	if jm.TitleGroup != nil {
		m.JournalTitle = jm.TitleGroup.Title.text()
	}
	for _, id := range jm.IDs {
		value := strings.TrimSpace(id.Value)
		switch id.Type {
		case "nlm-ta":
			m.JournalNLMTA = value
		case "iso-abbrev":
			m.JournalISOAbbrev = value
		}
	}

	switch {
	case m.JournalTitle != "":
		m.Journal = m.JournalTitle
	case m.JournalISOAbbrev != "":
		m.Journal = m.JournalISOAbbrev
	case m.JournalNLMTA != "":
		m.Journal = m.JournalNLMTA
	}
}

// extractPubDate prefers the electronic publication date and falls back to
// the collection year. The resolved parts are mirrored both flat and nested.
func extractPubDate(dates []jatsPubDate, m *types.Metadata) {
	for _, d := range dates {
		if d.Type != "epub" {
			continue
		}
		m.Year = strings.TrimSpace(d.Year)
		m.Month = strings.TrimSpace(d.Month)
		m.Day = strings.TrimSpace(d.Day)
		break
	}
	if m.Year == "" {
		for _, d := range dates {
			if d.Type == "collection" {
				m.Year = strings.TrimSpace(d.Year)
				break
			}
		}
	}

	if m.Year != "" {
		m.PubDate = &types.PubDate{Year: m.Year, Month: m.Month, Day: m.Day}
	}
}

// displayName builds "Surname Given-Names", falling back to the initials
// attribute and then the bare surname.
func displayName(n *jatsName) string {
	surname := strings.TrimSpace(n.Surname)
	given := strings.TrimSpace(n.GivenNames)
	initials := strings.TrimSpace(n.Initials)

	switch {
	case given != "":
		return strings.TrimSpace(surname + " " + given)
	case initials != "":
		return strings.TrimSpace(surname + " " + initials)
	default:
		return surname
	}
}
