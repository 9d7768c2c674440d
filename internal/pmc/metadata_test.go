// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pmc

import (
	"testing"
)

const sampleArticleXML = `<?xml version="1.0" encoding="UTF-8"?>
<pmc-articleset>
  <article>
    <front>
      <journal-meta>
        <journal-id journal-id-type="nlm-ta">Aging Cell</journal-id>
        <journal-id journal-id-type="iso-abbrev">Aging Cell</journal-id>
        <journal-title-group>
          <journal-title>Aging Cell</journal-title>
        </journal-title-group>
      </journal-meta>
      <article-meta>
        <article-id pub-id-type="pmid">12345</article-id>
        <article-id pub-id-type="pmcid">PMC67890</article-id>
        <article-id pub-id-type="doi">10.1111/acel.13344</article-id>
        <title-group>
          <article-title>Role of <italic>IL-6</italic> in frailty</article-title>
        </title-group>
        <contrib-group>
          <contrib contrib-type="author">
            <name><surname>Smith</surname><given-names>Alice</given-names></name>
          </contrib>
          <contrib contrib-type="author">
            <name><surname>Jones</surname><given-names>Bob</given-names></name>
          </contrib>
          <contrib contrib-type="editor">
            <name><surname>Editor</surname><given-names>Eve</given-names></name>
          </contrib>
        </contrib-group>
        <pub-date pub-type="epub">
          <day>15</day>
          <month>03</month>
          <year>2020</year>
        </pub-date>
        <abstract>
          <p>Frailty is associated with <italic>elevated</italic> cytokines.</p>
        </abstract>
        <kwd-group>
          <kwd>frailty</kwd>
          <kwd>cytokines</kwd>
        </kwd-group>
      </article-meta>
    </front>
  </article>
</pmc-articleset>`

func TestExtractMetadata_FullArticle(t *testing.T) {
	m := ExtractMetadata([]byte(sampleArticleXML))

	if m.Journal != "Aging Cell" {
		t.Errorf("Journal = %q, want %q", m.Journal, "Aging Cell")
	}
	if m.JournalTitle != "Aging Cell" {
		t.Errorf("JournalTitle = %q, want %q", m.JournalTitle, "Aging Cell")
	}
	if m.PMID != "12345" {
		t.Errorf("PMID = %q, want %q", m.PMID, "12345")
	}
	if m.PMCID != "PMC67890" {
		t.Errorf("PMCID = %q, want %q", m.PMCID, "PMC67890")
	}
	if m.DOI != "10.1111/acel.13344" {
		t.Errorf("DOI = %q, want %q", m.DOI, "10.1111/acel.13344")
	}
	if m.Title != "Role of IL-6 in frailty" {
		t.Errorf("Title = %q", m.Title)
	}
	if m.Year != "2020" || m.Month != "03" || m.Day != "15" {
		t.Errorf("date = %q/%q/%q, want 2020/03/15", m.Year, m.Month, m.Day)
	}
	if m.PubDate == nil || m.PubDate.Year != "2020" || m.PubDate.Month != "03" || m.PubDate.Day != "15" {
		t.Errorf("PubDate = %+v, want nested 2020/03/15", m.PubDate)
	}
	wantAuthors := []string{"Smith Alice", "Jones Bob"}
	if len(m.Authors) != len(wantAuthors) {
		t.Fatalf("Authors = %v, want %v", m.Authors, wantAuthors)
	}
	for i, want := range wantAuthors {
		if m.Authors[i] != want {
			t.Errorf("Authors[%d] = %q, want %q", i, m.Authors[i], want)
		}
	}
	if m.Abstract == "" {
		t.Error("Abstract is empty")
	}
	if len(m.Keywords) != 2 || m.Keywords[0] != "frailty" || m.Keywords[1] != "cytokines" {
		t.Errorf("Keywords = %v", m.Keywords)
	}
}

func TestExtractMetadata_NeverFails(t *testing.T) {
	inputs := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"garbage bytes", "\x00\x01\x02 not xml at all"},
		{"truncated", "<pmc-articleset><article><front>"},
		{"wrong root", "<html><body>nope</body></html>"},
		{"no front matter", "<article><body><p>text only</p></body></article>"},
	}
	for _, tt := range inputs {
		t.Run(tt.name, func(t *testing.T) {
			m := ExtractMetadata([]byte(tt.doc))
			if !m.IsEmpty() {
				t.Errorf("ExtractMetadata(%q) = %+v, want empty record", tt.name, m)
			}
		})
	}
}

func TestExtractMetadata_BareArticleRoot(t *testing.T) {
	doc := `<article><front><article-meta>
		<article-id pub-id-type="pmid">999</article-id>
	</article-meta></front></article>`

	m := ExtractMetadata([]byte(doc))
	if m.PMID != "999" {
		t.Errorf("PMID = %q, want %q", m.PMID, "999")
	}
}

func TestExtractMetadata_JournalFallbackOrder(t *testing.T) {
	tests := []struct {
		name string
		meta string
		want string
	}{
		{
			"title wins",
			`<journal-title-group><journal-title>Full Title</journal-title></journal-title-group>
			 <journal-id journal-id-type="iso-abbrev">Iso Abbrev</journal-id>
			 <journal-id journal-id-type="nlm-ta">Nlm Ta</journal-id>`,
			"Full Title",
		},
		{
			"iso-abbrev next",
			`<journal-id journal-id-type="iso-abbrev">Iso Abbrev</journal-id>
			 <journal-id journal-id-type="nlm-ta">Nlm Ta</journal-id>`,
			"Iso Abbrev",
		},
		{
			"nlm-ta last",
			`<journal-id journal-id-type="nlm-ta">Nlm Ta</journal-id>`,
			"Nlm Ta",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `<article><front><journal-meta>` + tt.meta + `</journal-meta>
				<article-meta></article-meta></front></article>`
			m := ExtractMetadata([]byte(doc))
			if m.Journal != tt.want {
				t.Errorf("Journal = %q, want %q", m.Journal, tt.want)
			}
		})
	}
}

func TestExtractMetadata_FirstIDPerTypeWins(t *testing.T) {
	doc := `<article><front><article-meta>
		<article-id pub-id-type="pmid">111</article-id>
		<article-id pub-id-type="pmid">222</article-id>
	</article-meta></front></article>`

	m := ExtractMetadata([]byte(doc))
	if m.PMID != "111" {
		t.Errorf("PMID = %q, want first occurrence %q", m.PMID, "111")
	}
}

func TestExtractMetadata_CollectionYearFallback(t *testing.T) {
	doc := `<article><front><article-meta>
		<pub-date pub-type="collection"><year>2019</year></pub-date>
	</article-meta></front></article>`

	m := ExtractMetadata([]byte(doc))
	if m.Year != "2019" {
		t.Errorf("Year = %q, want %q", m.Year, "2019")
	}
	if m.Month != "" || m.Day != "" {
		t.Errorf("collection fallback carries year only, got month %q day %q", m.Month, m.Day)
	}
	if m.PubDate == nil || m.PubDate.Year != "2019" {
		t.Errorf("PubDate = %+v, want nested year 2019", m.PubDate)
	}
}

func TestExtractMetadata_AuthorNameFallbacks(t *testing.T) {
	doc := `<article><front><article-meta><contrib-group>
		<contrib contrib-type="author">
			<name initials="JS"><surname>Smith</surname></name>
		</contrib>
		<contrib contrib-type="author">
			<name><surname>Jones</surname></name>
		</contrib>
		<contrib contrib-type="author">
			<name></name>
		</contrib>
	</contrib-group></article-meta></front></article>`

	m := ExtractMetadata([]byte(doc))
	want := []string{"Smith JS", "Jones"}
	if len(m.Authors) != len(want) {
		t.Fatalf("Authors = %v, want %v", m.Authors, want)
	}
	for i := range want {
		if m.Authors[i] != want[i] {
			t.Errorf("Authors[%d] = %q, want %q", i, m.Authors[i], want[i])
		}
	}
}

func TestExtractMetadata_OmittedFieldsStayAbsent(t *testing.T) {
	doc := `<article><front><article-meta>
		<article-id pub-id-type="pmid">42</article-id>
	</article-meta></front></article>`

	m := ExtractMetadata([]byte(doc))
	if m.PubDate != nil {
		t.Errorf("PubDate = %+v, want nil when no date present", m.PubDate)
	}
	if m.Authors != nil || m.Keywords != nil {
		t.Errorf("lists should stay nil when absent, got authors %v keywords %v", m.Authors, m.Keywords)
	}
}
