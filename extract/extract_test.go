package extract

import (
	"strings"
	"testing"
)

func TestExtractMetadata_AttributeOrderIndependent(t *testing.T) {
	html := `<html><head>
		<title>Order Test</title>
		<meta name="description" content="name first description">
		<meta content="content first author" name="author">
		<meta property="og:title" content="OG Order Test">
		<meta content="website" property="og:type">
	</head></html>`

	sig := Extract(html)

	if sig.Metadata.Title != "Order Test" {
		t.Errorf("title = %q, want %q", sig.Metadata.Title, "Order Test")
	}
	if sig.Metadata.MetaDescription != "name first description" {
		t.Errorf("description = %q", sig.Metadata.MetaDescription)
	}
	if sig.Metadata.Author != "content first author" {
		t.Errorf("author = %q, content-before-name should still parse", sig.Metadata.Author)
	}
	if sig.Metadata.OGTitle != "OG Order Test" {
		t.Errorf("og:title = %q", sig.Metadata.OGTitle)
	}
	if sig.Metadata.OGType != "website" {
		t.Errorf("og:type = %q, content-before-property should still parse", sig.Metadata.OGType)
	}
}

func TestExtractMetadata_Fallbacks(t *testing.T) {
	html := `<head>
		<meta property="article:author" content="Jane Writer">
		<meta name="language" content="en">
		<link rel="canonical" href="https://example.com/post">
	</head>`

	sig := Extract(html)

	if sig.Metadata.Author != "Jane Writer" {
		t.Errorf("author = %q, want article:author fallback", sig.Metadata.Author)
	}
	if sig.Metadata.Language != "en" {
		t.Errorf("language = %q, want language fallback", sig.Metadata.Language)
	}
	if sig.Metadata.Canonical != "https://example.com/post" {
		t.Errorf("canonical = %q", sig.Metadata.Canonical)
	}
}

func TestExtractHeadings_CapturesInOrder(t *testing.T) {
	html := `<h1 class="hero">Main Title</h1>
		<h2>First Section</h2>
		<h2> Second Section </h2>
		<h3>Detail</h3>`

	sig := Extract(html)

	if len(sig.Headings.H1) != 1 || sig.Headings.H1[0] != "Main Title" {
		t.Errorf("h1 = %v", sig.Headings.H1)
	}
	if len(sig.Headings.H2) != 2 {
		t.Fatalf("h2 count = %d, want 2", len(sig.Headings.H2))
	}
	if sig.Headings.H2[1] != "Second Section" {
		t.Errorf("h2[1] = %q, want trimmed capture", sig.Headings.H2[1])
	}
	if len(sig.Headings.H3) != 1 {
		t.Errorf("h3 count = %d, want 1", len(sig.Headings.H3))
	}
}

func TestExtractSchemaTypes_MalformedBlockSkipped(t *testing.T) {
	html := `
		<script type="application/ld+json">{not valid json</script>
		<script type="application/ld+json">{"@type": "Article", "author": {"@type": "Person"}}</script>`

	sig := Extract(html)

	want := map[string]bool{"Article": true, "Person": true}
	if len(sig.SchemaTypes) != 2 {
		t.Fatalf("schema types = %v, want Article and Person", sig.SchemaTypes)
	}
	for _, typ := range sig.SchemaTypes {
		if !want[typ] {
			t.Errorf("unexpected schema type %q", typ)
		}
	}
}

func TestExtractSchemaTypes_TypeArray(t *testing.T) {
	html := `<script type="application/ld+json">{"@type": ["Article", "TechArticle"]}</script>`

	sig := Extract(html)

	if len(sig.SchemaTypes) != 2 {
		t.Fatalf("schema types = %v, want both array entries", sig.SchemaTypes)
	}
}

func TestExtractSchemaTypes_NestedGraph(t *testing.T) {
	html := `<script type="application/ld+json">
		{"@graph": [{"@type": "WebPage", "mainEntity": {"@type": "FAQPage"}}]}
	</script>`

	sig := Extract(html)

	found := map[string]bool{}
	for _, typ := range sig.SchemaTypes {
		found[typ] = true
	}
	if !found["WebPage"] || !found["FAQPage"] {
		t.Errorf("schema types = %v, want nested types collected", sig.SchemaTypes)
	}
	if !sig.ContentStructure.HasFAQ {
		t.Error("FAQPage schema should set HasFAQ")
	}
}

func TestExtractContentStructure_EmptyDocumentWordFloor(t *testing.T) {
	sig := Extract("")

	if sig.ContentStructure.WordCount != 1 {
		t.Errorf("empty document word count = %d, want floor of 1", sig.ContentStructure.WordCount)
	}
}

func TestExtractContentStructure_Counts(t *testing.T) {
	html := `<article><p>one</p><p class="intro">two</p>
		<ul><li>a</li></ul><ol><li>b</li></ol>
		<img src="x.png"><img src="y.png">
		<pre>code</pre><code>inline</code>
		<a href="/in">in</a><aside>related</aside></article>`

	sig := Extract(html)
	cs := sig.ContentStructure

	if cs.ParagraphCount != 2 {
		t.Errorf("paragraphs = %d, want 2 (pre tags must not count)", cs.ParagraphCount)
	}
	if cs.ListCount != 2 {
		t.Errorf("lists = %d, want 2", cs.ListCount)
	}
	if cs.ImageCount != 2 {
		t.Errorf("images = %d, want 2", cs.ImageCount)
	}
	if cs.CodeBlockCount != 2 {
		t.Errorf("code blocks = %d, want 2", cs.CodeBlockCount)
	}
	if cs.LinkCount != 1 {
		t.Errorf("links = %d, want 1 (article/aside tags must not count)", cs.LinkCount)
	}
}

func TestExtractContentStructure_WordCount(t *testing.T) {
	html := "<p>alpha   beta\n\tgamma</p>"

	sig := Extract(html)

	if sig.ContentStructure.WordCount != 3 {
		t.Errorf("word count = %d, want 3 after whitespace collapse", sig.ContentStructure.WordCount)
	}
}

func TestExtractLinks_ExternalAndCitationFlags(t *testing.T) {
	html := `<a href="/internal">internal page</a>
		<a href="#anchor">jump</a>
		<a href="https://example.org/study">Original source</a>`

	sig := Extract(html)

	if len(sig.Links) != 3 {
		t.Fatalf("links = %d, want 3", len(sig.Links))
	}
	if sig.Links[0].IsExternal || sig.Links[1].IsExternal {
		t.Error("path and fragment hrefs should not be external")
	}
	if !sig.Links[2].IsExternal {
		t.Error("absolute href should be external")
	}
	if !sig.Links[2].IsCitation {
		t.Error("anchor text mentioning a source should flag a citation")
	}
	if sig.LinkAnalysis.ExternalLinks != 1 || sig.LinkAnalysis.CitationLinks != 1 {
		t.Errorf("link analysis = %+v", sig.LinkAnalysis)
	}
	if !sig.LinkAnalysis.HasReferences {
		t.Error("citation link text should set HasReferences")
	}
}

func TestAnalyzeLinks_Bibliography(t *testing.T) {
	html := `<h2>References</h2><a href="https://example.org">study</a>`

	sig := Extract(html)

	if !sig.LinkAnalysis.HasBibliography {
		t.Error("page containing 'references' should set HasBibliography")
	}
}

func TestExtract_FAQSubstring(t *testing.T) {
	html := "<h2>Frequently Asked Questions</h2>"
	if !Extract(html).ContentStructure.HasFAQ {
		t.Error("'frequently asked' text should set HasFAQ")
	}
	if Extract("<p>nothing here</p>").ContentStructure.HasFAQ {
		t.Error("plain text should not set HasFAQ")
	}
}

func TestExtract_Deterministic(t *testing.T) {
	html := `<title>Same</title><h1>One</h1><p>` + strings.Repeat("word ", 100) + `</p>`

	first := Extract(html)
	second := Extract(html)

	if first.ContentStructure != second.ContentStructure {
		t.Errorf("content structure differs across runs: %+v vs %+v",
			first.ContentStructure, second.ContentStructure)
	}
	if first.Metadata != second.Metadata {
		t.Error("metadata differs across runs")
	}
}
