// Package extract derives the structured LLMO signal set from a fetched HTML
// document. Extraction is pattern-based and tolerant of malformed markup by
// design: it is a pure function of the (already size-capped) document text,
// and individual anomalies such as a broken JSON-LD block degrade the signal
// set instead of failing the crawl.
package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/ssaharsh1/quoted-llmo/models"
)

// Signals is the complete extractor output for one document.
type Signals struct {
	Metadata         models.Metadata
	Headings         models.Headings
	SchemaTypes      []string
	ContentStructure models.ContentStructure
	Links            []models.Link
	LinkAnalysis     models.LinkAnalysis
}

var (
	titleRe     = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	metaTagRe   = regexp.MustCompile(`(?i)<meta[^>]+>`)
	nameAttrRe  = regexp.MustCompile(`(?i)name=['"]([^'"]+)['"]`)
	propAttrRe  = regexp.MustCompile(`(?i)property=['"]([^'"]+)['"]`)
	contAttrRe  = regexp.MustCompile(`(?i)content=['"]([^'"]+)['"]`)
	canonicalRe = regexp.MustCompile(`(?i)<link[^>]+rel=['"]canonical['"][^>]+href=['"]([^'"]+)['"]`)
	jsonLDRe    = regexp.MustCompile(`(?is)<script[^>]*type=['"]application/ld\+json['"][^>]*>(.*?)</script>`)
	anchorRe    = regexp.MustCompile(`(?is)<a[^>]+href=['"]([^'"]+)['"][^>]*>(.*?)</a>`)

	tagRe        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)

	// The tag-name match must end at whitespace or ">", otherwise <p>
	// also counts <pre> and <a> counts <article>.
	paragraphRe  = regexp.MustCompile(`(?i)<p(\s[^>]*)?>`)
	listRe       = regexp.MustCompile(`(?i)<(ul|ol)(\s[^>]*)?>`)
	imageRe      = regexp.MustCompile(`(?i)<img[^>]*>`)
	anchorOpenRe = regexp.MustCompile(`(?i)<a(\s[^>]*)?>`)
	preRe        = regexp.MustCompile(`(?i)<pre[^>]*>`)
	codeRe       = regexp.MustCompile(`(?i)<code[^>]*>`)

	headingRes [6]*regexp.Regexp
)

func init() {
	for i := range headingRes {
		level := i + 1
		headingRes[i] = regexp.MustCompile(fmt.Sprintf(`(?is)<h%d[^>]*>(.*?)</h%d>`, level, level))
	}
}

// Extract parses the document and returns every signal in one pass.
// It performs no I/O and is deterministic for a given input.
func Extract(html string) *Signals {
	schemaTypes := extractSchemaTypes(html)
	links := extractLinks(html)

	return &Signals{
		Metadata:         extractMetadata(html),
		Headings:         extractHeadings(html),
		SchemaTypes:      schemaTypes,
		ContentStructure: extractContentStructure(html, schemaTypes),
		Links:            links,
		LinkAnalysis:     analyzeLinks(html, links),
	}
}

// extractMetadata scans every <meta> tag and reads the name/property and
// content attributes independently of attribute order. Both name= and
// property= variants populate the same mapping, keyed lower-cased.
func extractMetadata(html string) models.Metadata {
	tags := make(map[string]string)
	for _, tag := range metaTagRe.FindAllString(html, -1) {
		content := firstGroup(contAttrRe, tag)
		if content == "" {
			continue
		}
		if name := firstGroup(nameAttrRe, tag); name != "" {
			tags[strings.ToLower(name)] = content
		}
		if prop := firstGroup(propAttrRe, tag); prop != "" {
			tags[strings.ToLower(prop)] = content
		}
	}

	author := tags["author"]
	if author == "" {
		author = tags["article:author"]
	}
	language := tags["content-language"]
	if language == "" {
		language = tags["language"]
	}

	return models.Metadata{
		Title:           firstGroup(titleRe, html),
		MetaDescription: tags["description"],
		Author:          author,
		Keywords:        tags["keywords"],
		Language:        language,
		Robots:          tags["robots"],
		OGTitle:         tags["og:title"],
		OGDescription:   tags["og:description"],
		OGType:          tags["og:type"],
		TwitterCard:     tags["twitter:card"],
		Canonical:       firstGroup(canonicalRe, html),
	}
}

// extractHeadings captures the trimmed inner text of every h1-h6 tag in
// document order. Inner markup is a single-level capture and is not stripped
// recursively; that is the behavioral contract scoring depends on.
func extractHeadings(html string) models.Headings {
	capture := func(level int) []string {
		var out []string
		for _, m := range headingRes[level-1].FindAllStringSubmatch(html, -1) {
			out = append(out, strings.TrimSpace(m[1]))
		}
		return out
	}
	return models.Headings{
		H1: capture(1),
		H2: capture(2),
		H3: capture(3),
		H4: capture(4),
		H5: capture(5),
		H6: capture(6),
	}
}

// extractSchemaTypes parses every JSON-LD block independently and collects
// @type values by a deep recursive walk: a type at any nesting depth counts.
// Malformed blocks are skipped without affecting the others.
func extractSchemaTypes(html string) []string {
	var types []string
	for _, m := range jsonLDRe.FindAllStringSubmatch(html, -1) {
		var parsed any
		if err := json.Unmarshal([]byte(m[1]), &parsed); err != nil {
			continue
		}
		collectTypes(parsed, &types)
	}
	return types
}

func collectTypes(v any, out *[]string) {
	switch node := v.(type) {
	case []any:
		for _, item := range node {
			collectTypes(item, out)
		}
	case map[string]any:
		if t, ok := node["@type"]; ok {
			switch typed := t.(type) {
			case string:
				*out = append(*out, typed)
			case []any:
				for _, item := range typed {
					if s, ok := item.(string); ok {
						*out = append(*out, s)
					}
				}
			}
		}
		for _, value := range node {
			collectTypes(value, out)
		}
	}
}

// extractContentStructure counts structural elements and derives the
// content-shape heuristics. WordCount strips tags, collapses whitespace and
// splits on single spaces; note that an empty document therefore counts as
// one (empty) token, which scoring relies on as the floor value.
func extractContentStructure(html string, schemaTypes []string) models.ContentStructure {
	lower := strings.ToLower(html)

	stripped := tagRe.ReplaceAllString(html, " ")
	collapsed := strings.TrimSpace(whitespaceRe.ReplaceAllString(stripped, " "))
	wordCount := len(strings.Split(collapsed, " "))

	hasFAQ := strings.Contains(lower, "faq") || strings.Contains(lower, "frequently asked")
	if !hasFAQ {
		for _, t := range schemaTypes {
			if strings.Contains(strings.ToLower(t), "faq") {
				hasFAQ = true
				break
			}
		}
	}

	return models.ContentStructure{
		WordCount:      wordCount,
		ParagraphCount: len(paragraphRe.FindAllString(html, -1)),
		ListCount:      len(listRe.FindAllString(html, -1)),
		ImageCount:     len(imageRe.FindAllString(html, -1)),
		LinkCount:      len(anchorOpenRe.FindAllString(html, -1)),
		HasTableOfContents: strings.Contains(lower, "table of contents") ||
			strings.Contains(lower, "toc") ||
			strings.Contains(lower, "contents"),
		HasFAQ:         hasFAQ,
		CodeBlockCount: len(preRe.FindAllString(html, -1)) + len(codeRe.FindAllString(html, -1)),
	}
}

// extractLinks builds one record per anchor tag. A link is external unless
// its href starts with "/" or "#", and counts as a citation when its anchor
// text mentions a source or reference.
func extractLinks(html string) []models.Link {
	var links []models.Link
	for _, m := range anchorRe.FindAllStringSubmatch(html, -1) {
		href, inner := m[1], m[2]
		lowerInner := strings.ToLower(inner)
		links = append(links, models.Link{
			URL:        href,
			Text:       strings.TrimSpace(tagRe.ReplaceAllString(inner, "")),
			IsExternal: !strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "#"),
			IsCitation: strings.Contains(lowerInner, "source") || strings.Contains(lowerInner, "reference"),
		})
	}
	return links
}

func analyzeLinks(html string, links []models.Link) models.LinkAnalysis {
	lower := strings.ToLower(html)
	analysis := models.LinkAnalysis{
		TotalLinks: len(links),
		HasBibliography: strings.Contains(lower, "bibliography") ||
			strings.Contains(lower, "references"),
	}
	for _, l := range links {
		if l.IsExternal {
			analysis.ExternalLinks++
		}
		if l.IsCitation {
			analysis.CitationLinks++
		}
		text := strings.ToLower(l.Text)
		if strings.Contains(text, "reference") || strings.Contains(text, "source") {
			analysis.HasReferences = true
		}
	}
	return analysis
}

func firstGroup(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return ""
}
