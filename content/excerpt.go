// Package content distills a crawled page's raw HTML into a compact Markdown
// excerpt suitable for an LLM prompt. The pipeline is: prune boilerplate
// nodes, run Mozilla Readability to isolate the main article, convert the
// result to Markdown, then truncate to an excerpt budget.
package content

import (
	"bytes"
	"log/slog"
	nurl "net/url"
	"strings"
	"unicode/utf8"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// maxExcerptRunes bounds the Markdown passed to the LLM. Roughly 1000
// tokens of prose, enough for tone and structure without blowing the
// prompt budget on long articles.
const maxExcerptRunes = 4000

// minArticleLength is the minimum TextContent length for readability output
// to be trusted. Below this the algorithm likely missed the main content.
const minArticleLength = 50

// noiseSelector matches chrome that never contributes citable prose.
var noiseSelector = cascadia.MustCompile("nav, footer, aside, form, [role=banner], [role=navigation], .sidebar, .cookie-banner")

// Excerpter builds prompt excerpts from raw page HTML. The Markdown
// converter is created once and reused; it is goroutine-safe.
type Excerpter struct {
	mdConverter *converter.Converter
}

func NewExcerpter() *Excerpter {
	return &Excerpter{
		mdConverter: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(
					table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
				),
			),
		),
	}
}

// Excerpt distills rawHTML into truncated Markdown. It never fails: every
// stage falls back to a cruder representation of the same page, bottoming
// out at stripped plain text.
func (e *Excerpter) Excerpt(rawHTML, sourceURL string) string {
	pruned := pruneNoise(rawHTML)

	article, ok := extractArticle(pruned, sourceURL)
	body := article.Content
	if !ok {
		body = pruned
	}

	md, err := e.mdConverter.ConvertString(body, converter.WithDomain(sourceURL))
	if err != nil {
		slog.Warn("excerpt: markdown conversion failed, using plain text",
			"url", sourceURL, "error", err,
		)
		md = visibleText(body)
	}

	return truncateRunes(strings.TrimSpace(md), maxExcerptRunes)
}

// pruneNoise deletes navigation and chrome nodes before readability runs.
// Parse failures return the input unchanged.
func pruneNoise(rawHTML string) string {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return rawHTML
	}

	for _, node := range cascadia.QueryAll(doc, noiseSelector) {
		if node.Parent != nil {
			node.Parent.RemoveChild(node)
		}
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return rawHTML
	}
	return buf.String()
}

// extractArticle runs readability. The second return reports whether the
// output is trustworthy; callers fall back to the pruned HTML when not.
func extractArticle(rawHTML, sourceURL string) (readability.Article, bool) {
	parsedURL, err := nurl.Parse(sourceURL)
	if err != nil {
		return readability.Article{}, false
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), parsedURL)
	if err != nil {
		slog.Warn("excerpt: readability failed, using pruned HTML",
			"url", sourceURL, "error", err,
		)
		return readability.Article{}, false
	}

	if len(strings.TrimSpace(article.TextContent)) < minArticleLength {
		return readability.Article{}, false
	}
	return article, true
}

// visibleText extracts trimmed plain text from an HTML fragment.
func visibleText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return strings.TrimSpace(doc.Text())
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "\n\n[truncated]"
}
