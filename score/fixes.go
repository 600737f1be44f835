package score

import (
	"fmt"
	"strings"

	"github.com/ssaharsh1/quoted-llmo/extract"
	"github.com/ssaharsh1/quoted-llmo/models"
)

const llmsTxtExample = "User-agent: GPTBot\nAllow: /"

// profileTargets maps a crawl identity to the prose used in summaries and
// the always-present targeting fix.
var profileTargets = map[string]string{
	"chrome":            "general web",
	"googlebot":         "Google Search and AI Overviews",
	"gptbot":            "ChatGPT and OpenAI models",
	"bingbot":           "Bing and Copilot",
	"perplexitybot":     "Perplexity AI",
	"claude":            "Claude and Anthropic models",
	"gemini":            "Google Gemini",
	"llm-comprehensive": "all major AI assistants",
}

func targetFor(profile string) string {
	if t, ok := profileTargets[profile]; ok {
		return t
	}
	return profileTargets["llm-comprehensive"]
}

func buildSummary(r *models.CrawlReport, overall int, verdict, profile string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "This page scored %d/100 (%s) for %s optimization.", overall, verdict, targetFor(profile))

	switch {
	case !r.AIAccessibility.RobotsAllowsAI && !extract.RobotsMissing(r.RobotsTxt):
		b.WriteString(" The robots.txt file blocks AI crawlers, which is the single biggest obstacle to being cited.")
	case r.LLMsStatus != models.LLMsFound:
		b.WriteString(" Adding an llms.txt file is the quickest win for AI discoverability.")
	case !r.LLMOAnalysis.HasArticleSchema:
		b.WriteString(" Adding article schema markup would make the content easier for AI systems to cite.")
	default:
		b.WriteString(" The page is well prepared for AI crawlers and citation.")
	}

	if r.ContentStructure.WordCount > 500 {
		fmt.Fprintf(&b, " At %d words the content has enough depth to be quotable.", r.ContentStructure.WordCount)
	} else {
		fmt.Fprintf(&b, " At %d words the content is thin; AI systems favor substantive pages.", r.ContentStructure.WordCount)
	}
	return b.String()
}

// buildPriorityFixes orders the actionable fixes by impact. The last entry
// always restates the crawl identity the audit targeted.
func buildPriorityFixes(r *models.CrawlReport, profile string) []models.PriorityFix {
	var fixes []models.PriorityFix

	if !r.AIAccessibility.RobotsAllowsAI && !extract.RobotsMissing(r.RobotsTxt) {
		fixes = append(fixes, models.PriorityFix{
			Title:       "Unblock AI crawlers in robots.txt",
			Description: "The robots.txt file disallows one or more AI user agents. Blocked crawlers cannot read the page, so it can never be cited.",
			Impact:      models.ImpactHigh,
			Difficulty:  models.DifficultyEasy,
			CodeExample: llmsTxtExample,
		})
	}
	if r.LLMsStatus != models.LLMsFound {
		fixes = append(fixes, models.PriorityFix{
			Title:       "Create llms.txt file",
			Description: "Add an llms.txt file at the site root to explicitly welcome AI crawlers and describe the site for them.",
			Impact:      models.ImpactHigh,
			Difficulty:  models.DifficultyEasy,
			CodeExample: llmsTxtExample,
		})
	}
	if !r.LLMOAnalysis.HasArticleSchema {
		fixes = append(fixes, models.PriorityFix{
			Title:       "Add article schema markup",
			Description: "Embed Article or BlogPosting JSON-LD so AI systems can identify the headline, author, and publish date when quoting the page.",
			Impact:      models.ImpactHigh,
			Difficulty:  models.DifficultyMedium,
		})
	}
	if !extract.AuthorNamed(r.Metadata.Author) {
		fixes = append(fixes, models.PriorityFix{
			Title:       "Add author attribution",
			Description: "Publish a named author in the page metadata. Attribution is a core trust signal AI systems weigh when choosing sources.",
			Impact:      models.ImpactMedium,
			Difficulty:  models.DifficultyEasy,
		})
	}
	if len(r.Metadata.MetaDescription) < 50 {
		fixes = append(fixes, models.PriorityFix{
			Title:       "Write a meta description",
			Description: "Add a 120-160 character meta description summarizing the page. AI systems use it to decide whether the content answers a query.",
			Impact:      models.ImpactMedium,
			Difficulty:  models.DifficultyEasy,
		})
	}

	fixes = append(fixes, models.PriorityFix{
		Title:       fmt.Sprintf("Optimize for %s", targetFor(profile)),
		Description: fmt.Sprintf("This audit crawled the page as %q. Re-run with other identities to compare how each AI crawler sees the content.", profile),
		Impact:      models.ImpactLow,
		Difficulty:  models.DifficultyEasy,
	})
	return fixes
}

func buildStrengths(r *models.CrawlReport) []string {
	var s []string
	if r.AIAccessibility.RobotsAllowsAI {
		s = append(s, "AI crawlers are allowed by robots.txt")
	}
	if r.LLMsStatus == models.LLMsFound {
		s = append(s, "llms.txt file is present")
	}
	if r.LLMOAnalysis.HasArticleSchema {
		s = append(s, "Article schema markup is in place")
	}
	if extract.AuthorNamed(r.Metadata.Author) {
		s = append(s, "Content has named author attribution")
	}
	if r.AIAccessibility.HasProperHeadings {
		s = append(s, "Heading hierarchy is well structured")
	}
	if r.AIAccessibility.HasMetaDescription {
		s = append(s, "Meta description is substantive")
	}
	if r.LLMOAnalysis.ContentReadability {
		s = append(s, "Content depth supports quotability")
	}
	if r.LLMOAnalysis.HasCitations {
		s = append(s, "Page cites external sources")
	}
	if r.ContentStructure.HasFAQ {
		s = append(s, "FAQ content answers direct questions")
	}
	return s
}

func buildOpportunities(r *models.CrawlReport) []string {
	var o []string
	if !r.AIAccessibility.RobotsAllowsAI && !extract.RobotsMissing(r.RobotsTxt) {
		o = append(o, "Allow AI crawlers in robots.txt")
	}
	if r.LLMsStatus != models.LLMsFound {
		o = append(o, "Publish an llms.txt file")
	}
	if !r.LLMOAnalysis.HasArticleSchema {
		o = append(o, "Add Article or BlogPosting schema")
	}
	if !extract.AuthorNamed(r.Metadata.Author) {
		o = append(o, "Add author metadata")
	}
	if !r.AIAccessibility.HasProperHeadings {
		o = append(o, "Restructure headings into one H1 with supporting H2 sections")
	}
	if !r.AIAccessibility.HasMetaDescription {
		o = append(o, "Expand the meta description past 50 characters")
	}
	if !r.LLMOAnalysis.ContentReadability {
		o = append(o, "Deepen the content beyond 500 words")
	}
	if !r.LLMOAnalysis.HasCitations {
		o = append(o, "Link to authoritative external sources")
	}
	if r.Metadata.Canonical == "" {
		o = append(o, "Declare a canonical URL")
	}
	return o
}
