// Package score converts a crawl report into the four-category audit score.
// Scoring is fully deterministic: no randomness, no I/O, no external calls.
// Every rule degrades to a floor tier when its signal is absent, so a page
// missing one field is never zeroed across a whole category, and the engine
// never fails on missing optional data.
package score

import (
	"fmt"
	"strings"

	"github.com/ssaharsh1/quoted-llmo/extract"
	"github.com/ssaharsh1/quoted-llmo/models"
)

// Category point budgets.
const (
	MaxCrawlAccess    = 25
	MaxContentSchema  = 30
	MaxEATReadability = 25
	MaxOffsiteSignals = 20
)

// Score computes the audit report for one crawled page. The profile names
// the identity the page was crawled as and only affects prose, never points.
func Score(report *models.CrawlReport, profile string) *models.AuditReport {
	crawl := scoreCrawlAccess(report)
	content := scoreContentSchema(report)
	eat := scoreEATReadability(report)
	offsite := scoreOffsiteSignals(report)

	overall := crawl.Score + content.Score + eat.Score + offsite.Score
	verdict := verdictFor(overall)

	return &models.AuditReport{
		OverallScore: overall,
		Verdict:      verdict,
		Summary:      buildSummary(report, overall, verdict, profile),
		Categories: models.Categories{
			CrawlAccess:    crawl,
			ContentSchema:  content,
			EATReadability: eat,
			OffsiteSignals: offsite,
		},
		PriorityFixes: buildPriorityFixes(report, profile),
		Strengths:     buildStrengths(report),
		Opportunities: buildOpportunities(report),
		Insights: models.TechnicalInsights{
			Redirects:        len(report.RedirectChain),
			RobotsAccessible: report.AIAccessibility.RobotsAllowsAI,
			LLMsTxtPresent:   report.LLMsStatus == models.LLMsFound,
			SchemaTypesFound: report.SchemaTypes,
			HeadingStructure: models.HeadingStructure{
				H1Count:         len(report.Headings.H1),
				H2Count:         len(report.Headings.H2),
				ProperHierarchy: len(report.Headings.H1) == 1 && len(report.Headings.H2) > 0,
			},
			ContentStructure: report.ContentStructure,
			LinkAnalysis:     report.LinkAnalysis,
			AIAccessibility:  report.AIAccessibility,
			LLMOAnalysis:     report.LLMOAnalysis,
		},
	}
}

func verdictFor(overall int) string {
	switch {
	case overall >= 90:
		return models.VerdictExcellent
	case overall >= 70:
		return models.VerdictGood
	case overall >= 50:
		return models.VerdictNeedsImprovement
	default:
		return models.VerdictPoor
	}
}

// scoreCrawlAccess: robots.txt access (10/6/2) + llms.txt presence (10/5) +
// redirect chain length (5 down to 2). Max 25.
func scoreCrawlAccess(r *models.CrawlReport) models.CategoryScore {
	score := 0

	switch {
	case extract.RobotsMissing(r.RobotsTxt):
		score += 6 // no robots.txt is default-allow, partial credit
	case r.AIAccessibility.RobotsAllowsAI:
		score += 10
	default:
		score += 2 // explicit block, page still reachable for humans
	}

	if r.LLMsStatus == models.LLMsFound {
		score += 10
	} else {
		score += 5 // most sites lack llms.txt today, partial credit
	}

	hops := len(r.RedirectChain)
	switch {
	case hops <= 1:
		score += 5
	case hops == 2:
		score += 4
	case hops == 3:
		score += 3
	default:
		score += 2
	}

	robotsOK := r.AIAccessibility.RobotsAllowsAI
	llmsOK := r.LLMsStatus == models.LLMsFound

	checks := []models.Check{
		{
			Name:    "Robots.txt Access",
			Status:  passOrFail(robotsOK),
			Message: pick(robotsOK, "Robots.txt allows AI bots", "Robots.txt blocks AI bots"),
			Impact:  models.ImpactHigh,
		},
		{
			Name:    "LLMs.txt Status",
			Status:  passOrFail(llmsOK),
			Message: pick(llmsOK, "LLMs.txt found", "LLMs.txt missing"),
			Impact:  models.ImpactHigh,
		},
		{
			Name:    "Redirect Chain",
			Status:  pick(hops <= 2, models.StatusPass, models.StatusWarning),
			Message: fmt.Sprintf("%d hop(s) to the final document", hops),
			Impact:  models.ImpactLow,
		},
	}

	recs := []string{"LLMs.txt is properly configured"}
	if !llmsOK {
		recs = []string{"Add llms.txt file for AI bot access"}
	}

	return models.CategoryScore{
		Name:            "Crawl & Access",
		Score:           score,
		Status:          statusByThresholds(score, 20, 15),
		Checks:          checks,
		Recommendations: recs,
	}
}

// scoreContentSchema: author quality (5/4/3/1) + schema richness (10/7/3) +
// schema diversity bonus (≤5) + meta description band (3/2/1/0) + social and
// canonical (+1 each) + heading hierarchy (5 down to 1). Max 30.
func scoreContentSchema(r *models.CrawlReport) models.CategoryScore {
	score := authorTier(r.Metadata.Author)
	score += schemaTier(r)
	score += schemaBonus(r)
	score += metaDescriptionTier(r.Metadata.MetaDescription)
	if r.LLMOAnalysis.HasProperMetaTags {
		score++
	}
	if r.Metadata.Canonical != "" {
		score++
	}
	score += headingTier(r.Headings)

	schemaCount := len(r.SchemaTypes)
	hasAuthor := extract.AuthorNamed(r.Metadata.Author)

	checks := []models.Check{
		{
			Name:   "Schema Markup",
			Status: passOrFail(schemaCount > 0),
			Message: pick(schemaCount > 0,
				fmt.Sprintf("Found %d schema types", schemaCount),
				"No schema markup found"),
			Impact: models.ImpactMedium,
		},
		{
			Name:    "Author Metadata",
			Status:  passOrFail(hasAuthor),
			Message: pick(hasAuthor, "Author information present", "Author information missing"),
			Impact:  models.ImpactMedium,
		},
	}

	recs := []string{"Schema markup is present"}
	if schemaCount == 0 {
		recs = []string{"Add comprehensive schema markup"}
	}

	return models.CategoryScore{
		Name:            "Content & Schema",
		Score:           score,
		Status:          statusByThresholds(score, 24, 18),
		Checks:          checks,
		Recommendations: recs,
	}
}

// scoreEATReadability: heading hierarchy (10/8/6/4/2) + author (5/4/3/1) +
// structure quality (3/2/1) + TOC/FAQ/code bonuses (+1 each) + meta
// description (3/2/1/0) + language/keywords (+1 each). Max 25.
func scoreEATReadability(r *models.CrawlReport) models.CategoryScore {
	score := 2 * headingTier(r.Headings)
	score += authorTier(r.Metadata.Author)

	h1 := len(r.Headings.H1)
	h2 := len(r.Headings.H2)
	switch {
	case h1 > 0 && h2 > 0:
		score += 3
	case h1 > 0 || h2 > 0:
		score += 2
	default:
		score += 1
	}

	if r.ContentStructure.HasTableOfContents {
		score++
	}
	if r.ContentStructure.HasFAQ || r.ContentStructure.CodeBlockCount > 0 {
		score++
	}

	score += metaDescriptionTier(r.Metadata.MetaDescription)
	if r.Metadata.Language != "" {
		score++
	}
	if r.Metadata.Keywords != "" {
		score++
	}

	checks := []models.Check{
		{
			Name:    "Heading Structure",
			Status:  pick(h1 == 1 && h2 > 0, models.StatusPass, models.StatusWarning),
			Message: fmt.Sprintf("H1: %d, H2: %d", h1, h2),
			Impact:  models.ImpactHigh,
		},
	}

	return models.CategoryScore{
		Name:            "E-E-A-T & Readability",
		Score:           score,
		Status:          statusByThresholds(score, 20, 15),
		Checks:          checks,
		Recommendations: []string{"Improve content authority signals"},
	}
}

// scoreOffsiteSignals: article schema for citations (10/7/3) + author
// attribution (5/4/3/1) + meta description (3/2/1/0) + social/citation
// bonuses (+1 each). Max 20.
func scoreOffsiteSignals(r *models.CrawlReport) models.CategoryScore {
	score := schemaTier(r)
	score += authorTier(r.Metadata.Author)
	score += metaDescriptionTier(r.Metadata.MetaDescription)
	if r.LLMOAnalysis.HasProperMetaTags {
		score++
	}
	if r.LLMOAnalysis.HasCitations || r.LinkAnalysis.ExternalLinks > 0 {
		score++
	}

	hasArticle := r.LLMOAnalysis.HasArticleSchema
	hasAuthor := extract.AuthorNamed(r.Metadata.Author)

	checks := []models.Check{
		{
			Name:    "Content Structure",
			Status:  passOrFail(hasArticle),
			Message: pick(hasArticle, "Article schema present", "No article schema found"),
			Impact:  models.ImpactHigh,
		},
		{
			Name:    "Author Attribution",
			Status:  passOrFail(hasAuthor),
			Message: pick(hasAuthor, "Author information present", "Author information missing"),
			Impact:  models.ImpactMedium,
		},
	}

	recs := []string{"Content structure supports citations"}
	if !hasArticle {
		recs = []string{"Add article schema for better citation potential"}
	}

	return models.CategoryScore{
		Name:            "Off-site Signals",
		Score:           score,
		Status:          statusByThresholds(score, 15, 10),
		Checks:          checks,
		Recommendations: recs,
	}
}

// --- shared tier helpers ---

// authorTier: a real byline scores by name length (longer names read as full
// attributions), and an absent byline still earns the floor credit.
func authorTier(author string) int {
	trimmed := strings.TrimSpace(author)
	if !extract.AuthorNamed(trimmed) {
		return 1
	}
	switch {
	case len(trimmed) > 5:
		return 5
	case len(trimmed) > 3:
		return 4
	default:
		return 3
	}
}

// schemaTier: article-like schema is ideal for citation, any schema still
// helps, and bare content keeps the floor.
func schemaTier(r *models.CrawlReport) int {
	switch {
	case r.LLMOAnalysis.HasArticleSchema:
		return 10
	case len(r.SchemaTypes) > 0:
		return 7
	default:
		return 3
	}
}

// schemaBonus rewards schema diversity, capped at 5.
func schemaBonus(r *models.CrawlReport) int {
	bonus := 0
	switch n := len(r.SchemaTypes); {
	case n >= 3:
		bonus += 3
	case n == 2:
		bonus += 2
	case n == 1:
		bonus += 1
	}
	if r.LLMOAnalysis.HasPersonSchema {
		bonus++
	}
	if r.LLMOAnalysis.HasFAQSchema {
		bonus++
	}
	if r.LLMOAnalysis.HasHowToSchema {
		bonus++
	}
	if bonus > 5 {
		bonus = 5
	}
	return bonus
}

// metaDescriptionTier: 120-160 characters is the optimal band.
func metaDescriptionTier(desc string) int {
	n := len(desc)
	switch {
	case n >= 120 && n <= 160:
		return 3
	case n >= 50:
		return 2
	case n > 0:
		return 1
	default:
		return 0
	}
}

// headingTier: one h1 with at least two h2 sections is the ideal shape.
func headingTier(h models.Headings) int {
	h1, h2 := len(h.H1), len(h.H2)
	switch {
	case h1 == 1 && h2 >= 2:
		return 5
	case h1 == 1 && h2 > 0:
		return 4
	case h1 == 1:
		return 3
	case h1 > 0 || h2 > 0:
		return 2
	default:
		return 1
	}
}

func statusByThresholds(score, passAt, warnAt int) string {
	switch {
	case score >= passAt:
		return models.StatusPass
	case score >= warnAt:
		return models.StatusWarning
	default:
		return models.StatusFail
	}
}

func passOrFail(ok bool) string {
	if ok {
		return models.StatusPass
	}
	return models.StatusFail
}

func pick(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
