package extract

import (
	"strings"

	"github.com/ssaharsh1/quoted-llmo/models"
)

// articleTypes are the schema.org types that make a page citable as an
// article by AI models.
var articleTypes = map[string]bool{
	"Article":     true,
	"BlogPosting": true,
	"NewsArticle": true,
	"TechArticle": true,
	"FAQPage":     true,
}

// Analyze derives the boolean accessibility and LLMO signal sets from the
// extracted signals plus the robots.txt text. Pure derivation: the result is
// computed once per crawl and never mutated afterward.
func Analyze(sig *Signals, robotsTxt string, llmsFound bool) (models.AIAccessibility, models.LLMOAnalysis) {
	hasAuthor := AuthorNamed(sig.Metadata.Author)

	ai := models.AIAccessibility{
		RobotsAllowsAI:     RobotsAllowsAI(robotsTxt),
		HasLLMsTxt:         llmsFound,
		HasStructuredData:  len(sig.SchemaTypes) > 0,
		HasProperHeadings:  len(sig.Headings.H1) == 1 && len(sig.Headings.H2) >= 2,
		HasAuthorInfo:      hasAuthor,
		HasMetaDescription: len(sig.Metadata.MetaDescription) > 50,
	}

	llmo := models.LLMOAnalysis{
		HasArticleSchema:    hasAnyType(sig.SchemaTypes, articleTypes),
		HasPersonSchema:     hasAnyType(sig.SchemaTypes, map[string]bool{"Person": true, "Organization": true}),
		HasBreadcrumbSchema: hasAnyType(sig.SchemaTypes, map[string]bool{"BreadcrumbList": true}),
		HasFAQSchema:        hasAnyType(sig.SchemaTypes, map[string]bool{"FAQPage": true, "Question": true}),
		HasHowToSchema:      hasAnyType(sig.SchemaTypes, map[string]bool{"HowTo": true}),
		HasProperMetaTags:   sig.Metadata.OGTitle != "" && sig.Metadata.OGDescription != "",
		HasCanonical:        sig.Metadata.Canonical != "",
		HasLanguageTag:      sig.Metadata.Language != "",
		ContentReadability:  sig.ContentStructure.WordCount > 500 && sig.ContentStructure.ParagraphCount > 3,
		HasCitations:        hasCitations(sig),
	}

	return ai, llmo
}

func hasAnyType(types []string, wanted map[string]bool) bool {
	for _, t := range types {
		if wanted[t] {
			return true
		}
	}
	return false
}

// hasCitations is true when any anchor was flagged as a citation, any link
// text mentions a source or reference, or the page carries a bibliography.
func hasCitations(sig *Signals) bool {
	if sig.LinkAnalysis.HasReferences || sig.LinkAnalysis.HasBibliography {
		return true
	}
	for _, l := range sig.Links {
		if l.IsCitation {
			return true
		}
	}
	return false
}

// AuthorNamed reports whether the author metadata carries a usable name.
// Shared by the analyzer and the scoring tiers.
func AuthorNamed(author string) bool {
	trimmed := strings.TrimSpace(author)
	return trimmed != "" && trimmed != "Unknown"
}
