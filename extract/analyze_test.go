package extract

import (
	"testing"

	"github.com/ssaharsh1/quoted-llmo/models"
)

func TestAnalyze_ProperHeadings(t *testing.T) {
	cases := []struct {
		name string
		h1   int
		h2   int
		want bool
	}{
		{"one h1 two h2", 1, 2, true},
		{"one h1 three h2", 1, 3, true},
		{"one h1 one h2", 1, 1, false},
		{"no h1 three h2", 0, 3, false},
		{"two h1 two h2", 2, 2, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sig := &Signals{}
			for i := 0; i < tc.h1; i++ {
				sig.Headings.H1 = append(sig.Headings.H1, "h1")
			}
			for i := 0; i < tc.h2; i++ {
				sig.Headings.H2 = append(sig.Headings.H2, "h2")
			}
			ai, _ := Analyze(sig, "", false)
			if ai.HasProperHeadings != tc.want {
				t.Errorf("HasProperHeadings = %v, want %v", ai.HasProperHeadings, tc.want)
			}
		})
	}
}

func TestAnalyze_MetaDescriptionThreshold(t *testing.T) {
	short := &Signals{Metadata: models.Metadata{MetaDescription: "too short"}}
	ai, _ := Analyze(short, "", false)
	if ai.HasMetaDescription {
		t.Error("descriptions of 50 characters or fewer should not count")
	}

	long := &Signals{Metadata: models.Metadata{
		MetaDescription: "this description is comfortably longer than the fifty character minimum",
	}}
	ai, _ = Analyze(long, "", false)
	if !ai.HasMetaDescription {
		t.Error("descriptions longer than 50 characters should count")
	}
}

func TestAnalyze_AuthorInfo(t *testing.T) {
	named := &Signals{Metadata: models.Metadata{Author: "Jane Writer"}}
	ai, _ := Analyze(named, "", false)
	if !ai.HasAuthorInfo {
		t.Error("named author should set HasAuthorInfo")
	}

	unknown := &Signals{Metadata: models.Metadata{Author: "Unknown"}}
	ai, _ = Analyze(unknown, "", false)
	if ai.HasAuthorInfo {
		t.Error("the Unknown placeholder should not count as an author")
	}
}

func TestAnalyze_SchemaSignals(t *testing.T) {
	sig := &Signals{SchemaTypes: []string{"BlogPosting", "Person", "BreadcrumbList", "HowTo"}}

	_, llmo := Analyze(sig, "", false)

	if !llmo.HasArticleSchema {
		t.Error("BlogPosting should count as article schema")
	}
	if !llmo.HasPersonSchema {
		t.Error("Person should set HasPersonSchema")
	}
	if !llmo.HasBreadcrumbSchema {
		t.Error("BreadcrumbList should set HasBreadcrumbSchema")
	}
	if !llmo.HasHowToSchema {
		t.Error("HowTo should set HasHowToSchema")
	}
	if llmo.HasFAQSchema {
		t.Error("no FAQ type present, HasFAQSchema should be false")
	}
}

func TestAnalyze_ContentReadability(t *testing.T) {
	sig := &Signals{ContentStructure: models.ContentStructure{WordCount: 501, ParagraphCount: 4}}
	_, llmo := Analyze(sig, "", false)
	if !llmo.ContentReadability {
		t.Error("501 words across 4 paragraphs should be readable")
	}

	sig = &Signals{ContentStructure: models.ContentStructure{WordCount: 501, ParagraphCount: 3}}
	_, llmo = Analyze(sig, "", false)
	if llmo.ContentReadability {
		t.Error("3 paragraphs should not pass the readability bar")
	}
}

func TestRobotsAllowsAI_MissingIsAllow(t *testing.T) {
	for _, txt := range []string{"", "NOT FOUND", "ERROR"} {
		if !RobotsAllowsAI(txt) {
			t.Errorf("RobotsAllowsAI(%q) = false, missing file is default-allow", txt)
		}
	}
}

func TestRobotsAllowsAI_BlocksAllAIAgents(t *testing.T) {
	robots := `User-agent: GPTBot
Disallow: /

User-agent: ClaudeBot
Disallow: /

User-agent: Claude-Web
Disallow: /

User-agent: PerplexityBot
Disallow: /

User-agent: Google-Extended
Disallow: /
`
	if RobotsAllowsAI(robots) {
		t.Error("robots.txt disallowing every AI agent should report blocked")
	}
}

func TestRobotsAllowsAI_BlanketDisallow(t *testing.T) {
	robots := "User-agent: *\nDisallow: /\n"
	if RobotsAllowsAI(robots) {
		t.Error("blanket disallow should block AI agents too")
	}
}

func TestRobotsAllowsAI_UnrelatedAgentBlock(t *testing.T) {
	robots := "User-agent: BadBot\nDisallow: /\n"
	if !RobotsAllowsAI(robots) {
		t.Error("a disallow scoped to an unrelated agent should not block AI agents")
	}
}

func TestRobotsAllowsAI_OneAgentAllowedSuffices(t *testing.T) {
	robots := `User-agent: GPTBot
Disallow: /

User-agent: ClaudeBot
Allow: /
`
	if !RobotsAllowsAI(robots) {
		t.Error("one allowed AI agent should be enough")
	}
}
