package models

// Verdict bands for the overall score.
const (
	VerdictExcellent        = "Excellent"
	VerdictGood             = "Good"
	VerdictNeedsImprovement = "Needs Improvement"
	VerdictPoor             = "Poor"
)

// Check statuses and impact levels used throughout the report.
const (
	StatusPass    = "pass"
	StatusWarning = "warning"
	StatusFail    = "fail"

	ImpactHigh   = "high"
	ImpactMedium = "medium"
	ImpactLow    = "low"

	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Check is one named sub-rule result inside a category.
type Check struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Impact  string `json:"impact"`
}

// CategoryScore is one of the four weighted audit categories.
type CategoryScore struct {
	Name            string   `json:"name"`
	Score           int      `json:"score"`
	Status          string   `json:"status"`
	Checks          []Check  `json:"checks"`
	Recommendations []string `json:"recommendations"`
}

// Categories groups the four fixed audit categories.
type Categories struct {
	CrawlAccess    CategoryScore `json:"crawl_access"`
	ContentSchema  CategoryScore `json:"content_schema"`
	EATReadability CategoryScore `json:"eat_readability"`
	OffsiteSignals CategoryScore `json:"offsite_signals"`
}

// PriorityFix is one deterministic, rule-generated remediation entry.
type PriorityFix struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Difficulty  string `json:"difficulty"`
	CodeExample string `json:"code_example,omitempty"`
}

// HeadingStructure summarizes the h1/h2 shape for the insights block.
type HeadingStructure struct {
	H1Count         int  `json:"h1_count"`
	H2Count         int  `json:"h2_count"`
	ProperHierarchy bool `json:"proper_hierarchy"`
}

// TechnicalInsights carries the raw crawl facts alongside the scores so the
// presentation layer can render them without re-crawling.
type TechnicalInsights struct {
	Redirects        int              `json:"redirects"`
	RobotsAccessible bool             `json:"robots_accessible"`
	LLMsTxtPresent   bool             `json:"llms_txt_present"`
	SchemaTypesFound []string         `json:"schema_types_found"`
	HeadingStructure HeadingStructure `json:"heading_structure"`
	ContentStructure ContentStructure `json:"contentStructure"`
	LinkAnalysis     LinkAnalysis     `json:"linkAnalysis"`
	AIAccessibility  AIAccessibility  `json:"aiAccessibility"`
	LLMOAnalysis     LLMOAnalysis     `json:"llmoAnalysis"`
}

// AuditReport is the scored audit for a single page. Category scores are
// capped at 25/30/25/20 and the overall score is their sum.
type AuditReport struct {
	OverallScore  int               `json:"overall_score"`
	Verdict       string            `json:"verdict"`
	Summary       string            `json:"summary"`
	Categories    Categories        `json:"categories"`
	PriorityFixes []PriorityFix     `json:"priority_fixes"`
	Strengths     []string          `json:"strengths"`
	Opportunities []string          `json:"opportunities"`
	Insights      TechnicalInsights `json:"technical_insights"`
}
