package models

// RedirectHop is one entry in the redirect chain. The first hop is the
// originally requested URL, the last is the terminal response.
type RedirectHop struct {
	URL    string `json:"url"`
	Status int    `json:"status"`
}

// Metadata holds the flat set of fields extracted from the document head.
// Every field defaults to the empty string when the page does not carry it.
type Metadata struct {
	Title           string `json:"title"`
	MetaDescription string `json:"metaDescription"`
	Author          string `json:"author"`
	Keywords        string `json:"keywords"`
	Language        string `json:"language"`
	Robots          string `json:"robots"`
	OGTitle         string `json:"ogTitle"`
	OGDescription   string `json:"ogDescription"`
	OGType          string `json:"ogType"`
	TwitterCard     string `json:"twitterCard"`
	Canonical       string `json:"canonical"`
}

// Headings maps each heading level to the trimmed text of every occurrence,
// in document order, duplicates preserved.
type Headings struct {
	H1 []string `json:"h1"`
	H2 []string `json:"h2"`
	H3 []string `json:"h3"`
	H4 []string `json:"h4"`
	H5 []string `json:"h5"`
	H6 []string `json:"h6"`
}

// ContentStructure carries the shape-of-content counters used by scoring.
type ContentStructure struct {
	WordCount          int  `json:"wordCount"`
	ParagraphCount     int  `json:"paragraphCount"`
	ListCount          int  `json:"listCount"`
	ImageCount         int  `json:"imageCount"`
	LinkCount          int  `json:"linkCount"`
	HasTableOfContents bool `json:"hasTableOfContents"`
	HasFAQ             bool `json:"hasFAQ"`

	// CodeBlockCount keeps the historical wire name "hasCodeBlocks";
	// it is a count, not a flag.
	CodeBlockCount int `json:"hasCodeBlocks"`
}

// Link is one anchor tag found in the document.
type Link struct {
	URL        string `json:"url"`
	Text       string `json:"text"`
	IsExternal bool   `json:"isExternal"`
	IsCitation bool   `json:"isCitation"`
}

// LinkAnalysis aggregates the per-anchor records into citation signals.
type LinkAnalysis struct {
	TotalLinks      int  `json:"totalLinks"`
	ExternalLinks   int  `json:"externalLinks"`
	CitationLinks   int  `json:"citationLinks"`
	HasReferences   bool `json:"hasReferences"`
	HasBibliography bool `json:"hasBibliography"`
}

// AIAccessibility holds the derived crawlability facts. All fields are real
// booleans on the wire, never stringified.
type AIAccessibility struct {
	RobotsAllowsAI     bool `json:"robotsAllowsAI"`
	HasLLMsTxt         bool `json:"hasLLMsTxt"`
	HasStructuredData  bool `json:"hasStructuredData"`
	HasProperHeadings  bool `json:"hasProperHeadings"`
	HasAuthorInfo      bool `json:"hasAuthorInfo"`
	HasMetaDescription bool `json:"hasMetaDescription"`
}

// LLMOAnalysis holds the citation-readiness facts derived for LLM discovery.
type LLMOAnalysis struct {
	HasArticleSchema    bool `json:"hasArticleSchema"`
	HasPersonSchema     bool `json:"hasPersonSchema"`
	HasBreadcrumbSchema bool `json:"hasBreadcrumbSchema"`
	HasFAQSchema        bool `json:"hasFAQSchema"`
	HasHowToSchema      bool `json:"hasHowToSchema"`
	HasProperMetaTags   bool `json:"hasProperMetaTags"`
	HasCanonical        bool `json:"hasCanonical"`
	HasLanguageTag      bool `json:"hasLanguageTag"`
	ContentReadability  bool `json:"contentReadability"`
	HasCitations        bool `json:"hasCitations"`
}

// Values for CrawlReport.LLMsStatus.
const (
	LLMsFound    = "found"
	LLMsNotFound = "not_found"
)

// CrawlReport is the full structured signal set for one crawled page.
// It is the response body of GET /api/v1/crawl and the input to scoring.
type CrawlReport struct {
	PostURL          string           `json:"postUrl"`
	FinalURL         string           `json:"finalUrl"`
	RedirectChain    []RedirectHop    `json:"redirectChain"`
	RobotsTxt        string           `json:"robotsTxt"`
	LLMsStatus       string           `json:"llmsStatus"`
	Metadata         Metadata         `json:"metadata"`
	Headings         Headings         `json:"headings"`
	SchemaTypes      []string         `json:"schemaTypes"`
	ContentStructure ContentStructure `json:"contentStructure"`
	LinkAnalysis     LinkAnalysis     `json:"linkAnalysis"`
	AIAccessibility  AIAccessibility  `json:"aiAccessibility"`
	LLMOAnalysis     LLMOAnalysis     `json:"llmoAnalysis"`
}
