package types

// Text and metadata bounds
const (
	MaxTitleLength           = 60
	MaxMetaDescriptionLength = 155
	RecommendedTextLength    = 1000
	MinOptimalTextLength     = 500
	PrimaryKeywordCount      = 5
)

// OptimizationRequest is the payload of POST /api/optimize
type OptimizationRequest struct {
	Texts          []string `json:"texts"`
	Keywords       []string `json:"keywords,omitempty"`
	TargetAudience string   `json:"targetAudience,omitempty"`
	Tone           string   `json:"tone,omitempty"`
	SeoFocus       string   `json:"seoFocus,omitempty"`
	Language       Language `json:"language"`
	Title          string   `json:"title"`
}

// AnalyzeRequest is the payload of POST /api/analyze
type AnalyzeRequest struct {
	Text     string   `json:"text"`
	Keywords []string `json:"keywords,omitempty"`
	Language Language `json:"language"`
}

type TextLengthAnalysis struct {
	Current     int          `json:"current"`
	Recommended int          `json:"recommended"`
	Status      LengthStatus `json:"status"`
	StatusLabel string       `json:"statusLabel,omitempty"`
}

type ReadabilityAnalysis struct {
	FleschIndex       int        `json:"fleschIndex"`
	AvgSentenceLength int        `json:"avgSentenceLength"`
	Complexity        Complexity `json:"complexity"`
	ComplexityLabel   string     `json:"complexityLabel,omitempty"`
}

type KeywordDensityEntry struct {
	Keyword string  `json:"keyword"`
	Density float64 `json:"density"`
}

type KeywordDensityAnalysis struct {
	TotalDensity float64               `json:"totalDensity"`
	Status       DensityStatus         `json:"status"`
	StatusLabel  string                `json:"statusLabel,omitempty"`
	Distribution []KeywordDensityEntry `json:"distribution"`
}

type StructureAnalysis struct {
	Headings            int              `json:"headings"`
	Paragraphs          int              `json:"paragraphs"`
	Sentences           int              `json:"sentences"`
	AvgParagraphLength  int              `json:"avgParagraphLength"`
	Recommendations     []string         `json:"recommendations"`
	RecommendationCodes []Recommendation `json:"recommendationCodes"`
}

// TextAnalysis bundles the four independent metrics computed from one text.
type TextAnalysis struct {
	TextLength     TextLengthAnalysis     `json:"textLength"`
	Readability    ReadabilityAnalysis    `json:"readability"`
	KeywordDensity KeywordDensityAnalysis `json:"keywordDensity"`
	Structure      StructureAnalysis      `json:"structure"`
}

// TextBlock pairs a text with its analysis.
type TextBlock struct {
	Text     string       `json:"text"`
	Analysis TextAnalysis `json:"analysis"`
}

// SeoMetadata holds the generated page metadata.
type SeoMetadata struct {
	Title              string   `json:"title"`
	MetaDescription    string   `json:"metaDescription"`
	OgTitle            string   `json:"ogTitle"`
	OgDescription      string   `json:"ogDescription"`
	TwitterTitle       string   `json:"twitterTitle"`
	TwitterDescription string   `json:"twitterDescription"`
	Keywords           []string `json:"keywords"`
	LsiKeywords        []string `json:"lsiKeywords"`
}

// ParsedSections reports which marker sections the completion contained.
type ParsedSections struct {
	OptimizedText   bool `json:"optimizedText"`
	MetaDescription bool `json:"metaDescription"`
}

// CompletionInfo describes how the optimized text was obtained.
type CompletionInfo struct {
	Model    string         `json:"model"`
	Cached   bool           `json:"cached"`
	Degraded bool           `json:"degraded"`
	Parsed   ParsedSections `json:"parsed"`
}

// OptimizationResult is the 200 response of POST /api/optimize
type OptimizationResult struct {
	RequestID        string         `json:"requestId,omitempty"`
	MetaDescription  string         `json:"metaDescription"`
	OptimizedTexts   []TextBlock    `json:"optimizedTexts"`
	Keywords         []string       `json:"keywords"`
	SeoMetadata      SeoMetadata    `json:"seoMetadata"`
	MetaTags         string         `json:"metaTags"`
	DetectedLanguage string         `json:"detectedLanguage,omitempty"`
	LanguageMismatch bool           `json:"languageMismatch"`
	Completion       CompletionInfo `json:"completion"`
}

// FieldError is one itemized validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse is the 400 body.
type ValidationErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details"`
	Message string       `json:"message"`
}

// ErrorResponse is the 500 body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
	Message string `json:"message"`
}
