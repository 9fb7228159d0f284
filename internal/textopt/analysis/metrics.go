package analysis

import (
	"strings"

	"github.com/edgecomet/seotext/pkg/types"
)

// Readability thresholds
const (
	easyReadingThreshold   = 80
	mediumReadingThreshold = 60
)

// Keyword density thresholds in percent
const (
	minOptimalDensity = 1.0
	maxOptimalDensity = 5.0
)

// Structure thresholds
const (
	minHeadings           = 2
	maxAvgParagraphLength = 200
	minSentences          = 5
)

// AnalyzeTextLength classifies the character count of text.
func AnalyzeTextLength(text string) types.TextLengthAnalysis {
	length := RuneLen(text)

	status := types.LengthOptimal
	switch {
	case length < types.MinOptimalTextLength:
		status = types.LengthTooShort
	case length > types.RecommendedTextLength:
		status = types.LengthTooLong
	}

	return types.TextLengthAnalysis{
		Current:     length,
		Recommended: types.RecommendedTextLength,
		Status:      status,
	}
}

// FleschIndex computes 180 - words/sentences - 58.5*syllables/words, rounded.
// Returns ok=false when text has no words or no sentences.
func FleschIndex(text string) (score int, ok bool) {
	words := CountWords(text)
	sentences := CountSentences(text)
	if words == 0 || sentences == 0 {
		return 0, false
	}

	w := float64(words)
	s := float64(sentences)
	syl := float64(CountSyllables(text))
	return roundHalfUp(180 - w/s - 58.5*syl/w), true
}

// AnalyzeReadability scores text and buckets the score into a complexity class.
// Degenerate input (no words or no sentences) scores 0 and is complex.
func AnalyzeReadability(text string) types.ReadabilityAnalysis {
	score, ok := FleschIndex(text)
	if !ok {
		return types.ReadabilityAnalysis{Complexity: types.ComplexityComplex}
	}

	avg := roundHalfUp(float64(CountWords(text)) / float64(CountSentences(text)))

	return types.ReadabilityAnalysis{
		FleschIndex:       score,
		AvgSentenceLength: avg,
		Complexity:        complexityFor(score),
	}
}

func complexityFor(score int) types.Complexity {
	switch {
	case score > easyReadingThreshold:
		return types.ComplexityEasy
	case score > mediumReadingThreshold:
		return types.ComplexityMedium
	default:
		return types.ComplexityComplex
	}
}

// AnalyzeKeywordDensity computes the global keyword ratio len(keywords)*100/words
// and a per-keyword density from case-insensitive literal occurrences.
func AnalyzeKeywordDensity(text string, keywords []string) types.KeywordDensityAnalysis {
	words := CountWords(text)
	lower := strings.ToLower(text)

	var total float64
	if words > 0 {
		total = float64(len(keywords)) * 100 / float64(words)
	}

	distribution := make([]types.KeywordDensityEntry, 0, len(keywords))
	for _, kw := range keywords {
		var density float64
		if words > 0 {
			density = float64(countOccurrences(lower, strings.ToLower(kw))) * 100 / float64(words)
		}
		distribution = append(distribution, types.KeywordDensityEntry{Keyword: kw, Density: density})
	}

	return types.KeywordDensityAnalysis{
		TotalDensity: total,
		Status:       densityStatusFor(total),
		Distribution: distribution,
	}
}

func densityStatusFor(density float64) types.DensityStatus {
	switch {
	case density < minOptimalDensity:
		return types.DensityTooLow
	case density > maxOptimalDensity:
		return types.DensityTooHigh
	default:
		return types.DensityOptimal
	}
}

// countOccurrences counts non-overlapping occurrences of sub in s.
// An empty needle never matches.
func countOccurrences(s, sub string) int {
	if sub == "" {
		return 0
	}
	return strings.Count(s, sub)
}

// AnalyzeStructure counts paragraphs, markdown headings and sentences and
// derives structural recommendations.
func AnalyzeStructure(text string) types.StructureAnalysis {
	text = normalizeNewlines(text)

	paragraphs := strings.Split(text, "\n\n")
	totalLen := 0
	for _, p := range paragraphs {
		totalLen += RuneLen(p)
	}
	avgParagraphLength := roundHalfUp(float64(totalLen) / float64(len(paragraphs)))

	headings := len(headingLineRe.FindAllStringIndex(text, -1))
	sentences := CountSentences(text)

	codes := make([]types.Recommendation, 0, 3)
	if headings < minHeadings {
		codes = append(codes, types.RecommendAddHeadings)
	}
	if avgParagraphLength > maxAvgParagraphLength {
		codes = append(codes, types.RecommendShortenParagraphs)
	}
	if sentences < minSentences {
		codes = append(codes, types.RecommendAddSentences)
	}

	return types.StructureAnalysis{
		Headings:            headings,
		Paragraphs:          len(paragraphs),
		Sentences:           sentences,
		AvgParagraphLength:  avgParagraphLength,
		RecommendationCodes: codes,
	}
}

// Analyze computes all four metrics for text and fills the labels in lang.
func Analyze(text string, keywords []string, lang types.Language) types.TextAnalysis {
	a := types.TextAnalysis{
		TextLength:     AnalyzeTextLength(text),
		Readability:    AnalyzeReadability(text),
		KeywordDensity: AnalyzeKeywordDensity(text, keywords),
		Structure:      AnalyzeStructure(text),
	}
	Localize(&a, lang)
	return a
}

// Localize (re)writes every human readable label of a in lang.
func Localize(a *types.TextAnalysis, lang types.Language) {
	a.TextLength.StatusLabel = a.TextLength.Status.Label(lang)
	a.Readability.ComplexityLabel = a.Readability.Complexity.Label(lang)
	a.KeywordDensity.StatusLabel = a.KeywordDensity.Status.Label(lang)

	recs := make([]string, 0, len(a.Structure.RecommendationCodes))
	for _, code := range a.Structure.RecommendationCodes {
		recs = append(recs, code.Label(lang))
	}
	a.Structure.Recommendations = recs
}
