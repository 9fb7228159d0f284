package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguage_IsValid(t *testing.T) {
	assert.True(t, LanguageGerman.IsValid())
	assert.True(t, LanguageEnglish.IsValid())
	assert.False(t, Language("fr").IsValid())
	assert.False(t, Language("").IsValid())
	assert.False(t, Language("DE").IsValid(), "tags are case-sensitive")
}

func TestLanguage_OrDefault(t *testing.T) {
	assert.Equal(t, LanguageEnglish, LanguageEnglish.OrDefault())
	assert.Equal(t, LanguageGerman, Language("fr").OrDefault())
}

func TestParseLanguage(t *testing.T) {
	l, err := ParseLanguage("en")
	require.NoError(t, err)
	assert.Equal(t, LanguageEnglish, l)

	_, err = ParseLanguage("es")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported language")
}

func TestStatusLabels(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"length de", LengthTooShort.Label(LanguageGerman), "Zu kurz"},
		{"length en", LengthTooLong.Label(LanguageEnglish), "Too long"},
		{"complexity de", ComplexityComplex.Label(LanguageGerman), "Komplex"},
		{"complexity en", ComplexityEasy.Label(LanguageEnglish), "Easy"},
		{"density de", DensityTooHigh.Label(LanguageGerman), "Zu hoch"},
		{"density en", DensityOptimal.Label(LanguageEnglish), "Optimal"},
		{"recommendation de", RecommendAddHeadings.Label(LanguageGerman), "Mehr Überschriften einbauen"},
		{"recommendation en", RecommendAddSentences.Label(LanguageEnglish), "Add more sentences"},
		{"unknown language falls back to german", RecommendShortenParagraphs.Label("xx"), "Lange Absätze kürzen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestStatusJSON(t *testing.T) {
	analysis := TextAnalysis{
		TextLength:     TextLengthAnalysis{Current: 10, Recommended: 1000, Status: LengthTooShort},
		Readability:    ReadabilityAnalysis{Complexity: ComplexityMedium},
		KeywordDensity: KeywordDensityAnalysis{Status: DensityTooHigh},
		Structure: StructureAnalysis{
			RecommendationCodes: []Recommendation{RecommendAddHeadings, RecommendAddSentences},
		},
	}

	data, err := json.Marshal(analysis)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"status":"too_short"`)
	assert.Contains(t, s, `"complexity":"medium"`)
	assert.Contains(t, s, `"status":"too_high"`)
	assert.Contains(t, s, `"recommendationCodes":["add_headings","add_sentences"]`)

	var decoded TextAnalysis
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, analysis, decoded)
}

func TestStatusJSON_UnknownCode(t *testing.T) {
	var c Complexity
	err := json.Unmarshal([]byte(`"trivial"`), &c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown complexity")
}
