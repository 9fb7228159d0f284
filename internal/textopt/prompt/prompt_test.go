package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgecomet/seotext/pkg/types"
)

func TestBuild_German(t *testing.T) {
	req := &types.OptimizationRequest{
		Texts:          []string{"Erster Text.", "Zweiter Text."},
		Keywords:       []string{"seo", "lesbarkeit"},
		TargetAudience: "Einsteiger",
		Tone:           "locker",
		SeoFocus:       "lokal",
		Language:       types.LanguageGerman,
		Title:          "Mein Titel",
	}

	got, err := Build(req)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "Optimiere den folgenden Text für SEO und Lesbarkeit:\nTitel: Mein Titel\nErster Text.\n"))
	assert.NotContains(t, got, "Zweiter Text.")
	assert.Contains(t, got, "Verwende diese Schlüsselwörter: seo, lesbarkeit\n")
	assert.Contains(t, got, "Zielgruppe: Einsteiger\n")
	assert.Contains(t, got, "Ton: locker\n")
	assert.Contains(t, got, "SEO-Fokus: lokal\n")
	assert.Contains(t, got, "- Textlänge maximal 1000 Zeichen")
	assert.Contains(t, got, "- Keine Personalpronomen verwenden")
	assert.Contains(t, got, "- H2: 1-3 Unterüberschriften mit relevanten Keywords")
	assert.Contains(t, got, "OPTIMIZED_TEXT:\n[optimierter Text]\n\nMETA_DESCRIPTION:\n")
}

func TestBuild_OptionalLinesOmitted(t *testing.T) {
	req := &types.OptimizationRequest{
		Texts:    []string{"Text."},
		Language: types.LanguageGerman,
		Title:    "T",
	}

	got, err := Build(req)
	require.NoError(t, err)

	assert.NotContains(t, got, "Schlüsselwörter")
	assert.NotContains(t, got, "Zielgruppe")
	assert.NotContains(t, got, "Ton:")
	assert.NotContains(t, got, "SEO-Fokus")
	assert.Contains(t, got, "Titel: T\nText.\n\nWichtige Hinweise:")
}

func TestBuild_English(t *testing.T) {
	req := &types.OptimizationRequest{
		Texts:    []string{"Some text."},
		Keywords: []string{"caching"},
		Language: types.LanguageEnglish,
		Title:    "Speed",
	}

	got, err := Build(req)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "Optimize the following text for SEO and readability:\nTitle: Speed\n"))
	assert.Contains(t, got, "Use these keywords: caching\n")
	assert.Contains(t, got, "- Do not use personal pronouns")
	assert.Contains(t, got, OptimizedTextMarker)
	assert.Contains(t, got, MetaDescriptionMarker)
}

func TestBuild_NoText(t *testing.T) {
	_, err := Build(&types.OptimizationRequest{Language: types.LanguageEnglish})
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		wantText string
		wantMeta string
	}{
		{
			name:     "both sections",
			answer:   "OPTIMIZED_TEXT:\n## Titel\nNeuer Text.\n\nMETA_DESCRIPTION:\nKurze Beschreibung.",
			wantText: "## Titel\nNeuer Text.",
			wantMeta: "Kurze Beschreibung.",
		},
		{
			name:     "preamble ignored",
			answer:   "Sure, here you go!\nOPTIMIZED_TEXT: Body\nMETA_DESCRIPTION: Meta",
			wantText: "Body",
			wantMeta: "Meta",
		},
		{
			name:     "only optimized text",
			answer:   "OPTIMIZED_TEXT:\nBody only",
			wantText: "Body only",
		},
		{
			name:     "only meta description",
			answer:   "META_DESCRIPTION: Meta only",
			wantMeta: "Meta only",
		},
		{
			name:   "no markers",
			answer: "Just some prose without markers.",
		},
		{
			name:   "markers are case sensitive",
			answer: "optimized_text: body\nmeta_description: meta",
		},
		{
			name:     "empty optimized section",
			answer:   "OPTIMIZED_TEXT:\n   \nMETA_DESCRIPTION: Meta",
			wantMeta: "Meta",
		},
		{
			name:     "second meta marker kept in meta",
			answer:   "OPTIMIZED_TEXT: a META_DESCRIPTION: b META_DESCRIPTION: c",
			wantText: "a",
			wantMeta: "b META_DESCRIPTION: c",
		},
		{
			name:     "optimized marker after meta marker",
			answer:   "META_DESCRIPTION: m OPTIMIZED_TEXT: t",
			wantMeta: "m OPTIMIZED_TEXT: t",
		},
		{
			name: "empty answer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.answer)
			assert.Equal(t, tt.wantText, got.OptimizedText)
			assert.Equal(t, tt.wantMeta, got.MetaDescription)
			assert.Equal(t, types.ParsedSections{
				OptimizedText:   tt.wantText != "",
				MetaDescription: tt.wantMeta != "",
			}, got.Sections())
		})
	}
}
