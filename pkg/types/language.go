package types

import (
	"encoding/json"
	"fmt"
)

// Language is one of the supported content locales.
type Language string

const (
	LanguageGerman  Language = "de"
	LanguageEnglish Language = "en"
)

// DefaultLanguage is used for messages when the request language is unknown.
const DefaultLanguage = LanguageGerman

// SupportedLanguages lists every accepted language tag in display order.
var SupportedLanguages = []Language{LanguageGerman, LanguageEnglish}

// IsValid reports whether l is a supported language tag.
func (l Language) IsValid() bool {
	switch l {
	case LanguageGerman, LanguageEnglish:
		return true
	}
	return false
}

// OrDefault returns l when valid, DefaultLanguage otherwise.
func (l Language) OrDefault() Language {
	if l.IsValid() {
		return l
	}
	return DefaultLanguage
}

// ParseLanguage converts a raw tag into a Language.
func ParseLanguage(s string) (Language, error) {
	l := Language(s)
	if !l.IsValid() {
		return "", fmt.Errorf("unsupported language %q", s)
	}
	return l, nil
}

// LengthStatus classifies a text's character count against the target range.
type LengthStatus int

const (
	LengthTooShort LengthStatus = iota
	LengthOptimal
	LengthTooLong
)

var lengthStatusCodes = [...]string{"too_short", "optimal", "too_long"}

var lengthStatusLabels = map[Language][3]string{
	LanguageGerman:  {"Zu kurz", "Optimal", "Zu lang"},
	LanguageEnglish: {"Too short", "Optimal", "Too long"},
}

func (s LengthStatus) String() string { return lengthStatusCodes[s] }

// Label returns the human readable status in the given language.
func (s LengthStatus) Label(lang Language) string { return lengthStatusLabels[lang.OrDefault()][s] }

func (s LengthStatus) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *LengthStatus) UnmarshalJSON(data []byte) error {
	return unmarshalCode(data, lengthStatusCodes[:], (*int)(s), "length status")
}

// Complexity is the readability bucket of a Flesch-style score.
type Complexity int

const (
	ComplexityEasy Complexity = iota
	ComplexityMedium
	ComplexityComplex
)

var complexityCodes = [...]string{"easy", "medium", "complex"}

var complexityLabels = map[Language][3]string{
	LanguageGerman:  {"Leicht", "Mittel", "Komplex"},
	LanguageEnglish: {"Easy", "Medium", "Complex"},
}

func (c Complexity) String() string { return complexityCodes[c] }

// Label returns the human readable complexity in the given language.
func (c Complexity) Label(lang Language) string { return complexityLabels[lang.OrDefault()][c] }

func (c Complexity) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }

func (c *Complexity) UnmarshalJSON(data []byte) error {
	return unmarshalCode(data, complexityCodes[:], (*int)(c), "complexity")
}

// DensityStatus classifies the total keyword density.
type DensityStatus int

const (
	DensityTooLow DensityStatus = iota
	DensityOptimal
	DensityTooHigh
)

var densityStatusCodes = [...]string{"too_low", "optimal", "too_high"}

var densityStatusLabels = map[Language][3]string{
	LanguageGerman:  {"Zu niedrig", "Optimal", "Zu hoch"},
	LanguageEnglish: {"Too low", "Optimal", "Too high"},
}

func (s DensityStatus) String() string { return densityStatusCodes[s] }

// Label returns the human readable status in the given language.
func (s DensityStatus) Label(lang Language) string {
	return densityStatusLabels[lang.OrDefault()][s]
}

func (s DensityStatus) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *DensityStatus) UnmarshalJSON(data []byte) error {
	return unmarshalCode(data, densityStatusCodes[:], (*int)(s), "density status")
}

// Recommendation is a structural improvement hint.
type Recommendation int

const (
	RecommendAddHeadings Recommendation = iota
	RecommendShortenParagraphs
	RecommendAddSentences
)

var recommendationCodes = [...]string{"add_headings", "shorten_paragraphs", "add_sentences"}

var recommendationLabels = map[Language][3]string{
	LanguageGerman:  {"Mehr Überschriften einbauen", "Lange Absätze kürzen", "Mehr Sätze hinzufügen"},
	LanguageEnglish: {"Add more headings", "Shorten long paragraphs", "Add more sentences"},
}

func (r Recommendation) String() string { return recommendationCodes[r] }

// Label returns the recommendation text in the given language.
func (r Recommendation) Label(lang Language) string {
	return recommendationLabels[lang.OrDefault()][r]
}

func (r Recommendation) MarshalJSON() ([]byte, error) { return json.Marshal(r.String()) }

func (r *Recommendation) UnmarshalJSON(data []byte) error {
	return unmarshalCode(data, recommendationCodes[:], (*int)(r), "recommendation")
}

func unmarshalCode(data []byte, codes []string, dst *int, kind string) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, code := range codes {
		if code == s {
			*dst = i
			return nil
		}
	}
	return fmt.Errorf("unknown %s %q", kind, s)
}
