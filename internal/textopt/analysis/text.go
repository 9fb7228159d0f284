// Package analysis implements the heuristic text metrics: length classification,
// Flesch-style readability, keyword density and heading/paragraph structure.
//
// All functions are pure. Lengths are counted in runes.
package analysis

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	sentenceDelimRe = regexp.MustCompile(`[.!?]+`)
	vowelClusterRe  = regexp.MustCompile(`[aeiouyäöü]+`)
	headingLineRe   = regexp.MustCompile(`(?m)^#{1,6}[ \t]+\S`)
)

// CountWords returns the number of whitespace-separated fields.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// SplitSentences splits text on runs of '.', '!' and '?' and returns the
// non-empty, trimmed segments.
func SplitSentences(text string) []string {
	parts := sentenceDelimRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// CountSentences returns len(SplitSentences(text)).
func CountSentences(text string) int {
	return len(SplitSentences(text))
}

// CountSyllables approximates syllables as the number of vowel clusters.
func CountSyllables(text string) int {
	return len(vowelClusterRe.FindAllStringIndex(strings.ToLower(text), -1))
}

// RuneLen returns the character count of s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// roundHalfUp rounds x to the nearest integer with .5 going towards +Inf.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func normalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}
