// Package seometa derives SEO page metadata (title, meta description, social
// card fields, primary and LSI keywords) from a title and body text.
package seometa

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/edgecomet/seotext/pkg/types"
)

const (
	minKeywordLength = 4 // tokens of 3 runes or fewer are ignored
	metaKeywordCount = 3 // keywords considered for the meta description
)

// Generate builds SeoMetadata for text and title in lang.
// It is deterministic: equal inputs always yield equal metadata.
func Generate(text, title string, lang types.Language) types.SeoMetadata {
	lang = lang.OrDefault()

	keywords := ExtractKeywords(title+" "+text, lang, types.PrimaryKeywordCount)
	description := MetaDescription(text, keywords, lang)

	return types.SeoMetadata{
		Title:              title + titleSuffix[lang],
		MetaDescription:    description,
		OgTitle:            title,
		OgDescription:      description,
		TwitterTitle:       title,
		TwitterDescription: description,
		Keywords:           keywords,
		LsiKeywords:        LSIKeywords(keywords, lang),
	}
}

// Tokenize lowercases text and splits it on every rune that is neither a
// letter nor a digit.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ExtractKeywords ranks non-stopword tokens longer than three runes by
// frequency and returns the top n. Ties keep first-occurrence order.
func ExtractKeywords(text string, lang types.Language, n int) []string {
	type wordCount struct {
		word  string
		count int
	}

	index := make(map[string]int)
	var counts []wordCount
	for _, token := range Tokenize(text) {
		if utf8.RuneCountInString(token) < minKeywordLength || IsStopWord(token, lang) {
			continue
		}
		if i, ok := index[token]; ok {
			counts[i].count++
			continue
		}
		index[token] = len(counts)
		counts = append(counts, wordCount{word: token, count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})

	if len(counts) > n {
		counts = counts[:n]
	}
	keywords := make([]string, len(counts))
	for i, wc := range counts {
		keywords[i] = wc.word
	}
	return keywords
}

// LSIKeywords synthesizes the fixed per-language variants of every keyword,
// deduplicated in generation order.
func LSIKeywords(keywords []string, lang types.Language) []string {
	suffixes := lsiSuffixes[lang.OrDefault()]

	seen := make(map[string]struct{}, len(keywords)*len(suffixes))
	variants := make([]string, 0, len(keywords)*len(suffixes))
	for _, kw := range keywords {
		for _, suffix := range suffixes {
			v := kw + suffix
			if utf8.RuneCountInString(v) < minKeywordLength {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			variants = append(variants, v)
		}
	}
	return variants
}

// FirstSentence returns the trimmed text before the first '.', '!' or '?'.
func FirstSentence(text string) string {
	if i := strings.IndexAny(text, ".!?"); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

// MetaDescription starts from the first sentence of text and appends a
// "learn more" sentence naming the top keywords it does not yet mention, as
// long as the result stays within the meta description budget. The result
// never exceeds types.MaxMetaDescriptionLength runes.
func MetaDescription(text string, keywords []string, lang types.Language) string {
	description := FirstSentence(text)

	if utf8.RuneCountInString(description) < types.MaxMetaDescriptionLength {
		top := keywords
		if len(top) > metaKeywordCount {
			top = top[:metaKeywordCount]
		}

		lower := strings.ToLower(description)
		var missing []string
		for _, kw := range top {
			if !strings.Contains(lower, kw) {
				missing = append(missing, kw)
			}
		}

		if len(missing) > 0 {
			extra := fmt.Sprintf(learnMoreFormat[lang.OrDefault()], strings.Join(missing, ", "))
			if utf8.RuneCountInString(description)+utf8.RuneCountInString(extra) <= types.MaxMetaDescriptionLength {
				description += extra
			}
		}
	}

	return strings.TrimSpace(TruncateRunes(description, types.MaxMetaDescriptionLength))
}

// TruncateRunes truncates s to at most maxLen runes.
func TruncateRunes(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen])
}
