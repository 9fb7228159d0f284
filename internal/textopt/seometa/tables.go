package seometa

import "github.com/edgecomet/seotext/pkg/types"

// stopWords are excluded from keyword frequency ranking.
var stopWords = map[types.Language]map[string]struct{}{
	types.LanguageGerman: setOf(
		"der", "die", "das", "und", "oder", "aber", "für", "mit", "bei", "seit",
		"von", "aus", "nach", "zu", "zum", "zur", "in", "im", "an", "am", "auf",
		"über", "unter", "hinter", "neben", "zwischen",
	),
	types.LanguageEnglish: setOf(
		"the", "and", "or", "but", "for", "with", "at", "by", "from", "to", "in",
		"on", "of", "a", "an", "is", "are", "was", "were", "be", "been", "being",
	),
}

// lsiSuffixes are appended to each primary keyword to form LSI variants:
// inflections, derivations, then domain compounds.
var lsiSuffixes = map[types.Language][]string{
	types.LanguageGerman: {
		"e", "en", "er", "es",
		"ung", "lich", "keit",
		"bereich", "system", "prozess",
	},
	types.LanguageEnglish: {
		"s", "ing", "ed", "er",
		"al", "ity", "ion",
		"system", "process", "management",
	},
}

var titleSuffix = map[types.Language]string{
	types.LanguageGerman:  " | Ihre Website",
	types.LanguageEnglish: " | Your Website",
}

// learnMoreFormat wraps the comma separated keywords not yet mentioned in the
// meta description.
var learnMoreFormat = map[types.Language]string{
	types.LanguageGerman:  " Erfahren Sie mehr über %s.",
	types.LanguageEnglish: " Learn more about %s.",
}

func setOf(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// IsStopWord reports whether word is a stopword in lang.
func IsStopWord(word string, lang types.Language) bool {
	_, ok := stopWords[lang.OrDefault()][word]
	return ok
}
