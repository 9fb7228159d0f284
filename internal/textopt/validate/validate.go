// Package validate checks optimization and analysis payloads and produces
// itemized, localized field errors.
package validate

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/edgecomet/seotext/pkg/types"
)

// Field paths reported in FieldError.Field
const (
	FieldBody     = "body"
	FieldTexts    = "texts"
	FieldText     = "text"
	FieldTitle    = "title"
	FieldLanguage = "language"
)

type messageKey int

const (
	msgTextsRequired messageKey = iota
	msgTextEmpty
	msgTitleRequired
	msgTitleTooLong
	msgLanguageInvalid
	msgBodyMalformed
	msgTypeInvalid
)

var messages = map[types.Language]map[messageKey]string{
	types.LanguageGerman: {
		msgTextsRequired:   "Mindestens ein Text ist erforderlich",
		msgTextEmpty:       "Der Text darf nicht leer sein",
		msgTitleRequired:   "Der Titel ist erforderlich",
		msgTitleTooLong:    "Der Titel darf maximal 60 Zeichen lang sein",
		msgLanguageInvalid: `Sprache muss entweder "de" oder "en" sein`,
		msgBodyMalformed:   "Ungültiges JSON im Anfragetext",
		msgTypeInvalid:     "Ungültiger Datentyp",
	},
	types.LanguageEnglish: {
		msgTextsRequired:   "At least one text is required",
		msgTextEmpty:       "The text must not be empty",
		msgTitleRequired:   "The title is required",
		msgTitleTooLong:    "The title must be at most 60 characters long",
		msgLanguageInvalid: `Language must be either "de" or "en"`,
		msgBodyMalformed:   "Malformed JSON in request body",
		msgTypeInvalid:     "Invalid data type",
	},
}

func message(lang types.Language, key messageKey) string {
	return messages[lang.OrDefault()][key]
}

// ValidateRequest checks req and returns every violation found, in field
// order. An empty result means the request is valid. Messages use the request
// language when it is valid and German otherwise.
func ValidateRequest(req *types.OptimizationRequest) []types.FieldError {
	lang := req.Language.OrDefault()
	var errs []types.FieldError

	if len(req.Texts) == 0 {
		errs = append(errs, types.FieldError{Field: FieldTexts, Message: message(lang, msgTextsRequired)})
	}
	for i, text := range req.Texts {
		if text == "" {
			errs = append(errs, types.FieldError{
				Field:   FieldTexts + "." + strconv.Itoa(i),
				Message: message(lang, msgTextEmpty),
			})
		}
	}

	if !req.Language.IsValid() {
		errs = append(errs, types.FieldError{Field: FieldLanguage, Message: message(lang, msgLanguageInvalid)})
	}

	errs = append(errs, validateTitle(req.Title, lang)...)

	return errs
}

// ValidateAnalyzeRequest checks an /api/analyze payload.
func ValidateAnalyzeRequest(req *types.AnalyzeRequest) []types.FieldError {
	lang := req.Language.OrDefault()
	var errs []types.FieldError

	if req.Text == "" {
		errs = append(errs, types.FieldError{Field: FieldText, Message: message(lang, msgTextEmpty)})
	}
	if !req.Language.IsValid() {
		errs = append(errs, types.FieldError{Field: FieldLanguage, Message: message(lang, msgLanguageInvalid)})
	}
	return errs
}

func validateTitle(title string, lang types.Language) []types.FieldError {
	switch n := utf8.RuneCountInString(title); {
	case n == 0:
		return []types.FieldError{{Field: FieldTitle, Message: message(lang, msgTitleRequired)}}
	case n > types.MaxTitleLength:
		return []types.FieldError{{Field: FieldTitle, Message: message(lang, msgTitleTooLong)}}
	}
	return nil
}

// MalformedBody returns the single field error reported for an undecodable
// request body.
func MalformedBody(lang types.Language) []types.FieldError {
	return []types.FieldError{{Field: FieldBody, Message: message(lang, msgBodyMalformed)}}
}

// InvalidType returns the field error reported for a JSON value of the wrong
// type at field.
func InvalidType(field string, lang types.Language) []types.FieldError {
	return []types.FieldError{{Field: field, Message: message(lang, msgTypeInvalid)}}
}

// MetricLabel maps a field path to its top-level field so metric labels stay
// bounded: "texts.12" becomes "texts".
func MetricLabel(field string) string {
	top, _, _ := strings.Cut(field, ".")
	return top
}

// NormalizeKeywords trims every keyword and drops empty entries.
// The result is nil when no keyword remains.
func NormalizeKeywords(keywords []string) []string {
	var out []string
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
