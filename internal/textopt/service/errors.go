package service

import (
	"github.com/edgecomet/seotext/pkg/types"
)

type envelopeText struct {
	invalidError   string
	invalidMessage string
	internalError  string
	internalMsg    string
}

var envelopes = map[types.Language]envelopeText{
	types.LanguageGerman: {
		invalidError:   "Ungültige Anfragedaten",
		invalidMessage: "Bitte überprüfen Sie die eingegebenen Daten",
		internalError:  "Interner Serverfehler",
		internalMsg:    "Ein unerwarteter Fehler ist aufgetreten",
	},
	types.LanguageEnglish: {
		invalidError:   "Invalid request data",
		invalidMessage: "Please check the submitted data",
		internalError:  "Internal server error",
		internalMsg:    "An unexpected error occurred",
	},
}

// NewValidationErrorResponse builds the 400 body for fields in lang.
func NewValidationErrorResponse(lang types.Language, fields []types.FieldError) types.ValidationErrorResponse {
	text := envelopes[lang.OrDefault()]
	return types.ValidationErrorResponse{
		Error:   text.invalidError,
		Details: fields,
		Message: text.invalidMessage,
	}
}

// NewErrorResponse builds the 500 body carrying err's message.
func NewErrorResponse(lang types.Language, err error) types.ErrorResponse {
	text := envelopes[lang.OrDefault()]
	return types.ErrorResponse{
		Error:   text.internalError,
		Details: err.Error(),
		Message: text.internalMsg,
	}
}
