package requestid

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Header carries the request ID in both directions.
const Header = "X-Request-ID"

// MaxLength matches the length of a canonical UUID.
const MaxLength = 36

var (
	invalidCharsRe      = regexp.MustCompile(`[^a-zA-Z0-9-]+`)
	consecutiveHyphenRe = regexp.MustCompile(`-{2,}`)
)

// Resolve returns a usable request ID for a client supplied value.
// The value is sanitized to [a-zA-Z0-9-] with spaces turned into hyphens and
// capped at MaxLength. Empty results are replaced by a new UUID.
func Resolve(supplied string) string {
	if id := Sanitize(supplied); id != "" {
		return id
	}
	return New()
}

// New returns a random UUID request ID.
func New() string {
	return uuid.New().String()
}

// Sanitize strips everything but letters, digits and single inner hyphens.
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = invalidCharsRe.ReplaceAllString(s, "")
	s = consecutiveHyphenRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > MaxLength {
		s = strings.TrimRight(s[:MaxLength], "-")
	}
	return s
}
