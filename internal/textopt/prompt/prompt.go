// Package prompt builds the completion prompt for an optimization request and
// parses the marker-delimited answer.
package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/edgecomet/seotext/pkg/types"
)

// Answer markers, matched case-sensitively
const (
	OptimizedTextMarker   = "OPTIMIZED_TEXT:"
	MetaDescriptionMarker = "META_DESCRIPTION:"
)

var funcs = template.FuncMap{"join": strings.Join}

type templateData struct {
	Title          string
	Text           string
	Keywords       []string
	TargetAudience string
	Tone           string
	SeoFocus       string
}

// Build renders the instruction prompt for req in the request language.
// Only the first text is sent. Keywords are expected to be normalized.
func Build(req *types.OptimizationRequest) (string, error) {
	if len(req.Texts) == 0 {
		return "", fmt.Errorf("no text to optimize")
	}

	data := templateData{
		Title:          req.Title,
		Text:           req.Texts[0],
		Keywords:       req.Keywords,
		TargetAudience: req.TargetAudience,
		Tone:           req.Tone,
		SeoFocus:       req.SeoFocus,
	}

	var sb strings.Builder
	if err := templates[req.Language.OrDefault()].Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return sb.String(), nil
}

// Response holds the sections extracted from a completion answer.
// Empty fields mean the section was missing or blank.
type Response struct {
	OptimizedText   string
	MetaDescription string
}

// Sections reports which sections were found.
func (r Response) Sections() types.ParsedSections {
	return types.ParsedSections{
		OptimizedText:   r.OptimizedText != "",
		MetaDescription: r.MetaDescription != "",
	}
}

// Parse extracts the optimized text and meta description from answer.
//
// The optimized text is everything after the first OPTIMIZED_TEXT: marker up
// to the first META_DESCRIPTION: marker (or the end of the answer). The meta
// description is everything after the first META_DESCRIPTION: marker. Both are
// trimmed. Text outside the markers is ignored.
func Parse(answer string) Response {
	var resp Response

	body, meta, hasMeta := strings.Cut(answer, MetaDescriptionMarker)
	if hasMeta {
		resp.MetaDescription = strings.TrimSpace(meta)
	}

	if i := strings.Index(body, OptimizedTextMarker); i >= 0 {
		resp.OptimizedText = strings.TrimSpace(body[i+len(OptimizedTextMarker):])
	}

	return resp
}
