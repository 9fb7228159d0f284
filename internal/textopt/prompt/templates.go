package prompt

import (
	"text/template"

	"github.com/edgecomet/seotext/pkg/types"
)

const germanTemplate = `Optimiere den folgenden Text für SEO und Lesbarkeit:
Titel: {{.Title}}
{{.Text}}{{if .Keywords}}
Verwende diese Schlüsselwörter: {{join .Keywords ", "}}{{end}}{{if .TargetAudience}}
Zielgruppe: {{.TargetAudience}}{{end}}{{if .Tone}}
Ton: {{.Tone}}{{end}}{{if .SeoFocus}}
SEO-Fokus: {{.SeoFocus}}{{end}}

Wichtige Hinweise:
- Textlänge maximal 1000 Zeichen
- Keine Personalpronomen verwenden
- Keine Aufzählungen verwenden
- Klare, prägnante Sätze
- Natürliche Keyword-Platzierung
- Gute Lesbarkeit
- Locker gesprochener Text

SEO-Headline-Struktur:
- H2: 1-3 Unterüberschriften mit relevanten Keywords
- H3: Weitere Unterpunkte bei Bedarf
- Keywords in Überschriften natürlich einbauen
- Überschriften als Fragen oder Aussagen formulieren
- Klare Hierarchie der Überschriften

Antworte im Format:
` + OptimizedTextMarker + `
[optimierter Text]

` + MetaDescriptionMarker + `
[Meta-Beschreibung mit Keywords]
`

const englishTemplate = `Optimize the following text for SEO and readability:
Title: {{.Title}}
{{.Text}}{{if .Keywords}}
Use these keywords: {{join .Keywords ", "}}{{end}}{{if .TargetAudience}}
Target audience: {{.TargetAudience}}{{end}}{{if .Tone}}
Tone: {{.Tone}}{{end}}{{if .SeoFocus}}
SEO focus: {{.SeoFocus}}{{end}}

Important notes:
- Maximum text length of 1000 characters
- Do not use personal pronouns
- Do not use bullet lists
- Clear, concise sentences
- Natural keyword placement
- Good readability
- Casual, conversational tone

SEO headline structure:
- H2: 1-3 subheadings with relevant keywords
- H3: further subsections where needed
- Work keywords into headings naturally
- Phrase headings as questions or statements
- Keep a clear heading hierarchy

Answer in the format:
` + OptimizedTextMarker + `
[optimized text]

` + MetaDescriptionMarker + `
[meta description with keywords]
`

var templates = map[types.Language]*template.Template{
	types.LanguageGerman:  mustParse("de", germanTemplate),
	types.LanguageEnglish: mustParse("en", englishTemplate),
}

func mustParse(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).Parse(text))
}
