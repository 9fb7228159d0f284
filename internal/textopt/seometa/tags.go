package seometa

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/edgecomet/seotext/pkg/types"
)

// MetaTags renders meta as a ready-to-paste <head> snippet, one tag per line.
// Attribute values and the title text are HTML-escaped.
func MetaTags(meta types.SeoMetadata) string {
	title := &html.Node{Type: html.ElementNode, Data: "title", DataAtom: atom.Title}
	title.AppendChild(&html.Node{Type: html.TextNode, Data: meta.Title})

	nodes := []*html.Node{
		title,
		metaNode("name", "description", meta.MetaDescription),
		metaNode("property", "og:title", meta.OgTitle),
		metaNode("property", "og:description", meta.OgDescription),
		metaNode("name", "twitter:title", meta.TwitterTitle),
		metaNode("name", "twitter:description", meta.TwitterDescription),
		metaNode("name", "keywords", strings.Join(meta.Keywords, ", ")),
	}

	var sb strings.Builder
	for i, n := range nodes {
		if i > 0 {
			sb.WriteByte('\n')
		}
		// Rendering into a strings.Builder cannot fail for well-formed nodes
		_ = html.Render(&sb, n)
	}
	return sb.String()
}

func metaNode(keyAttr, key, content string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "meta",
		DataAtom: atom.Meta,
		Attr: []html.Attribute{
			{Key: keyAttr, Val: key},
			{Key: "content", Val: content},
		},
	}
}
