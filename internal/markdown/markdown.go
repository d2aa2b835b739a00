// Package markdown converts author-supplied Markdown into HTML that is safe
// to inject into a page. Rendering happens in two fixed steps: goldmark
// parses the Markdown, then a bluemonday allow-list policy strips anything
// executable from the result. Raw HTML in the source is never passed through
// unsanitized.
package markdown

import (
	"bytes"
	"html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
		extension.Linkify,
		highlighting.NewHighlighting( // Syntax highlighting for fenced code blocks
			highlighting.WithFormatOptions(
				// Class-based output so highlighting survives the sanitizer;
				// inline style attributes would be stripped.
				chromahtml.WithClasses(true),
			),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(), // Auto-generate heading IDs for anchors
	),
	goldmark.WithRendererOptions(
		goldmarkhtml.WithHardWraps(), // Single newline renders as a line break
	),
)

// policy is the fixed allow-list applied to every rendered document.
var policy = newPolicy()

// newPolicy builds the sanitization policy: structural and formatting tags,
// tables, images, and links survive; script tags, inline event handlers,
// and javascript: URLs do not. Disallowed elements are dropped outright,
// never escaped and shown.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	// Heading anchors generated by goldmark.
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")

	// Chroma emits class-annotated spans inside pre/code blocks.
	p.AllowAttrs("class").OnElements("pre", "code", "span")

	return p
}

// Render converts Markdown into sanitized HTML. It never fails: if goldmark
// cannot process the input, the source comes back as escaped literal text
// instead.
func Render(source string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "<p>" + html.EscapeString(source) + "</p>"
	}
	return policy.Sanitize(buf.String())
}
