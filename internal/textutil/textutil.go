// Package textutil derives plain-text previews from stored content.
// StripHTML works on already-rendered HTML, StripMarkdown on raw Markdown
// without invoking the full rendering pipeline. Both collapse whitespace
// so the result is a single line suitable for excerpt display.
package textutil

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "..."

// stripPolicy removes every tag; only text nodes survive.
var stripPolicy = bluemonday.StrictPolicy()

var whitespace = regexp.MustCompile(`\s+`)

// Markdown syntax markers, removed in order. Fenced blocks go before inline
// code so the whole block is dropped, and images before links so alt text
// survives the link rule.
var (
	mdHeading    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	mdBold       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	mdBoldAlt    = regexp.MustCompile(`__(.*?)__`)
	mdItalic     = regexp.MustCompile(`\*(.*?)\*`)
	mdItalicAlt  = regexp.MustCompile(`_(.*?)_`)
	mdStrike     = regexp.MustCompile(`~~(.*?)~~`)
	mdFence      = regexp.MustCompile("(?s)```.*?```")
	mdCode       = regexp.MustCompile("`(.*?)`")
	mdImage      = regexp.MustCompile(`!\[([^\]]*)\]\([^)]+\)`)
	mdLink       = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	mdTableRule  = regexp.MustCompile(`(?m)^[\s\-:|]+$`)
	mdBulletItem = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	mdNumItem    = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	mdQuote      = regexp.MustCompile(`(?m)^>\s+`)
	mdHRule      = regexp.MustCompile(`(?m)^[-*]{3,}$`)
)

// StripHTML removes all tags from rendered HTML, decodes entities, and
// collapses whitespace runs (including newlines) to single spaces.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	text := stripPolicy.Sanitize(s)
	text = html.UnescapeString(text)
	return collapse(text)
}

// StripMarkdown removes Markdown syntax markers without rendering. Fenced
// code blocks are dropped entirely; link and image targets are dropped while
// their text survives. Unmatched markers are left as literal characters, so
// the function is safe on arbitrary text.
func StripMarkdown(s string) string {
	if s == "" {
		return ""
	}
	text := mdFence.ReplaceAllString(s, "")
	text = mdHeading.ReplaceAllString(text, "")
	text = mdBold.ReplaceAllString(text, "$1")
	text = mdBoldAlt.ReplaceAllString(text, "$1")
	text = mdItalic.ReplaceAllString(text, "$1")
	text = mdItalicAlt.ReplaceAllString(text, "$1")
	text = mdStrike.ReplaceAllString(text, "$1")
	text = mdCode.ReplaceAllString(text, "$1")
	text = mdImage.ReplaceAllString(text, "$1")
	text = mdLink.ReplaceAllString(text, "$1")
	text = strings.ReplaceAll(text, "|", " ")
	text = mdTableRule.ReplaceAllString(text, "")
	text = mdBulletItem.ReplaceAllString(text, "")
	text = mdNumItem.ReplaceAllString(text, "")
	text = mdQuote.ReplaceAllString(text, "")
	text = mdHRule.ReplaceAllString(text, "")
	return collapse(text)
}

// Truncate returns text unchanged when it fits in max characters, otherwise
// the first max characters followed by an ellipsis. Characters, not bytes:
// multi-byte runes count as one.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + Ellipsis
}

func collapse(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
