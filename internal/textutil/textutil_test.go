package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain text", "hello world", "hello world"},
		{"tags removed", "<p>hello <strong>world</strong></p>", "hello world"},
		{"entities decoded", "a &amp; b &lt;c&gt;", "a & b <c>"},
		{"whitespace collapsed", "<p>one</p>\n\n<p>two   three</p>", "one two three"},
		{"script content dropped with tags", `<p>ok</p><script>alert(1)</script>`, "ok"},
		{"leading and trailing trimmed", "  <div> padded </div>  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripHTML(tt.in); got != tt.want {
				t.Errorf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain text", "just words", "just words"},
		{"heading", "# Title\nbody", "Title body"},
		{"deep heading", "###### Six\ntext", "Six text"},
		{"bold", "**bold** and __also__", "bold and also"},
		{"italic", "*it* and _that_", "it and that"},
		{"strikethrough", "~~gone~~ kept", "gone kept"},
		{"inline code", "run `go test` now", "run go test now"},
		{"fenced block dropped", "before\n```go\nfmt.Println()\n```\nafter", "before after"},
		{"link keeps text", "see [docs](https://example.com) here", "see docs here"},
		{"image keeps alt", "![a chart](chart.png) shown", "a chart shown"},
		{"table", "| a | b |\n|---|---|\n| 1 | 2 |", "a b 1 2"},
		{"bullet list", "- one\n- two", "one two"},
		{"numbered list", "1. first\n2. second", "first second"},
		{"blockquote", "> quoted line", "quoted line"},
		{"horizontal rule", "above\n---\nbelow", "above below"},
		{"unmatched marker stays literal", "2 * 3 equals 6", "2 * 3 equals 6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkdown(tt.in); got != tt.want {
				t.Errorf("StripMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStripMarkdownIdempotent(t *testing.T) {
	inputs := []string{
		"# Title\n**bold** *it* `code`\n- item\n> quote",
		"[link](url) and ![img](pic.png)",
		"| h1 | h2 |\n|----|----|\n| a | b |",
		"plain already",
	}

	for _, in := range inputs {
		once := StripMarkdown(in)
		twice := StripMarkdown(once)
		if once != twice {
			t.Errorf("not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"under limit", "short", 10, "short"},
		{"at limit", "exact", 5, "exact"},
		{"over limit", "truncate me", 8, "truncate" + Ellipsis},
		{"zero max", "abc", 0, Ellipsis},
		{"empty", "", 5, ""},
		{"multibyte counted as characters", "日本語のテキスト", 3, "日本語" + Ellipsis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestTruncateLengthContract(t *testing.T) {
	// When input exceeds max, the result is exactly max characters plus
	// the three-character ellipsis.
	text := strings.Repeat("x", 50)
	for _, n := range []int{0, 1, 10, 49} {
		got := Truncate(text, n)
		if utf8.RuneCountInString(got) != n+3 {
			t.Errorf("Truncate(len 50, %d): length %d, want %d", n, utf8.RuneCountInString(got), n+3)
		}
	}
}
