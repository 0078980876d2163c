package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"heading", "# Hello", "<h1"},
		{"bold", "some **bold** text", "<strong>bold</strong>"},
		{"link", "[site](https://example.com)", `<a href="https://example.com"`},
		{"table", "| a | b |\n|---|---|\n| 1 | 2 |", "<table>"},
		{"raw html passthrough", `<div class="x">kept</div>`, `<div class="x">kept</div>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.source)
			if err != nil {
				t.Fatalf("ToHTML(%q): %v", tt.source, err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("ToHTML(%q) = %q, want substring %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestToHTMLHighlightsFencedCode(t *testing.T) {
	got, err := ToHTML("```go\nfmt.Println(\"hi\")\n```")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	// The highlighter emits inline-styled spans instead of a bare <pre><code>.
	if !strings.Contains(got, "style") {
		t.Errorf("expected highlighted output, got %q", got)
	}
}
