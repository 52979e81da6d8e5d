package markdown

import (
	"strings"
	"testing"

	"github.com/riverfjs/mathdown-go/internal/types"
)

func newPlain() *Transformer {
	return New(types.DefaultRenderConfig(), false)
}

func TestConvert_Heading(t *testing.T) {
	out, _, err := newPlain().Convert("# Title")
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "Title") {
		t.Errorf("want h1 Title, got %q", out)
	}
}

func TestConvert_GFMFeatures(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"bold", "**b**", "<strong>b</strong>"},
		{"italic", "*i*", "<em>i</em>"},
		{"strikethrough", "~~gone~~", "<del>gone</del>"},
		{"inline code", "`x`", "<code>x</code>"},
		{"link", "[go](https://go.dev)", `<a href="https://go.dev">go</a>`},
		{"blockquote", "> quoted", "<blockquote>"},
		{"hr", "---", "<hr>"},
		{"ordered list", "1. one\n2. two", "<ol>"},
		{"unordered list", "- a\n- b", "<ul>"},
		{"task list", "- [x] done", `type="checkbox"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := newPlain().Convert(tt.src)
			if err != nil {
				t.Fatalf("Convert error: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("Convert(%q) = %q, want contains %q", tt.src, out, tt.want)
			}
		})
	}
}

func TestConvert_NestedList(t *testing.T) {
	out, _, err := newPlain().Convert("- a\n  - a1\n- b")
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if strings.Count(out, "<ul>") < 2 {
		t.Errorf("want nested <ul>, got %q", out)
	}
}

func TestConvert_Table(t *testing.T) {
	src := "| a | b |\n|---|---|\n| 1 | 2 |"
	out, counts, err := newPlain().Convert(src)
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if !strings.Contains(out, "<table>") {
		t.Errorf("want table markup, got %q", out)
	}
	if counts.Tables != 1 {
		t.Errorf("Tables = %d, want 1", counts.Tables)
	}
}

func TestConvert_CodeFenceVerbatim(t *testing.T) {
	src := "```python\n**not bold** $x+1$\n```"
	out, counts, err := newPlain().Convert(src)
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if counts.CodeBlocks != 1 {
		t.Errorf("CodeBlocks = %d, want 1", counts.CodeBlocks)
	}
	if !strings.Contains(out, "**not bold** $x+1$") {
		t.Errorf("code fence content must stay verbatim: %q", out)
	}
	if !strings.Contains(out, "language-python") {
		t.Errorf("language tag lost: %q", out)
	}
}

func TestConvert_MalformedInputDegrades(t *testing.T) {
	tests := []string{
		"```\nunterminated fence",
		"**unmatched bold",
		"~~half strike",
		"[broken link](",
	}
	for _, src := range tests {
		out, _, err := newPlain().Convert(src)
		if err != nil {
			t.Errorf("Convert(%q) error: %v", src, err)
		}
		if out == "" {
			t.Errorf("Convert(%q) produced empty output", src)
		}
	}
}

func TestConvert_PlaceholderPassThrough(t *testing.T) {
	token := "" + "3" + ""
	out, _, err := newPlain().Convert("before " + token + " after")
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if !strings.Contains(out, token) {
		t.Errorf("placeholder token must pass through unmodified: %q", out)
	}
}

func TestConvert_HighlightingEnabled(t *testing.T) {
	tr := New(types.DefaultRenderConfig(), true)
	out, _, err := tr.Convert("```go\nfunc main() {}\n```")
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	// chroma 输出带 class 的 span 序列
	if !strings.Contains(out, "<span") {
		t.Errorf("want highlighted spans, got %q", out)
	}
}

func TestEscapePlain(t *testing.T) {
	got := EscapePlain("a <b> & c\nnext")
	if !strings.Contains(got, "&lt;b&gt;") || !strings.Contains(got, "&amp;") {
		t.Errorf("EscapePlain missing escapes: %q", got)
	}
	if !strings.Contains(got, "<br>\nnext") {
		t.Errorf("EscapePlain missing line break substitution: %q", got)
	}
}
