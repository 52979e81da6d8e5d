package postprocess

import (
	"strings"
	"testing"

	"github.com/riverfjs/mathdown-go/internal/types"
)

func TestWrapTables(t *testing.T) {
	html := "<p>a</p>\n<table>\n<tr><td>1</td></tr>\n</table>\n<p>b</p>"
	got := WrapTables(html, "table-scroll")
	if !strings.Contains(got, `<div class="table-scroll"><table>`) {
		t.Errorf("table not wrapped: %q", got)
	}
	if !strings.Contains(got, "</table></div>") {
		t.Errorf("wrapper not closed: %q", got)
	}
	if !strings.Contains(got, "<tr><td>1</td></tr>") {
		t.Errorf("table content altered: %q", got)
	}
}

func TestWrapTables_Multiple(t *testing.T) {
	html := "<table></table><p>x</p><table></table>"
	got := WrapTables(html, "w")
	if strings.Count(got, `<div class="w">`) != 2 {
		t.Errorf("want 2 wrappers, got %q", got)
	}
}

func TestWrapTables_Idempotent(t *testing.T) {
	html := "<table><tr><td>1</td></tr></table>"
	once := WrapTables(html, "w")
	twice := WrapTables(once, "w")
	if once != twice {
		t.Errorf("WrapTables not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestWrapTables_UnclosedTable(t *testing.T) {
	html := "<p>a</p><table><tr>"
	got := WrapTables(html, "w")
	if got != html {
		t.Errorf("unclosed table must stay untouched: %q", got)
	}
}

func TestCollapseBlankLines(t *testing.T) {
	html := "<p>a</p>\n\n\n\n<p>b</p>"
	got := CollapseBlankLines(html)
	if got != "<p>a</p>\n\n<p>b</p>" {
		t.Errorf("CollapseBlankLines = %q", got)
	}
}

func TestCollapseBlankLines_PreIsOpaque(t *testing.T) {
	html := "<p>a</p>\n\n\n\n<pre><code>x\n\n\n\ny</code></pre>\n\n\n<p>b</p>"
	got := CollapseBlankLines(html)
	if !strings.Contains(got, "x\n\n\n\ny") {
		t.Errorf("code block content must stay opaque: %q", got)
	}
	if strings.Contains(got, "</p>\n\n\n") {
		t.Errorf("blank lines outside pre not collapsed: %q", got)
	}
}

func TestProcess_Combined(t *testing.T) {
	html := "<table></table>\n\n\n\n<p>x</p>"
	got := Process(html, types.DefaultRenderConfig())
	if !strings.Contains(got, `<div class="table-scroll">`) {
		t.Errorf("Process missing table wrapper: %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("Process left excess blank lines: %q", got)
	}
}
