package postprocess

import (
	"regexp"
	"strings"

	"github.com/riverfjs/mathdown-go/internal/types"
)

var (
	preRegionRe  = regexp.MustCompile(`(?s)<pre.*?</pre>`)
	blankLinesRe = regexp.MustCompile(`\n{3,}`)
)

// Process 对最终标记做纯展示性的结构调整：
// 表格包进横向滚动容器，块级元素之间的连续空行压缩为一个。
// 不改动任何语义内容，可重复应用（幂等）。
func Process(html string, cfg *types.RenderConfig) string {
	if cfg == nil {
		cfg = types.DefaultRenderConfig()
	}
	html = WrapTables(html, cfg.TableWrapperClass)
	return CollapseBlankLines(html)
}

// WrapTables 将每个 <table>...</table> 包进滚动容器，表格内容不变
//
// goldmark 输出的代码块内所有 < 已被转义，顺序扫描不会误入
// <pre> 区域；已包裹过的表格不会重复包裹。
func WrapTables(html, class string) string {
	if !strings.Contains(html, "<table>") {
		return html
	}
	open := `<div class="` + class + `">`
	var b strings.Builder
	b.Grow(len(html))
	i := 0
	for {
		j := strings.Index(html[i:], "<table>")
		if j < 0 {
			b.WriteString(html[i:])
			break
		}
		j += i
		k := strings.Index(html[j:], "</table>")
		if k < 0 {
			// 不完整的表格标记，原样保留
			b.WriteString(html[i:])
			break
		}
		k += j + len("</table>")

		b.WriteString(html[i:j])
		if strings.HasSuffix(strings.TrimRight(b.String(), "\n"), open) {
			// 已经在容器里
			b.WriteString(html[j:k])
		} else {
			b.WriteString(open)
			b.WriteString(html[j:k])
			b.WriteString(`</div>`)
		}
		i = k
	}
	return b.String()
}

// CollapseBlankLines 将 2 个以上的连续空行压缩为 1 个空行
//
// <pre> 区域内的内容原样保留，代码块的空行排版不受影响。
func CollapseBlankLines(html string) string {
	regions := preRegionRe.FindAllStringIndex(html, -1)
	if len(regions) == 0 {
		return blankLinesRe.ReplaceAllString(html, "\n\n")
	}

	var b strings.Builder
	b.Grow(len(html))
	prev := 0
	for _, r := range regions {
		b.WriteString(blankLinesRe.ReplaceAllString(html[prev:r[0]], "\n\n"))
		b.WriteString(html[r[0]:r[1]])
		prev = r[1]
	}
	b.WriteString(blankLinesRe.ReplaceAllString(html[prev:], "\n\n"))
	return b.String()
}
