package mathscan

import (
	"regexp"
	"strings"

	"github.com/riverfjs/mathdown-go/internal/types"
)

// codeRegionRe 匹配围栏代码块和行内代码，这些区域内的 $ 不参与公式扫描
var codeRegionRe = regexp.MustCompile("(?s)```.*?```|`[^`\n]+`")

// Mask 代码区域的有序区间表，开启与闭合定界符都要对照它检查
type Mask [][]int

// CodeMask 定位 src 中全部代码区域
func CodeMask(src string) Mask {
	return codeRegionRe.FindAllStringIndex(src, -1)
}

// Covering 返回覆盖位置 i 的代码区域的结束位置
func (m Mask) Covering(i int) (int, bool) {
	for _, r := range m {
		if r[0] > i {
			break
		}
		if i < r[1] {
			return r[1], true
		}
	}
	return 0, false
}

// Scan 将源文本拆分为有序的 Segment 序列（纯文本与公式交替）
//
// 识别四种定界符：$$...$$（块级）、$...$（行内，需通过启发式判定）、
// \[...\]（块级）、\(...\)（行内）。转义的 \$ 永远不会开启或闭合公式；
// 代码块和行内代码内部的 $ 既不能开启也不能闭合公式。未配对的
// 定界符保持为普通文本。
func Scan(src string) []types.Segment {
	if src == "" {
		return nil
	}

	mask := CodeMask(src)

	var segs []types.Segment
	textStart := 0
	i := 0

	flush := func(end int) {
		if end > textStart {
			segs = append(segs, types.Segment{Text: src[textStart:end]})
		}
	}
	appendMath := func(span types.MathSpan) {
		flush(span.Start)
		s := span
		segs = append(segs, types.Segment{Math: &s})
		textStart = span.End
		i = span.End
	}

	for i < len(src) {
		c := src[i]
		if c != '$' && c != '\\' {
			i++
			continue
		}
		if end, ok := mask.Covering(i); ok {
			i = end
			continue
		}

		if c == '\\' {
			if i+1 >= len(src) {
				i++
				continue
			}
			switch src[i+1] {
			case '(':
				if span, ok := scanParen(src, mask, i); ok {
					appendMath(span)
					continue
				}
			case '[':
				if span, ok := scanBracket(src, mask, i); ok {
					appendMath(span)
					continue
				}
			}
			// 转义字符（含 \$）原样保留
			i += 2
			continue
		}

		// c == '$'
		if i+1 < len(src) && src[i+1] == '$' {
			if span, ok := scanDisplay(src, mask, i); ok {
				appendMath(span)
				continue
			}
			// 未闭合的 $$，两个字符都作为普通文本
			i += 2
			continue
		}
		if span, ok := scanInline(src, mask, i); ok {
			appendMath(span)
			continue
		}
		i++
	}
	flush(len(src))
	return segs
}

// Spans 提取片段序列中的全部公式，保持源文本顺序
func Spans(segs []types.Segment) []types.MathSpan {
	var spans []types.MathSpan
	for _, s := range segs {
		if s.Math != nil {
			spans = append(spans, *s.Math)
		}
	}
	return spans
}

// scanDisplay 从 start（指向 $$）开始寻找闭合的 $$，允许跨行，
// 代码区域整体跳过
func scanDisplay(src string, mask Mask, start int) (types.MathSpan, bool) {
	j := start + 2
	for j < len(src) {
		if end, ok := mask.Covering(j); ok {
			j = end
			continue
		}
		switch src[j] {
		case '\\':
			j += 2
		case '$':
			if j+1 < len(src) && src[j+1] == '$' {
				body := src[start+2 : j]
				if strings.TrimSpace(body) == "" {
					// $$$$ 或空公式体，不视为公式
					return types.MathSpan{}, false
				}
				return types.MathSpan{
					Content:      strings.TrimSpace(body),
					Kind:         types.KindDisplay,
					Start:        start,
					End:          j + 2,
					OriginalText: src[start : j+2],
				}, true
			}
			j++
		default:
			j++
		}
	}
	return types.MathSpan{}, false
}

// scanInline 从 start（指向 $）开始寻找同一行内闭合的 $
//
// 代码区域内的 $ 不作闭合；跳过的区域含换行时（围栏代码块）直接
// 放弃。公式体还需通过 LooksLikeMath 启发式，避免把 "$5" 之类的
// 价格误判为公式。
func scanInline(src string, mask Mask, start int) (types.MathSpan, bool) {
	j := start + 1
	for j < len(src) {
		if end, ok := mask.Covering(j); ok {
			if strings.Contains(src[j:end], "\n") {
				return types.MathSpan{}, false
			}
			j = end
			continue
		}
		switch src[j] {
		case '\n':
			return types.MathSpan{}, false
		case '\\':
			if j+1 < len(src) && src[j+1] == '\n' {
				return types.MathSpan{}, false
			}
			j += 2
		case '$':
			body := src[start+1 : j]
			if strings.TrimSpace(body) == "" || !LooksLikeMath(body) {
				return types.MathSpan{}, false
			}
			return types.MathSpan{
				Content:      strings.TrimSpace(body),
				Kind:         types.KindInline,
				Start:        start,
				End:          j + 1,
				OriginalText: src[start : j+1],
			}, true
		default:
			j++
		}
	}
	return types.MathSpan{}, false
}

// scanParen 处理 \(...\) 行内公式（LaTeX 定界符明确，无需启发式）
func scanParen(src string, mask Mask, start int) (types.MathSpan, bool) {
	j := start + 2
	for j < len(src) {
		if end, ok := mask.Covering(j); ok {
			if strings.Contains(src[j:end], "\n") {
				return types.MathSpan{}, false
			}
			j = end
			continue
		}
		if src[j] == '\n' {
			return types.MathSpan{}, false
		}
		if src[j] == '\\' && j+1 < len(src) {
			if src[j+1] == ')' {
				body := src[start+2 : j]
				if strings.TrimSpace(body) == "" {
					return types.MathSpan{}, false
				}
				return types.MathSpan{
					Content:      strings.TrimSpace(body),
					Kind:         types.KindInline,
					Start:        start,
					End:          j + 2,
					OriginalText: src[start : j+2],
				}, true
			}
			j += 2
			continue
		}
		j++
	}
	return types.MathSpan{}, false
}

// scanBracket 处理 \[...\] 块级公式，允许跨行
func scanBracket(src string, mask Mask, start int) (types.MathSpan, bool) {
	j := start + 2
	for j < len(src) {
		if end, ok := mask.Covering(j); ok {
			j = end
			continue
		}
		if src[j] == '\\' && j+1 < len(src) {
			if src[j+1] == ']' {
				body := src[start+2 : j]
				if strings.TrimSpace(body) == "" {
					return types.MathSpan{}, false
				}
				return types.MathSpan{
					Content:      strings.TrimSpace(body),
					Kind:         types.KindDisplay,
					Start:        start,
					End:          j + 2,
					OriginalText: src[start : j+2],
				}, true
			}
			j += 2
			continue
		}
		j++
	}
	return types.MathSpan{}, false
}
