package mathdown

import (
	"fmt"
	"strings"

	"github.com/riverfjs/mathdown-go/internal/mathscan"
)

// ValidateSyntax 对原始文本做只读的定界符预检查
//
// 顺序跟踪定界符的开闭状态：$ 与 $$ 按出现交替配对，代码区域内
// 的 $ 不参与，转义的 \$ 不参与，相邻的两个完整 $$...$$ 公式不会
// 被误报。检查项：未闭合的 $ / $$、空的 $$$$ 公式体、未配对的
// 代码围栏、未配对的 \( \) 与 \[ \]。检查结果仅供参考：
// ProcessMarkdown 不依赖预检查，对任何输入都会优雅降级。
func ValidateSyntax(content string) ValidationResult {
	var errs []string

	mask := mathscan.CodeMask(content)

	var (
		inlineOpen   bool
		displayOpen  bool
		emptyDisplay bool
		parens       int
		brackets     int
	)

	i := 0
	for i < len(content) {
		if end, ok := mask.Covering(i); ok {
			i = end
			continue
		}
		switch content[i] {
		case '\\':
			if i+1 < len(content) {
				switch content[i+1] {
				case '(':
					parens++
				case ')':
					parens--
				case '[':
					brackets++
				case ']':
					brackets--
				}
			}
			i += 2 // 跳过被转义的字符（含 \$）
		case '$':
			if i+1 < len(content) && content[i+1] == '$' {
				if !displayOpen && strings.HasPrefix(content[i+2:], "$$") {
					emptyDisplay = true
					i += 4
					continue
				}
				displayOpen = !displayOpen
				i += 2
				continue
			}
			// 块级公式体内的单个 $ 不开启行内公式
			if !displayOpen {
				inlineOpen = !inlineOpen
			}
			i++
		default:
			i++
		}
	}

	if inlineOpen || displayOpen {
		errs = append(errs, "unmatched math delimiter: unclosed '$' or '$$' span")
	}
	if emptyDisplay {
		errs = append(errs, "invalid '$$$$' sequence: empty display math")
	}
	if n := strings.Count(content, "```"); n%2 != 0 {
		errs = append(errs, fmt.Sprintf("unmatched code fence: %d '```' markers", n))
	}
	if parens != 0 {
		errs = append(errs, fmt.Sprintf(`unmatched '\(' '\)' delimiters: depth %d`, parens))
	}
	if brackets != 0 {
		errs = append(errs, fmt.Sprintf(`unmatched '\[' '\]' delimiters: depth %d`, brackets))
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}
