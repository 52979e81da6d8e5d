package mathscan

import (
	"regexp"
	"strings"
	"unicode"
)

var latexCommandRe = regexp.MustCompile(`\\[a-zA-Z]+`)

// LooksLikeMath 判断单 $ 包裹的内容是否"像公式"
//
// 行内 $ 定界符天然有歧义（价格、路径等），只有命中至少一条
// 启发式规则才接受为公式：
//   - 含运算符或结构字符（+ - = * / ^ _ < > { } [ ] |）
//   - 含 LaTeX 命令（\frac、\alpha 等）
//   - 含数字
//   - 含成对括号
//
// 阈值是经验性的权衡，不影响管道其余部分的正确性：
// 未命中的候选作为普通文本保留，而非丢弃。
func LooksLikeMath(s string) bool {
	t := strings.TrimSpace(s)
	if t == "" {
		return false
	}
	if strings.ContainsAny(t, "+-=*/^_<>{}[]|") {
		return true
	}
	if latexCommandRe.MatchString(t) {
		return true
	}
	for _, r := range t {
		if unicode.IsDigit(r) {
			return true
		}
	}
	if strings.Contains(t, "(") && strings.Contains(t, ")") {
		return true
	}
	return false
}
