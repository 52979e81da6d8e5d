package placeholder

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/riverfjs/mathdown-go/internal/types"
)

// 占位符用 Unicode 私有区字符包裹十进制索引：U+E000 <idx> U+E001
//
// 私有区字符对 markdown 语法完全惰性（不是强调、代码或链接标记），
// goldmark 会把它们当作普通文本原样输出。用户文本中偶然出现的
// 这几个字符由 Build 做可逆转义、Restore 还原，token 不可能与
// 用户内容冲突，原文也不会丢失。
const (
	tokenOpen  = ''
	tokenClose = ''
	tokenEsc   = ''
)

// escaper 把用户文本中的 token 字符改写为 U+E002 + 单字节标记
var escaper = strings.NewReplacer(
	string(tokenEsc), string(tokenEsc)+"e",
	string(tokenOpen), string(tokenEsc)+"o",
	string(tokenClose), string(tokenEsc)+"c",
)

// Token 返回第 index 个公式的占位符
func Token(index int) string {
	return string(tokenOpen) + strconv.Itoa(index) + string(tokenClose)
}

// Build 将片段序列拼接为工作文本：文本片段做可逆转义后原样保留，
// 公式片段按扫描顺序替换为占位符
func Build(segs []types.Segment) string {
	var b strings.Builder
	idx := 0
	for _, s := range segs {
		if s.Math == nil {
			b.WriteString(escaper.Replace(s.Text))
			continue
		}
		b.WriteString(Token(idx))
		idx++
	}
	return b.String()
}

// Resolver 根据占位符索引返回渲染结果
//
// markup 是要写入的最终标记；display 表示该公式是块级公式
// （Restore 据此吸收包裹它的 <p> 标签）；ok 为 false 时该占位符
// 输出为空（防御性：索引无对应公式）。
type Resolver func(index int) (markup string, display bool, ok bool)

// Restore 顺序扫描转换后的标记文本，将每个占位符替换为渲染结果，
// 并把 Build 转义过的用户字符还原
//
// 逐字符扫描而非全局正则替换：残缺的类 token 序列（缺少闭合字符、
// 索引非数字）原样保留，不会被误匹配。
func Restore(html string, resolve Resolver) string {
	if !strings.ContainsRune(html, tokenOpen) && !strings.ContainsRune(html, tokenEsc) {
		return html
	}

	var b strings.Builder
	b.Grow(len(html))
	i := 0
	for i < len(html) {
		r, size := utf8.DecodeRuneInString(html[i:])

		if r == tokenEsc {
			// Build 的转义序列：还原用户的原始字符
			if i+size < len(html) {
				switch html[i+size] {
				case 'o':
					b.WriteRune(tokenOpen)
					i += size + 1
					continue
				case 'c':
					b.WriteRune(tokenClose)
					i += size + 1
					continue
				case 'e':
					b.WriteRune(tokenEsc)
					i += size + 1
					continue
				}
			}
			b.WriteString(html[i : i+size])
			i += size
			continue
		}

		if r != tokenOpen {
			b.WriteString(html[i : i+size])
			i += size
			continue
		}

		// 解析 U+E000 后的十进制索引
		j := i + size
		digitStart := j
		for j < len(html) && html[j] >= '0' && html[j] <= '9' {
			j++
		}
		r2, size2 := utf8.DecodeRuneInString(html[j:])
		if j == digitStart || r2 != tokenClose {
			// 不是合法 token，开头字符按原样输出后继续
			b.WriteString(html[i : i+size])
			i += size
			continue
		}
		end := j + size2

		idx, err := strconv.Atoi(html[digitStart:j])
		if err != nil {
			i = end
			continue
		}
		markup, display, ok := resolve(idx)
		if !ok {
			// 无对应公式：输出空，不中断
			i = end
			continue
		}

		if display {
			// 块级公式若被 goldmark 包进了 <p>，把标签吸收掉
			out := b.String()
			rest := html[end:]
			if strings.HasSuffix(out, "<p>") && strings.HasPrefix(rest, "</p>") {
				trimmed := out[:len(out)-len("<p>")]
				b.Reset()
				b.WriteString(trimmed)
				end += len("</p>")
			}
		}

		b.WriteString(markup)
		i = end
	}
	return b.String()
}

// ContainsToken reports whether text still holds placeholder machinery:
// an undecoded escape sequence, or a complete U+E000 <idx> U+E001 token.
// 用户文本中还原出来的孤立私有区字符不算泄漏。
func ContainsToken(text string) bool {
	if strings.ContainsRune(text, tokenEsc) {
		return true
	}
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r != tokenOpen {
			i += size
			continue
		}
		j := i + size
		digitStart := j
		for j < len(text) && text[j] >= '0' && text[j] <= '9' {
			j++
		}
		if r2, _ := utf8.DecodeRuneInString(text[j:]); j > digitStart && r2 == tokenClose {
			return true
		}
		i += size
	}
	return false
}
