package markdown

import (
	"html"
	"strings"
)

// EscapePlain 整体降级输出：把原始文本转义为安全的纯内容，
// 换行替换为 <br>，让用户至少能看到自己的原文
//
// 纯字符串实现，不依赖任何 DOM 或平台设施。
func EscapePlain(src string) string {
	escaped := html.EscapeString(src)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return strings.ReplaceAll(escaped, "\n", "<br>\n")
}
