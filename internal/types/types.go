package types

// SpanKind 表示数学片段的类别
type SpanKind int

const (
	// KindInline 行内公式，随文本流排版
	KindInline SpanKind = iota
	// KindDisplay 块级公式，独立居中成块
	KindDisplay
)

// String returns the string representation of SpanKind.
func (k SpanKind) String() string {
	switch k {
	case KindInline:
		return "inline"
	case KindDisplay:
		return "display"
	default:
		return "unknown"
	}
}

// MathSpan 表示源文本中识别出的一段数学公式
//
// Content 是去掉定界符后的公式体；OriginalText 保留定界符原文，
// 用于渲染失败时的降级输出。Start/End 是源文本中的字节偏移。
type MathSpan struct {
	Content      string
	Kind         SpanKind
	Start        int
	End          int
	OriginalText string
}

// RenderedMath 单个公式的渲染结果，Index 与 MathSpan 的扫描顺序一一对应
type RenderedMath struct {
	Index     int
	Markup    string
	Succeeded bool
}

// Segment 表示源文本拆分后的一个片段：纯文本或数学公式
//
// 扫描阶段一次性构建出有序片段序列，后续阶段按结构遍历，
// 不再依赖哨兵子串的二次正则替换。
type Segment struct {
	Text string // 纯文本内容；Math != nil 时为空
	Math *MathSpan
}

// IsMath reports whether the segment holds a math span.
func (s Segment) IsMath() bool {
	return s.Math != nil
}

// RenderConfig 渲染配置：各类容器的 CSS class 与可选代码高亮样式
type RenderConfig struct {
	InlineMathClass   string
	DisplayMathClass  string
	FallbackClass     string
	ErrorClass        string
	TableWrapperClass string
	HighlightStyle    string
}

// DefaultRenderConfig 返回默认渲染配置
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		InlineMathClass:   "math-inline",
		DisplayMathClass:  "math-display",
		FallbackClass:     "math-fallback",
		ErrorClass:        "math-error",
		TableWrapperClass: "table-scroll",
		HighlightStyle:    "github",
	}
}
