package markdown

import (
	"bytes"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	highlighting "github.com/yuin/goldmark-highlighting/v2"

	"github.com/riverfjs/mathdown-go/internal/types"
)

// StandardOptions goldmark 扩展配置：GFM 提供表格、删除线、任务列表
var StandardOptions = []goldmark.Option{
	goldmark.WithExtensions(
		extension.GFM,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
}

// Counts 结构统计：围栏代码块与表格数量，从解析后的 AST 统计
// （比对源文本做正则计数可靠，fence 嵌套和缩进都由解析器处理）
type Counts struct {
	CodeBlocks int
	Tables     int
}

// Transformer 将带占位符的工作文本转换为结构化 HTML
//
// 占位符是普通文本字符，goldmark 原样透传，不会被转义或改写。
type Transformer struct {
	md goldmark.Markdown
}

// New 创建 Transformer；highlight 为 true 时启用 chroma 代码高亮
func New(cfg *types.RenderConfig, highlight bool) *Transformer {
	if cfg == nil {
		cfg = types.DefaultRenderConfig()
	}
	opts := append([]goldmark.Option{}, StandardOptions...)
	if highlight {
		style := cfg.HighlightStyle
		if style == "" {
			style = "github"
		}
		opts = append(opts, goldmark.WithExtensions(
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		))
	}
	return &Transformer{md: goldmark.New(opts...)}
}

// Convert 解析工作文本并渲染为 HTML，同时统计代码块与表格
//
// goldmark 对畸形 markdown（未闭合的围栏、强调标记）本身就按
// 字面文本降级，这里额外把解析/渲染中的 panic 转为 error，
// 交给上层走整体降级路径。
func (t *Transformer) Convert(working string) (out string, counts Counts, err error) {
	defer func() {
		if p := recover(); p != nil {
			out = ""
			err = fmt.Errorf("markdown: transform panic: %v", p)
		}
	}()

	source := []byte(working)
	doc := t.md.Parser().Parse(text.NewReader(source))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindFencedCodeBlock:
			counts.CodeBlocks++
		case east.KindTable:
			counts.Tables++
		}
		return ast.WalkContinue, nil
	})

	var buf bytes.Buffer
	if rerr := t.md.Renderer().Render(&buf, source, doc); rerr != nil {
		return "", counts, rerr
	}
	return buf.String(), counts, nil
}
