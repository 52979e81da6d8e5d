// Package mathdown 将带数学公式的 Markdown 确定性地渲染为结构化 HTML
//
// 这个包面向文档阅读场景：OCR 提取结果、LLM 回复等"类 Markdown"
// 文本里混杂着 LaTeX 公式、表格、代码块。公式先被定位并替换为
// 占位符，结构转换（goldmark）与公式渲染（treeblood → MathML）
// 各自独立进行，最后按源文本顺序回填。
//
// 核心功能：
//   - 行内 $...$ 与块级 $$...$$ 公式（含 \(...\) 与 \[...\] 定界符）
//   - GFM 表格、删除线、任务列表、围栏代码块（可选 chroma 高亮）
//   - 每条公式独立的失败隔离与降级标记
//   - 任何输入都返回结果，从不抛出
//
// 主要 API：
//   - ProcessMarkdown(): 完整管道，返回 HTML + 统计
//   - Render(): 同步便捷入口
//   - ValidateSyntax(): 只读的定界符预检查
//
// 示例：
//
//	result := mathdown.Render("# 标题\n\n能量 $E=mc^2$")
//	if result.Succeeded {
//	    fmt.Println(result.Markup)
//	}
package mathdown

import (
	"context"
)

// ProcessMarkdown 将 Markdown 文本渲染为 HTML
//
// 这是主要入口。空输入返回空标记和零统计；任何失败都转为
// 降级输出而非错误返回。ctx 取消时放弃未完成的渲染并返回
// 降级结果。
//
// 参数：
//   - ctx: 上下文，控制公式批量渲染的取消
//   - content: 原始 Markdown 文本（UTF-8）
//   - opts: 可选配置（引擎注入、代码高亮、净化等）
//
// 返回：
//   - *ProcessingResult: 最终标记 + 统计信息，永不为 nil
func ProcessMarkdown(ctx context.Context, content string, opts ...Option) *ProcessingResult {
	if len(opts) == 0 {
		return defaultProcessor().Process(ctx, content)
	}
	return New(opts...).Process(ctx, content)
}

// Render 同步便捷入口，等价于带背景上下文的 ProcessMarkdown
func Render(content string, opts ...Option) *ProcessingResult {
	return ProcessMarkdown(context.Background(), content, opts...)
}
