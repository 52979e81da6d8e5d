package mathdown

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/errgroup"

	"github.com/riverfjs/mathdown-go/internal/markdown"
	"github.com/riverfjs/mathdown-go/internal/mathrender"
	"github.com/riverfjs/mathdown-go/internal/mathscan"
	"github.com/riverfjs/mathdown-go/internal/placeholder"
	"github.com/riverfjs/mathdown-go/internal/postprocess"
	"github.com/riverfjs/mathdown-go/internal/types"
)

// Processor 可复用的处理器
//
// goldmark 实例与渲染引擎只构建一次，多个 Process 调用之间没有
// 共享可变状态，可以并发使用同一个 Processor。
type Processor struct {
	opts      *ConvertOptions
	transform *markdown.Transformer
	renderer  *mathrender.Renderer
	policy    *bluemonday.Policy
}

// New 创建处理器
func New(opts ...Option) *Processor {
	o := applyOptions(opts...)
	p := &Processor{
		opts:      o,
		transform: markdown.New(o.Config, o.Highlight),
		renderer:  mathrender.New(o.Config, o.Engine, o.Macros, Logger),
	}
	if o.Sanitize {
		p.policy = sanitizePolicy()
	}
	return p
}

var (
	defaultProc     *Processor
	defaultProcOnce sync.Once
)

func defaultProcessor() *Processor {
	defaultProcOnce.Do(func() {
		defaultProc = New()
	})
	return defaultProc
}

// Process 执行完整管道：扫描 → 占位替换 → (结构转换 ∥ 公式渲染)
// → 回填 → 后处理
//
// 永远返回一个 ProcessingResult，任何内部失败都转为降级输出，
// 不会向调用方抛出 panic。文本与公式的最终顺序与源文本一致，
// 并发只用于相互独立的子计算。
func (p *Processor) Process(ctx context.Context, content string) (res *ProcessingResult) {
	start := time.Now()

	// 最后防线：连降级路径都失败时仍返回结果
	defer func() {
		if r := recover(); r != nil {
			Logger.Printf("pipeline panic: %v", r)
			res = &ProcessingResult{
				Succeeded:    false,
				ErrorMessage: fmt.Sprintf("internal failure: %v", r),
			}
			res.Markup = markdown.EscapePlain(content)
			res.Stats.ProcessingTimeMs = time.Since(start).Milliseconds()
		}
	}()

	if content == "" {
		return &ProcessingResult{Succeeded: true}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// Scanning：公式定位从不失败，歧义片段降级为普通文本
	segs := mathscan.Scan(content)
	spans := mathscan.Spans(segs)
	working := placeholder.Build(segs)

	// Transform ∥ MathRender：两者操作不相交的数据
	var (
		transformed string
		counts      markdown.Counts
		rendered    []types.RenderedMath
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		transformed, counts, err = p.transform.Convert(working)
		return err
	})
	g.Go(func() error {
		rendered = p.renderer.RenderAll(gctx, spans)
		return nil
	})
	if err := g.Wait(); err != nil {
		return p.fallback(content, start, "markdown transform failed: "+err.Error())
	}
	if err := ctx.Err(); err != nil {
		return p.fallback(content, start, "processing canceled: "+err.Error())
	}

	// Reconstructing：顺序回填占位符
	final := placeholder.Restore(transformed, func(index int) (string, bool, bool) {
		if index < 0 || index >= len(rendered) {
			return "", false, false
		}
		display := spans[index].Kind == types.KindDisplay
		return rendered[index].Markup, display, true
	})

	// PostProcessing
	final = postprocess.Process(final, p.opts.Config)
	if p.policy != nil {
		final = p.policy.Sanitize(final)
	}

	stats := Stats{
		CodeBlockCount: counts.CodeBlocks,
		TableCount:     counts.Tables,
	}
	for _, s := range spans {
		if s.Kind == types.KindDisplay {
			stats.DisplayMathCount++
		} else {
			stats.InlineMathCount++
		}
	}
	stats.ProcessingTimeMs = time.Since(start).Milliseconds()

	return &ProcessingResult{
		Markup:    final,
		Stats:     stats,
		Succeeded: true,
	}
}

// fallback 整体降级：转义原文 + <br>，跳过公式渲染
func (p *Processor) fallback(content string, start time.Time, msg string) *ProcessingResult {
	Logger.Printf("pipeline fallback: %s", msg)
	return &ProcessingResult{
		Markup:       markdown.EscapePlain(content),
		Stats:        Stats{ProcessingTimeMs: time.Since(start).Milliseconds()},
		Succeeded:    false,
		ErrorMessage: msg,
	}
}

// sanitizePolicy 在 UGC 策略上放行 MathML 以及管道自身的容器属性
func sanitizePolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowTables()
	policy.AllowAttrs("class").OnElements("span", "div", "code", "pre", "table")
	policy.AllowAttrs("title").OnElements("span", "div")
	policy.AllowAttrs("type", "checked", "disabled").OnElements("input")
	policy.AllowElements(
		"math", "semantics", "annotation",
		"mrow", "mi", "mo", "mn", "ms", "mtext", "mspace",
		"msup", "msub", "msubsup", "mfrac", "msqrt", "mroot",
		"mstyle", "merror", "mpadded", "mphantom",
		"mover", "munder", "munderover",
		"mtable", "mtr", "mtd", "mmultiscripts", "menclose",
	)
	policy.AllowAttrs("display", "xmlns", "mathvariant", "displaystyle", "scriptlevel", "form", "fence", "separator", "stretchy", "lspace", "rspace").
		OnElements("math", "mstyle", "mi", "mo", "mn", "mtext", "mspace", "mpadded")
	return policy
}
