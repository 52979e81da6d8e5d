package mathrender

import (
	"context"
	"fmt"
	"html"
	"log"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/riverfjs/mathdown-go/internal/types"
)

// Renderer 批量渲染公式，逐条隔离失败
type Renderer struct {
	cfg    *types.RenderConfig
	logger *log.Logger
	macros map[string]string

	injected Engine

	once      sync.Once
	engine    Engine
	engineErr error
}

// New 创建 Renderer
//
// engine 为 nil 时使用进程级共享引擎（惰性初始化）；传入了
// macros 则构建本 Renderer 私有的引擎实例，宏表不污染共享引擎。
func New(cfg *types.RenderConfig, engine Engine, macros map[string]string, logger *log.Logger) *Renderer {
	if cfg == nil {
		cfg = types.DefaultRenderConfig()
	}
	return &Renderer{cfg: cfg, injected: engine, macros: macros, logger: logger}
}

func (r *Renderer) getEngine() (Engine, error) {
	r.once.Do(func() {
		if r.injected != nil {
			r.engine = r.injected
			return
		}
		if r.macros != nil {
			defer func() {
				if p := recover(); p != nil {
					r.engine = nil
					r.engineErr = ErrEngineUnavailable
				}
			}()
			r.engine = NewTreeBloodEngine(r.macros)
			return
		}
		r.engine, r.engineErr = DefaultEngine()
	})
	return r.engine, r.engineErr
}

// RenderAll 渲染一批公式，返回与 spans 等长的结果切片
//
// 各公式相互独立，按 GOMAXPROCS 并发渲染。单条失败只影响该条
// 结果（错误样式降级）；引擎不可用时全部走中性降级；ctx 取消时
// 未完成的条目补中性降级后返回，不阻塞。
func (r *Renderer) RenderAll(ctx context.Context, spans []types.MathSpan) []types.RenderedMath {
	results := make([]types.RenderedMath, len(spans))
	if len(spans) == 0 {
		return results
	}

	eng, err := r.getEngine()
	if err != nil || eng == nil {
		if r.logger != nil {
			r.logger.Printf("math engine unavailable, using plain fallback: %v", err)
		}
		for i := range spans {
			results[i] = types.RenderedMath{Index: i, Markup: r.neutralFallback(spans[i]), Succeeded: false}
		}
		return results
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range spans {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.renderOne(eng, i, spans[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// 取消或提前退出：缺失的条目补中性降级，保证结果完整
		for i := range spans {
			if results[i].Markup == "" {
				results[i] = types.RenderedMath{Index: i, Markup: r.neutralFallback(spans[i]), Succeeded: false}
			}
		}
	}
	return results
}

func (r *Renderer) renderOne(eng Engine, index int, span types.MathSpan) types.RenderedMath {
	markup, err := safeRender(eng, span)
	if err != nil || strings.TrimSpace(markup) == "" {
		if r.logger != nil {
			r.logger.Printf("math render failed (%s): %v", span.Kind, err)
		}
		return types.RenderedMath{Index: index, Markup: r.errorFallback(span, err), Succeeded: false}
	}
	return types.RenderedMath{Index: index, Markup: r.wrap(markup, span.Kind), Succeeded: true}
}

// safeRender 调用引擎并把 panic 转为 error，注入的引擎同样被隔离
func safeRender(eng Engine, span types.MathSpan) (markup string, err error) {
	defer func() {
		if p := recover(); p != nil {
			markup = ""
			err = fmt.Errorf("mathrender: engine panic: %v", p)
		}
	}()
	return eng.Render(span.Content, span.Kind)
}

func (r *Renderer) wrap(markup string, kind types.SpanKind) string {
	if kind == types.KindDisplay {
		return `<div class="` + r.cfg.DisplayMathClass + `">` + markup + `</div>`
	}
	return `<span class="` + r.cfg.InlineMathClass + `">` + markup + `</span>`
}

// neutralFallback 引擎未就绪时的降级：原文（含定界符）放入不显眼的容器
func (r *Renderer) neutralFallback(span types.MathSpan) string {
	body := html.EscapeString(span.OriginalText)
	if span.Kind == types.KindDisplay {
		return `<div class="` + r.cfg.FallbackClass + `">` + body + `</div>`
	}
	return `<span class="` + r.cfg.FallbackClass + `">` + body + `</span>`
}

// errorFallback 渲染出错时的降级：原文加错误样式标记，用户可见
func (r *Renderer) errorFallback(span types.MathSpan, err error) string {
	body := html.EscapeString(span.OriginalText)
	title := ""
	if err != nil {
		title = ` title="` + html.EscapeString(err.Error()) + `"`
	}
	if span.Kind == types.KindDisplay {
		return `<div class="` + r.cfg.ErrorClass + `"` + title + `>` + body + `</div>`
	}
	return `<span class="` + r.cfg.ErrorClass + `"` + title + `>` + body + `</span>`
}
