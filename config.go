package mathdown

import (
	"sync"

	"github.com/riverfjs/mathdown-go/internal/mathrender"
	"github.com/riverfjs/mathdown-go/internal/types"
)

// 导出类型别名
type RenderConfig = types.RenderConfig
type MathSpan = types.MathSpan
type SpanKind = types.SpanKind
type RenderedMath = types.RenderedMath

// Engine 数学渲染引擎接口，可注入自定义实现（测试或替换后端）
type Engine = mathrender.Engine

// 公式类别
const (
	KindInline  = types.KindInline
	KindDisplay = types.KindDisplay
)

var (
	defaultConfig     *RenderConfig
	defaultConfigOnce sync.Once
)

// DefaultConfig returns the default render configuration (singleton).
func DefaultConfig() *RenderConfig {
	defaultConfigOnce.Do(func() {
		defaultConfig = types.DefaultRenderConfig()
	})
	return defaultConfig
}
