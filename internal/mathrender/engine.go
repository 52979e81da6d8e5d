package mathrender

import (
	"errors"
	"fmt"
	"sync"

	"github.com/wyatt915/treeblood"

	"github.com/riverfjs/mathdown-go/internal/types"
)

// ErrEngineUnavailable 表示渲染引擎初始化失败，所有公式走中性降级路径
var ErrEngineUnavailable = errors.New("mathrender: engine unavailable")

// Engine 将单个 TeX 公式体渲染为标记文本
//
// 实现必须可被并发调用。注入自定义 Engine 即可在测试中替换
// 真实引擎，或在引擎失效时模拟降级行为。
type Engine interface {
	Render(tex string, kind types.SpanKind) (string, error)
}

// treeBloodEngine 基于 treeblood 的 LaTeX → MathML 引擎
//
// Pitziil 持有文档级状态（宏表、编号），用互斥锁串行化单次
// 公式渲染；批量并发由上层 errgroup 负责调度。
type treeBloodEngine struct {
	mu   sync.Mutex
	pitz *treeblood.Pitziil
}

// NewTreeBloodEngine 创建 treeblood 引擎，macros 为可选的自定义 TeX 宏
func NewTreeBloodEngine(macros map[string]string) Engine {
	return &treeBloodEngine{pitz: treeblood.NewDocument(macros, false)}
}

func (e *treeBloodEngine) Render(tex string, kind types.SpanKind) (markup string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	// treeblood 对个别畸形输入可能 panic，统一转为 error
	defer func() {
		if r := recover(); r != nil {
			markup = ""
			err = fmt.Errorf("mathrender: render panic: %v", r)
		}
	}()
	if kind == types.KindDisplay {
		return e.pitz.DisplayStyle(tex)
	}
	return e.pitz.TextStyle(tex)
}

var (
	defaultEngineOnce sync.Once
	defaultEngine     Engine
	defaultEngineErr  error
)

// DefaultEngine 返回进程级共享引擎，首次调用时惰性初始化
//
// 初始化只尝试一次：失败后本进程内后续调用都得到同一个错误，
// 调用方据此走中性降级。并发的首次调用由 sync.Once 保证只
// 初始化一遍，其余调用方等待并观察同一结果。
func DefaultEngine() (Engine, error) {
	defaultEngineOnce.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				defaultEngine = nil
				defaultEngineErr = fmt.Errorf("%w: init panic: %v", ErrEngineUnavailable, r)
			}
		}()
		defaultEngine = NewTreeBloodEngine(nil)
	})
	return defaultEngine, defaultEngineErr
}
