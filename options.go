package mathdown

// ConvertOptions holds options for markdown processing.
type ConvertOptions struct {
	Config    *RenderConfig
	Engine    Engine
	Macros    map[string]string
	Highlight bool
	Sanitize  bool
}

// Option is a function that configures ConvertOptions.
type Option func(*ConvertOptions)

// WithConfig sets a custom RenderConfig.
func WithConfig(config *RenderConfig) Option {
	return func(opts *ConvertOptions) {
		opts.Config = config
	}
}

// WithEngine injects a custom math rendering engine.
//
// 不设置时使用进程级共享的 treeblood 引擎（惰性初始化一次）。
func WithEngine(engine Engine) Option {
	return func(opts *ConvertOptions) {
		opts.Engine = engine
	}
}

// WithMacros registers custom TeX macros for the math engine.
func WithMacros(macros map[string]string) Option {
	return func(opts *ConvertOptions) {
		opts.Macros = macros
	}
}

// WithSyntaxHighlighting enables chroma-based highlighting of fenced code blocks.
func WithSyntaxHighlighting(enable bool) Option {
	return func(opts *ConvertOptions) {
		opts.Highlight = enable
	}
}

// WithSanitizer enables bluemonday sanitization of the final markup.
//
// 默认关闭：输出的安全插入由下游负责。开启后使用放行 MathML
// 元素的 UGC 策略。
func WithSanitizer(enable bool) Option {
	return func(opts *ConvertOptions) {
		opts.Sanitize = enable
	}
}

// defaultConvertOptions returns the default processing options.
func defaultConvertOptions() *ConvertOptions {
	return &ConvertOptions{
		Config: DefaultConfig(),
	}
}

// applyOptions applies the given options to the default options.
func applyOptions(opts ...Option) *ConvertOptions {
	options := defaultConvertOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}
