package mathdown

// Stats 单次管道运行的统计信息
type Stats struct {
	InlineMathCount  int   `json:"inline_math_count"`
	DisplayMathCount int   `json:"display_math_count"`
	CodeBlockCount   int   `json:"code_block_count"`
	TableCount       int   `json:"table_count"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

// ProcessingResult 管道的唯一对外输出
//
// 任何输入（包括空串和畸形文本）都会得到一个结果：Succeeded 为
// false 时 Markup 是降级输出（转义原文），ErrorMessage 描述失败
// 发生的阶段。
type ProcessingResult struct {
	Markup       string `json:"markup"`
	Stats        Stats  `json:"stats"`
	Succeeded    bool   `json:"succeeded"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// ValidationResult ValidateSyntax 的返回值
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors,omitempty"`
}
