package mathdown

import (
	"log"
	"os"
)

// Logger 全局日志记录器，仅在降级路径上输出
var Logger = log.New(os.Stderr, "[mathdown] ", log.LstdFlags)

// SetLogger 设置自定义日志记录器
func SetLogger(logger *log.Logger) {
	Logger = logger
}
