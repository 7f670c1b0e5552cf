package binding

import (
	"fmt"
	"regexp"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值，
// 用于页脚模板（${page}、${pages}）与输出文件名模式等场景。
// 若 data 为空或路径不存在，则保留原占位符。
func Interpolate(text string, data any) string {
	if data == nil {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(exprPattern.FindStringSubmatch(match)[1])
		if path == "" {
			return match
		}
		if val, ok := Resolve(data, path); ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

// Resolve 沿点号路径逐层下钻嵌套 map，返回命中的值。
func Resolve(data any, path string) (any, bool) {
	current := data
	for _, segment := range strings.Split(path, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
