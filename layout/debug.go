package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将布局结果输出为 JSON，便于调试页面几何或可视化比对。
// 图片字节不参与序列化（见 ImageBox.Data 的 json 标签）。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
