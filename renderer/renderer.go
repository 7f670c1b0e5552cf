package renderer

import "github.com/wegner15/billforge/layout"

// Renderer 将布局结果输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据以及可能的错误；失败时不返回部分页面。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}
