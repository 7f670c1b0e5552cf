package layout

import "time"

// WrapMode 控制折行策略。
type WrapMode string

const (
	// WrapWord 贪心按词折行：一行内尽量多放整词；
	// 单词本身超宽时独占一行且不拆词（接受其溢出，不视为错误）。
	WrapWord WrapMode = "word"
	// WrapNone 仅按显式换行划分，不基于宽度折行（用于数字单元格等）。
	WrapNone WrapMode = "nowrap"
)

// Typesetter 负责根据字体与宽度约束把文本拆成可绘制的行。
// 约定：width/fontSize/lineHeight 均为 mm；实现必须是入参的纯函数：
//   - \r 等零宽控制字符在度量前剔除；
//   - 显式 \n 强制换行，空段落保留为空行；
//   - 空字符串产出恰好一条空行。
type Typesetter interface {
	LayoutLines(content string, width float64, font FontRef, fontSize, lineHeight float64, mode WrapMode) ([]TextLine, error)
}

// BuildOptions 配置一次布局所需的依赖与输入。
type BuildOptions struct {
	Typesetter Typesetter

	// Logo 为已取回并校验过格式的图片字节；为空时页眉退化为文字品牌。
	// LogoAspect 为宽高比（w/h），用于按固定高度等比摆放。
	Logo       []byte
	LogoAspect float64

	// GeneratedAt 是输出中唯一允许的非确定性元素；零值表示不盖生成时间戳。
	GeneratedAt time.Time
}
