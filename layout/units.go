package layout

// pt 与 mm 的换算常量。布局阶段一律使用 mm，渲染器在与字体系统交互的边界做换算。
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// A4 纵向页面尺寸（mm）。
const (
	PageWidthA4  = 210.0
	PageHeightA4 = 297.0
)

// FontMM 将 pt 字号换算为 mm，便于以排版习惯（pt）声明字号。
func FontMM(pt float64) float64 { return pt * PtToMm }
