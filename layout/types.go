package layout

// 该文件定义布局结果的页面描述类型，供布局计算、渲染与调试 JSON 共用。
// 坐标系为左上角原点、向下增长，单位一律为毫米（mm）；
// 渲染器负责在输出面（PDF 为左下角原点）做坐标翻转。

// Result 保存布局后的页面序列与 PDF 元信息。
type Result struct {
	Pages []Page       `json:"pages"`
	Meta  DocumentMeta `json:"meta"`
}

// Page 记录页面尺寸、边距与最终可以直接渲染的元素。
// 形状（线/矩形/圆）先于文本与图片绘制，作为背景。
type Page struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`

	Texts   []TextBox  `json:"texts"`
	Images  []ImageBox `json:"images,omitempty"`
	Lines   []Line     `json:"lines,omitempty"`
	Rects   []Rect     `json:"rects,omitempty"`
	Circles []Circle   `json:"circles,omitempty"`
}

// Margin 以毫米为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// FontRef 指向一个字体资源。Src 支持 embed:path 与文件路径两种形式，
// Style 选择字重（如 "bold"），由渲染器解析。
type FontRef struct {
	Src   string `json:"src"`
	Style string `json:"style,omitempty"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// TextBox 表示一个已经排好坐标的文本块。Y 为块顶部。
type TextBox struct {
	Content  string     `json:"content"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Width    float64    `json:"width"`
	Font     FontRef    `json:"font"`
	FontSize float64    `json:"fontSize"` // mm
	Color    Color      `json:"color"`
	Align    string     `json:"align,omitempty"` // left（默认）/center/right
	Lines    []TextLine `json:"lines"`
	Height   float64    `json:"height"`
}

// TextLine 表示排版后的一行文本内容及其宽高。
type TextLine struct {
	Content   string  `json:"content"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	GapBefore float64 `json:"gapBefore,omitempty"`
}

// ImageBox 携带已取回的图片字节与摆放位置，由渲染器解码。
type ImageBox struct {
	Data   []byte  `json:"-"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Line 表示一条线段。
type Line struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Color Color   `json:"color"`
	Width float64 `json:"width"` // 线宽（mm），<=0 时由渲染器给默认值
}

// Rect 表示一个矩形。
type Rect struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	StrokeColor Color   `json:"strokeColor"`
	StrokeWidth float64 `json:"strokeWidth"`
	FillColor   *Color  `json:"fillColor,omitempty"` // 为空表示不填充
}

// Circle 表示一个圆（用于文字品牌徽标等）。
type Circle struct {
	CX          float64 `json:"cx"`
	CY          float64 `json:"cy"`
	R           float64 `json:"r"`
	StrokeColor Color   `json:"strokeColor"`
	StrokeWidth float64 `json:"strokeWidth"`
	FillColor   *Color  `json:"fillColor,omitempty"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
