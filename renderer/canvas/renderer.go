package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/wegner15/billforge/fonts"
	"github.com/wegner15/billforge/layout"
	"github.com/wegner15/billforge/renderer"
)

const defaultStrokeWidth = 0.2

// Renderer 基于 github.com/tdewolff/canvas 绘制布局结果并序列化为 PDF，
// 同时以其字体度量实现 layout.Typesetter。
type Renderer struct {
	baseDir string

	fontMu         sync.Mutex
	fontFamilies   map[string]*fontFamilyEntry
	fallbackFamily *canvas.FontFamily
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// NewRenderer 创建渲染器；baseDir 用于解析路径形式的字体资源。
func NewRenderer(baseDir string) *Renderer {
	return &Renderer{
		baseDir:      baseDir,
		fontFamilies: map[string]*fontFamilyEntry{},
	}
}

// Render 将布局结果渲染为 PDF 字节切片。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	var buf bytes.Buffer
	writer := pdf.New(&buf, result.Pages[0].Width, result.Pages[0].Height, nil)
	applyMeta(writer, result.Meta)
	for i, page := range result.Pages {
		if i > 0 {
			writer.NewPage(page.Width, page.Height)
		}
		c := canvas.New(page.Width, page.Height)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

		if err := r.drawPage(ctx, page); err != nil {
			return nil, err
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// drawPage 先画形状作为背景，再画文本，最后画图片。
func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page) error {
	drawLines(ctx, page.Lines)
	drawRects(ctx, page.Rects)
	drawCircles(ctx, page.Circles)
	for _, tb := range page.Texts {
		if err := r.drawTextBox(ctx, tb); err != nil {
			return err
		}
	}
	return drawImages(ctx, page.Images)
}

// LayoutLines 实现 layout.Typesetter：贪心按词折行。
// 约定：width/fontSize/lineHeight 入参均为毫米（mm）；与字体系统交互使用 pt，
// 在边界做 mm↔pt 换算。
func (r *Renderer) LayoutLines(content string, width float64, font layout.FontRef, fontSize, lineHeight float64, mode layout.WrapMode) ([]layout.TextLine, error) {
	face, err := r.fontFace(font, toPt(fontSize), layout.Color{R: 30, G: 30, B: 30})
	if err != nil {
		return nil, err
	}

	lines := wrapLines(content, width, face, mode)
	metrics := face.Metrics()
	textHeight := metrics.LineHeight
	if textHeight <= 0 {
		textHeight = lineHeight
	}
	leading := math.Max(lineHeight-textHeight, 0)
	if len(lines) == 0 {
		lines = []layout.TextLine{{Content: ""}}
	}
	for i := range lines {
		if lines[i].Height <= 0 {
			lines[i].Height = textHeight
		}
		if i == 0 {
			lines[i].GapBefore = 0
		} else {
			lines[i].GapBefore = leading
		}
	}
	return lines, nil
}

// wrapLines 按折行策略拆行。所有宽度比较均以 mm 进行。
//   - WrapNone：仅按显式换行划分；
//   - WrapWord（默认）：逐段贪心装词，整词超宽时独占一行且不拆词。
//
// \r 等回车符在度量前剔除（零视觉宽度但不是换行）。
func wrapLines(content string, width float64, face *canvas.FontFace, mode layout.WrapMode) []layout.TextLine {
	content = strings.ReplaceAll(content, "\r", "")
	limit := width
	if limit <= 0 {
		limit = math.MaxFloat64
	}

	paragraphs := strings.Split(content, "\n")
	var lines []layout.TextLine
	emit := func(s string) {
		lines = append(lines, layout.TextLine{Content: s, Width: face.TextWidth(s)})
	}

	if mode == layout.WrapNone {
		for _, p := range paragraphs {
			emit(p)
		}
		return lines
	}

	for _, p := range paragraphs {
		words := strings.Fields(p)
		if len(words) == 0 {
			// 空段落保留为空行
			emit("")
			continue
		}
		current := words[0]
		for _, w := range words[1:] {
			joined := current + " " + w
			if face.TextWidth(joined) < limit {
				current = joined
				continue
			}
			emit(current)
			current = w
		}
		emit(current)
	}
	return lines
}

func (r *Renderer) drawTextBox(ctx *canvas.Context, tb layout.TextBox) error {
	// TextBox 的坐标/字号均为 mm；创建字体面需要 pt。
	face, err := r.fontFace(tb.Font, toPt(tb.FontSize), tb.Color)
	if err != nil {
		return err
	}

	lines := tb.Lines
	if len(lines) == 0 {
		lines = []layout.TextLine{{Content: tb.Content, Width: tb.Width, Height: tb.FontSize}}
	}

	// 水平对齐：left（默认）/center/right，锚点随之移动。
	var textAlign canvas.TextAlign
	var anchorX float64
	switch strings.ToLower(tb.Align) {
	case "center":
		textAlign = canvas.Center
		anchorX = tb.X + tb.Width/2
	case "right", "end":
		textAlign = canvas.Right
		anchorX = tb.X + tb.Width
	default:
		textAlign = canvas.Left
		anchorX = tb.X
	}

	metrics := face.Metrics()
	cursorY := tb.Y
	for _, line := range lines {
		cursorY += line.GapBefore
		textLine := canvas.NewTextLine(face, line.Content, textAlign)

		lineHeight := line.Height
		if lineHeight <= 0 {
			lineHeight = tb.FontSize
		}

		// 基线位置：行顶部（mm）加上字体上升部（Ascent）
		ctx.DrawText(anchorX, cursorY+metrics.Ascent, textLine)
		cursorY += lineHeight
	}
	return nil
}

func drawImages(ctx *canvas.Context, images []layout.ImageBox) error {
	for _, img := range images {
		if len(img.Data) == 0 {
			continue
		}
		decoded, _, err := image.Decode(bytes.NewReader(img.Data))
		if err != nil {
			return fmt.Errorf("解码图片失败: %w", err)
		}
		width := img.Width
		if width <= 0 {
			width = 40.0
		}
		dpmm := float64(decoded.Bounds().Dx()) / width
		if dpmm <= 0 {
			dpmm = 1
		}
		ctx.DrawImage(img.X, img.Y, decoded, canvas.DPMM(dpmm))
	}
	return nil
}

func drawLines(ctx *canvas.Context, lines []layout.Line) {
	for _, ln := range lines {
		w := ln.Width
		if w <= 0 {
			w = defaultStrokeWidth
		}
		ctx.SetStrokeColor(colorFromLayout(ln.Color))
		ctx.SetStrokeWidth(w)
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(ln.X2-ln.X1, ln.Y2-ln.Y1)
		ctx.DrawPath(ln.X1, ln.Y1, p)
	}
}

func drawRects(ctx *canvas.Context, rects []layout.Rect) {
	for _, rc := range rects {
		w := rc.StrokeWidth
		if w <= 0 {
			w = defaultStrokeWidth
		}
		if rc.FillColor != nil {
			ctx.SetFillColor(colorFromLayout(*rc.FillColor))
		} else {
			ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
		}
		ctx.SetStrokeColor(colorFromLayout(rc.StrokeColor))
		ctx.SetStrokeWidth(w)
		ctx.DrawPath(rc.X, rc.Y, canvas.Rectangle(rc.Width, rc.Height))
	}
}

func drawCircles(ctx *canvas.Context, circles []layout.Circle) {
	for _, c := range circles {
		w := c.StrokeWidth
		if w <= 0 {
			w = defaultStrokeWidth
		}
		if c.FillColor != nil {
			ctx.SetFillColor(colorFromLayout(*c.FillColor))
		} else {
			ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
		}
		ctx.SetStrokeColor(colorFromLayout(c.StrokeColor))
		ctx.SetStrokeWidth(w)
		ctx.DrawPath(c.CX-c.R, c.CY-c.R, canvas.Circle(c.R))
	}
}

func (r *Renderer) fontFace(font layout.FontRef, size float64, col layout.Color) (*canvas.FontFace, error) {
	family, style, err := r.ensureFontFamily(font)
	if err != nil {
		return nil, err
	}
	return family.Face(size, colorFromLayout(col), style, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(font layout.FontRef) (*canvas.FontFamily, canvas.FontStyle, error) {
	key := font.Src + "|" + font.Style
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.fontFamilies[key]; ok {
		return entry.family, entry.style, nil
	}

	style := parseFontStyle(font.Style)
	family := canvas.NewFontFamily("billforge-" + key)
	if err := r.loadFontIntoFamily(family, font, style); err != nil {
		// 字体加载失败时回落到内置常规字体，不中断整个渲染。
		fallback, fbErr := r.fallback()
		if fbErr != nil {
			return nil, canvas.FontRegular, err
		}
		r.fontFamilies[key] = &fontFamilyEntry{family: fallback, style: canvas.FontRegular}
		return fallback, canvas.FontRegular, nil
	}

	entry := &fontFamilyEntry{family: family, style: style}
	r.fontFamilies[key] = entry
	return family, style, nil
}

func (r *Renderer) loadFontIntoFamily(family *canvas.FontFamily, font layout.FontRef, style canvas.FontStyle) error {
	data, err := r.loadFontBytes(font)
	if err != nil {
		return err
	}
	return family.LoadFont(data, 0, style)
}

func (r *Renderer) loadFontBytes(font layout.FontRef) ([]byte, error) {
	if font.Src == "" {
		return nil, fmt.Errorf("字体引用缺少 src")
	}
	src := font.Src
	if strings.HasPrefix(src, "embed:") {
		return fonts.Load(strings.TrimPrefix(src, "embed:"))
	}
	path := src
	if r.baseDir == "" && !filepath.IsAbs(path) {
		return nil, fmt.Errorf("未指定资源目录时不允许直接使用字体路径：%s（请改用 embed:）", src)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.baseDir, path)
	}
	return os.ReadFile(path)
}

func (r *Renderer) fallback() (*canvas.FontFamily, error) {
	if r.fallbackFamily != nil {
		return r.fallbackFamily, nil
	}
	data, err := fonts.Load("Inter/static/Inter-Regular.ttf")
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily("billforge-fallback")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, err
	}
	r.fallbackFamily = family
	return family, nil
}

func parseFontStyle(style string) canvas.FontStyle {
	if style == "" {
		return canvas.FontRegular
	}
	s := strings.ToLower(style)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }
