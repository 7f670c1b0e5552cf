package layout

import (
	"fmt"
	"strings"

	"github.com/wegner15/billforge/document"
	"github.com/wegner15/billforge/theme"
)

// 布局常量（mm）。字号以 pt 声明后换算。
const (
	blockSpacing = 3.0
	lineFactor   = 1.45

	logoHeight   = 14.0
	logoMaxWidth = 70.0
	badgeRadius  = 5.5

	metaLabelWidth = 30.0
	columnGap      = 8.0
)

var (
	sizeBody  = FontMM(10)
	sizeSmall = FontMM(8)
	sizeH2    = FontMM(12)
	sizeTitle = FontMM(20)
	sizeTotal = FontMM(15)
)

var (
	inkColor   = Color{R: 30, G: 30, B: 30}
	mutedColor = Color{R: 120, G: 120, B: 120}
	ruleColor  = Color{R: 200, G: 200, B: 200}
	whiteColor = Color{R: 255, G: 255, B: 255}
)

// renderContext 把单据模型、主题与分页状态串给各区块渲染器。
// 各渲染器只向前推进游标，互不读取后续区块的产物。
type renderContext struct {
	doc  *document.Document
	th   theme.Theme
	ts   Typesetter
	st   *renderState
	opts BuildOptions

	body   FontRef
	bold   FontRef
	accent Color
	tint   Color
	band   Color

	currency string

	// bandErr 记录换页回调里首个排版失败；回调无返回值，由 Build 收尾时上抛。
	bandErr error
}

func newRenderContext(doc *document.Document, th theme.Theme, st *renderState, opts BuildOptions) *renderContext {
	currency := strings.TrimSpace(doc.Currency)
	if currency == "" {
		currency = strings.TrimSpace(th.Currency)
	}
	if currency == "" {
		currency = document.DefaultCurrency
	}
	return &renderContext{
		doc:      doc,
		th:       th,
		ts:       opts.Typesetter,
		st:       st,
		opts:     opts,
		body:     FontRef{Src: th.Body.Src, Style: th.Body.Style},
		bold:     FontRef{Src: th.Bold.Src, Style: th.Bold.Style},
		accent:   colorOf(th.Accent),
		tint:     colorOf(th.Tint),
		band:     colorOf(th.Band),
		currency: currency,
	}
}

func colorOf(c theme.Color) Color { return Color{R: int(c.R), G: int(c.G), B: int(c.B)} }

func (rc *renderContext) recordBandErr(err error) {
	if rc.bandErr == nil {
		rc.bandErr = err
	}
}

func (rc *renderContext) contentWidth() float64 {
	return rc.st.pageW - rc.st.margin.Left - rc.st.margin.Right
}

func (rc *renderContext) rightEdge() float64 { return rc.st.pageW - rc.st.margin.Right }

// compose 只排版不落页：返回未定 Y 的文本框与其总高。
// 行高缺省按 lineFactor 推导；排版器未回填的行高用字号兜底。
func (rc *renderContext) compose(content string, x, width float64, font FontRef, size float64, col Color, align string, mode WrapMode) (TextBox, float64, error) {
	lineHeight := size * lineFactor
	lines, err := rc.ts.LayoutLines(content, width, font, size, lineHeight, mode)
	if err != nil {
		return TextBox{}, 0, err
	}
	if len(lines) == 0 {
		lines = []TextLine{{Content: "", Height: lineHeight}}
	}
	total := 0.0
	for i := range lines {
		if lines[i].Height <= 0 {
			lines[i].Height = lineHeight
		}
		total += lines[i].GapBefore + lines[i].Height
	}
	tb := TextBox{
		Content:  content,
		X:        x,
		Width:    width,
		Font:     font,
		FontSize: size,
		Color:    col,
		Align:    align,
		Lines:    lines,
		Height:   total,
	}
	return tb, total, nil
}

// place 把已组合的文本框落在指定纵坐标上。
func (rc *renderContext) place(tb TextBox, y float64) {
	tb.Y = y
	acc := rc.st.page()
	acc.texts = append(acc.texts, tb)
}

// write 在当前游标处落一个文本块：先查空间，再写入并推进游标。
func (rc *renderContext) write(content string, x, width float64, font FontRef, size float64, col Color, align string, mode WrapMode) error {
	tb, h, err := rc.compose(content, x, width, font, size, col, align, mode)
	if err != nil {
		return err
	}
	rc.st.ensureSpace(h)
	rc.place(tb, rc.st.cursorY)
	rc.st.advance(h)
	return nil
}

// flow 逐行落长文本，段落过长时在行边界跨页续排。
func (rc *renderContext) flow(content string, x, width float64, font FontRef, size float64, col Color) error {
	tb, _, err := rc.compose(content, x, width, font, size, col, "", WrapWord)
	if err != nil {
		return err
	}
	lines := tb.Lines
	for len(lines) > 0 {
		lines[0].GapBefore = 0
		take, h := 0, 0.0
		for _, ln := range lines {
			lh := ln.GapBefore + ln.Height
			if h+lh > rc.st.remaining() {
				break
			}
			h += lh
			take++
		}
		if take == 0 {
			if rc.st.freshPage {
				// 新页也装不下的单行：放行一行，交给渲染面裁剪
				take, h = 1, lines[0].Height
			} else {
				rc.st.newPage()
				continue
			}
		}
		chunk := tb
		chunk.Lines = lines[:take]
		chunk.Height = h
		rc.place(chunk, rc.st.cursorY)
		rc.st.advance(h)
		lines = lines[take:]
	}
	return nil
}

// renderHeader 绘制首页品牌区：左侧 logo（或文字品牌退化），右侧标题与单据编号，
// 下沿一条强调色分隔线。该区块永远落在首页顶部，无需查空间。
func (rc *renderContext) renderHeader() error {
	st := rc.st
	top := st.cursorY
	left := st.margin.Left
	leftH := 0.0

	switch {
	case len(rc.opts.Logo) > 0:
		aspect := rc.opts.LogoAspect
		if aspect <= 0 {
			aspect = 1
		}
		h := logoHeight
		w := h * aspect
		if w > logoMaxWidth {
			w = logoMaxWidth
			h = w / aspect
		}
		acc := st.page()
		acc.images = append(acc.images, ImageBox{Data: rc.opts.Logo, X: left, Y: top, Width: w, Height: h})
		leftH = h
	case rc.doc.Issuer != nil && strings.TrimSpace(rc.doc.Issuer.Name) != "":
		if err := rc.renderTextBrand(top); err != nil {
			return err
		}
		leftH = 2 * badgeRadius
	}

	titleTB, titleH, err := rc.compose(rc.th.Title, left, rc.contentWidth(), rc.bold, sizeTitle, rc.accent, "right", WrapNone)
	if err != nil {
		return err
	}
	rc.place(titleTB, top)
	rightH := titleH
	if id := strings.TrimSpace(rc.doc.ID); id != "" {
		idTB, idH, err := rc.compose("#"+id, left, rc.contentWidth(), rc.body, sizeSmall, mutedColor, "right", WrapNone)
		if err != nil {
			return err
		}
		rc.place(idTB, top+titleH)
		rightH += idH
	}

	bandH := leftH
	if rightH > bandH {
		bandH = rightH
	}
	ruleY := top + bandH + 2
	acc := st.page()
	acc.lines = append(acc.lines, Line{X1: left, Y1: ruleY, X2: rc.rightEdge(), Y2: ruleY, Color: rc.accent, Width: 0.5})
	st.cursorY = ruleY + blockSpacing
	return nil
}

// renderTextBrand 是 logo 不可用时的文字品牌退化：强调色首字母徽章加公司名。
func (rc *renderContext) renderTextBrand(top float64) error {
	st := rc.st
	left := st.margin.Left
	fill := rc.accent
	acc := st.page()
	acc.circles = append(acc.circles, Circle{
		CX:          left + badgeRadius,
		CY:          top + badgeRadius,
		R:           badgeRadius,
		StrokeColor: rc.accent,
		StrokeWidth: 0.3,
		FillColor:   &fill,
	})

	name := strings.TrimSpace(rc.doc.Issuer.Name)
	initial := strings.ToUpper(string([]rune(name)[0]))
	letterTB, letterH, err := rc.compose(initial, left, 2*badgeRadius, rc.bold, sizeH2, whiteColor, "center", WrapNone)
	if err != nil {
		return err
	}
	rc.place(letterTB, top+badgeRadius-letterH/2)

	nameX := left + 2*badgeRadius + 3
	nameW := rc.contentWidth()/2 - 2*badgeRadius - 3
	nameTB, nameH, err := rc.compose(name, nameX, nameW, rc.bold, sizeH2, inkColor, "", WrapWord)
	if err != nil {
		return err
	}
	rc.place(nameTB, top+badgeRadius-nameH/2)
	return nil
}

// stampBand 是换页后重绘的紧凑页眉带：标题居左、编号居右、下沿分隔线。
// 排版失败记入 bandErr 并整带跳过，Build 结束前统一上抛。
func (rc *renderContext) stampBand(st *renderState) {
	top := st.margin.Top
	left := st.margin.Left

	titleTB, titleH, err := rc.compose(rc.th.Title, left, rc.contentWidth(), rc.bold, sizeH2, rc.accent, "", WrapNone)
	if err != nil {
		rc.recordBandErr(err)
		return
	}
	rc.place(titleTB, top)
	if id := strings.TrimSpace(rc.doc.ID); id != "" {
		idTB, _, err := rc.compose("#"+id, left, rc.contentWidth(), rc.body, sizeSmall, mutedColor, "right", WrapNone)
		if err != nil {
			rc.recordBandErr(err)
			return
		}
		rc.place(idTB, top)
	}
	ruleY := top + titleH + 1.5
	acc := st.page()
	acc.lines = append(acc.lines, Line{X1: left, Y1: ruleY, X2: rc.rightEdge(), Y2: ruleY, Color: rc.accent, Width: 0.35})
	st.cursorY = ruleY + blockSpacing
}

// renderMeta 绘制元信息区：日期、到期日/有效期、状态。标签列固定宽度。
func (rc *renderContext) renderMeta() error {
	type row struct{ label, value string }
	labels := rc.th.Labels
	rows := []row{{labels.Date, formatDate(rc.doc.CreatedAt)}}

	if rc.doc.Kind == document.KindQuote {
		if rc.doc.ValidityDays > 0 {
			rows = append(rows, row{labels.Validity, fmt.Sprintf("%d days", rc.doc.ValidityDays)})
		}
	} else if rc.doc.DueDate != nil {
		rows = append(rows, row{labels.Due, formatDate(*rc.doc.DueDate)})
	}
	if s := strings.TrimSpace(string(rc.doc.Status)); s != "" {
		rows = append(rows, row{labels.Status, strings.ToUpper(s)})
	}

	left := rc.st.margin.Left
	valueX := left + metaLabelWidth + 2
	valueW := rc.contentWidth() - metaLabelWidth - 2
	for _, r := range rows {
		labelTB, lh, err := rc.compose(r.label, left, metaLabelWidth, rc.bold, sizeBody, inkColor, "", WrapNone)
		if err != nil {
			return err
		}
		valueTB, vh, err := rc.compose(r.value, valueX, valueW, rc.body, sizeBody, inkColor, "", WrapNone)
		if err != nil {
			return err
		}
		h := lh
		if vh > h {
			h = vh
		}
		rc.st.ensureSpace(h)
		rc.place(labelTB, rc.st.cursorY)
		rc.place(valueTB, rc.st.cursorY)
		rc.st.advance(h)
	}
	rc.st.advance(blockSpacing)
	return nil
}

// renderParties 绘制双栏地址区：出具方居左、接收方居右，两栏独立堆叠，
// 下一区块从较高一栏的底部之下开始。任一方缺失则跳过该栏，双方都缺失整块跳过。
func (rc *renderContext) renderParties() error {
	issuer, recipient := rc.doc.Issuer, rc.doc.Recipient
	if issuer == nil && recipient == nil {
		return nil
	}

	colW := (rc.contentWidth() - columnGap) / 2
	leftX := rc.st.margin.Left
	rightX := leftX + colW + columnGap

	leftBoxes, leftH, err := rc.composeParty(issuer, rc.th.Labels.From, leftX, colW)
	if err != nil {
		return err
	}
	rightBoxes, rightH, err := rc.composeParty(recipient, rc.th.Labels.BillTo, rightX, colW)
	if err != nil {
		return err
	}

	blockH := leftH
	if rightH > blockH {
		blockH = rightH
	}
	if blockH == 0 {
		return nil
	}
	// 地址块整体不跨页：一次性查够空间再落版。
	rc.st.ensureSpace(blockH)
	rc.placeColumn(leftBoxes)
	rc.placeColumn(rightBoxes)
	rc.st.advance(blockH + blockSpacing)
	return nil
}

// composeParty 组合单栏的标签、名称与联系信息，返回相对游标的文本框与总高。
func (rc *renderContext) composeParty(p *document.Party, label string, x, width float64) ([]TextBox, float64, error) {
	if p == nil {
		return nil, 0, nil
	}
	var boxes []TextBox
	y := 0.0

	add := func(content string, font FontRef, size float64, col Color) error {
		if strings.TrimSpace(content) == "" {
			return nil
		}
		tb, h, err := rc.compose(content, x, width, font, size, col, "", WrapWord)
		if err != nil {
			return err
		}
		tb.Y = y // 相对偏移，placeColumn 落版时加上游标
		boxes = append(boxes, tb)
		y += h + 0.8
		return nil
	}

	if err := add(label, rc.bold, sizeSmall, rc.accent); err != nil {
		return nil, 0, err
	}
	if err := add(p.Name, rc.bold, sizeBody, inkColor); err != nil {
		return nil, 0, err
	}
	if err := add(p.Address, rc.body, sizeBody, inkColor); err != nil {
		return nil, 0, err
	}
	if err := add(p.Email, rc.body, sizeBody, mutedColor); err != nil {
		return nil, 0, err
	}
	if err := add(p.Phone, rc.body, sizeBody, mutedColor); err != nil {
		return nil, 0, err
	}
	if len(boxes) == 1 {
		// 只剩标签说明该方没有任何实际内容，整栏跳过
		return nil, 0, nil
	}
	return boxes, y, nil
}

func (rc *renderContext) placeColumn(boxes []TextBox) {
	for _, tb := range boxes {
		rc.place(tb, rc.st.cursorY+tb.Y)
	}
}

// renderProject 绘制项目行与可选的项目描述。
func (rc *renderContext) renderProject() error {
	p := rc.doc.Project
	if p == nil {
		return nil
	}
	name := strings.TrimSpace(p.Name)
	desc := strings.TrimSpace(p.Description)
	if name == "" && desc == "" {
		return nil
	}
	left := rc.st.margin.Left
	if name != "" {
		line := rc.th.Labels.Project + ": " + name
		if err := rc.write(line, left, rc.contentWidth(), rc.bold, sizeBody, inkColor, "", WrapWord); err != nil {
			return err
		}
	}
	if desc != "" {
		if err := rc.flow(desc, left, rc.contentWidth(), rc.body, sizeBody, mutedColor); err != nil {
			return err
		}
	}
	rc.st.advance(blockSpacing)
	return nil
}

// renderFreeText 按模型顺序绘制命名长文本段，空段整体跳过。
func (rc *renderContext) renderFreeText(sections []document.FreeTextSection) error {
	left := rc.st.margin.Left
	for _, s := range sections {
		body := strings.TrimSpace(s.Body)
		if body == "" {
			continue
		}
		if title := strings.TrimSpace(s.Title); title != "" {
			if err := rc.write(title, left, rc.contentWidth(), rc.bold, sizeH2, inkColor, "", WrapNone); err != nil {
				return err
			}
			rc.st.advance(1)
		}
		if err := rc.flow(body, left, rc.contentWidth(), rc.body, sizeBody, inkColor); err != nil {
			return err
		}
		rc.st.advance(blockSpacing)
	}
	return nil
}

// renderDeliverables 将报价单的交付物列表渲染为加点号的条目。
func (rc *renderContext) renderDeliverables() error {
	items := rc.doc.Deliverables
	if rc.doc.Kind != document.KindQuote || len(items) == 0 {
		return nil
	}
	left := rc.st.margin.Left
	if err := rc.write(rc.th.Labels.Deliverables, left, rc.contentWidth(), rc.bold, sizeH2, inkColor, "", WrapNone); err != nil {
		return err
	}
	rc.st.advance(1)
	for _, it := range items {
		if strings.TrimSpace(it) == "" {
			continue
		}
		if err := rc.flow("•  "+it, left+2, rc.contentWidth()-2, rc.body, sizeBody, inkColor); err != nil {
			return err
		}
	}
	rc.st.advance(blockSpacing)
	return nil
}
