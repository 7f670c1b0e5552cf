package layout

import (
	"github.com/wegner15/billforge/document"
)

// 明细表为固定四列：描述 | 数量 | 单价 | 金额，宽度按内容区比例划分。
const (
	descFrac = 0.50
	qtyFrac  = 0.12
	rateFrac = 0.19
	amtFrac  = 0.19

	cellPadding = 1.6
)

type tableGeom struct {
	x                        float64
	width                    float64
	descX, qtyX, rateX, amtX float64
	descW, qtyW, rateW, amtW float64
}

func (rc *renderContext) tableGeometry() tableGeom {
	w := rc.contentWidth()
	g := tableGeom{x: rc.st.margin.Left, width: w}
	g.descW = w * descFrac
	g.qtyW = w * qtyFrac
	g.rateW = w * rateFrac
	g.amtW = w * amtFrac
	g.descX = g.x
	g.qtyX = g.descX + g.descW
	g.rateX = g.qtyX + g.qtyW
	g.amtX = g.rateX + g.rateW
	return g
}

// renderItemsTable 绘制明细表。表头行有实底背景带；数据行按下标奇偶交替
// 着淡色底（偶数行着色），仅为可读性；每行落版前单独查空间，跨页后重绘表头。
// 明细为空时仍渲染只含表头的表结构，不报错。
func (rc *renderContext) renderItemsTable() error {
	g := rc.tableGeometry()
	labels := rc.th.Labels

	header := func() error {
		cells := []struct {
			text  string
			x, w  float64
			align string
		}{
			{labels.Description, g.descX, g.descW, ""},
			{labels.Quantity, g.qtyX, g.qtyW, "right"},
			{labels.Rate, g.rateX, g.rateW, "right"},
			{labels.Amount, g.amtX, g.amtW, "right"},
		}
		boxes := make([]TextBox, 0, len(cells))
		rowH := 0.0
		for _, c := range cells {
			tb, h, err := rc.compose(c.text, c.x+cellPadding, c.w-2*cellPadding, rc.bold, sizeSmall, inkColor, c.align, WrapNone)
			if err != nil {
				return err
			}
			boxes = append(boxes, tb)
			if h > rowH {
				rowH = h
			}
		}
		rowH += 2 * cellPadding
		rc.st.ensureSpace(rowH)
		fill := rc.band
		acc := rc.st.page()
		acc.rects = append(acc.rects, Rect{
			X: g.x, Y: rc.st.cursorY, Width: g.width, Height: rowH,
			StrokeColor: fill, FillColor: &fill,
		})
		for _, tb := range boxes {
			rc.place(tb, rc.st.cursorY+cellPadding)
		}
		rc.st.advance(rowH)
		return nil
	}

	if err := header(); err != nil {
		return err
	}

	for i, it := range rc.doc.LineItems {
		descTB, descH, err := rc.compose(it.Description, g.descX+cellPadding, g.descW-2*cellPadding, rc.body, sizeBody, inkColor, "", WrapWord)
		if err != nil {
			return err
		}
		qtyTB, qtyH, err := rc.compose(formatQuantity(it.Quantity), g.qtyX+cellPadding, g.qtyW-2*cellPadding, rc.body, sizeBody, inkColor, "right", WrapNone)
		if err != nil {
			return err
		}
		rateTB, rateH, err := rc.compose(formatMoney(it.Rate, rc.currency), g.rateX+cellPadding, g.rateW-2*cellPadding, rc.body, sizeBody, inkColor, "right", WrapNone)
		if err != nil {
			return err
		}
		amtTB, amtH, err := rc.compose(formatMoney(it.Amount(), rc.currency), g.amtX+cellPadding, g.amtW-2*cellPadding, rc.body, sizeBody, inkColor, "right", WrapNone)
		if err != nil {
			return err
		}

		rowH := descH
		for _, h := range []float64{qtyH, rateH, amtH} {
			if h > rowH {
				rowH = h
			}
		}
		rowH += 2 * cellPadding

		if rc.st.cursorY+rowH > rc.st.contentBottom() {
			rc.st.newPage()
			if err := header(); err != nil {
				return err
			}
		}
		if i%2 == 0 {
			fill := rc.tint
			acc := rc.st.page()
			acc.rects = append(acc.rects, Rect{
				X: g.x, Y: rc.st.cursorY, Width: g.width, Height: rowH,
				StrokeColor: fill, FillColor: &fill,
			})
		}
		y := rc.st.cursorY + cellPadding
		rc.place(descTB, y)
		rc.place(qtyTB, y)
		rc.place(rateTB, y)
		rc.place(amtTB, y)
		rc.st.advance(rowH)
	}

	acc := rc.st.page()
	acc.lines = append(acc.lines, Line{
		X1: g.x, Y1: rc.st.cursorY, X2: g.x + g.width, Y2: rc.st.cursorY,
		Color: ruleColor, Width: 0.3,
	})
	rc.st.advance(blockSpacing)
	return nil
}

// renderTotals 绘制总计区：小计（及发票的已付/余额）右对齐排列，
// 总计标签右对齐，其下以更大字号、强调色输出总额。
func (rc *renderContext) renderTotals() error {
	doc := rc.doc
	labels := rc.th.Labels
	w := rc.contentWidth()
	left := rc.st.margin.Left

	row := func(label, value string, font FontRef, size float64, col Color) error {
		labelTB, lh, err := rc.compose(label, left, w-40, font, size, col, "right", WrapNone)
		if err != nil {
			return err
		}
		valueTB, vh, err := rc.compose(value, rc.rightEdge()-38, 38, font, size, col, "right", WrapNone)
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
		rc.st.advance(h + 0.6)
		return nil
	}

	if err := row(labels.Subtotal, formatMoney(doc.Subtotal(), rc.currency), rc.body, sizeBody, inkColor); err != nil {
		return err
	}
	if doc.Kind == document.KindInvoice && doc.AmountPaid > 0 {
		if err := row(labels.Paid, formatMoney(-doc.AmountPaid, rc.currency), rc.body, sizeBody, mutedColor); err != nil {
			return err
		}
		if err := row(labels.Balance, formatMoney(doc.BalanceDue(), rc.currency), rc.bold, sizeBody, inkColor); err != nil {
			return err
		}
	}

	labelTB, lh, err := rc.compose(labels.Total, left, w, rc.bold, sizeSmall, mutedColor, "right", WrapNone)
	if err != nil {
		return err
	}
	totalTB, th, err := rc.compose(formatMoney(doc.GrandTotal(), rc.currency), left, w, rc.bold, sizeTotal, rc.accent, "right", WrapNone)
	if err != nil {
		return err
	}
	rc.st.ensureSpace(lh + th)
	rc.place(labelTB, rc.st.cursorY)
	rc.place(totalTB, rc.st.cursorY+lh)
	rc.st.advance(lh + th + blockSpacing)
	return nil
}

// renderMilestones 绘制报价单的付款里程碑：标签、百分比、按小计推导的金额，
// 以及可选的到期日；到期日缺失时该列留空而非渲染空白占位。
func (rc *renderContext) renderMilestones() error {
	doc := rc.doc
	if doc.Kind != document.KindQuote || len(doc.Milestones) == 0 {
		return nil
	}
	left := rc.st.margin.Left
	w := rc.contentWidth()
	if err := rc.write(rc.th.Labels.Milestones, left, w, rc.bold, sizeH2, inkColor, "", WrapNone); err != nil {
		return err
	}
	rc.st.advance(1)

	labelW := w * 0.40
	pctW := w * 0.13
	amtW := w * 0.24
	dueW := w - labelW - pctW - amtW
	pctX := left + labelW
	amtX := pctX + pctW
	dueX := amtX + amtW

	sub := doc.Subtotal()
	for _, m := range doc.Milestones {
		labelTB, lh, err := rc.compose(m.Label, left, labelW-2, rc.body, sizeBody, inkColor, "", WrapWord)
		if err != nil {
			return err
		}
		pctTB, ph, err := rc.compose(formatPercent(m.Percentage), pctX, pctW-2, rc.body, sizeBody, mutedColor, "right", WrapNone)
		if err != nil {
			return err
		}
		amtTB, ah, err := rc.compose(formatMoney(m.Amount(sub), rc.currency), amtX, amtW-2, rc.bold, sizeBody, inkColor, "right", WrapNone)
		if err != nil {
			return err
		}
		rowH := lh
		for _, h := range []float64{ph, ah} {
			if h > rowH {
				rowH = h
			}
		}
		var dueTB TextBox
		hasDue := m.DueDate != nil
		if hasDue {
			var dh float64
			dueTB, dh, err = rc.compose(formatDate(*m.DueDate), dueX, dueW, rc.body, sizeBody, mutedColor, "right", WrapNone)
			if err != nil {
				return err
			}
			if dh > rowH {
				rowH = dh
			}
		}
		rowH += 1.2
		rc.st.ensureSpace(rowH)
		y := rc.st.cursorY
		rc.place(labelTB, y)
		rc.place(pctTB, y)
		rc.place(amtTB, y)
		if hasDue {
			rc.place(dueTB, y)
		}
		rc.st.advance(rowH)
	}
	rc.st.advance(blockSpacing)
	return nil
}
