package layout

// renderState 是引擎内部的可变分页状态：追加式页面序列加一个自顶向下的
// 纵向游标。生命周期只覆盖一次 Build 调用，调用之间不共享。
//
// 不变式：任何区块写入前必须先经 ensureSpace 检查所需高度；
// 游标越过内容区底部之前必然已触发换页。
type renderState struct {
	pageW  float64
	pageH  float64
	margin Margin

	accs    []*pageAcc
	current int
	cursorY float64

	// freshPage 标记当前页尚无任何内容区写入（刚创建或刚换页）；
	// advance 后清除。页眉带直接落版不经 advance，不影响该标记。
	freshPage bool

	// onNewPage 在每次换页后重绘固定页眉带并下移游标；首页不触发。
	onNewPage func(*renderState)
}

// pageAcc 按绘制顺序收集单页元素。
type pageAcc struct {
	texts   []TextBox
	images  []ImageBox
	lines   []Line
	rects   []Rect
	circles []Circle
}

func newRenderState(w, h float64, m Margin) *renderState {
	st := &renderState{pageW: w, pageH: h, margin: m}
	st.accs = append(st.accs, &pageAcc{})
	st.current = 0
	st.cursorY = m.Top
	st.freshPage = true
	return st
}

func (st *renderState) page() *pageAcc { return st.accs[st.current] }

// contentBottom 返回内容区底界（页脚带之上）。
func (st *renderState) contentBottom() float64 { return st.pageH - st.margin.Bottom }

// remaining 返回当前页剩余可写高度。
func (st *renderState) remaining() float64 { return st.contentBottom() - st.cursorY }

// ensureSpace 在剩余空间不足 height 时换页。
func (st *renderState) ensureSpace(height float64) {
	if st.cursorY+height > st.contentBottom() {
		st.newPage()
	}
}

// newPage 追加新页、重置游标到内容区顶部，并重绘固定页眉带。
func (st *renderState) newPage() {
	st.accs = append(st.accs, &pageAcc{})
	st.current = len(st.accs) - 1
	st.cursorY = st.margin.Top
	if st.onNewPage != nil {
		st.onNewPage(st)
	}
	st.freshPage = true
}

// advance 在区块写入后下移游标。
func (st *renderState) advance(delta float64) {
	st.cursorY += delta
	st.freshPage = false
}

func (st *renderState) pages() []Page {
	out := make([]Page, len(st.accs))
	for i, acc := range st.accs {
		out[i] = Page{
			Width:   st.pageW,
			Height:  st.pageH,
			Margin:  st.margin,
			Texts:   acc.texts,
			Images:  acc.images,
			Lines:   acc.lines,
			Rects:   acc.rects,
			Circles: acc.circles,
		}
	}
	return out
}
