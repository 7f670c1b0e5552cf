package layout

import (
	"fmt"
	"strings"

	"github.com/wegner15/billforge/binding"
	"github.com/wegner15/billforge/document"
	"github.com/wegner15/billforge/theme"
)

// 默认页面几何：A4 纵向。下边距包含固定页脚带的占用。
var defaultMargin = Margin{Top: 16, Right: 18, Bottom: 24, Left: 18}

// 页脚带距页底的偏移（落在下边距内，不挤占内容区）。
const footerOffset = 12.0

// Build 将完整单据模型排成分页的页面描述。区块按固定顺序渲染：
// 品牌区 → 元信息 → 地址区 → 项目 → 长文本 → 明细表 → 总计 →
// 里程碑（报价单）→ 结尾文本 → 页脚（二次遍历逐页盖章）。
// 数据流单向：模型进、页面描述出；同一模型加同一 GeneratedAt 产出逐字节一致。
func Build(doc *document.Document, th theme.Theme, opts BuildOptions) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("layout: 单据模型为空")
	}
	if opts.Typesetter == nil {
		return nil, fmt.Errorf("layout: 缺少排版后端 Typesetter")
	}

	st := newRenderState(PageWidthA4, PageHeightA4, defaultMargin)
	rc := newRenderContext(doc, th, st, opts)

	if err := rc.renderHeader(); err != nil {
		return nil, err
	}
	// 首页品牌区落定后才挂换页回调：后续每次换页重绘紧凑页眉带。
	st.onNewPage = rc.stampBand

	steps := []func() error{
		rc.renderMeta,
		rc.renderParties,
		rc.renderProject,
		func() error { return rc.renderFreeText(doc.Sections) },
		rc.renderDeliverables,
		rc.renderItemsTable,
		rc.renderTotals,
		rc.renderMilestones,
		func() error { return rc.renderFreeText(doc.ClosingSections) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	if rc.bandErr != nil {
		return nil, fmt.Errorf("重绘页眉带失败: %w", rc.bandErr)
	}

	if err := rc.stampFooters(); err != nil {
		return nil, err
	}

	return &Result{Pages: st.pages(), Meta: buildMeta(doc, th)}, nil
}

// stampFooters 在内容定稿后二次遍历所有页面，盖上完全一致的页脚，
// 并插值页码、总页数与生成时间戳。
func (rc *renderContext) stampFooters() error {
	tpl := strings.TrimSpace(rc.th.Footer)
	if tpl == "" {
		return nil
	}
	total := len(rc.st.accs)
	generated := ""
	if !rc.opts.GeneratedAt.IsZero() {
		generated = rc.opts.GeneratedAt.Format("02 Jan 2006 15:04")
	}
	left := rc.st.margin.Left
	for i, acc := range rc.st.accs {
		text := binding.Interpolate(tpl, map[string]interface{}{
			"page":      i + 1,
			"pages":     total,
			"id":        rc.doc.ID,
			"generated": generated,
		})
		tb, h, err := rc.compose(text, left, rc.contentWidth(), rc.body, sizeSmall, mutedColor, "center", WrapNone)
		if err != nil {
			return err
		}
		tb.Y = rc.st.pageH - footerOffset - h/2
		acc.texts = append(acc.texts, tb)
	}
	return nil
}

func buildMeta(doc *document.Document, th theme.Theme) DocumentMeta {
	meta := DocumentMeta{
		Title:   th.Title,
		Creator: "billforge",
	}
	if id := strings.TrimSpace(doc.ID); id != "" {
		meta.Title = fmt.Sprintf("%s #%s", th.Title, id)
	}
	if doc.Issuer != nil {
		meta.Author = doc.Issuer.Name
	}
	if doc.Project != nil {
		meta.Subject = doc.Project.Name
	}
	meta.Keywords = []string{string(doc.Kind)}
	if s := strings.TrimSpace(string(doc.Status)); s != "" {
		meta.Keywords = append(meta.Keywords, s)
	}
	return meta
}
