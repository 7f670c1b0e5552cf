package document

import (
	"math"
	"strings"
	"time"
)

// Kind 区分单据类型：发票（invoice）或报价单（quote）。
type Kind string

const (
	KindInvoice Kind = "invoice"
	KindQuote   Kind = "quote"
)

// Status 仅用于展示，不影响任何布局逻辑。
type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusPaid     Status = "paid"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusOverdue  Status = "overdue"
	StatusExpired  Status = "expired"
)

// DefaultCurrency 未显式指定货币时的默认货币代码。
const DefaultCurrency = "KSH"

// Party 描述单据的一方（出具方公司或接收方客户）。
// 任一字段都可能为空，渲染时按缺省整体跳过对应区块。
type Party struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	// LogoKey 为 blob 存储中的键；为空表示无 logo。
	LogoKey string `json:"logoKey,omitempty"`
}

// Project 为纯信息性的项目说明。
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// FreeTextSection 表示一段有标题的长文本（简介、范围、条款等），
// 内容为空时整段跳过，各段独立折行。
type FreeTextSection struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// LineItem 是一条明细行。Amount 永远由 Quantity×Rate 推导，不从输入读取。
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
}

// Amount 返回该行金额。
func (it LineItem) Amount() float64 { return it.Quantity * it.Rate }

// Milestone 是报价单的付款里程碑，按百分比瓜分明细小计。
type Milestone struct {
	Label      string     `json:"label"`
	Percentage float64    `json:"percentage"` // 0–100
	DueDate    *time.Time `json:"dueDate,omitempty"`
}

// Amount 返回按小计推导的里程碑金额（四舍五入到分）。
func (m Milestone) Amount(subtotal float64) float64 {
	return round2(m.Percentage / 100 * subtotal)
}

// Document 是一次渲染的不可变输入：已完成关联查询的完整单据模型。
type Document struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Status    Status    `json:"status,omitempty"`
	CreatedAt time.Time `json:"createdAt"`

	// DueDate 仅发票使用；ValidityDays 仅报价单使用，二者互斥。
	DueDate      *time.Time `json:"dueDate,omitempty"`
	ValidityDays int        `json:"validityDays,omitempty"`

	Currency  string   `json:"currency,omitempty"`
	Issuer    *Party   `json:"issuer,omitempty"`
	Recipient *Party   `json:"recipient,omitempty"`
	Project   *Project `json:"project,omitempty"`

	// Sections 按模型顺序渲染于明细表之前；ClosingSections（如条款）渲染于其后。
	Sections        []FreeTextSection `json:"sections,omitempty"`
	ClosingSections []FreeTextSection `json:"closingSections,omitempty"`

	LineItems []LineItem `json:"lineItems,omitempty"`

	// Milestones 与 Deliverables 仅报价单使用。
	Milestones   []Milestone `json:"milestones,omitempty"`
	Deliverables []string    `json:"deliverables,omitempty"`

	// AmountPaid 仅发票使用，>0 时总计区块额外显示已付与应付余额。
	AmountPaid float64 `json:"amountPaid,omitempty"`
}

// Subtotal 返回明细行金额之和。
func (d *Document) Subtotal() float64 {
	sum := 0.0
	for _, it := range d.LineItems {
		sum += it.Amount()
	}
	return sum
}

// GrandTotal 即小计：里程碑只是对小计的瓜分，不单独求和。
func (d *Document) GrandTotal() float64 { return d.Subtotal() }

// BalanceDue 返回扣除已付后的应付余额，不为负。
func (d *Document) BalanceDue() float64 {
	b := d.GrandTotal() - d.AmountPaid
	if b < 0 {
		return 0
	}
	return b
}

// CurrencyCode 返回单据货币，未指定时回落到 DefaultCurrency。
func (d *Document) CurrencyCode() string {
	if c := strings.TrimSpace(d.Currency); c != "" {
		return c
	}
	return DefaultCurrency
}

// RecipientName 返回客户名称，缺失时返回 "Unknown"（用于文件名等）。
func (d *Document) RecipientName() string {
	if d.Recipient != nil {
		if n := strings.TrimSpace(d.Recipient.Name); n != "" {
			return n
		}
	}
	return "Unknown"
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
