package theme

import (
	"github.com/wegner15/billforge/document"
)

// Color uses 0-255 RGB values.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// FontSpec points at a font resource. Src accepts the same forms the renderer
// does ("embed:..." or a file path); Style selects the face weight.
type FontSpec struct {
	Src   string `json:"src"`
	Style string `json:"style,omitempty"`
}

// Labels collects every user-visible caption so deployments can localize
// documents without touching the section renderers.
type Labels struct {
	From         string `json:"from"`
	BillTo       string `json:"billTo"`
	Project      string `json:"project"`
	Date         string `json:"date"`
	Due          string `json:"due"`
	Validity     string `json:"validity"`
	Status       string `json:"status"`
	Description  string `json:"description"`
	Quantity     string `json:"quantity"`
	Rate         string `json:"rate"`
	Amount       string `json:"amount"`
	Subtotal     string `json:"subtotal"`
	Total        string `json:"total"`
	Paid         string `json:"paid"`
	Balance      string `json:"balance"`
	Milestones   string `json:"milestones"`
	Deliverables string `json:"deliverables"`
}

// Theme parameterizes the otherwise identical invoice/quote rendering path:
// one value object instead of two duplicated drawing routines.
type Theme struct {
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Currency string   `json:"currency"`
	Accent   Color    `json:"accent"`
	Tint     Color    `json:"tint"`
	Band     Color    `json:"band"`
	Footer   string   `json:"footer"`
	Body     FontSpec `json:"body"`
	Bold     FontSpec `json:"bold"`
	Labels   Labels   `json:"labels"`
}

const (
	defaultBodyFont = "embed:Inter/static/Inter-Regular.ttf"
	defaultBoldFont = "embed:Inter/static/Inter-Bold.ttf"
)

func baseLabels() Labels {
	return Labels{
		From:         "FROM",
		BillTo:       "BILL TO",
		Project:      "Project",
		Date:         "Date",
		Due:          "Due Date",
		Validity:     "Valid For",
		Status:       "Status",
		Description:  "Description",
		Quantity:     "Qty",
		Rate:         "Rate",
		Amount:       "Amount",
		Subtotal:     "Subtotal",
		Total:        "TOTAL",
		Paid:         "Paid",
		Balance:      "Balance Due",
		Milestones:   "Payment Schedule",
		Deliverables: "Deliverables",
	}
}

// Invoice returns the built-in invoice theme.
func Invoice() Theme {
	return Theme{
		Name:     "invoice",
		Title:    "INVOICE",
		Currency: document.DefaultCurrency,
		Accent:   Color{R: 31, G: 111, B: 235},
		Tint:     Color{R: 243, G: 246, B: 251},
		Band:     Color{R: 225, G: 233, B: 246},
		Footer:   "Page ${page} of ${pages} — generated ${generated}",
		Body:     FontSpec{Src: defaultBodyFont},
		Bold:     FontSpec{Src: defaultBoldFont, Style: "bold"},
		Labels:   baseLabels(),
	}
}

// Quote returns the built-in quotation theme.
func Quote() Theme {
	t := Theme{
		Name:     "quote",
		Title:    "QUOTATION",
		Currency: document.DefaultCurrency,
		Accent:   Color{R: 15, G: 157, B: 88},
		Tint:     Color{R: 242, G: 247, B: 244},
		Band:     Color{R: 222, G: 240, B: 230},
		Footer:   "Page ${page} of ${pages} — generated ${generated}",
		Body:     FontSpec{Src: defaultBodyFont},
		Bold:     FontSpec{Src: defaultBoldFont, Style: "bold"},
		Labels:   baseLabels(),
	}
	t.Labels.BillTo = "PREPARED FOR"
	return t
}

// ForKind picks the built-in theme matching the document kind.
func ForKind(k document.Kind) Theme {
	if k == document.KindQuote {
		return Quote()
	}
	return Invoice()
}
