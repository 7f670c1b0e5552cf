package theme_test

import (
	"testing"

	"github.com/wegner15/billforge/document"
	"github.com/wegner15/billforge/theme"
)

const sampleTheme = `
theme quote {
  title: "PROPOSAL"
  currency: "USD"
  accent: #0F62FE
  tint: #EEF2F8

  footer: "Page ${page} / ${pages}"

  font bold {
    src: "embed:Inter/static/Inter-SemiBold.ttf"
    style: "semibold"
  }

  label total: "TOTAL QUOTED"
  label billto: "PREPARED FOR"
}
`

func TestParseTheme(t *testing.T) {
	th, err := theme.ParseString(sampleTheme)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if th.Title != "PROPOSAL" {
		t.Fatalf("title override missing, got %q", th.Title)
	}
	if th.Currency != "USD" {
		t.Fatalf("currency override missing, got %q", th.Currency)
	}
	if th.Accent != (theme.Color{R: 0x0F, G: 0x62, B: 0xFE}) {
		t.Fatalf("accent color wrong: %+v", th.Accent)
	}
	if th.Footer != "Page ${page} / ${pages}" {
		t.Fatalf("footer override missing: %q", th.Footer)
	}
	if th.Bold.Src != "embed:Inter/static/Inter-SemiBold.ttf" || th.Bold.Style != "semibold" {
		t.Fatalf("bold font override missing: %+v", th.Bold)
	}
	if th.Labels.Total != "TOTAL QUOTED" {
		t.Fatalf("label override missing: %q", th.Labels.Total)
	}
	// 未覆盖的字段保持 quote 默认值
	if th.Labels.Milestones != "Payment Schedule" {
		t.Fatalf("default label lost: %q", th.Labels.Milestones)
	}
}

// 六位色值必须整体作为一个 Color 词法单元，不得被截成三位色加残余标识符。
func TestParseThemeLongColor(t *testing.T) {
	th, err := theme.ParseString("theme invoice { accent: #1F6FEB }")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if th.Accent != (theme.Color{R: 0x1F, G: 0x6F, B: 0xEB}) {
		t.Fatalf("#RRGGBB parsed wrong: %+v", th.Accent)
	}
}

func TestParseThemeShortColor(t *testing.T) {
	th, err := theme.ParseString("theme invoice { accent: #F00 }")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if th.Accent != (theme.Color{R: 0xFF, G: 0x00, B: 0x00}) {
		t.Fatalf("#RGB expansion wrong: %+v", th.Accent)
	}
}

func TestParseThemeRejectsUnknownProperty(t *testing.T) {
	if _, err := theme.ParseString(`theme invoice { nope: "x" }`); err == nil {
		t.Fatalf("expected error for unknown property")
	}
}

func TestForKind(t *testing.T) {
	if th := theme.ForKind(document.KindQuote); th.Title != "QUOTATION" {
		t.Fatalf("quote theme wrong: %q", th.Title)
	}
	if th := theme.ForKind(document.KindInvoice); th.Title != "INVOICE" {
		t.Fatalf("invoice theme wrong: %q", th.Title)
	}
	if th := theme.ForKind(document.KindInvoice); th.Currency != "KSH" {
		t.Fatalf("default currency wrong: %q", th.Currency)
	}
}
