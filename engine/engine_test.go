package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/wegner15/billforge/document"
	"github.com/wegner15/billforge/layout"
)

// stubBackend measures text by rune count and encodes the layout shape into
// deterministic pseudo-PDF bytes. Good enough to exercise the pipeline
// without font loading.
type stubBackend struct {
	fail bool
}

func (s *stubBackend) LayoutLines(content string, width float64, font layout.FontRef, fontSize, lineHeight float64, mode layout.WrapMode) ([]layout.TextLine, error) {
	parts := strings.Split(strings.ReplaceAll(content, "\r", ""), "\n")
	out := make([]layout.TextLine, 0, len(parts))
	for i, p := range parts {
		gap := math.Max(lineHeight-fontSize, 0)
		if i == 0 {
			gap = 0
		}
		out = append(out, layout.TextLine{
			Content:   p,
			Width:     float64(len([]rune(p))) * fontSize * 0.5,
			Height:    fontSize,
			GapBefore: gap,
		})
	}
	return out, nil
}

func (s *stubBackend) Render(res *layout.Result) ([]byte, error) {
	if s.fail {
		return nil, errors.New("encoder exploded")
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "pages=%d", len(res.Pages))
	for _, p := range res.Pages {
		fmt.Fprintf(&b, ";texts=%d,rects=%d", len(p.Texts), len(p.Rects))
	}
	return b.Bytes(), nil
}

func sampleInvoice() *document.Document {
	return &document.Document{
		ID:        "INV-042",
		Kind:      document.KindInvoice,
		Status:    document.StatusSent,
		CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Issuer:    &document.Party{Name: "Acme Ltd", Email: "billing@acme.test"},
		Recipient: &document.Party{Name: "Wile E. Coyote"},
		LineItems: []document.LineItem{
			{Description: "Design work", Quantity: 2, Rate: 500},
			{Description: "Development", Quantity: 1, Rate: 2000},
		},
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	fixed := time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC)
	g := &Generator{
		Backend: &stubBackend{},
		Now:     func() time.Time { return fixed },
		Log:     zerolog.Nop(),
	}
	first, err := g.Render(context.Background(), sampleInvoice())
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := g.Render(context.Background(), sampleInvoice())
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("same model and timestamp must render identical output")
	}
}

func TestRenderWrapsBackendFailure(t *testing.T) {
	g := &Generator{Backend: &stubBackend{fail: true}, Log: zerolog.Nop()}
	_, err := g.Render(context.Background(), sampleInvoice())
	if err == nil {
		t.Fatal("expected error from failing backend")
	}
	var rf *RenderFailedError
	if !errors.As(err, &rf) {
		t.Fatalf("expected RenderFailedError, got %T", err)
	}
	if rf.DocumentID != "INV-042" {
		t.Fatalf("error must carry the document id, got %q", rf.DocumentID)
	}
}

func TestRenderRejectsNilDocument(t *testing.T) {
	g := &Generator{Backend: &stubBackend{}, Log: zerolog.Nop()}
	if _, err := g.Render(context.Background(), nil); err == nil {
		t.Fatal("nil document must fail")
	}
}

func TestFilename(t *testing.T) {
	doc := sampleInvoice()
	if got, want := Filename(doc), "Wile_E._Coyote_Invoice_#INV-042.pdf"; got != want {
		t.Fatalf("filename mismatch: got %q want %q", got, want)
	}

	quote := &document.Document{ID: "Q7", Kind: document.KindQuote}
	if got, want := Filename(quote), "Unknown_Quote_#Q7.pdf"; got != want {
		t.Fatalf("filename mismatch: got %q want %q", got, want)
	}
}
