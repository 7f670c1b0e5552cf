package canvasrenderer

import (
	"math"
	"strings"
	"testing"

	"github.com/wegner15/billforge/layout"
)

var testFont = layout.FontRef{Src: "embed:Inter/static/Inter-Regular.ttf"}

func layoutLines(t *testing.T, content string, width float64, mode layout.WrapMode) []layout.TextLine {
	t.Helper()
	r := NewRenderer(".")
	fontSizeMM := 12 * layout.PtToMm
	lines, err := r.LayoutLines(content, width, testFont, fontSizeMM, fontSizeMM*1.2, mode)
	if err != nil {
		t.Fatalf("LayoutLines error: %v", err)
	}
	return lines
}

func TestLayoutLinesGreedyWrapsText(t *testing.T) {
	lines := layoutLines(t, "hello world again", 10, layout.WrapWord)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping into multiple lines, got %d", len(lines))
	}
}

func TestWrapHonorsNewlines(t *testing.T) {
	lines := layoutLines(t, "foo\n\nbar", 100, layout.WrapWord)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines including blank, got %d", len(lines))
	}
	if lines[1].Content != "" {
		t.Fatalf("expected middle line to be blank, got %q", lines[1].Content)
	}
}

// TestWrapWidthLimit 验证每行宽度不超过限制（mm），超宽整词除外。
func TestWrapWidthLimit(t *testing.T) {
	limit := 60.0
	lines := layoutLines(t, "the quick brown fox jumps over the lazy dog again and again", limit, layout.WrapWord)
	if len(lines) < 2 {
		t.Fatalf("expected multiple lines, got %d", len(lines))
	}
	for i, ln := range lines {
		if ln.Width-limit > 1e-6 {
			t.Fatalf("line %d width exceeds limit: width=%g limit=%g", i, ln.Width, limit)
		}
	}
}

// TestWrapKeepsOverlongWordUnsplit 验证单词超宽时独占一行且不拆词。
func TestWrapKeepsOverlongWordUnsplit(t *testing.T) {
	word := "Pneumonoultramicroscopicsilicovolcanoconiosis"
	lines := layoutLines(t, "short "+word+" tail", 15, layout.WrapWord)
	found := false
	for _, ln := range lines {
		if ln.Content == word {
			found = true
		}
	}
	if !found {
		t.Fatalf("overlong word should stay unsplit on its own line: %+v", lines)
	}
}

// TestWrapReconstructsText 验证折行后按单空格拼回可还原原文（允许空白折叠）。
func TestWrapReconstructsText(t *testing.T) {
	content := "one  two   three\tfour five six seven eight nine ten"
	lines := layoutLines(t, content, 25, layout.WrapWord)
	parts := []string{}
	for _, ln := range lines {
		if ln.Content != "" {
			parts = append(parts, ln.Content)
		}
	}
	got := strings.Join(parts, " ")
	want := strings.Join(strings.Fields(content), " ")
	if got != want {
		t.Fatalf("reconstruction mismatch:\n got=%q\nwant=%q", got, want)
	}
}

func TestWrapSanitizesCarriageReturns(t *testing.T) {
	lines := layoutLines(t, "foo\r\nbar", 100, layout.WrapWord)
	if len(lines) != 2 {
		t.Fatalf("\\r\\n should split into exactly 2 lines, got %d", len(lines))
	}
	if lines[0].Content != "foo" || lines[1].Content != "bar" {
		t.Fatalf("unexpected content: %+v", lines)
	}
}

func TestWrapEmptyContent(t *testing.T) {
	lines := layoutLines(t, "", 100, layout.WrapWord)
	if len(lines) != 1 || lines[0].Content != "" {
		t.Fatalf("empty string should yield exactly one empty line, got %+v", lines)
	}
}

func TestWrapNoneIgnoresWidth(t *testing.T) {
	content := "a very long single line that would normally wrap at this width"
	lines := layoutLines(t, content, 5, layout.WrapNone)
	if len(lines) != 1 {
		t.Fatalf("nowrap must keep a single line, got %d", len(lines))
	}
	if lines[0].Content != content {
		t.Fatalf("nowrap content mismatch: %q", lines[0].Content)
	}
}

// TestLineHeightsInvariant 验证：首行 GapBefore == 0，
// 其余行 GapBefore ≈ max(lineHeight - textHeight, 0)。
func TestLineHeightsInvariant(t *testing.T) {
	r := NewRenderer(".")
	fontSizeMM := 12 * layout.PtToMm
	lineHeightMM := fontSizeMM * 1.3

	lines, err := r.LayoutLines("longlonglong longlonglong longlonglong longlonglong", 40, testFont, fontSizeMM, lineHeightMM, layout.WrapWord)
	if err != nil {
		t.Fatalf("LayoutLines error: %v", err)
	}
	if len(lines) < 2 {
		t.Fatalf("expected multiple lines, got %d", len(lines))
	}
	textHeight := lines[0].Height
	if textHeight <= 0 {
		t.Fatalf("invalid text height: %g", textHeight)
	}
	wantLeading := math.Max(lineHeightMM-textHeight, 0)
	if lines[0].GapBefore != 0 {
		t.Fatalf("first line GapBefore must be 0, got %g", lines[0].GapBefore)
	}
	const eps = 1e-6
	for i := 1; i < len(lines); i++ {
		if diff := math.Abs(lines[i].GapBefore - wantLeading); diff > eps {
			t.Fatalf("line %d GapBefore mismatch: got=%g want=%g", i, lines[i].GapBefore, wantLeading)
		}
	}
}
