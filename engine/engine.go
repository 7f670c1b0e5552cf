// Package engine assembles the full render pipeline: theme selection, logo
// resolution, layout, and PDF output.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/wegner15/billforge/binding"
	"github.com/wegner15/billforge/document"
	"github.com/wegner15/billforge/layout"
	"github.com/wegner15/billforge/logo"
	"github.com/wegner15/billforge/renderer"
	"github.com/wegner15/billforge/theme"
)

// Backend couples text measurement with final output. The layout pass must
// wrap text against the exact font metrics the renderer later draws with, so
// a single implementation provides both halves.
type Backend interface {
	renderer.Renderer
	layout.Typesetter
}

// RenderFailedError tags any pipeline failure with the document it belongs
// to, so callers logging or reporting the error keep the correlation.
type RenderFailedError struct {
	DocumentID string
	Err        error
}

func (e *RenderFailedError) Error() string {
	return fmt.Sprintf("render failed for document %q: %v", e.DocumentID, e.Err)
}

func (e *RenderFailedError) Unwrap() error { return e.Err }

// Generator turns a complete document model into a finished PDF.
type Generator struct {
	Backend Backend
	Logos   *logo.Resolver

	// Logo, when embedded, is used directly and skips the blob store lookup.
	Logo logo.Resolution

	// Theme, when non-nil, overrides the per-kind default. Typically parsed
	// from a theme definition file.
	Theme *theme.Theme

	// Now injects the generation timestamp, the only non-deterministic input
	// of the pipeline. When nil the timestamp is left blank and the output is
	// a pure function of the document model.
	Now func() time.Time

	Log zerolog.Logger
}

func (g *Generator) themeFor(doc *document.Document) theme.Theme {
	if g.Theme != nil {
		return *g.Theme
	}
	return theme.ForKind(doc.Kind)
}

// Layout runs everything up to but excluding PDF encoding: it resolves the
// issuer logo, picks the theme and produces the paginated page descriptions.
// Useful on its own for layout debugging.
func (g *Generator) Layout(ctx context.Context, doc *document.Document) (*layout.Result, error) {
	if doc == nil {
		return nil, &RenderFailedError{Err: fmt.Errorf("nil document")}
	}
	if g.Backend == nil {
		return nil, &RenderFailedError{DocumentID: doc.ID, Err: fmt.Errorf("no backend configured")}
	}

	opts := layout.BuildOptions{Typesetter: g.Backend}
	if g.Now != nil {
		opts.GeneratedAt = g.Now()
	}
	switch {
	case g.Logo.Embedded():
		opts.Logo, opts.LogoAspect = g.Logo.Data, g.Logo.Aspect
	case g.Logos != nil && doc.Issuer != nil:
		if res := g.Logos.Resolve(ctx, doc.Issuer.LogoKey); res.Embedded() {
			opts.Logo, opts.LogoAspect = res.Data, res.Aspect
		}
	}

	result, err := layout.Build(doc, g.themeFor(doc), opts)
	if err != nil {
		return nil, &RenderFailedError{DocumentID: doc.ID, Err: err}
	}
	return result, nil
}

// Render produces the final PDF bytes for doc.
func (g *Generator) Render(ctx context.Context, doc *document.Document) ([]byte, error) {
	started := time.Now()
	result, err := g.Layout(ctx, doc)
	if err != nil {
		return nil, err
	}
	data, err := g.Backend.Render(result)
	if err != nil {
		return nil, &RenderFailedError{DocumentID: doc.ID, Err: err}
	}
	g.Log.Info().
		Str("document_id", doc.ID).
		Str("kind", string(doc.Kind)).
		Int("pages", len(result.Pages)).
		Int("bytes", len(data)).
		Dur("took", time.Since(started)).
		Msg("document rendered")
	return data, nil
}

// Filename returns the download name for the rendered document, eg.
// "Acme_Ltd_Invoice_#INV-042.pdf". Missing recipient names fall back to
// "Unknown" rather than producing a leading underscore.
func Filename(doc *document.Document) string {
	kind := "Invoice"
	if doc.Kind == document.KindQuote {
		kind = "Quote"
	}
	return binding.Interpolate("${recipient}_${kind}_#${id}.pdf", map[string]interface{}{
		"recipient": sanitizeFilePart(doc.RecipientName()),
		"kind":      kind,
		"id":        sanitizeFilePart(doc.ID),
	})
}

// sanitizeFilePart keeps filenames portable across filesystems and HTTP
// Content-Disposition headers.
func sanitizeFilePart(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
