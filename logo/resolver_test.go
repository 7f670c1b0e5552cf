package logo

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestResolveEmbedsValidImage(t *testing.T) {
	img := pngBytes(t, 120, 40)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/acme-logo.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(img)
	}))
	defer srv.Close()

	r := &Resolver{BaseURL: srv.URL, Log: zerolog.Nop()}
	res := r.Resolve(context.Background(), "acme-logo.png")
	if !res.Embedded() {
		t.Fatalf("expected embedded logo, got reason %q", res.Reason)
	}
	if res.Aspect != 3 {
		t.Fatalf("aspect mismatch: got %g want 3", res.Aspect)
	}
}

func TestResolveDegradesOnMissingKey(t *testing.T) {
	r := &Resolver{BaseURL: "http://unused", Log: zerolog.Nop()}
	if res := r.Resolve(context.Background(), ""); res.Embedded() {
		t.Fatal("empty key must not resolve a logo")
	}
}

func TestResolveDegradesOnNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	r := &Resolver{BaseURL: srv.URL, Log: zerolog.Nop()}
	res := r.Resolve(context.Background(), "missing.png")
	if res.Embedded() {
		t.Fatal("404 must degrade, not embed")
	}
	if res.Reason == "" {
		t.Fatal("degraded resolution must carry a reason")
	}
}

func TestResolveDegradesOnGarbage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("definitely not an image"))
	}))
	defer srv.Close()

	r := &Resolver{BaseURL: srv.URL, Log: zerolog.Nop()}
	if res := r.Resolve(context.Background(), "bad.png"); res.Embedded() {
		t.Fatal("undecodable payload must degrade")
	}
}

func TestFromBytesValidates(t *testing.T) {
	r := &Resolver{Log: zerolog.Nop()}
	if res := r.FromBytes(pngBytes(t, 10, 10)); !res.Embedded() {
		t.Fatalf("valid png rejected: %q", res.Reason)
	}
	if res := r.FromBytes([]byte{0x00}); res.Embedded() {
		t.Fatal("junk bytes accepted")
	}
}
