// Package logo resolves company logo images from blob storage.
//
// Resolution failures are part of normal operation: a document without a logo
// is an acceptable output, failing the whole render is not. Every error path
// therefore degrades to an Unavailable resolution and is logged, never
// surfaced to the caller.
package logo

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// Resolution is the typed outcome of a logo lookup: either embedded image
// bytes ready for placement, or an explicit unavailability reason. Encoding
// the fallback in the type keeps the degraded path visible to the header
// renderer instead of hiding it in a swallowed error.
type Resolution struct {
	Data   []byte
	Aspect float64 // width/height ratio, valid only when embedded
	Reason string  // set when unavailable
}

// Embedded reports whether usable image bytes were resolved.
func (r Resolution) Embedded() bool { return len(r.Data) > 0 }

// Unavailable builds a degraded resolution carrying the reason for logging.
func Unavailable(reason string) Resolution { return Resolution{Reason: reason} }

// Accepted image formats; anything else is treated as absent.
var supportedFormats = map[string]bool{"png": true, "jpeg": true}

const maxLogoBytes = 4 << 20

// Resolver fetches logo images by key from a blob store over HTTP.
// No retries and no internal timeout: cancellation comes from the caller's
// context, and a transient failure degrades instead of retrying.
type Resolver struct {
	BaseURL string
	Client  *http.Client
	Log     zerolog.Logger
}

// Resolve looks up the logo stored under key. It never returns an error.
func (r *Resolver) Resolve(ctx context.Context, key string) Resolution {
	if strings.TrimSpace(key) == "" {
		return Unavailable("no logo key")
	}
	if r.BaseURL == "" {
		return r.unavailable(key, "blob store not configured")
	}

	url := strings.TrimRight(r.BaseURL, "/") + "/" + key
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return r.unavailable(key, fmt.Sprintf("bad request: %v", err))
	}
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return r.unavailable(key, fmt.Sprintf("fetch failed: %v", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return r.unavailable(key, fmt.Sprintf("fetch failed: status %d", resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes+1))
	if err != nil {
		return r.unavailable(key, fmt.Sprintf("read failed: %v", err))
	}
	if len(data) > maxLogoBytes {
		return r.unavailable(key, "image exceeds size limit")
	}
	return r.validate(key, data)
}

// FromBytes validates already-loaded logo bytes, eg. from a local file.
func (r *Resolver) FromBytes(data []byte) Resolution {
	return r.validate("", data)
}

func (r *Resolver) validate(key string, data []byte) Resolution {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return r.unavailable(key, fmt.Sprintf("undecodable image: %v", err))
	}
	if !supportedFormats[format] {
		return r.unavailable(key, fmt.Sprintf("unsupported format %q", format))
	}
	aspect := 1.0
	if cfg.Height > 0 {
		aspect = float64(cfg.Width) / float64(cfg.Height)
	}
	return Resolution{Data: data, Aspect: aspect}
}

func (r *Resolver) unavailable(key, reason string) Resolution {
	r.Log.Warn().Str("logo_key", key).Str("reason", reason).Msg("logo unavailable, falling back to text branding")
	return Unavailable(reason)
}
