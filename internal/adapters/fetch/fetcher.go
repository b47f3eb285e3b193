// Package fetch retrieves remote component source over HTTP.
package fetch

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"go.trai.ch/zerr"

	"github.com/mosaic-ui/mosaic/internal/core/domain"
	"github.com/mosaic-ui/mosaic/internal/core/ports"
)

var _ ports.Fetcher = (*Fetcher)(nil)

// scriptContentTypes are the media types accepted as component source.
var scriptContentTypes = map[string]bool{
	"application/javascript":   true,
	"text/javascript":          true,
	"application/x-javascript": true,
	"text/jsx":                 true,
	"text/plain":               true,
	"application/octet-stream": true,
}

// Fetcher downloads component source with a bounded timeout and size cap.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
}

// New creates a Fetcher. timeout bounds each request; maxBytes caps the
// response body.
func New(timeout time.Duration, maxBytes int64) *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

// Fetch downloads the source at url.
func (f *Fetcher) Fetch(ctx context.Context, url string) (ports.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.FetchResult{}, zerr.With(zerr.Wrap(domain.ErrFetchFailed, err.Error()), "url", url)
	}
	req.Header.Set("Accept", "application/javascript, text/javascript, text/jsx")

	resp, err := f.client.Do(req)
	if err != nil {
		return ports.FetchResult{}, zerr.With(zerr.Wrap(domain.ErrFetchFailed, err.Error()), "url", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return ports.FetchResult{}, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrFetchFailed, "unexpected status"), "url", url),
			"status", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType := contentType
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = parsed
	}
	if contentType != "" && !scriptContentTypes[strings.ToLower(mediaType)] {
		return ports.FetchResult{}, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrUnsupportedContentType, "refusing non-script response"), "url", url),
			"content_type", mediaType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return ports.FetchResult{}, zerr.With(zerr.Wrap(domain.ErrFetchFailed, err.Error()), "url", url)
	}
	if int64(len(body)) > f.maxBytes {
		return ports.FetchResult{}, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrSourceTooLarge, "response exceeds size cap"), "url", url),
			"max_bytes", f.maxBytes)
	}
	if len(body) == 0 {
		return ports.FetchResult{}, zerr.With(zerr.Wrap(domain.ErrEmptySource, "empty response body"), "url", url)
	}

	return ports.FetchResult{Source: string(body), ContentType: mediaType}, nil
}
