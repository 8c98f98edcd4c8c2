package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/km-arc/go-fixture/framework/serializer"
)

// Request wraps *http.Request with the helpers fixture handlers need.
type Request struct {
	raw *http.Request
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// ── Input helpers ────────────────────────────────────────────────────────────

// Query returns a query-string value.
func (req *Request) Query(key string, fallback ...string) string {
	v := req.raw.URL.Query().Get(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// RouteParam returns a chi URL parameter, e.g. {name} in /v1/fixtures/{name}.
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// Header returns a request header value.
func (req *Request) Header(key string, fallback ...string) string {
	v := req.raw.Header.Get(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// Format negotiates the output format: the `format` query parameter wins,
// then an Accept header naming YAML, then JSON.
func (req *Request) Format() (serializer.Format, error) {
	if q := req.Query("format"); q != "" {
		return serializer.ParseFormat(q)
	}
	accept := req.Header("Accept")
	if strings.Contains(accept, "yaml") {
		return serializer.FormatYAML, nil
	}
	return serializer.FormatJSON, nil
}
