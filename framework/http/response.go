package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/km-arc/go-fixture/framework/serializer"
)

// ── Response ─────────────────────────────────────────────────────────────────

// Response wraps http.ResponseWriter with JSON/YAML helpers.
type Response struct {
	w http.ResponseWriter
}

// NewResponse wraps a ResponseWriter.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// Raw returns the underlying ResponseWriter.
func (res *Response) Raw() http.ResponseWriter { return res.w }

// ── JSON responses ────────────────────────────────────────────────────────────

// JSON sends a JSON response.
//
//	res.JSON(http.StatusOK, map[string]any{"status": "ok"})
func (res *Response) JSON(status int, data any) {
	res.w.Header().Set("Content-Type", "application/json")
	res.w.WriteHeader(status)
	_ = json.NewEncoder(res.w).Encode(data)
}

// Success sends 200 JSON: {"data": v}
func (res *Response) Success(v any) {
	res.JSON(http.StatusOK, envelope{"data": v})
}

// Error sends a structured JSON error: {"code", "message", "requestId"}.
func (res *Response) Error(status int, code, message, requestID string) {
	res.JSON(status, ErrorBody{Code: code, Message: message, RequestID: requestID})
}

// ErrorBody is the JSON shape of every error the fixture server returns.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// ── Fixture responses ────────────────────────────────────────────────────────

// Fixture sends v in the requested format. The body is rendered before any
// header is written, so a value that cannot be serialized (a func field, say)
// still yields a clean error for the caller to report.
func (res *Response) Fixture(format serializer.Format, v any) error {
	var buf bytes.Buffer
	if err := serializer.NewWriter(format, &buf).Serialize(v); err != nil {
		return err
	}
	res.w.Header().Set("Content-Type", format.ContentType())
	res.w.WriteHeader(http.StatusOK)
	_, err := res.w.Write(buf.Bytes())
	return err
}

// ── Helpers ──────────────────────────────────────────────────────────────────

type envelope map[string]any
