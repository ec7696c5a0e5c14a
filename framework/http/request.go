package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/km-arc/go-formrules/framework/http/validation"
)

// ErrEmptyBody is returned by Bind when a JSON request has no body.
var ErrEmptyBody = errors.New("empty request body")

// Request wraps *http.Request with Laravel-style helpers.
type Request struct {
	raw *http.Request
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// ── Binding ──────────────────────────────────────────────────────────────────

// Bind decodes a JSON request body into v.
func (req *Request) Bind(v any) error {
	defer req.raw.Body.Close()
	body, err := io.ReadAll(req.raw.Body)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return ErrEmptyBody
	}
	return json.Unmarshal(body, v)
}

// ── Input helpers ────────────────────────────────────────────────────────────

// All returns all input as a flat map (query + post).
func (req *Request) All() map[string]string {
	_ = req.raw.ParseForm()
	out := make(map[string]string)
	for k, v := range req.raw.Form {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

// FormData returns the submitted fields ready for validation: the decoded
// object of a JSON body, or the flat form values otherwise. A body that
// cannot be read or parsed is an error, never an empty form.
func (req *Request) FormData() (validation.FormData, error) {
	if req.IsJSON() {
		var data validation.FormData
		if err := req.Bind(&data); err != nil {
			return nil, err
		}
		if data == nil {
			data = validation.FormData{}
		}
		return data, nil
	}

	if err := req.raw.ParseForm(); err != nil {
		return nil, err
	}
	all := req.All()
	data := make(validation.FormData, len(all))
	for k, v := range all {
		data[k] = v
	}
	return data, nil
}

// RouteParam returns a URL route parameter (chi).
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.raw.Header.Get("Content-Type")
}

// IsJSON returns true when the request body is JSON.
func (req *Request) IsJSON() bool {
	return strings.Contains(req.ContentType(), "application/json")
}
