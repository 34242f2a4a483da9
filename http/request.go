package http

import (
	"strings"

	"github.com/indigo-web/minihttp/http/method"
)

// Headers maps lower-cased header names to their trimmed values. If a header occurs
// more than once, the last occurrence wins.
type Headers map[string]string

// Request represents HTTP request. It is built once per connection and isn't modified
// afterward.
type Request struct {
	Method method.Method
	// Path is the raw request target, not decoded anyhow.
	Path    string
	Proto   string
	Headers Headers
	// Body is meaningful only if HasBody is set.
	Body    []byte
	HasBody bool
}

// Header looks the header up case-insensitively.
func (r *Request) Header(key string) (value string, found bool) {
	value, found = r.Headers[strings.ToLower(key)]
	return value, found
}

// Equal reports whether both requests are structurally equal.
func (r *Request) Equal(other *Request) bool {
	if r.Method != other.Method || r.Path != other.Path || r.Proto != other.Proto {
		return false
	}

	if r.HasBody != other.HasBody || string(r.Body) != string(other.Body) {
		return false
	}

	if len(r.Headers) != len(other.Headers) {
		return false
	}

	for key, value := range r.Headers {
		if v, ok := other.Headers[key]; !ok || v != value {
			return false
		}
	}

	return true
}
