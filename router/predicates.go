package router

import (
	"strings"

	"github.com/indigo-web/minihttp/http"
	"github.com/indigo-web/minihttp/http/method"
)

// Exact matches the path exactly.
func Exact(path string) Predicate {
	return func(request *http.Request) bool {
		return request.Path == path
	}
}

// Prefix matches every path starting with the prefix.
func Prefix(prefix string) Predicate {
	return func(request *http.Request) bool {
		return strings.HasPrefix(request.Path, prefix)
	}
}

// Method matches only if the request method is m and the predicate matches, too.
func Method(m method.Method, predicate Predicate) Predicate {
	return func(request *http.Request) bool {
		return request.Method == m && predicate(request)
	}
}

// Any matches everything.
func Any(*http.Request) bool {
	return true
}
