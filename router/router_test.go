package router

import (
	"testing"

	"github.com/indigo-web/minihttp/http"
	"github.com/indigo-web/minihttp/http/status"
	"github.com/stretchr/testify/require"
)

func respond(code status.Code) Handler {
	return func(*http.Request) *http.Response {
		return http.NewResponse(code)
	}
}

func TestTable(t *testing.T) {
	table := New().
		Route("exact", Exact("/a"), respond(status.OK)).
		Route("post-prefix", Method("POST", Prefix("/a")), respond(status.Created)).
		Route("prefix", Prefix("/a"), respond(status.BadRequest))

	for _, tc := range []struct {
		Method, Path string
		Route        string
		Code         status.Code
	}{
		{"GET", "/a", "exact", status.OK},
		{"POST", "/a", "exact", status.OK},
		{"POST", "/ab", "post-prefix", status.Created},
		{"GET", "/ab", "prefix", status.BadRequest},
		{"DELETE", "/abc", "prefix", status.BadRequest},
		{"GET", "/b", "", status.NotFound},
	} {
		t.Run(tc.Method+" "+tc.Path, func(t *testing.T) {
			request := &http.Request{Method: tc.Method, Path: tc.Path}
			route, found := table.Lookup(request)
			require.Equal(t, tc.Route != "", found)
			require.Equal(t, tc.Route, route.Name)
			require.Equal(t, tc.Code, table.OnRequest(request).StatusCode())
		})
	}

	t.Run("fallback", func(t *testing.T) {
		table := New().Fallback(respond(status.Forbidden))
		response := table.OnRequest(&http.Request{Method: "GET", Path: "/"})
		require.Equal(t, status.Forbidden, response.StatusCode())
	})

	t.Run("any", func(t *testing.T) {
		table := New(Route{Name: "any", Match: Any, Handler: respond(status.OK)})
		response := table.OnRequest(&http.Request{Method: "BREW", Path: "/coffee"})
		require.Equal(t, status.OK, response.StatusCode())
	})
}
