package router

import (
	"github.com/indigo-web/minihttp/http"
	"github.com/indigo-web/minihttp/http/status"
)

type Router interface {
	OnRequest(request *http.Request) *http.Response
}

type (
	Handler   func(request *http.Request) *http.Response
	Predicate func(request *http.Request) bool
)

type Route struct {
	Name    string
	Match   Predicate
	Handler Handler
}

var _ Router = new(Table)

// Table is an ordered list of routes, evaluated top to bottom. The first matching route
// wins. If nothing matched, the fallback handler is called, which is 404 Not Found by
// default.
type Table struct {
	routes   []Route
	fallback Handler
}

func New(routes ...Route) *Table {
	return &Table{
		routes:   routes,
		fallback: NotFound,
	}
}

// Route appends a route to the end of the table.
func (t *Table) Route(name string, match Predicate, handler Handler) *Table {
	t.routes = append(t.routes, Route{
		Name:    name,
		Match:   match,
		Handler: handler,
	})

	return t
}

// Fallback replaces the handler, called when no route matched.
func (t *Table) Fallback(handler Handler) *Table {
	t.fallback = handler
	return t
}

// Lookup returns the first matching route. found is false if the fallback must be used.
func (t *Table) Lookup(request *http.Request) (route Route, found bool) {
	for _, route = range t.routes {
		if route.Match(request) {
			return route, true
		}
	}

	return Route{}, false
}

func (t *Table) OnRequest(request *http.Request) *http.Response {
	if route, found := t.Lookup(request); found {
		return route.Handler(request)
	}

	return t.fallback(request)
}

func NotFound(*http.Request) *http.Response {
	return http.NewResponse(status.NotFound)
}
