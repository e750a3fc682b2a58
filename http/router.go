package http

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
)

// Handler produces the response for one routed request.
type Handler func(c *Context) Response

// Middleware transforms a Context before route matching. Every registered
// middleware runs on every request, in registration order; there is no way
// for a middleware to abort dispatch.
type Middleware func(c *Context) *Context

type route struct {
	pattern  string
	segments []string
	handlers map[string]Handler
}

// Router maps path patterns to per-method handlers and carries the ordered
// middleware list. Routes are registered before the server starts serving;
// the first Serve call freezes the router and later registrations are logged
// and skipped instead of mutating shared state.
//
// Patterns are matched exactly first. Failing that, patterns are scanned in
// registration order; a ":name" segment matches any one request segment and
// captures it. The first pattern whose path matches decides the outcome:
// dispatch when it has a handler for the method, 405 otherwise.
type Router struct {
	routes     []*route
	index      map[string]*route
	middleware []Middleware
	frozen     atomic.Bool
	logger     *slog.Logger
}

func NewRouter() *Router {
	return &Router{
		routes: make([]*route, 0),
		index:  make(map[string]*route),
		logger: slog.Default(),
	}
}

func (r *Router) GET(path string, handler Handler) {
	r.handle(MethodGet, path, handler)
}

func (r *Router) POST(path string, handler Handler) {
	r.handle(MethodPost, path, handler)
}

func (r *Router) PATCH(path string, handler Handler) {
	r.handle(MethodPatch, path, handler)
}

func (r *Router) DELETE(path string, handler Handler) {
	r.handle(MethodDelete, path, handler)
}

// Handle registers a handler for a method and path pattern. Registering the
// same (pattern, method) pair again silently replaces the old handler.
func (r *Router) Handle(method, path string, handler Handler) error {
	if r.frozen.Load() {
		return fmt.Errorf("http: router is already serving, route %s %s not registered", method, path)
	}

	pattern, err := NormalizePath(path)
	if err != nil {
		return err
	}

	rt, found := r.index[pattern]
	if !found {
		rt = &route{
			pattern:  pattern,
			segments: strings.Split(pattern, "/"),
			handlers: make(map[string]Handler),
		}
		r.routes = append(r.routes, rt)
		r.index[pattern] = rt
	}
	rt.handlers[method] = handler

	return nil
}

func (r *Router) handle(method, path string, handler Handler) {
	if err := r.Handle(method, path, handler); err != nil {
		r.logger.Error("route registration failed", "error", err)
	}
}

// Use appends a middleware to the chain. Middlewares cannot be removed.
func (r *Router) Use(middleware Middleware) {
	if r.frozen.Load() {
		r.logger.Error("router is already serving, middleware not registered")
		return
	}

	r.middleware = append(r.middleware, middleware)
}

func (r *Router) freeze() {
	r.frozen.Store(true)
}

// HandleRequest runs the middleware chain and dispatches the request to the
// first matching route.
func (r *Router) HandleRequest(req *Request) Response {
	c := NewContext(req)
	for _, middleware := range r.middleware {
		c = middleware(c)
	}

	path, err := NormalizePath(req.Path)
	if err != nil {
		return NewResponse(StatusBadRequest, StatusText(StatusBadRequest))
	}

	stripped := path
	query := ""
	hasQuery := false
	if i := strings.IndexByte(path, '?'); i >= 0 {
		stripped = path[:i]
		query = path[i+1:]
		hasQuery = true
	}

	if rt, found := r.index[stripped]; found {
		return r.dispatch(c, rt, req.Method, nil, query, hasQuery)
	}

	requestSegments := strings.Split(stripped, "/")
	for _, rt := range r.routes {
		params, matched := matchSegments(requestSegments, rt.segments)
		if !matched {
			continue
		}

		// First path-matching pattern decides between dispatch and 405.
		return r.dispatch(c, rt, req.Method, params, query, hasQuery)
	}

	return NewResponse(StatusNotFound, StatusText(StatusNotFound))
}

// dispatch resolves the method on an already path-matched route. A query
// string, when present, is parsed on both the exact and dynamic branches; an
// empty key aborts with 400 before the handler runs.
func (r *Router) dispatch(c *Context, rt *route, method string, params map[string]string, query string, hasQuery bool) Response {
	handler, found := rt.handlers[method]
	if !found {
		return NewResponse(StatusMethodNotAllowed, StatusText(StatusMethodNotAllowed))
	}

	if hasQuery {
		queryParams, ok := parseQuery(query)
		if !ok {
			return NewResponse(StatusBadRequest, StatusText(StatusBadRequest))
		}
		c.Query = queryParams
	}

	if params != nil {
		c.Params = params
	}

	return handler(c)
}

// matchSegments compares a request path against a pattern segment by segment.
// A ":name" pattern segment matches anything and captures the request segment
// under "name"; every other segment must match verbatim.
func matchSegments(requestSegments, patternSegments []string) (map[string]string, bool) {
	if len(requestSegments) != len(patternSegments) {
		return nil, false
	}

	params := make(map[string]string)
	for i, patternSegment := range patternSegments {
		if strings.HasPrefix(patternSegment, ":") {
			params[patternSegment[1:]] = requestSegments[i]
			continue
		}
		if patternSegment != requestSegments[i] {
			return nil, false
		}
	}

	return params, true
}

// parseQuery splits a raw query string into key/value pairs. Values are kept
// verbatim (no URL-decoding). An empty key makes the whole query invalid.
func parseQuery(query string) (map[string]string, bool) {
	params := make(map[string]string)
	if query == "" {
		return params, true
	}

	for _, part := range strings.Split(query, "&") {
		key, value, _ := strings.Cut(part, "=")
		if key == "" {
			return nil, false
		}
		params[key] = value
	}

	return params, true
}
