package http

import (
	"encoding/json"
	"net/url"
)

// Context carries one request through the middleware chain and into its
// handler, together with the in-progress response and any parameters captured
// during routing. A Context belongs to a single worker and is discarded once
// the handler returns.
type Context struct {
	Request  *Request
	Response Response

	// Params holds :name captures from dynamic route matching.
	Params map[string]string
	// Query holds query-string pairs when the request carried a query string.
	Query map[string]string
}

func NewContext(req *Request) *Context {
	return &Context{
		Request:  req,
		Response: NewResponse(StatusOK, ""),
		Params:   make(map[string]string),
		Query:    make(map[string]string),
	}
}

// Param returns a captured path parameter, or "" if absent.
func (c *Context) Param(name string) string {
	return c.Params[name]
}

// QueryParam returns a query-string value, or "" if absent.
func (c *Context) QueryParam(name string) string {
	return c.Query[name]
}

// SendString finalizes the response with a status code and plain body.
func (c *Context) SendString(status uint16, body string) Response {
	c.Response.Status = status
	c.Response.Body = body
	return c.Response
}

// SendJSON finalizes the response with a JSON-encoded body.
func (c *Context) SendJSON(status uint16, payload any) Response {
	body, err := json.Marshal(payload)
	if err != nil {
		return c.SendString(StatusInternalServerError, StatusText(StatusInternalServerError))
	}

	c.Response.SetHeader("Content-Type", "application/json")
	return c.SendString(status, string(body))
}

// Redirect finalizes the response with a Location header and the given status.
func (c *Context) Redirect(status uint16, route string) Response {
	c.Response.SetHeader("Location", route)
	c.Response.Status = status
	return c.Response
}

// FormValue reads a field from a urlencoded request body. It returns "" when
// the request has no Content-Type, no body, or the field is missing.
func (c *Context) FormValue(key string) string {
	if _, found := c.Request.HeaderValue("Content-Type"); !found {
		return ""
	}
	if c.Request.Body == nil {
		return ""
	}

	form, err := url.ParseQuery(string(c.Request.Body))
	if err != nil {
		return ""
	}

	return form.Get(key)
}
