package http

import (
	"testing"
)

func newRequest(method, path string) *Request {
	return &Request{
		Method:  method,
		Path:    path,
		Proto:   "HTTP/1.1",
		Headers: make(map[string]string),
		Cookies: make(map[string]string),
	}
}

func TestRouterExactMatch(t *testing.T) {
	router := NewRouter()

	calls := 0
	router.GET("/hello", func(c *Context) Response {
		calls++
		return c.SendString(StatusOK, "hello")
	})

	res := router.HandleRequest(newRequest(MethodGet, "/hello"))

	if calls != 1 {
		t.Errorf("Expected handler to run once, ran %d times", calls)
	}
	if res.Status != StatusOK {
		t.Errorf("Expected 200, got %d", res.Status)
	}
	if res.Body != "hello" {
		t.Errorf("Expected hello, got %s", res.Body)
	}
}

func TestRouterMethodNotAllowed(t *testing.T) {
	router := NewRouter()
	router.GET("/hello", func(c *Context) Response {
		return c.SendString(StatusOK, "hello")
	})

	res := router.HandleRequest(newRequest(MethodPost, "/hello"))

	if res.Status != StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", res.Status)
	}
	if res.Body != "Method Not Allowed" {
		t.Errorf("Expected reason phrase body, got %s", res.Body)
	}
}

func TestRouterNotFound(t *testing.T) {
	router := NewRouter()
	router.GET("/hello", func(c *Context) Response {
		return c.SendString(StatusOK, "hello")
	})

	res := router.HandleRequest(newRequest(MethodGet, "/missing"))

	if res.Status != StatusNotFound {
		t.Errorf("Expected 404, got %d", res.Status)
	}
	if res.Body != "Not Found" {
		t.Errorf("Expected reason phrase body, got %s", res.Body)
	}
}

func TestRouterDynamicMatch(t *testing.T) {
	router := NewRouter()

	var captured map[string]string
	router.GET("/users/:id", func(c *Context) Response {
		captured = c.Params
		return c.SendString(StatusOK, c.Param("id"))
	})

	res := router.HandleRequest(newRequest(MethodGet, "/users/42"))

	if res.Status != StatusOK {
		t.Errorf("Expected 200, got %d", res.Status)
	}
	if captured["id"] != "42" {
		t.Errorf("Expected id=42, got %v", captured)
	}
}

func TestRouterDynamicMatchMultipleParams(t *testing.T) {
	router := NewRouter()

	var captured map[string]string
	router.GET("/users/:id/posts/:pid", func(c *Context) Response {
		captured = c.Params
		return c.SendString(StatusOK, "")
	})

	res := router.HandleRequest(newRequest(MethodGet, "/users/7/posts/3"))

	if res.Status != StatusOK {
		t.Errorf("Expected 200, got %d", res.Status)
	}
	if captured["id"] != "7" || captured["pid"] != "3" {
		t.Errorf("Expected id=7 pid=3, got %v", captured)
	}
}

func TestRouterDynamicMatchSegmentCountMismatch(t *testing.T) {
	router := NewRouter()
	router.GET("/users/:id", func(c *Context) Response {
		return c.SendString(StatusOK, "")
	})

	res := router.HandleRequest(newRequest(MethodGet, "/users/42/extra"))

	if res.Status != StatusNotFound {
		t.Errorf("Expected 404, got %d", res.Status)
	}
}

func TestRouterDynamicMatchMethodDecidedByFirstPathMatch(t *testing.T) {
	router := NewRouter()
	router.POST("/users/:id", func(c *Context) Response {
		return c.SendString(StatusOK, "")
	})
	router.GET("/users/:name", func(c *Context) Response {
		return c.SendString(StatusOK, "")
	})

	// /users/42 path-matches the first registered pattern, which has no GET
	// handler; the scan must stop there with 405 instead of trying the next.
	res := router.HandleRequest(newRequest(MethodGet, "/users/42"))

	if res.Status != StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", res.Status)
	}
}

func TestRouterDynamicMatchFirstRegisteredWins(t *testing.T) {
	router := NewRouter()
	router.GET("/files/:name", func(c *Context) Response {
		return c.SendString(StatusOK, "first")
	})
	router.GET("/files/:id", func(c *Context) Response {
		return c.SendString(StatusOK, "second")
	})

	res := router.HandleRequest(newRequest(MethodGet, "/files/report"))

	if res.Body != "first" {
		t.Errorf("Expected first-registered pattern to win, got %s", res.Body)
	}
}

func TestRouterQueryParams(t *testing.T) {
	router := NewRouter()

	var query map[string]string
	router.GET("/search/:topic", func(c *Context) Response {
		query = c.Query
		return c.SendString(StatusOK, "")
	})

	res := router.HandleRequest(newRequest(MethodGet, "/search/books?q=compilers&lang=en"))

	if res.Status != StatusOK {
		t.Errorf("Expected 200, got %d", res.Status)
	}
	if query["q"] != "compilers" || query["lang"] != "en" {
		t.Errorf("Expected q=compilers lang=en, got %v", query)
	}
}

func TestRouterQueryParamsEmptyKey(t *testing.T) {
	router := NewRouter()

	calls := 0
	router.GET("/search/:topic", func(c *Context) Response {
		calls++
		return c.SendString(StatusOK, "")
	})

	res := router.HandleRequest(newRequest(MethodGet, "/search/books?=bad"))

	if res.Status != StatusBadRequest {
		t.Errorf("Expected 400, got %d", res.Status)
	}
	if calls != 0 {
		t.Error("Handler must not run on a malformed query")
	}
}

func TestRouterQueryParamsOnLiteralRoute(t *testing.T) {
	router := NewRouter()

	var query map[string]string
	router.GET("/search", func(c *Context) Response {
		query = c.Query
		return c.SendString(StatusOK, "")
	})

	res := router.HandleRequest(newRequest(MethodGet, "/search?q=compilers&lang=en"))

	if res.Status != StatusOK {
		t.Errorf("Expected 200, got %d", res.Status)
	}
	if query["q"] != "compilers" || query["lang"] != "en" {
		t.Errorf("Expected q=compilers lang=en on a literal route, got %v", query)
	}
}

func TestRouterQueryParamsEmptyKeyOnLiteralRoute(t *testing.T) {
	router := NewRouter()

	calls := 0
	router.GET("/search", func(c *Context) Response {
		calls++
		return c.SendString(StatusOK, "")
	})

	res := router.HandleRequest(newRequest(MethodGet, "/search?=bad"))

	if res.Status != StatusBadRequest {
		t.Errorf("Expected 400 for empty query key, got %d", res.Status)
	}
	if calls != 0 {
		t.Error("Handler must not run on a malformed query")
	}
}

func TestRouterMiddlewareOrder(t *testing.T) {
	router := NewRouter()

	var order []string
	router.Use(func(c *Context) *Context {
		order = append(order, "a")
		c.Response.SetHeader("X-Seen-By", "a")
		return c
	})
	router.Use(func(c *Context) *Context {
		// A's mutation must be visible here.
		if c.Response.Headers["X-Seen-By"] != "a" {
			t.Error("middleware A mutation not visible to B")
		}
		order = append(order, "b")
		return c
	})

	router.GET("/", func(c *Context) Response {
		order = append(order, "handler")
		return c.SendString(StatusOK, "")
	})

	router.HandleRequest(newRequest(MethodGet, "/"))

	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "handler" {
		t.Errorf("Expected [a b handler], got %v", order)
	}
}

func TestRouterMiddlewareRunsOnUnmatchedRoutes(t *testing.T) {
	router := NewRouter()

	ran := false
	router.Use(func(c *Context) *Context {
		ran = true
		return c
	})

	res := router.HandleRequest(newRequest(MethodGet, "/nowhere"))

	if !ran {
		t.Error("middleware must run before matching, even for 404s")
	}
	if res.Status != StatusNotFound {
		t.Errorf("Expected 404, got %d", res.Status)
	}
}

func TestRouterTrailingSlashNormalization(t *testing.T) {
	router := NewRouter()
	router.GET("/menu/items/", func(c *Context) Response {
		return c.SendString(StatusOK, "items")
	})

	res := router.HandleRequest(newRequest(MethodGet, "/menu/items"))

	if res.Status != StatusOK {
		t.Errorf("Expected 200, got %d", res.Status)
	}
}

func TestRouterOverwriteHandler(t *testing.T) {
	router := NewRouter()
	router.GET("/dup", func(c *Context) Response {
		return c.SendString(StatusOK, "old")
	})
	router.GET("/dup", func(c *Context) Response {
		return c.SendString(StatusOK, "new")
	})

	res := router.HandleRequest(newRequest(MethodGet, "/dup"))

	if res.Body != "new" {
		t.Errorf("Expected replacement handler, got %s", res.Body)
	}
}

func TestRouterRegistrationAfterFreezeIsSkipped(t *testing.T) {
	router := NewRouter()
	router.GET("/before", func(c *Context) Response {
		return c.SendString(StatusOK, "")
	})

	router.freeze()

	if err := router.Handle(MethodGet, "/after", func(c *Context) Response {
		return c.SendString(StatusOK, "")
	}); err == nil {
		t.Error("Expected an error registering after freeze")
	}

	if res := router.HandleRequest(newRequest(MethodGet, "/after")); res.Status != StatusNotFound {
		t.Errorf("Late registration must not take effect, got %d", res.Status)
	}
	if res := router.HandleRequest(newRequest(MethodGet, "/before")); res.Status != StatusOK {
		t.Errorf("Existing route must keep working, got %d", res.Status)
	}
}
