package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/freekieb7/pebble/http"
	"github.com/freekieb7/pebble/telemetry"
)

const (
	addr    = "0.0.0.0:8080"
	workers = 5
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, "pebble")
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			log.Println(err)
		}
	}()

	router := http.NewRouter()

	router.Use(func(c *http.Context) *http.Context {
		c.Response.SetHeader("Server", "pebble")
		return c
	})
	router.Use(func(c *http.Context) *http.Context {
		c.Response.SetHeader("X-Request-Start", time.Now().UTC().Format(time.RFC3339))
		return c
	})

	router.GET("/", func(c *http.Context) http.Response {
		return c.SendString(http.StatusOK, "Hello, World!")
	})

	router.GET("/users/:id", func(c *http.Context) http.Response {
		return c.SendJSON(http.StatusOK, map[string]string{
			"id":   c.Param("id"),
			"lang": c.QueryParam("lang"),
		})
	})

	router.POST("/submit", func(c *http.Context) http.Response {
		name := c.FormValue("name")
		if name == "" {
			return c.SendString(http.StatusBadRequest, http.StatusText(http.StatusBadRequest))
		}
		return c.SendString(http.StatusCreated, "welcome, "+name)
	})

	router.GET("/old", func(c *http.Context) http.Response {
		return c.Redirect(http.StatusMovedPermanently, "/")
	})

	router.GET("/cookie", func(c *http.Context) http.Response {
		cookie := http.Cookie{
			Name:     "SID",
			Value:    "abc123",
			Path:     "/",
			Secure:   true,
			HttpOnly: true,
		}
		cookie.SetExpiry(365 * 24 * time.Hour)
		c.Response.SetCookie(cookie)

		return c.SendString(http.StatusOK, "cookie set")
	})

	router.ServeStatic("static", "/static")

	server := http.NewServer("pebble", router, workers)

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.ListenAndServe(addr)
	}()

	select {
	case err := <-serverErrCh:
		return err
	case <-ctx.Done():
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
