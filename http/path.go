package http

import (
	"errors"
	"strings"
)

var ErrEmptyPath = errors.New("http: cannot format an empty path")

// NormalizePath makes registered and requested paths comparable: one trailing
// slash is trimmed and "/?" collapses into "?" so that "/search/?q=x" and
// "/search?q=x" mean the same route. A blank path is an error.
func NormalizePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrEmptyPath
	}

	if path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	return strings.ReplaceAll(path, "/?", "?"), nil
}
