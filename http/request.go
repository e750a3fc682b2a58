package http

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	ErrInvalidRequestLine = errors.New("http: invalid request line")
	ErrEmptyRequest       = errors.New("http: empty request")
)

type Request struct {
	Method  string
	Path    string
	Proto   string
	Headers map[string]string

	// Body is nil unless a positive Content-Length header was seen.
	Body []byte

	Cookies map[string]string
}

// HeaderValue returns a header by exact name. Header names are case-sensitive
// on the wire and are stored as received.
func (req *Request) HeaderValue(name string) (string, bool) {
	value, found := req.Headers[name]
	return value, found
}

// ReadRequest parses one HTTP/1.1 request from the reader.
//
// Lines are consumed up to the blank line that ends the header block. A
// Content-Length header, if present, determines how many body bytes are read
// afterwards; without one the body stays nil. Malformed header lines are
// dropped, duplicate header names keep the last value.
func ReadRequest(br *bufio.Reader) (*Request, error) {
	line, err := br.ReadString('\n')
	if line == "" && err != nil {
		return nil, ErrEmptyRequest
	}
	line = strings.TrimSpace(line)

	parts := strings.Fields(line)
	if len(parts) < 3 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRequestLine, line)
	}

	req := &Request{
		Method:  ParseMethod(parts[0]),
		Path:    parts[1],
		Proto:   parts[2],
		Headers: make(map[string]string),
		Cookies: make(map[string]string),
	}

	contentLength := 0
	for {
		line, readErr := br.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}

		if i := strings.Index(line, ":"); i >= 0 {
			name := strings.TrimSpace(line[:i])
			value := strings.TrimSpace(line[i+1:])
			req.Headers[name] = value

			if name == "Content-Length" {
				n, err := strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf("http: invalid Content-Length %q: %w", value, err)
				}
				contentLength = n
			}
		}

		if readErr != nil {
			break
		}
	}

	if contentLength > 0 {
		body := make([]byte, contentLength)
		if _, err := io.ReadFull(br, body); err != nil {
			return nil, fmt.Errorf("http: body read error: %w", err)
		}
		req.Body = body
	}

	if cookieHeader, found := req.Headers["Cookie"]; found {
		req.Cookies = parseRequestCookies(cookieHeader)
	}

	return req, nil
}
