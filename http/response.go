package http

import (
	"bufio"
	"fmt"
)

type Response struct {
	Status  uint16
	Headers map[string]string
	Body    string
	Cookies map[string]Cookie
}

func NewResponse(status uint16, body string) Response {
	return Response{
		Status:  status,
		Headers: make(map[string]string),
		Body:    body,
		Cookies: make(map[string]Cookie),
	}
}

func (res *Response) SetHeader(name, value string) {
	res.Headers[name] = value
}

func (res *Response) SetCookie(cookie Cookie) {
	res.Cookies[cookie.Name] = cookie
}

// WriteTo serializes the response and flushes it to the writer.
//
// Content-Length is always computed from the body; a user-set Content-Length
// header is ignored. Each cookie becomes one Set-Cookie line.
func (res *Response) WriteTo(bw *bufio.Writer) error {
	fmt.Fprintf(bw, "HTTP/1.1 %d %s\r\nContent-Length: %d\r\n", res.Status, StatusText(res.Status), len(res.Body))

	for name, value := range res.Headers {
		if name == "Content-Length" {
			continue
		}
		fmt.Fprintf(bw, "%s: %s\r\n", name, value)
	}

	for _, cookie := range res.Cookies {
		fmt.Fprintf(bw, "Set-Cookie: %s\r\n", cookie.String())
	}

	bw.WriteString("\r\n")
	bw.WriteString(res.Body)

	return bw.Flush()
}
