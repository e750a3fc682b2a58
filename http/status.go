package http

const (
	StatusOK        uint16 = 200
	StatusCreated   uint16 = 201
	StatusAccepted  uint16 = 202
	StatusNoContent uint16 = 204

	StatusMovedPermanently uint16 = 301
	StatusFound            uint16 = 302
	StatusSeeOther         uint16 = 303
	StatusNotModified      uint16 = 304

	StatusBadRequest       uint16 = 400
	StatusUnauthorized     uint16 = 401
	StatusForbidden        uint16 = 403
	StatusNotFound         uint16 = 404
	StatusMethodNotAllowed uint16 = 405

	StatusInternalServerError uint16 = 500
	StatusNotImplemented      uint16 = 501
	StatusBadGateway          uint16 = 502
	StatusServiceUnavailable  uint16 = 503
)

var unknownStatusCode = "Unknown Status Code"

var statusMessages = []string{
	StatusOK:        "OK",
	StatusCreated:   "Created",
	StatusAccepted:  "Accepted",
	StatusNoContent: "No Content",

	StatusMovedPermanently: "Moved Permanently",
	StatusFound:            "Found",
	StatusSeeOther:         "See Other",
	StatusNotModified:      "Not Modified",

	StatusBadRequest:       "Bad Request",
	StatusUnauthorized:     "Unauthorized",
	StatusForbidden:        "Forbidden",
	StatusNotFound:         "Not Found",
	StatusMethodNotAllowed: "Method Not Allowed",

	StatusInternalServerError: "Internal Server Error",
	StatusNotImplemented:      "Not Implemented",
	StatusBadGateway:          "Bad Gateway",
	StatusServiceUnavailable:  "Service Unavailable",
}

// StatusText returns the canonical reason phrase for a status code.
func StatusText(code uint16) string {
	if int(code) < len(statusMessages) && statusMessages[code] != "" {
		return statusMessages[code]
	}
	return unknownStatusCode
}
