package http

const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPatch  = "PATCH"
	MethodDelete = "DELETE"
)

// ParseMethod maps a request-line token to a supported method.
// Unrecognized tokens fall back to GET.
func ParseMethod(token string) string {
	switch token {
	case MethodGet, MethodPost, MethodPatch, MethodDelete:
		return token
	default:
		return MethodGet
	}
}
