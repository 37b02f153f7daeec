package dgt

import "fmt"

// StatusCodeError is returned when the DGT feed responds with a non-2xx
// status code. The feed does not document an error body format, so only
// the status and requested URL are retained.
type StatusCodeError struct {
	StatusCode int
	URL        string
}

func (s *StatusCodeError) Error() string {
	return fmt.Sprintf("invalid status code (StatusCode: %d, URL: %s)", s.StatusCode, s.URL)
}
