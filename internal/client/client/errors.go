package client

import (
	"errors"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	StatusText string
	Endpoint   string
}

func (e *APIError) Error() string {
	return "api request failed: " + e.StatusText
}

// Is lets errors.Is match an APIError against the sentinel errors by status
// class.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnavailable:
		return e.StatusCode >= 500
	}
	return false
}
