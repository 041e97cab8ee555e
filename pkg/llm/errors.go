package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrMissingAPIKey is returned by providers constructed without credentials
var ErrMissingAPIKey = errors.New("missing api key")

// StatusError carries the HTTP status of a failed provider call so
// callers can classify it without string matching.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s error: status %d, body: %s", e.Provider, e.Code, e.Body)
}

// ErrorClass buckets provider failures for user-facing reporting
type ErrorClass string

const (
	ClassAuth      ErrorClass = "auth"
	ClassRateLimit ErrorClass = "rate_limit"
	ClassNetwork   ErrorClass = "network"
	ClassUnknown   ErrorClass = "unknown"
)

// Classify maps any provider error to an ErrorClass
func Classify(err error) ErrorClass {
	if err == nil {
		return ""
	}

	if errors.Is(err, ErrMissingAPIKey) {
		return ClassAuth
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return ClassAuth
		case http.StatusTooManyRequests:
			return ClassRateLimit
		}
		if statusErr.Code >= 500 {
			return ClassNetwork
		}
		return ClassUnknown
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return ClassNetwork
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ClassNetwork
	}

	return ClassUnknown
}

// UserMessage returns the single user-facing message for a failure class
func UserMessage(class ErrorClass) string {
	switch class {
	case ClassAuth:
		return "Invalid API key"
	case ClassRateLimit:
		return "Rate limit reached. Please try again in a moment."
	case ClassNetwork:
		return "Network error. Check your connection and try again."
	default:
		return "Generation failed. Please try again."
	}
}
