package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorKind classifies why a generation call failed.
type ErrorKind string

const (
	KindAuthInvalid        ErrorKind = "auth_invalid"
	KindRateLimited        ErrorKind = "rate_limited"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindNetwork            ErrorKind = "network_error"
	KindInternal           ErrorKind = "internal"
)

// Error is returned by every provider when a generation call fails.
type Error struct {
	Kind     ErrorKind
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s generation failed (%s): %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether re-issuing the same request may succeed.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindRateLimited, KindServiceUnavailable, KindNetwork:
		return true
	default:
		return false
	}
}

func NewError(provider string, kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Provider: provider, Err: err}
}

// KindOf classifies any error returned from a generation call.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr.Kind
	}

	if kind, ok := transportKind(err); ok {
		return kind
	}

	return KindInternal
}

// IsGenerationError reports whether err came from a generation call.
func IsGenerationError(err error) bool {
	var genErr *Error
	return errors.As(err, &genErr)
}

// KindFromStatus maps an HTTP status returned by a provider API.
func KindFromStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuthInvalid
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status == http.StatusRequestTimeout:
		return KindNetwork
	case status >= http.StatusInternalServerError:
		return KindServiceUnavailable
	default:
		return KindInternal
	}
}

// Wrap converts a provider failure into an *Error. classify may be nil; it is
// consulted after cancellation and network failures are ruled out.
func Wrap(provider string, err error, classify func(error) (ErrorKind, bool)) error {
	if err == nil {
		return nil
	}

	var genErr *Error
	if errors.As(err, &genErr) {
		return err
	}

	if kind, ok := transportKind(err); ok {
		return NewError(provider, kind, err)
	}

	if classify != nil {
		if kind, ok := classify(err); ok {
			return NewError(provider, kind, err)
		}
	}

	return NewError(provider, KindInternal, err)
}

func transportKind(err error) (ErrorKind, bool) {
	// aborted and timed out calls are safe to retry
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindNetwork, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindNetwork, true
	}

	return "", false
}
