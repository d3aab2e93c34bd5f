package middleware

import (
	"net/http"

	"github.com/emicklei/go-restful/v3"
)

// Machine-readable error codes returned in ErrorResponse.Error.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeAPIKeyInvalid      = "API_KEY_INVALID"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeNetwork            = "NETWORK_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeInternal           = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// HandleError writes err with the code that matches status.
func HandleError(resp *restful.Response, err error, status int) {
	WriteError(resp, status, ErrorResponse{
		Error:   codeForStatus(status),
		Message: err.Error(),
	})
}

func WriteError(resp *restful.Response, status int, body ErrorResponse) {
	_ = resp.WriteHeaderAndEntity(status, body)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return CodeAPIKeyInvalid
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusTooManyRequests:
		return CodeRateLimitExceeded
	case http.StatusServiceUnavailable:
		return CodeServiceUnavailable
	default:
		return CodeInternal
	}
}
