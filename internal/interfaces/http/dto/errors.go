package dto

import (
	"errors"
	"net/http"

	"github.com/shopizer/backend/internal/domain/shared"
)

// Codes produced by the transport layer itself
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeRateLimited     = "RATE_LIMIT_EXCEEDED"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// ErrorKindHTTPStatus maps domain error kinds to HTTP status codes
var ErrorKindHTTPStatus = map[shared.ErrorKind]int{
	shared.KindNotFound:        http.StatusNotFound,
	shared.KindValidation:      http.StatusBadRequest,
	shared.KindConversion:      http.StatusBadRequest,
	shared.KindInvalidArgument: http.StatusBadRequest,
	shared.KindUnauthorized:    http.StatusUnauthorized,
	shared.KindForbidden:       http.StatusForbidden,
	shared.KindAlreadyExists:   http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for an error kind.
// Unknown kinds, including security and service errors, map to 500.
func GetHTTPStatus(kind shared.ErrorKind) int {
	if status, ok := ErrorKindHTTPStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	Detail    string             `json:"detail,omitempty"`
	RequestID string             `json:"request_id,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail describes one rejected request field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewErrorResponse creates an error body without a cause
func NewErrorResponse(code, message, requestID string) ErrorResponse {
	return ErrorResponse{Code: code, Message: message, RequestID: requestID}
}

// NewValidationErrorResponse creates a 400 body listing field errors
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) ErrorResponse {
	return ErrorResponse{
		Code:      ErrCodeValidation,
		Message:   message,
		RequestID: requestID,
		Details:   details,
	}
}

// FromError maps err to a status code and body. Errors that are not
// DomainErrors are reported as internal errors without their text.
func FromError(err error, requestID string) (int, ErrorResponse) {
	var de *shared.DomainError
	if !errors.As(err, &de) {
		return http.StatusInternalServerError,
			NewErrorResponse(ErrCodeInternal, "An unexpected error occurred", requestID)
	}
	body := ErrorResponse{Code: de.Code, Message: de.Message, RequestID: requestID}
	if detail := de.Detail(); detail != de.Message {
		body.Detail = detail
	}
	return GetHTTPStatus(de.Kind), body
}
