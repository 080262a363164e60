package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/coordinate-advisor/internal/infra/llm"
	apperrors "github.com/yanqian/coordinate-advisor/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
	// UpstreamStatus and Detail are only rendered for surfaced provider failures.
	UpstreamStatus int
	Detail         string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// fromAppError maps domain error codes onto transport statuses.
func fromAppError(err error) *HTTPError {
	code := apperrors.CodeOf(err)
	message := apperrors.MessageOf(err)
	switch code {
	case apperrors.CodeInvalidInput:
		return NewHTTPError(http.StatusBadRequest, code, message, err)
	case apperrors.CodeRequestInFlight:
		return NewHTTPError(http.StatusConflict, code, message, err)
	case apperrors.CodeConfigMissing:
		return NewHTTPError(http.StatusInternalServerError, code, message, err)
	case apperrors.CodeUpstreamUnavailable:
		httpErr := NewHTTPError(http.StatusInternalServerError, code, message, err)
		var statusErr *llm.StatusError
		if errors.As(err, &statusErr) {
			httpErr.UpstreamStatus = statusErr.Status
			httpErr.Detail = statusErr.Detail
		}
		return httpErr
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal_error", "something went wrong", err)
	}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func (e *HTTPError) body() gin.H {
	body := gin.H{"error": e.Message}
	if e.UpstreamStatus != 0 {
		body["status"] = e.UpstreamStatus
	}
	if e.Detail != "" {
		body["detail"] = e.Detail
	}
	return body
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
