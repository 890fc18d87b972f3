package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/payperplay/mcstatus/pkg/logger"
	"github.com/payperplay/mcstatus/pkg/mcstatus"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error     string                 `json:"error"`
	Message   string                 `json:"message,omitempty"`
	Code      string                 `json:"code,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// ErrorHandler is a middleware that catches panics and errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				err, ok := r.(error)
				if !ok {
					err = fmt.Errorf("%v", r)
				}
				logger.Error("Panic recovered", err, map[string]interface{}{
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"request_id": GetRequestID(c),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:     "Internal server error",
					Message:   "An unexpected error occurred",
					Code:      "INTERNAL_ERROR",
					RequestID: GetRequestID(c),
				})
			}
		}()

		c.Next()

		// Check if there were any errors
		if len(c.Errors) > 0 {
			appErr := FromError(c.Errors.Last().Err)

			fields := map[string]interface{}{
				"path":       c.Request.URL.Path,
				"method":     c.Request.Method,
				"code":       appErr.Code,
				"status":     appErr.StatusCode,
				"request_id": GetRequestID(c),
			}
			if appErr.StatusCode >= http.StatusInternalServerError {
				logger.Error("Request error", appErr, fields)
			} else {
				fields["error"] = appErr.Error()
				logger.Warn("Request error", fields)
			}

			// If response not already written
			if !c.Writer.Written() {
				c.JSON(appErr.StatusCode, ErrorResponse{
					Error:     appErr.Message,
					Code:      appErr.Code,
					RequestID: GetRequestID(c),
					Details:   appErr.Details,
				})
			}
		}
	}
}

// Custom error types for better error handling

type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
	Details    map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewBadRequestError(message string) *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Code:       "BAD_REQUEST",
		Message:    message,
	}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{
		StatusCode: http.StatusNotFound,
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		StatusCode: http.StatusInternalServerError,
		Code:       "INTERNAL_ERROR",
		Message:    "Internal server error",
		Err:        err,
	}
}

func NewServiceUnavailableError(message string) *AppError {
	return &AppError{
		StatusCode: http.StatusServiceUnavailable,
		Code:       "SERVICE_UNAVAILABLE",
		Message:    message,
	}
}

// FromError maps an error from the lookup path to an AppError
func FromError(err error) *AppError {
	var (
		appErr       *AppError
		remoteErr    *mcstatus.RemoteError
		transportErr *mcstatus.TransportError
		parseErr     *mcstatus.ParseError
		missingErr   *mcstatus.MissingFieldError
		decodeErr    *mcstatus.DecodeError
	)

	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, mcstatus.ErrInvalidArgument):
		return &AppError{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_ARGUMENT",
			Message:    err.Error(),
			Err:        err,
		}
	case errors.As(err, &remoteErr):
		return &AppError{
			StatusCode: http.StatusBadGateway,
			Code:       "UPSTREAM_ERROR",
			Message:    "mcstatus.io returned an error",
			Err:        err,
			Details:    map[string]interface{}{"upstream_status": remoteErr.StatusCode},
		}
	case errors.As(err, &transportErr):
		if transportErr.Timeout() {
			return &AppError{
				StatusCode: http.StatusGatewayTimeout,
				Code:       "UPSTREAM_TIMEOUT",
				Message:    "mcstatus.io did not respond in time",
				Err:        err,
			}
		}
		return &AppError{
			StatusCode: http.StatusBadGateway,
			Code:       "UPSTREAM_UNREACHABLE",
			Message:    "mcstatus.io could not be reached",
			Err:        err,
		}
	case errors.As(err, &missingErr):
		return &AppError{
			StatusCode: http.StatusBadGateway,
			Code:       "UPSTREAM_INVALID_RESPONSE",
			Message:    "mcstatus.io response is missing a required field",
			Err:        err,
			Details:    map[string]interface{}{"field": missingErr.Field},
		}
	case errors.As(err, &parseErr), errors.As(err, &decodeErr):
		invalid := &AppError{
			StatusCode: http.StatusBadGateway,
			Code:       "UPSTREAM_INVALID_RESPONSE",
			Message:    "mcstatus.io response could not be read",
			Err:        err,
		}
		if parseErr != nil && parseErr.Field != "" {
			invalid.Details = map[string]interface{}{"field": parseErr.Field}
		}
		return invalid
	}
	return NewInternalError(err)
}

// HandleAppError handles AppError types
func HandleAppError(c *gin.Context, err *AppError) {
	_ = c.Error(err)
	c.Abort()
}
