package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is an error with the status the BFF answers it with. It renders as
// {"error": Message}, the same shape the controllers write.
type Error struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors with the same code and message so wrapped copies of a
// sentinel still satisfy errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code && t.Message == e.Message
}

func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Wrap returns a copy of base carrying err. Sentinels are never mutated.
func Wrap(base *Error, err error) *Error {
	return New(base.Code, base.Message, err)
}

var (
	ErrInternalServer  = New(http.StatusInternalServerError, "Internal server error", nil)
	ErrBadGateway      = New(http.StatusBadGateway, "Backend unavailable", nil)
	ErrGatewayTimeout  = New(http.StatusGatewayTimeout, "Backend timed out", nil)
	ErrSessionExpired  = New(http.StatusUnauthorized, "Session expired", nil)
	ErrRequestCanceled = New(499, "Request canceled", nil)
)

// FromTransport classifies a backend call that produced no response.
func FromTransport(err error) *Error {
	var netErr net.Error
	switch {
	case stderrors.Is(err, context.Canceled):
		return Wrap(ErrRequestCanceled, err)
	case stderrors.Is(err, context.DeadlineExceeded),
		stderrors.As(err, &netErr) && netErr.Timeout():
		return Wrap(ErrGatewayTimeout, err)
	default:
		return Wrap(ErrBadGateway, err)
	}
}

func asAppError(err error) *Error {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(ErrInternalServer, err)
}

// ErrorMiddleware renders the last error attached with c.Error unless the
// handler already wrote a response.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			appErr := asAppError(c.Errors.Last().Err)
			c.AbortWithStatusJSON(appErr.Code, appErr)
		}
	}
}
