package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pot-code/course-platform/internal/domain"
	"github.com/pot-code/course-platform/internal/infrastructure/validate"
)

// RESTStandardError response error
type RESTStandardError struct {
	Type    string `json:"type,omitempty"`
	Code    int    `json:"code"`
	Title   string `json:"title"`
	Detail  string `json:"detail,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

func NewRESTStandardError(code int, detail string) *RESTStandardError {
	return &RESTStandardError{
		Code:   code,
		Title:  http.StatusText(code),
		Detail: detail,
	}
}

func (re RESTStandardError) Error() string {
	return re.Detail
}

func (re RESTStandardError) SetTraceID(traceID string) RESTStandardError {
	re.TraceID = traceID
	return re
}

// RESTValidationError standard validation error
type RESTValidationError struct {
	RESTStandardError
	InvalidParams []*validate.FieldError `json:"invalid_params"`
}

func NewRESTValidationError(code int, detail string, internal []*validate.FieldError) *RESTValidationError {
	return &RESTValidationError{
		RESTStandardError: RESTStandardError{
			Code:   code,
			Title:  http.StatusText(code),
			Detail: detail,
		},
		InvalidParams: internal,
	}
}

func (rve RESTValidationError) Error() string {
	return rve.Detail
}

func (rve RESTValidationError) SetTraceID(traceID string) RESTValidationError {
	rve.RESTStandardError.TraceID = traceID
	return rve
}

// ErrorResponse status code and body answering err, internal failures don't leak their message
func ErrorResponse(err error, traceID string) (int, interface{}) {
	var argErr *domain.ArgumentError
	switch {
	case errors.As(err, &argErr):
		return http.StatusBadRequest, NewRESTValidationError(http.StatusBadRequest, "Failed to validate params",
			[]*validate.FieldError{validate.NewFieldError(argErr.Field, argErr.Reason)}).SetTraceID(traceID)
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, NewRESTStandardError(http.StatusNotFound, err.Error()).SetTraceID(traceID)
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, NewRESTStandardError(http.StatusForbidden, err.Error()).SetTraceID(traceID)
	}
	return http.StatusInternalServerError,
		NewRESTStandardError(http.StatusInternalServerError, "internal server error").SetTraceID(traceID)
}

func badRequest(errs []*validate.FieldError) *RESTValidationError {
	return NewRESTValidationError(http.StatusBadRequest, "Failed to validate params", errs)
}

// bind decode the request into v, the returned error is the 400 body
func bind(c echo.Context, v interface{}) *RESTValidationError {
	if err := c.Bind(v); err != nil {
		reason := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			reason = fmt.Sprint(he.Message)
		}
		return badRequest([]*validate.FieldError{validate.NewFieldError("body", reason)})
	}
	return nil
}
