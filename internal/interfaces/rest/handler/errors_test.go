package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/pot-code/course-platform/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponse(t *testing.T) {
	code, body := ErrorResponse(fmt.Errorf("list: %w", domain.NewArgumentError("userId", "userId is required")), "trace-1")
	assert.Equal(t, http.StatusBadRequest, code)
	verr, ok := body.(RESTValidationError)
	require.True(t, ok)
	assert.Equal(t, "trace-1", verr.TraceID)
	require.Len(t, verr.InvalidParams, 1)
	assert.Equal(t, "userId", verr.InvalidParams[0].Domain)

	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("admin: %w", domain.ErrForbidden), http.StatusForbidden},
		{domain.NewStoreError("FindCourse", errors.New("connection refused")), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		code, body := ErrorResponse(tc.err, "")
		assert.Equal(t, tc.code, code, tc.err.Error())
		se, ok := body.(RESTStandardError)
		require.True(t, ok)
		assert.Equal(t, tc.code, se.Code)
	}

	_, body = ErrorResponse(errors.New("secret dsn leaked"), "")
	assert.NotContains(t, body.(RESTStandardError).Detail, "dsn")
}
