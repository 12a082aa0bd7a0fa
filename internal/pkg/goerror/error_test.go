package goerror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeString(t *testing.T) {
	assert.Equal(t, "ERROR_CODE_INTERNAL", CodeInternal.String())
	assert.Equal(t, "ERROR_CODE_INVALID_FORMAT", CodeInvalidFormat.String())
	assert.Equal(t, "ERROR_CODE_INVALID_INPUT", CodeInvalidInput.String())
	assert.Equal(t, "ERROR_CODE_NOT_FOUND", CodeNotFound.String())
	assert.Equal(t, "ERROR_CODE_CONFLICT", CodeConflict.String())
	assert.Equal(t, "ERROR_CODE_EXPIRED", CodeExpired.String())
	assert.Equal(t, "ERROR_CODE_INVALID_CODE", CodeInvalidCode.String())
	assert.Equal(t, "ERROR_CODE_UNAUTHORIZED", CodeUnauthorized.String())
	assert.Equal(t, "ERROR_CODE_FORBIDDEN", CodeForbidden.String())
	assert.Equal(t, "ERROR_CODE_DELIVERY_FAILED", CodeDeliveryFailed.String())
	assert.Equal(t, "ERROR_CODE_UNAVAILABLE", CodeUnavailable.String())
	assert.Equal(t, "ERROR_CODE_TOO_MANY_REQUESTS", CodeTooManyRequest.String())
}

func TestStatusCode(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{CodeInvalidFormat, http.StatusBadRequest},
		{CodeExpired, http.StatusBadRequest},
		{CodeInvalidCode, http.StatusBadRequest},
		{CodeInvalidInput, http.StatusUnprocessableEntity},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeDeliveryFailed, http.StatusBadGateway},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeTooManyRequest, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		err := NewBusiness("boom", tc.code)

		var gerr *Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, tc.want, gerr.StatusCode(), tc.code.String())
	}
}

func TestNewServerWrapsCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := NewServer(cause)

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeInternal, gerr.Code())
	assert.Equal(t, "Internal server error", gerr.Msg())
}

func TestNewInvalidInputFieldPairs(t *testing.T) {
	err := NewInvalidInput(nil, "kind", "unknown nudge kind")

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, CodeInvalidInput, gerr.Code())
	assert.Equal(t, map[string]string{"kind": "unknown nudge kind"}, gerr.Fields())
}

func TestNewInvalidInputOddPairsFallsBack(t *testing.T) {
	err := NewInvalidInput(nil, "kind")

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, CodeInvalidFormat, gerr.Code())
}
