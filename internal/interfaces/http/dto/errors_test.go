package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dressshop/backend/internal/domain/order"
	"github.com/dressshop/backend/internal/domain/shared"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeAmountMismatch, http.StatusBadRequest},
		{ErrCodeItemNotFound, http.StatusNotFound},
		{ErrCodeUserNotFound, http.StatusNotFound},
		{ErrCodeOrderNotFound, http.StatusNotFound},
		{ErrCodeOrderNotPayable, http.StatusConflict},
		{ErrCodeGatewayUnavailable, http.StatusBadGateway},
		{ErrCodeUnsupportedCurrency, http.StatusBadRequest},
		{ErrCodeDuplicateRequest, http.StatusConflict},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestCodeForDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        *shared.DomainError
		wantCode   string
		wantStatus int
	}{
		{"amount mismatch", order.ErrAmountMismatch, ErrCodeAmountMismatch, http.StatusBadRequest},
		{"item not found", order.ErrItemNotFound, ErrCodeItemNotFound, http.StatusNotFound},
		{"user not found", order.ErrUserNotFound, ErrCodeUserNotFound, http.StatusNotFound},
		{"order not found", order.ErrOrderNotFound, ErrCodeOrderNotFound, http.StatusNotFound},
		{"gateway unavailable", order.ErrGatewayUnavailable, ErrCodeGatewayUnavailable, http.StatusBadGateway},
		{"order not payable", order.ErrOrderNotPayable, ErrCodeOrderNotPayable, http.StatusConflict},
		{"forbidden", shared.ErrForbidden, ErrCodeForbidden, http.StatusForbidden},
		{"duplicate request", shared.ErrDuplicateRequest, ErrCodeDuplicateRequest, http.StatusConflict},
		{"unmapped validation code", shared.NewDomainError("INVALID_PAYMENT_ID", "bad"), ErrCodeValidation, http.StatusBadRequest},
		{"unmapped conflict code", shared.NewDomainErrorOfKind(shared.KindConflict, "LOCKED", "locked"), ErrCodeConflict, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, status := CodeForDomainError(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeOrderNotPayable, NormalizeErrorCode("ORDER_NOT_PAYABLE"))
	assert.Equal(t, ErrCodeValidation, NormalizeErrorCode(ErrCodeValidation))
	assert.Equal(t, "CUSTOM_ERROR", NormalizeErrorCode("CUSTOM_ERROR"))
}

func TestDomainErrorCodeMapping_AllTargetsHaveStatus(t *testing.T) {
	for domainCode, apiCode := range DomainErrorCodeMapping {
		_, ok := ErrorCodeHTTPStatus[apiCode]
		assert.True(t, ok, "%s maps to %s which has no HTTP status", domainCode, apiCode)
	}
}

func TestErrorResponseJSON(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeAmountMismatch, "Declared amount does not match the catalog total", "req-1")

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, false, decoded["success"])
	errObj := decoded["error"].(map[string]any)
	assert.Equal(t, "ERR_AMOUNT_MISMATCH", errObj["code"])
	assert.Equal(t, "req-1", errObj["request_id"])
	assert.NotContains(t, errObj, "details")
	assert.NotContains(t, decoded, "data")
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2}, 41, 2, 20)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.True(t, resp.Success)

	empty := NewSuccessResponseWithMeta(nil, 0, 1, 0)
	assert.Equal(t, 0, empty.Meta.TotalPages)
}
