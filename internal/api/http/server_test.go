package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trade-hub/trade-hub/internal/apperror"
)

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		kind apperror.Kind
		want int
	}{
		{kind: apperror.KindValidation, want: http.StatusBadRequest},
		{kind: apperror.KindForbidden, want: http.StatusForbidden},
		{kind: apperror.KindNotFound, want: http.StatusNotFound},
		{kind: apperror.KindStateConflict, want: http.StatusConflict},
		{kind: apperror.KindInternal, want: http.StatusInternalServerError},
		{kind: apperror.Kind("SOMETHING_ELSE"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, statusForKind(tt.kind))
		})
	}
}

func TestRespondAppError(t *testing.T) {
	rec := httptest.NewRecorder()
	respondAppError(rec, apperror.Forbiddenf("only the counterparty can accept"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "FORBIDDEN", body.Error.Code)
	assert.Equal(t, "only the counterparty can accept", body.Error.Message)
}

func TestRespondAppError_HidesInternalCause(t *testing.T) {
	rec := httptest.NewRecorder()
	respondAppError(rec, apperror.Internal("failed to load trade", assert.AnError))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
	assert.Contains(t, rec.Body.String(), "failed to load trade")
}

func TestRespondData(t *testing.T) {
	rec := httptest.NewRecorder()
	respondData(rec, http.StatusCreated, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "abc", body.Data["id"])
}

func TestDecodeBody_RejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"action":"accept","bogus":1}`))

	var payload struct {
		Action string `json:"action"`
	}
	err := decodeBody(req, &payload)
	require.Error(t, err)
}

func TestParseLimitOffset(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", query: "", wantLimit: 50, wantOffset: 0},
		{name: "explicit", query: "limit=10&offset=20", wantLimit: 10, wantOffset: 20},
		{name: "capped", query: "limit=10000", wantLimit: 200, wantOffset: 0},
		{name: "garbage", query: "limit=abc&offset=-5", wantLimit: 50, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			limit, offset := parseLimitOffset(req, 50, 200)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}
