package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponse(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	ErrorResponse(rr, req, http.StatusServiceUnavailable, "down")

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "down", body["error"])
}

func TestDecodeJSONBody(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"name":"giza"}`},
		{name: "empty", body: ``, wantErr: "body must not be empty"},
		{name: "unknown field", body: `{"city":"giza"}`, wantErr: `body contains unknown key "city"`},
		{name: "wrong type", body: `{"name":3}`, wantErr: "incorrect JSON type"},
		{name: "trailing data", body: `{"name":"a"}{"name":"b"}`, wantErr: "single JSON value"},
		{name: "bad json", body: `{"name":`, wantErr: "badly-formed JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst payload
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			err := DecodeJSONBody(rr, req, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "giza", dst.Name)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateStruct(t *testing.T) {
	type req struct {
		Message string   `validate:"required,max=10"`
		Tags    []string `validate:"max=2"`
	}
	assert.NoError(t, ValidateStruct(req{Message: "hi"}))

	err := ValidateStruct(req{Tags: []string{"a", "b", "c"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Message is required")
	assert.Contains(t, err.Error(), "Tags must be at most 2")
}

func TestVerifyAudience(t *testing.T) {
	assert.True(t, VerifyAudience(nil, ""))
	assert.False(t, VerifyAudience(nil, "horus"))
	assert.True(t, VerifyAudience(jwt.ClaimStrings{"other", "horus"}, "horus"))
}
