package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSON(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"name":"Ana","count":2}`, ""},
		{"unknown fields ignored", `{"name":"Ana","extra":true}`, ""},
		{"empty", ``, "body must not be empty"},
		{"malformed", `{"name":`, "badly-formed JSON"},
		{"wrong type", `{"count":"two"}`, `incorrect JSON type for field "count"`},
		{"two values", `{"name":"Ana"}{"name":"Bea"}`, "single JSON value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var dst payload
			err := ReadJSON(w, r, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Ana", dst.Name)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestErrorWriters(t *testing.T) {
	tests := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		body   string
	}{
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "name is required", nil) }, http.StatusBadRequest, "name is required"},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "bracket not found", nil) }, http.StatusNotFound, "bracket not found"},
		{"conflict", func(w http.ResponseWriter) { Conflict(w, "already registered", nil) }, http.StatusConflict, "already registered"},
		{"not implemented", func(w http.ResponseWriter) { NotImplemented(w, "SWISS", nil) }, http.StatusNotImplemented, "SWISS"},
		{"internal", func(w http.ResponseWriter) { InternalServerError(w, "db exploded", assert.AnError) }, http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.write(w)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.body, body["error"])
		})
	}
}
