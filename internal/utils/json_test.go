package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteJSONError(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		message        string
		expectedBody   string
		expectedStatus int
	}{
		{
			name:           "ошибка валидации",
			status:         http.StatusBadRequest,
			message:        "bad request",
			expectedBody:   `{"error":"bad request"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "конфликт",
			status:         http.StatusConflict,
			message:        "conflict: user 1 already has a pending VIP request",
			expectedBody:   `{"error":"conflict: user 1 already has a pending VIP request"}`,
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			err := WriteJSONError(w, tt.status, tt.message)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		UserID int64  `json:"userId"`
		Note   string `json:"note"`
	}

	tests := []struct {
		name        string
		body        string
		expected    payload
		errContains string
	}{
		{name: "корректное тело", body: `{"userId":5,"note":"hi"}`, expected: payload{UserID: 5, Note: "hi"}},
		{name: "пустое тело", body: ``, errContains: "request body is empty"},
		{name: "неизвестное поле", body: `{"userId":5,"extra":1}`, errContains: "unknown field"},
		{name: "неверный тип", body: `{"userId":"5"}`, errContains: "invalid request format"},
		{name: "два объекта", body: `{"userId":5}{"userId":6}`, errContains: "single JSON object"},
		{name: "слишком большое тело", body: `{"note":"` + strings.Repeat("a", maxBodyBytes) + `"}`, errContains: "larger than"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var got payload
			err := DecodeJSON(w, r, &got)

			if tt.errContains != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
