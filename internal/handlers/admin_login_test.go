package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AlenaMolokova/gamehub/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminLoginHandlerServeHTTP(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	creds := AdminCredentials{Login: "admin", PasswordHash: string(hash), AdminID: 4}
	secret := "test-secret"

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "успешный вход",
			body:           `{"login":"admin","password":"s3cret"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "неверный пароль",
			body:           `{"login":"admin","password":"wrong"}`,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"Invalid login or password"}`,
		},
		{
			name:           "неверный логин",
			body:           `{"login":"root","password":"s3cret"}`,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"Invalid login or password"}`,
		},
		{
			name:           "пустые поля",
			body:           `{"login":"","password":""}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Login and password are required"}`,
		},
		{
			name:           "неверный формат запроса",
			body:           `invalid json`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			NewAdminLoginHandler(creds, secret, time.Hour, nullLogger()).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
			if tt.expectedStatus != http.StatusOK {
				assert.Empty(t, w.Header().Get("Authorization"))
				return
			}

			authHeader := w.Header().Get("Authorization")
			require.True(t, strings.HasPrefix(authHeader, "Bearer "))

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				adminID, ok := middleware.GetAdminID(r)
				assert.True(t, ok)
				assert.Equal(t, int64(4), adminID)
			})
			check := httptest.NewRequest(http.MethodGet, "/api/admin/players", nil)
			check.Header.Set("Authorization", authHeader)
			cw := httptest.NewRecorder()
			middleware.AdminAuth(secret, nullLogger())(next).ServeHTTP(cw, check)
			assert.Equal(t, http.StatusOK, cw.Code)
		})
	}
}
