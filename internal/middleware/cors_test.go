package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		allow          string
		method         string
		origin         string
		preflight      bool
		expectedStatus int
		expectedOrigin string
	}{
		{name: "любой источник", allow: "*", method: http.MethodGet, origin: "https://a.example", expectedStatus: http.StatusOK, expectedOrigin: "*"},
		{name: "разрешённый источник", allow: "https://a.example, https://b.example", method: http.MethodGet, origin: "https://b.example", expectedStatus: http.StatusOK, expectedOrigin: "https://b.example"},
		{name: "чужой источник", allow: "https://a.example", method: http.MethodGet, origin: "https://evil.example", expectedStatus: http.StatusOK},
		{name: "preflight", allow: "*", method: http.MethodOptions, origin: "https://a.example", preflight: true, expectedStatus: http.StatusNoContent, expectedOrigin: "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/players", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPut)
			}
			w := httptest.NewRecorder()

			CORS(tt.allow)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
