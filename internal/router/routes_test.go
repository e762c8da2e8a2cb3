package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AlenaMolokova/gamehub/internal/config"
	"github.com/AlenaMolokova/gamehub/internal/middleware"
	"github.com/AlenaMolokova/gamehub/internal/models"
	"github.com/AlenaMolokova/gamehub/internal/testutils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-secret"

type pingStore struct {
	*testutils.MemStore
}

func (pingStore) Ping(context.Context) error { return nil }

func newTestServer(t *testing.T) (http.Handler, *testutils.MemStore, string) {
	t.Helper()
	mem := testutils.NewMemStore()
	mem.AddUser(models.User{ID: 1, Username: "neo", Balance: decimal.NewFromInt(100)})

	cfg := &config.Config{
		JWTSecret:    testSecret,
		AllowOrigins: "https://game.example.com",
		AdminLogin:   "admin",
		AdminID:      7,
		Ledger:       config.DefaultLedgerConfig(),
	}
	log, _ := test.NewNullLogger()

	token, err := middleware.IssueAdminToken(testSecret, 7, time.Hour)
	require.NoError(t, err)
	return SetupRoutes(pingStore{mem}, cfg, log), mem, token
}

func do(h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSetupRoutesAdminGuard(t *testing.T) {
	h, _, token := newTestServer(t)

	tests := []struct {
		name           string
		method         string
		path           string
		token          string
		expectedStatus int
	}{
		{name: "очередь без токена", method: http.MethodGet, path: "/api/admin/vip-requests", expectedStatus: http.StatusUnauthorized},
		{name: "очередь с токеном", method: http.MethodGet, path: "/api/admin/vip-requests", token: token, expectedStatus: http.StatusOK},
		{name: "игроки без токена", method: http.MethodGet, path: "/api/admin/players", expectedStatus: http.StatusUnauthorized},
		{name: "игроки с токеном", method: http.MethodGet, path: "/api/admin/players", token: token, expectedStatus: http.StatusOK},
		{name: "чаты поддержки", method: http.MethodGet, path: "/api/admin/support/chats", token: "garbage", expectedStatus: http.StatusUnauthorized},
		{name: "публичный список требует userId", method: http.MethodGet, path: "/api/withdrawals", expectedStatus: http.StatusBadRequest},
		{name: "проверка здоровья", method: http.MethodGet, path: "/healthz", expectedStatus: http.StatusOK},
		{name: "удаление VIP заявки не поддерживается", method: http.MethodDelete, path: "/api/admin/vip-requests/00000000-0000-0000-0000-000000000001", token: token, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(h, tt.method, tt.path, "", tt.token)
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestSetupRoutesVIPFlow(t *testing.T) {
	h, mem, token := newTestServer(t)

	rec := do(h, http.MethodPost, "/api/vip-requests", `{"userId":1,"username":"neo","screenshotUrl":"https://cdn.example.com/p.png"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		RequestID string `json:"requestId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(h, http.MethodPost, "/api/vip-requests", `{"userId":1,"screenshotUrl":"https://cdn.example.com/p.png"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(h, http.MethodPut, "/api/admin/vip-requests", `{"requestId":"`+created.RequestID+`","action":"approve"}`, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodPut, "/api/admin/vip-requests", `{"requestId":"`+created.RequestID+`","action":"reject"}`, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	u, _ := mem.User(1)
	assert.True(t, u.IsVIP)

	rec = do(h, http.MethodGet, "/api/vip-requests/"+created.RequestID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"approved"`)
}

func TestSetupRoutesWithdrawalDelete(t *testing.T) {
	h, _, token := newTestServer(t)

	rec := do(h, http.MethodPost, "/api/withdrawals", `{"userId":1,"amount":"25","network":"TRC20","walletAddress":"TXa1b2c3d4e5f6g7h8"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		RequestID string `json:"requestId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(h, http.MethodDelete, "/api/admin/withdrawals/"+created.RequestID, "", token)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(h, http.MethodPut, "/api/admin/withdrawals", `{"requestId":"`+created.RequestID+`","action":"reject","adminNote":"wrong wallet"}`, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodDelete, "/api/admin/withdrawals/"+created.RequestID, "", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetupRoutesCORSPreflight(t *testing.T) {
	h, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/vip-requests", nil)
	req.Header.Set("Origin", "https://game.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://game.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
