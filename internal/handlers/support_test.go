package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AlenaMolokova/gamehub/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportHandlers(t *testing.T) {
	store := newStore()
	uc := usecase.NewSupportUseCase(store, nullLogger())

	post := func(asAdmin bool, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/support/messages", strings.NewReader(body))
		w := httptest.NewRecorder()
		NewPostSupportMessageHandler(uc, nullLogger(), asAdmin).ServeHTTP(w, req)
		return w
	}

	w := post(false, `{"userId":1,"username":"neo","message":"deposit is missing"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"userId":1,"username":"neo","message":"deposit is missing","isAdminReply":false,
		"adminUsername":null,"isRead":false,"createdAt":"2025-03-01T12:00:00Z"}`, w.Body.String())

	w = post(false, `{"userId":1,"username":"neo","message":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(true, `{"userId":1,"username":"neo","message":"checking","adminUsername":"root"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"isAdminReply":true`)

	t.Run("список чатов", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewSupportChatsHandler(uc, nullLogger()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/support/chats", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"chats":[{"userId":1,"username":"neo","lastMessage":"checking",
			"lastMessageTime":"2025-03-01T12:00:00Z","unreadCount":1}]}`, w.Body.String())
	})

	t.Run("переписка пользователя", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewSupportThreadHandler(uc, nullLogger(), false).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/support/messages?userId=1", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2, strings.Count(w.Body.String(), `"userId":1`))
	})

	t.Run("администратор читает переписку", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewSupportThreadHandler(uc, nullLogger(), true).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/support/messages?userId=1", nil))
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		NewSupportChatsHandler(uc, nullLogger()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/support/chats", nil))
		assert.Contains(t, w.Body.String(), `"unreadCount":0`)
	})

	t.Run("нет userId", func(t *testing.T) {
		w := httptest.NewRecorder()
		NewSupportThreadHandler(uc, nullLogger(), false).
			ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/support/messages", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
