package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AlenaMolokova/gamehub/internal/config"
	"github.com/AlenaMolokova/gamehub/internal/constants"
	"github.com/AlenaMolokova/gamehub/internal/models"
	"github.com/AlenaMolokova/gamehub/internal/usecase"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferralClickHandlerServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedClicks int64
	}{
		{name: "клик засчитан", body: `{"refUserId":1}`, expectedStatus: http.StatusOK, expectedClicks: 1},
		{name: "неизвестный реферер", body: `{"refUserId":99}`, expectedStatus: http.StatusOK},
		{name: "нет реферера", body: `{}`, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(player(1, "0"))
			uc := usecase.NewReferralUseCase(store, config.DefaultLedgerConfig(), nullLogger())
			req := httptest.NewRequest(http.MethodPost, "/api/referral/click", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			NewReferralClickHandler(uc, nullLogger()).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			u, _ := store.User(1)
			assert.Equal(t, tt.expectedClicks, u.ReferralClicks)
		})
	}
}

func TestReferralRegistrationHandlerServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{name: "регистрация засчитана", body: `{"refUserId":1,"newUserId":2}`, expectedStatus: http.StatusOK, expectedBody: `{"success":true}`},
		{name: "неизвестный реферер", body: `{"refUserId":5,"newUserId":2}`, expectedStatus: http.StatusNotFound, expectedBody: `{"error":"not found: referrer 5"}`},
		{name: "сам себя", body: `{"refUserId":1,"newUserId":1}`, expectedStatus: http.StatusBadRequest, expectedBody: `{"error":"validation failed: user cannot refer themselves"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(player(1, "0"), player(2, "0"))
			uc := usecase.NewReferralUseCase(store, config.DefaultLedgerConfig(), nullLogger())
			req := httptest.NewRequest(http.MethodPost, "/api/referral/registration", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			NewReferralRegistrationHandler(uc, nullLogger()).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestReferralStatsHandlerServeHTTP(t *testing.T) {
	store := newStore(models.User{ID: 1, Username: "neo", ReferralClicks: 10, ReferralRegistrations: 4, ReferralCount: 4})
	require.NoError(t, store.CreateRequest(context.Background(), models.Request{
		ID: uuid.New(), Kind: constants.KindReferralWithdrawal, UserID: 1,
		Amount: amountOf("1.5"), Status: constants.StatusApproved,
	}))
	uc := usecase.NewReferralUseCase(store, config.DefaultLedgerConfig(), nullLogger())

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "статистика",
			query:          "?userId=1",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"clicks":10,"registrations":4,"deposits":4,"pendingAmount":1.5,"available":0.5}`,
		},
		{
			name:           "нет userId",
			query:          "",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"validation failed: userId is required"}`,
		},
		{
			name:           "пользователь не найден",
			query:          "?userId=2",
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"not found: user 2"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/referral/stats"+tt.query, nil)
			w := httptest.NewRecorder()

			NewReferralStatsHandler(uc, nullLogger()).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
