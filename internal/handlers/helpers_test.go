package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/AlenaMolokova/gamehub/internal/config"
	"github.com/AlenaMolokova/gamehub/internal/models"
	"github.com/AlenaMolokova/gamehub/internal/testutils"
	"github.com/AlenaMolokova/gamehub/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

var (
	testNow       = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	testRequestID = uuid.MustParse("7b0e2a4c-1f6d-4c3b-9a51-2d8e6f0a9b13")
	testWallet    = "TXa1b2c3d4e5f6g7h8"
)

func nullLogger() logrus.FieldLogger {
	log, _ := test.NewNullLogger()
	return log
}

func newLedger(store models.TxStore, policy usecase.Policy) *usecase.RequestLedger {
	return usecase.NewRequestLedger(store, policy, nullLogger(),
		usecase.WithClock(func() time.Time { return testNow }),
		usecase.WithIDGenerator(func() uuid.UUID { return testRequestID }))
}

func withdrawalLedger(store models.TxStore) *usecase.RequestLedger {
	return newLedger(store, usecase.WithdrawalPolicy(config.DefaultLedgerConfig()))
}

func newStore(users ...models.User) *testutils.MemStore {
	store := testutils.NewMemStore()
	store.Now = func() time.Time { return testNow }
	for _, u := range users {
		if !u.CreatedAt.Valid {
			u.CreatedAt.Time, u.CreatedAt.Valid = testNow, true
		}
		store.AddUser(u)
	}
	return store
}

func player(id int64, balance string) models.User {
	return models.User{ID: id, Username: "player", Balance: decimal.RequireFromString(balance)}
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func amountOf(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}
