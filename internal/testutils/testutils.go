package testutils

import (
	"context"
	"time"

	"github.com/AlenaMolokova/gamehub/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockStore is a testify mock of models.TxStore. RunInTx calls fn with the
// mock itself, so expectations set on the mock cover the transactional body.
type MockStore struct {
	mock.Mock
}

var _ models.TxStore = (*MockStore)(nil)

func (m *MockStore) RunInTx(ctx context.Context, fn func(store models.Store) error) error {
	return fn(m)
}

func (m *MockStore) GetUser(ctx context.Context, id int64) (models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockStore) LockUser(ctx context.Context, id int64) (models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockStore) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStore) UpdateUser(ctx context.Context, update models.UserUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *MockStore) SetBan(ctx context.Context, id int64, banned bool, reason string) error {
	args := m.Called(ctx, id, banned, reason)
	return args.Error(0)
}

func (m *MockStore) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) DebitBalance(ctx context.Context, id int64, amount decimal.Decimal) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockStore) GrantVIP(ctx context.Context, id int64, expiresAt time.Time) error {
	args := m.Called(ctx, id, expiresAt)
	return args.Error(0)
}

func (m *MockStore) ExpireVIP(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) CreateRequest(ctx context.Context, req models.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockStore) GetRequest(ctx context.Context, kind string, id uuid.UUID) (models.Request, error) {
	args := m.Called(ctx, kind, id)
	return args.Get(0).(models.Request), args.Error(1)
}

func (m *MockStore) LockPendingRequest(ctx context.Context, kind string, id uuid.UUID) (models.Request, error) {
	args := m.Called(ctx, kind, id)
	return args.Get(0).(models.Request), args.Error(1)
}

func (m *MockStore) ResolveRequest(ctx context.Context, params models.ResolveRequestParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockStore) ListRequests(ctx context.Context, filter models.RequestFilter) ([]models.Request, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Request), args.Error(1)
}

func (m *MockStore) DeleteRequest(ctx context.Context, kind string, id uuid.UUID) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}

func (m *MockStore) HasPendingRequest(ctx context.Context, kind string, userID int64) (bool, error) {
	args := m.Called(ctx, kind, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) SumLockedAmount(ctx context.Context, kind string, userID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, kind, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStore) IncrementReferralClicks(ctx context.Context, referrerID int64) (bool, error) {
	args := m.Called(ctx, referrerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) IncrementReferralRegistrations(ctx context.Context, referrerID int64) error {
	args := m.Called(ctx, referrerID)
	return args.Error(0)
}

func (m *MockStore) SetReferredBy(ctx context.Context, userID, referrerID int64) error {
	args := m.Called(ctx, userID, referrerID)
	return args.Error(0)
}

func (m *MockStore) CreateSupportMessage(ctx context.Context, msg models.SupportMessage) (models.SupportMessage, error) {
	args := m.Called(ctx, msg)
	return args.Get(0).(models.SupportMessage), args.Error(1)
}

func (m *MockStore) GetSupportThread(ctx context.Context, userID int64) ([]models.SupportMessage, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.SupportMessage), args.Error(1)
}

func (m *MockStore) MarkAdminRepliesRead(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockStore) MarkUserMessagesRead(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockStore) ListSupportChats(ctx context.Context) ([]models.ChatSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.ChatSummary), args.Error(1)
}
