package models

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicate      = errors.New("duplicate record")
)

type User struct {
	ID                    int64
	Username              string
	TelegramUsername      pgtype.Text
	Balance               decimal.Decimal
	ReferralCount         int64
	ReferralClicks        int64
	ReferralRegistrations int64
	ReferredBy            pgtype.Int8
	IsBanned              bool
	BanReason             pgtype.Text
	IsVIP                 bool
	VIPExpiresAt          pgtype.Timestamptz
	CreatedAt             pgtype.Timestamptz
	LastLoginAt           pgtype.Timestamptz
}

// Request is one row of a request ledger. Amount is null for VIP requests,
// ScreenshotURL is set only for them.
type Request struct {
	ID                 uuid.UUID
	Kind               string
	UserID             int64
	Username           string
	Amount             decimal.NullDecimal
	ScreenshotURL      pgtype.Text
	CryptoType         pgtype.Text
	Network            pgtype.Text
	WalletAddress      pgtype.Text
	Status             string
	CreatedAt          pgtype.Timestamptz
	ProcessedAt        pgtype.Timestamptz
	ProcessedByAdminID pgtype.Int8
	AdminNote          pgtype.Text
}

type RequestFilter struct {
	Kind   string
	Status string
	UserID int64
}

type ResolveRequestParams struct {
	Kind        string
	ID          uuid.UUID
	Status      string
	AdminID     int64
	AdminNote   string
	ProcessedAt time.Time
}

type UserUpdate struct {
	ID            int64
	Balance       decimal.Decimal
	ReferralCount int64
}

type SupportMessage struct {
	ID            int64
	UserID        int64
	Username      string
	Message       string
	IsAdminReply  bool
	AdminUsername pgtype.Text
	IsRead        bool
	CreatedAt     pgtype.Timestamptz
}

type ChatSummary struct {
	UserID          int64
	Username        string
	LastMessage     string
	LastMessageTime pgtype.Timestamptz
	UnreadCount     int64
}

type UserStorage interface {
	GetUser(ctx context.Context, id int64) (User, error)
	LockUser(ctx context.Context, id int64) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, update UserUpdate) error
	SetBan(ctx context.Context, id int64, banned bool, reason string) error
	DeleteUser(ctx context.Context, id int64) error
	DebitBalance(ctx context.Context, id int64, amount decimal.Decimal) error
	GrantVIP(ctx context.Context, id int64, expiresAt time.Time) error
	ExpireVIP(ctx context.Context, now time.Time) (int64, error)
}

type RequestStorage interface {
	CreateRequest(ctx context.Context, req Request) error
	GetRequest(ctx context.Context, kind string, id uuid.UUID) (Request, error)
	LockPendingRequest(ctx context.Context, kind string, id uuid.UUID) (Request, error)
	ResolveRequest(ctx context.Context, params ResolveRequestParams) error
	ListRequests(ctx context.Context, filter RequestFilter) ([]Request, error)
	DeleteRequest(ctx context.Context, kind string, id uuid.UUID) error
	HasPendingRequest(ctx context.Context, kind string, userID int64) (bool, error)
	SumLockedAmount(ctx context.Context, kind string, userID int64) (decimal.Decimal, error)
}

type ReferralStorage interface {
	IncrementReferralClicks(ctx context.Context, referrerID int64) (bool, error)
	IncrementReferralRegistrations(ctx context.Context, referrerID int64) error
	SetReferredBy(ctx context.Context, userID, referrerID int64) error
}

type SupportStorage interface {
	CreateSupportMessage(ctx context.Context, msg SupportMessage) (SupportMessage, error)
	GetSupportThread(ctx context.Context, userID int64) ([]SupportMessage, error)
	MarkAdminRepliesRead(ctx context.Context, userID int64) error
	MarkUserMessagesRead(ctx context.Context, userID int64) error
	ListSupportChats(ctx context.Context) ([]ChatSummary, error)
}

type Store interface {
	UserStorage
	RequestStorage
	ReferralStorage
	SupportStorage
}

// TxStore runs fn inside one database transaction. The Store handed to fn is
// bound to that transaction; returning an error from fn rolls it back.
type TxStore interface {
	Store
	RunInTx(ctx context.Context, fn func(store Store) error) error
}
