package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AlenaMolokova/gamehub/internal/models"
	"github.com/AlenaMolokova/gamehub/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type requestResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Kind               string     `json:"kind"`
	UserID             int64      `json:"userId"`
	Username           string     `json:"username"`
	Amount             *float64   `json:"amount,omitempty"`
	ScreenshotURL      *string    `json:"screenshotUrl,omitempty"`
	CryptoType         *string    `json:"cryptoType,omitempty"`
	Network            *string    `json:"network,omitempty"`
	WalletAddress      *string    `json:"walletAddress,omitempty"`
	Status             string     `json:"status"`
	CreatedAt          *time.Time `json:"createdAt"`
	ProcessedAt        *time.Time `json:"processedAt"`
	ProcessedByAdminID *int64     `json:"processedByAdminId"`
	AdminNote          *string    `json:"adminNote"`
}

func newRequestResponse(r models.Request) requestResponse {
	resp := requestResponse{
		ID:                 r.ID,
		Kind:               r.Kind,
		UserID:             r.UserID,
		Username:           r.Username,
		ScreenshotURL:      textPtr(r.ScreenshotURL),
		CryptoType:         textPtr(r.CryptoType),
		Network:            textPtr(r.Network),
		WalletAddress:      textPtr(r.WalletAddress),
		Status:             r.Status,
		CreatedAt:          timePtr(r.CreatedAt),
		ProcessedAt:        timePtr(r.ProcessedAt),
		ProcessedByAdminID: int8Ptr(r.ProcessedByAdminID),
		AdminNote:          textPtr(r.AdminNote),
	}
	if r.Amount.Valid {
		amount := r.Amount.Decimal.InexactFloat64()
		resp.Amount = &amount
	}
	return resp
}

type playerResponse struct {
	ID                    int64      `json:"id"`
	Username              string     `json:"username"`
	TelegramUsername      *string    `json:"telegramUsername"`
	Balance               float64    `json:"balance"`
	ReferralCount         int64      `json:"referralCount"`
	ReferralClicks        int64      `json:"referralClicks"`
	ReferralRegistrations int64      `json:"referralRegistrations"`
	ReferredBy            *int64     `json:"referredBy"`
	IsBanned              bool       `json:"isBanned"`
	BanReason             *string    `json:"banReason"`
	IsVIP                 bool       `json:"isVip"`
	VIPExpiresAt          *time.Time `json:"vipExpiresAt"`
	CreatedAt             *time.Time `json:"createdAt"`
	LastLoginAt           *time.Time `json:"lastLoginAt"`
}

func newPlayerResponse(u models.User) playerResponse {
	return playerResponse{
		ID:                    u.ID,
		Username:              u.Username,
		TelegramUsername:      textPtr(u.TelegramUsername),
		Balance:               u.Balance.InexactFloat64(),
		ReferralCount:         u.ReferralCount,
		ReferralClicks:        u.ReferralClicks,
		ReferralRegistrations: u.ReferralRegistrations,
		ReferredBy:            int8Ptr(u.ReferredBy),
		IsBanned:              u.IsBanned,
		BanReason:             textPtr(u.BanReason),
		IsVIP:                 u.IsVIP,
		VIPExpiresAt:          timePtr(u.VIPExpiresAt),
		CreatedAt:             timePtr(u.CreatedAt),
		LastLoginAt:           timePtr(u.LastLoginAt),
	}
}

type messageResponse struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"userId"`
	Username      string     `json:"username"`
	Message       string     `json:"message"`
	IsAdminReply  bool       `json:"isAdminReply"`
	AdminUsername *string    `json:"adminUsername"`
	IsRead        bool       `json:"isRead"`
	CreatedAt     *time.Time `json:"createdAt"`
}

func newMessageResponse(m models.SupportMessage) messageResponse {
	return messageResponse{
		ID:            m.ID,
		UserID:        m.UserID,
		Username:      m.Username,
		Message:       m.Message,
		IsAdminReply:  m.IsAdminReply,
		AdminUsername: textPtr(m.AdminUsername),
		IsRead:        m.IsRead,
		CreatedAt:     timePtr(m.CreatedAt),
	}
}

type chatResponse struct {
	UserID          int64      `json:"userId"`
	Username        string     `json:"username"`
	LastMessage     string     `json:"lastMessage"`
	LastMessageTime *time.Time `json:"lastMessageTime"`
	UnreadCount     int64      `json:"unreadCount"`
}

type statsResponse struct {
	Clicks        int64   `json:"clicks"`
	Registrations int64   `json:"registrations"`
	Deposits      int64   `json:"deposits"`
	PendingAmount float64 `json:"pendingAmount"`
	Available     float64 `json:"available"`
}

func newStatsResponse(s usecase.ReferralStats) statsResponse {
	return statsResponse{
		Clicks:        s.Clicks,
		Registrations: s.Registrations,
		Deposits:      s.Deposits,
		PendingAmount: s.PendingAmount.InexactFloat64(),
		Available:     decimal.Max(s.Available, decimal.Zero).InexactFloat64(),
	}
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	return &t.String
}

func int8Ptr(i pgtype.Int8) *int64 {
	if !i.Valid {
		return nil
	}
	return &i.Int64
}

func timePtr(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}

func queryInt64(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, errors.New(name + " must be a positive integer")
	}
	return v, nil
}

func pathInt64(r *http.Request, name string) (int64, error) {
	v, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || v <= 0 {
		return 0, errors.New(name + " must be a positive integer")
	}
	return v, nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, errors.New(name + " must be a UUID")
	}
	return id, nil
}
