package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AlenaMolokova/gamehub/internal/constants"
	"github.com/AlenaMolokova/gamehub/internal/models"
	"github.com/AlenaMolokova/gamehub/internal/validation"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type CreateParams struct {
	UserID        int64
	Username      string
	Amount        decimal.NullDecimal
	ScreenshotURL string
	CryptoType    string
	Network       string
	WalletAddress string
}

type ResolveParams struct {
	RequestID uuid.UUID
	AdminID   int64
	Decision  string
	Note      string
}

type ListParams struct {
	Status string
	UserID int64
}

// Policy is what differs between request kinds. Guard runs under the user row
// lock right before the insert; OnApprove runs in the resolving transaction
// before the status flip.
type Policy struct {
	Kind      string
	Deletable bool
	Validate  func(p *CreateParams) error
	Guard     func(ctx context.Context, store models.Store, user models.User, p CreateParams) error
	OnApprove func(ctx context.Context, store models.Store, req models.Request, now time.Time) error
}

type RequestLedger struct {
	store  models.TxStore
	policy Policy
	log    logrus.FieldLogger
	now    func() time.Time
	newID  func() uuid.UUID
}

type LedgerOption func(*RequestLedger)

func WithClock(now func() time.Time) LedgerOption {
	return func(l *RequestLedger) { l.now = now }
}

func WithIDGenerator(newID func() uuid.UUID) LedgerOption {
	return func(l *RequestLedger) { l.newID = newID }
}

func NewRequestLedger(store models.TxStore, policy Policy, log logrus.FieldLogger, opts ...LedgerOption) *RequestLedger {
	l := &RequestLedger{
		store:  store,
		policy: policy,
		log:    log.WithField("kind", policy.Kind),
		now:    time.Now,
		newID:  uuid.New,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *RequestLedger) Kind() string {
	return l.policy.Kind
}

func (l *RequestLedger) Deletable() bool {
	return l.policy.Deletable
}

func (l *RequestLedger) Create(ctx context.Context, p CreateParams) (uuid.UUID, error) {
	if p.UserID <= 0 {
		return uuid.Nil, validationError(errors.New("userId is required"))
	}
	p.Username = strings.TrimSpace(p.Username)
	if l.policy.Validate != nil {
		if err := l.policy.Validate(&p); err != nil {
			return uuid.Nil, validationError(err)
		}
	}

	id := l.newID()
	err := l.store.RunInTx(ctx, func(store models.Store) error {
		user, err := store.LockUser(ctx, p.UserID)
		if err != nil {
			if errors.Is(err, models.ErrRecordNotFound) {
				return fmt.Errorf("%w: user %d", ErrNotFound, p.UserID)
			}
			return fmt.Errorf("failed to lock user: %w", err)
		}
		if user.IsBanned {
			return fmt.Errorf("%w: user %d is banned", ErrConflict, user.ID)
		}

		if l.policy.Guard != nil {
			if err := l.policy.Guard(ctx, store, user, p); err != nil {
				return err
			}
		}

		username := p.Username
		if username == "" {
			username = user.Username
		}
		req := models.Request{
			ID:            id,
			Kind:          l.policy.Kind,
			UserID:        user.ID,
			Username:      username,
			Amount:        p.Amount,
			ScreenshotURL: optionalText(p.ScreenshotURL),
			CryptoType:    optionalText(p.CryptoType),
			Network:       optionalText(p.Network),
			WalletAddress: optionalText(p.WalletAddress),
			Status:        constants.StatusPending,
			CreatedAt:     pgtype.Timestamptz{Time: l.now(), Valid: true},
		}
		if err := store.CreateRequest(ctx, req); err != nil {
			if errors.Is(err, models.ErrDuplicate) {
				return fmt.Errorf("%w: user %d already has a pending request", ErrConflict, user.ID)
			}
			return fmt.Errorf("failed to create request: %w", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	l.log.WithFields(logrus.Fields{
		"request_id": id,
		"user_id":    p.UserID,
	}).Info("request created")
	return id, nil
}

// Resolve flips a pending request to approved or rejected. A request that is
// missing or already resolved yields ErrNotFound, so a repeated resolution
// fails instead of being a no-op.
func (l *RequestLedger) Resolve(ctx context.Context, p ResolveParams) error {
	if p.RequestID == uuid.Nil {
		return validationError(errors.New("requestId is required"))
	}
	if p.AdminID <= 0 {
		return validationError(errors.New("adminId is required"))
	}
	if err := validation.ValidateDecision(p.Decision); err != nil {
		return validationError(err)
	}

	status := constants.StatusRejected
	if p.Decision == constants.DecisionApprove {
		status = constants.StatusApproved
	}

	err := l.store.RunInTx(ctx, func(store models.Store) error {
		req, err := store.LockPendingRequest(ctx, l.policy.Kind, p.RequestID)
		if err != nil {
			if errors.Is(err, models.ErrRecordNotFound) {
				return fmt.Errorf("%w: request %s not found or already processed", ErrNotFound, p.RequestID)
			}
			return fmt.Errorf("failed to lock request: %w", err)
		}

		now := l.now()
		if status == constants.StatusApproved && l.policy.OnApprove != nil {
			if err := l.policy.OnApprove(ctx, store, req, now); err != nil {
				return err
			}
		}

		err = store.ResolveRequest(ctx, models.ResolveRequestParams{
			Kind:        l.policy.Kind,
			ID:          req.ID,
			Status:      status,
			AdminID:     p.AdminID,
			AdminNote:   strings.TrimSpace(p.Note),
			ProcessedAt: now,
		})
		if err != nil {
			if errors.Is(err, models.ErrRecordNotFound) {
				return fmt.Errorf("%w: request %s not found or already processed", ErrNotFound, p.RequestID)
			}
			return fmt.Errorf("failed to resolve request: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	l.log.WithFields(logrus.Fields{
		"request_id": p.RequestID,
		"admin_id":   p.AdminID,
		"status":     status,
	}).Info("request resolved")
	return nil
}

func (l *RequestLedger) Get(ctx context.Context, id uuid.UUID) (models.Request, error) {
	req, err := l.store.GetRequest(ctx, l.policy.Kind, id)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return models.Request{}, fmt.Errorf("%w: request %s", ErrNotFound, id)
		}
		return models.Request{}, fmt.Errorf("failed to get request: %w", err)
	}
	return req, nil
}

// List returns requests newest first. Without a user filter it is the admin
// queue and the status defaults to pending; with a user filter and no status
// the user sees their whole history.
func (l *RequestLedger) List(ctx context.Context, p ListParams) ([]models.Request, error) {
	if p.UserID < 0 {
		return nil, validationError(errors.New("userId must be positive"))
	}
	status := p.Status
	if status == "" && p.UserID == 0 {
		status = constants.StatusPending
	}
	if status != "" {
		if err := validation.ValidateStatus(status); err != nil {
			return nil, validationError(err)
		}
	}

	requests, err := l.store.ListRequests(ctx, models.RequestFilter{
		Kind:   l.policy.Kind,
		Status: status,
		UserID: p.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}

// Delete removes a resolved request. Pending requests stay until an admin
// resolves them.
func (l *RequestLedger) Delete(ctx context.Context, id uuid.UUID) error {
	if !l.policy.Deletable {
		return fmt.Errorf("%w: %s requests cannot be deleted", ErrConflict, l.policy.Kind)
	}

	req, err := l.Get(ctx, id)
	if err != nil {
		return err
	}
	if req.Status == constants.StatusPending {
		return fmt.Errorf("%w: pending request %s cannot be deleted", ErrConflict, id)
	}

	if err := l.store.DeleteRequest(ctx, l.policy.Kind, id); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return fmt.Errorf("%w: request %s", ErrNotFound, id)
		}
		return fmt.Errorf("failed to delete request: %w", err)
	}

	l.log.WithField("request_id", id).Info("request deleted")
	return nil
}

func optionalText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	return pgtype.Text{String: s, Valid: s != ""}
}
