package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlenaMolokova/gamehub/internal/config"
	"github.com/AlenaMolokova/gamehub/internal/constants"
	"github.com/AlenaMolokova/gamehub/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ReferralStats struct {
	Clicks        int64
	Registrations int64
	Deposits      int64
	PendingAmount decimal.Decimal
	Available     decimal.Decimal
}

type ReferralUseCase struct {
	store models.TxStore
	rate  decimal.Decimal
	log   logrus.FieldLogger
}

func NewReferralUseCase(store models.TxStore, cfg config.LedgerConfig, log logrus.FieldLogger) *ReferralUseCase {
	return &ReferralUseCase{store: store, rate: cfg.ReferralRate, log: log}
}

// AvailableReferralBalance is registrations*rate minus everything already
// claimed by pending or approved referral withdrawals. It is never stored.
func AvailableReferralBalance(registrations int64, rate, locked decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(registrations).Mul(rate).Sub(locked)
}

func (u *ReferralUseCase) Available(ctx context.Context, userID int64) (decimal.Decimal, error) {
	stats, err := u.Stats(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return stats.Available, nil
}

func (u *ReferralUseCase) Stats(ctx context.Context, userID int64) (ReferralStats, error) {
	if userID <= 0 {
		return ReferralStats{}, validationError(errors.New("userId is required"))
	}

	user, err := u.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return ReferralStats{}, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return ReferralStats{}, fmt.Errorf("failed to get user: %w", err)
	}

	locked, err := u.store.SumLockedAmount(ctx, constants.KindReferralWithdrawal, userID)
	if err != nil {
		return ReferralStats{}, fmt.Errorf("failed to sum locked amount: %w", err)
	}

	return ReferralStats{
		Clicks:        user.ReferralClicks,
		Registrations: user.ReferralRegistrations,
		Deposits:      user.ReferralCount,
		PendingAmount: locked,
		Available:     AvailableReferralBalance(user.ReferralRegistrations, u.rate, locked),
	}, nil
}

// TrackClick counts a visit through a referral link. Clicks for unknown
// referrers are dropped.
func (u *ReferralUseCase) TrackClick(ctx context.Context, referrerID int64) error {
	if referrerID <= 0 {
		return validationError(errors.New("refUserId is required"))
	}

	found, err := u.store.IncrementReferralClicks(ctx, referrerID)
	if err != nil {
		return fmt.Errorf("failed to track click: %w", err)
	}
	if !found {
		u.log.WithField("referrer_id", referrerID).Warn("click for unknown referrer ignored")
	}
	return nil
}

// TrackRegistration attributes newUserID to referrerID. The first attribution
// wins: a user that already has a referrer is rejected with ErrConflict and no
// counter moves.
func (u *ReferralUseCase) TrackRegistration(ctx context.Context, referrerID, newUserID int64) error {
	if referrerID <= 0 || newUserID <= 0 {
		return validationError(errors.New("refUserId and newUserId are required"))
	}
	if referrerID == newUserID {
		return validationError(errors.New("user cannot refer themselves"))
	}

	err := u.store.RunInTx(ctx, func(store models.Store) error {
		users, err := lockInOrder(ctx, store, referrerID, newUserID)
		if err != nil {
			return err
		}
		if _, ok := users[referrerID]; !ok {
			return fmt.Errorf("%w: referrer %d", ErrNotFound, referrerID)
		}
		newUser, ok := users[newUserID]
		if !ok {
			return fmt.Errorf("%w: user %d", ErrNotFound, newUserID)
		}
		if newUser.ReferredBy.Valid {
			return fmt.Errorf("%w: user %d is already referred by %d", ErrConflict, newUserID, newUser.ReferredBy.Int64)
		}

		if err := store.SetReferredBy(ctx, newUserID, referrerID); err != nil {
			if errors.Is(err, models.ErrDuplicate) {
				return fmt.Errorf("%w: user %d is already referred", ErrConflict, newUserID)
			}
			return fmt.Errorf("failed to set referrer: %w", err)
		}
		if err := store.IncrementReferralRegistrations(ctx, referrerID); err != nil {
			return fmt.Errorf("failed to count registration: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.log.WithFields(logrus.Fields{
		"referrer_id": referrerID,
		"user_id":     newUserID,
	}).Info("referral registration tracked")
	return nil
}

// lockInOrder locks users by ascending id so two opposite attributions cannot
// deadlock. Missing users are absent from the result.
func lockInOrder(ctx context.Context, store models.Store, a, b int64) (map[int64]models.User, error) {
	if a > b {
		a, b = b, a
	}
	users := make(map[int64]models.User, 2)
	for _, id := range []int64{a, b} {
		user, err := store.LockUser(ctx, id)
		if err != nil {
			if errors.Is(err, models.ErrRecordNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to lock user: %w", err)
		}
		users[id] = user
	}
	return users, nil
}
