package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlenaMolokova/gamehub/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type PlayerUseCase struct {
	store models.Store
	log   logrus.FieldLogger
}

func NewPlayerUseCase(store models.Store, log logrus.FieldLogger) *PlayerUseCase {
	return &PlayerUseCase{store: store, log: log}
}

func (u *PlayerUseCase) List(ctx context.Context) ([]models.User, error) {
	users, err := u.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return users, nil
}

func (u *PlayerUseCase) Update(ctx context.Context, id int64, balance decimal.Decimal, referralCount int64) error {
	if balance.IsNegative() {
		return validationError(errors.New("balance must not be negative"))
	}
	if referralCount < 0 {
		return validationError(errors.New("referralCount must not be negative"))
	}

	err := u.store.UpdateUser(ctx, models.UserUpdate{ID: id, Balance: balance, ReferralCount: referralCount})
	if err != nil {
		return u.mapUserError(id, "update", err)
	}
	u.log.WithFields(logrus.Fields{
		"user_id":        id,
		"balance":        balance.StringFixed(2),
		"referral_count": referralCount,
	}).Info("player updated")
	return nil
}

func (u *PlayerUseCase) Ban(ctx context.Context, id int64, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return validationError(errors.New("reason is required"))
	}
	if err := u.store.SetBan(ctx, id, true, reason); err != nil {
		return u.mapUserError(id, "ban", err)
	}
	u.log.WithFields(logrus.Fields{"user_id": id, "reason": reason}).Info("player banned")
	return nil
}

func (u *PlayerUseCase) Unban(ctx context.Context, id int64) error {
	if err := u.store.SetBan(ctx, id, false, ""); err != nil {
		return u.mapUserError(id, "unban", err)
	}
	u.log.WithField("user_id", id).Info("player unbanned")
	return nil
}

func (u *PlayerUseCase) Delete(ctx context.Context, id int64) error {
	if err := u.store.DeleteUser(ctx, id); err != nil {
		return u.mapUserError(id, "delete", err)
	}
	u.log.WithField("user_id", id).Info("player deleted")
	return nil
}

func (u *PlayerUseCase) mapUserError(id int64, op string, err error) error {
	if errors.Is(err, models.ErrRecordNotFound) {
		return fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return fmt.Errorf("failed to %s player: %w", op, err)
}
