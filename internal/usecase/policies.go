package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AlenaMolokova/gamehub/internal/config"
	"github.com/AlenaMolokova/gamehub/internal/constants"
	"github.com/AlenaMolokova/gamehub/internal/models"
	"github.com/AlenaMolokova/gamehub/internal/validation"
)

// VIPPolicy allows one pending proof of payment per user. Approval grants VIP
// for cfg.VIPDuration from the approval instant, replacing any earlier expiry.
func VIPPolicy(cfg config.LedgerConfig) Policy {
	return Policy{
		Kind: constants.KindVIP,
		Validate: func(p *CreateParams) error {
			p.ScreenshotURL = strings.TrimSpace(p.ScreenshotURL)
			if p.Amount.Valid {
				return errors.New("amount is not accepted for VIP requests")
			}
			return validation.ValidateScreenshotURL(p.ScreenshotURL)
		},
		Guard: func(ctx context.Context, store models.Store, user models.User, _ CreateParams) error {
			pending, err := store.HasPendingRequest(ctx, constants.KindVIP, user.ID)
			if err != nil {
				return fmt.Errorf("failed to check pending requests: %w", err)
			}
			if pending {
				return fmt.Errorf("%w: user %d already has a pending VIP request", ErrConflict, user.ID)
			}
			return nil
		},
		OnApprove: func(ctx context.Context, store models.Store, req models.Request, now time.Time) error {
			if err := store.GrantVIP(ctx, req.UserID, now.Add(cfg.VIPDuration)); err != nil {
				if errors.Is(err, models.ErrRecordNotFound) {
					return fmt.Errorf("%w: user %d", ErrNotFound, req.UserID)
				}
				return fmt.Errorf("failed to grant VIP: %w", err)
			}
			return nil
		},
	}
}

// ReferralWithdrawalPolicy checks the amount against the computed referral
// balance. Approval moves no money; the approved row keeps its amount
// counted against the balance.
func ReferralWithdrawalPolicy(cfg config.LedgerConfig) Policy {
	return Policy{
		Kind: constants.KindReferralWithdrawal,
		Validate: func(p *CreateParams) error {
			p.CryptoType = strings.TrimSpace(p.CryptoType)
			p.WalletAddress = strings.TrimSpace(p.WalletAddress)
			if strings.TrimSpace(p.Network) == "" {
				p.Network = p.CryptoType
			}
			if err := validation.ValidateAmount(p.Amount, cfg.MinWithdrawal); err != nil {
				return err
			}
			if err := validation.Required([2]string{"cryptoType", p.CryptoType}); err != nil {
				return err
			}
			return validation.ValidateWalletAddress(p.WalletAddress)
		},
		Guard: func(ctx context.Context, store models.Store, user models.User, p CreateParams) error {
			locked, err := store.SumLockedAmount(ctx, constants.KindReferralWithdrawal, user.ID)
			if err != nil {
				return fmt.Errorf("failed to sum locked amount: %w", err)
			}
			available := AvailableReferralBalance(user.ReferralRegistrations, cfg.ReferralRate, locked)
			if p.Amount.Decimal.GreaterThan(available) {
				return fmt.Errorf("%w: requested %s, available %s",
					ErrInsufficientFunds, p.Amount.Decimal.StringFixed(2), available.StringFixed(2))
			}
			return nil
		},
	}
}

// WithdrawalPolicy checks the stored balance at creation and debits it on
// approval. With StrictWithdrawalApproval the balance is checked again under
// the user lock, and an approval that would overdraw fails and leaves the
// request pending.
func WithdrawalPolicy(cfg config.LedgerConfig) Policy {
	return Policy{
		Kind:      constants.KindWithdrawal,
		Deletable: true,
		Validate: func(p *CreateParams) error {
			p.Network = strings.TrimSpace(p.Network)
			p.WalletAddress = strings.TrimSpace(p.WalletAddress)
			if err := validation.ValidateAmount(p.Amount, cfg.MinWithdrawal); err != nil {
				return err
			}
			if err := validation.Required([2]string{"network", p.Network}); err != nil {
				return err
			}
			return validation.ValidateWalletAddress(p.WalletAddress)
		},
		Guard: func(_ context.Context, _ models.Store, user models.User, p CreateParams) error {
			if user.Balance.LessThan(p.Amount.Decimal) {
				return fmt.Errorf("%w: requested %s, balance %s",
					ErrInsufficientFunds, p.Amount.Decimal.StringFixed(2), user.Balance.StringFixed(2))
			}
			return nil
		},
		OnApprove: func(ctx context.Context, store models.Store, req models.Request, _ time.Time) error {
			if cfg.StrictWithdrawalApproval {
				user, err := store.LockUser(ctx, req.UserID)
				if err != nil {
					if errors.Is(err, models.ErrRecordNotFound) {
						return fmt.Errorf("%w: user %d", ErrNotFound, req.UserID)
					}
					return fmt.Errorf("failed to lock user: %w", err)
				}
				if user.Balance.LessThan(req.Amount.Decimal) {
					return fmt.Errorf("%w: request %s needs %s, balance %s", ErrInsufficientFunds,
						req.ID, req.Amount.Decimal.StringFixed(2), user.Balance.StringFixed(2))
				}
			}
			if err := store.DebitBalance(ctx, req.UserID, req.Amount.Decimal); err != nil {
				if errors.Is(err, models.ErrRecordNotFound) {
					return fmt.Errorf("%w: user %d", ErrNotFound, req.UserID)
				}
				return fmt.Errorf("failed to debit balance: %w", err)
			}
			return nil
		},
	}
}
