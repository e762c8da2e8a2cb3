package storage

import (
	"context"

	"github.com/AlenaMolokova/gamehub/internal/models"
)

func (q *Queries) IncrementReferralClicks(ctx context.Context, referrerID int64) (bool, error) {
	tag, err := q.db.Exec(ctx, `UPDATE users SET referral_clicks = referral_clicks + 1 WHERE id = $1`, referrerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (q *Queries) IncrementReferralRegistrations(ctx context.Context, referrerID int64) error {
	return affected(q.db.Exec(ctx, `
		UPDATE users
		SET referral_registrations = referral_registrations + 1, referral_count = referral_count + 1
		WHERE id = $1`, referrerID))
}

// SetReferredBy never overwrites an existing attribution.
func (q *Queries) SetReferredBy(ctx context.Context, userID, referrerID int64) error {
	tag, err := q.db.Exec(ctx,
		`UPDATE users SET referred_by = $2 WHERE id = $1 AND referred_by IS NULL`, userID, referrerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrDuplicate
	}
	return nil
}
