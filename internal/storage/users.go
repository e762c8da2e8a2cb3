package storage

import (
	"context"
	"time"

	"github.com/AlenaMolokova/gamehub/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const userColumns = `id, username, telegram_username, balance, referral_count, referral_clicks,
	referral_registrations, referred_by, is_banned, ban_reason, is_vip, vip_expires_at, created_at, last_login_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.TelegramUsername,
		&u.Balance,
		&u.ReferralCount,
		&u.ReferralClicks,
		&u.ReferralRegistrations,
		&u.ReferredBy,
		&u.IsBanned,
		&u.BanReason,
		&u.IsVIP,
		&u.VIPExpiresAt,
		&u.CreatedAt,
		&u.LastLoginAt,
	)
	return u, mapError(err)
}

func (q *Queries) GetUser(ctx context.Context, id int64) (models.User, error) {
	return scanUser(q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// LockUser takes a row lock on the user until the surrounding transaction
// ends. Every check-then-write sequence for a user starts here.
func (q *Queries) LockUser(ctx context.Context, id int64) (models.User, error) {
	return scanUser(q.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
}

func (q *Queries) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := q.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (q *Queries) UpdateUser(ctx context.Context, update models.UserUpdate) error {
	return affected(q.db.Exec(ctx,
		`UPDATE users SET balance = $2, referral_count = $3 WHERE id = $1`,
		update.ID, update.Balance, update.ReferralCount))
}

func (q *Queries) SetBan(ctx context.Context, id int64, banned bool, reason string) error {
	var banReason *string
	if banned {
		banReason = &reason
	}
	return affected(q.db.Exec(ctx,
		`UPDATE users SET is_banned = $2, ban_reason = $3 WHERE id = $1`,
		id, banned, banReason))
}

func (q *Queries) DeleteUser(ctx context.Context, id int64) error {
	return affected(q.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id))
}

func (q *Queries) DebitBalance(ctx context.Context, id int64, amount decimal.Decimal) error {
	return affected(q.db.Exec(ctx, `UPDATE users SET balance = balance - $2 WHERE id = $1`, id, amount))
}

func (q *Queries) GrantVIP(ctx context.Context, id int64, expiresAt time.Time) error {
	return affected(q.db.Exec(ctx,
		`UPDATE users SET is_vip = TRUE, vip_expires_at = $2 WHERE id = $1`,
		id, expiresAt))
}

// ExpireVIP clears the VIP flag of every user whose expiry has passed and
// returns how many rows changed.
func (q *Queries) ExpireVIP(ctx context.Context, now time.Time) (int64, error) {
	tag, err := q.db.Exec(ctx, `
		UPDATE users SET is_vip = FALSE
		WHERE is_vip AND vip_expires_at IS NOT NULL AND vip_expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
