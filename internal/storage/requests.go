package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/AlenaMolokova/gamehub/internal/constants"
	"github.com/AlenaMolokova/gamehub/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const requestColumns = `id, kind, user_id, username, amount, screenshot_url, crypto_type, network,
	wallet_address, status, created_at, processed_at, processed_by_admin_id, admin_note`

func scanRequest(row pgx.Row) (models.Request, error) {
	var r models.Request
	err := row.Scan(
		&r.ID,
		&r.Kind,
		&r.UserID,
		&r.Username,
		&r.Amount,
		&r.ScreenshotURL,
		&r.CryptoType,
		&r.Network,
		&r.WalletAddress,
		&r.Status,
		&r.CreatedAt,
		&r.ProcessedAt,
		&r.ProcessedByAdminID,
		&r.AdminNote,
	)
	return r, mapError(err)
}

func (q *Queries) CreateRequest(ctx context.Context, req models.Request) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO requests (id, kind, user_id, username, amount, screenshot_url, crypto_type, network,
			wallet_address, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		req.ID,
		req.Kind,
		req.UserID,
		req.Username,
		req.Amount,
		req.ScreenshotURL,
		req.CryptoType,
		req.Network,
		req.WalletAddress,
		req.Status,
		req.CreatedAt,
	)
	return mapError(err)
}

func (q *Queries) GetRequest(ctx context.Context, kind string, id uuid.UUID) (models.Request, error) {
	return scanRequest(q.db.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE kind = $1 AND id = $2`, kind, id))
}

// LockPendingRequest only sees rows still pending, so a second resolution of
// the same request finds nothing.
func (q *Queries) LockPendingRequest(ctx context.Context, kind string, id uuid.UUID) (models.Request, error) {
	return scanRequest(q.db.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE kind = $1 AND id = $2 AND status = $3 FOR UPDATE`,
		kind, id, constants.StatusPending))
}

func (q *Queries) ResolveRequest(ctx context.Context, params models.ResolveRequestParams) error {
	return affected(q.db.Exec(ctx, `
		UPDATE requests
		SET status = $3, processed_at = $4, processed_by_admin_id = $5, admin_note = $6
		WHERE kind = $1 AND id = $2 AND status = $7`,
		params.Kind,
		params.ID,
		params.Status,
		params.ProcessedAt,
		params.AdminID,
		params.AdminNote,
		constants.StatusPending,
	))
}

func (q *Queries) ListRequests(ctx context.Context, filter models.RequestFilter) ([]models.Request, error) {
	conds := []string{"kind = $1"}
	args := []any{filter.Kind}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.UserID != 0 {
		args = append(args, filter.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}

	query := `SELECT ` + requestColumns + ` FROM requests WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY created_at DESC`
	rows, err := q.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []models.Request{}
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

func (q *Queries) DeleteRequest(ctx context.Context, kind string, id uuid.UUID) error {
	return affected(q.db.Exec(ctx, `DELETE FROM requests WHERE kind = $1 AND id = $2`, kind, id))
}

func (q *Queries) HasPendingRequest(ctx context.Context, kind string, userID int64) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM requests WHERE kind = $1 AND user_id = $2 AND status = $3)`,
		kind, userID, constants.StatusPending).Scan(&exists)
	return exists, err
}

// SumLockedAmount is the part of a user's payout capacity already claimed by
// pending or approved requests. Rejected rows release their amount.
func (q *Queries) SumLockedAmount(ctx context.Context, kind string, userID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := q.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM requests
		WHERE kind = $1 AND user_id = $2 AND status IN ($3, $4)`,
		kind, userID, constants.StatusPending, constants.StatusApproved).Scan(&sum)
	return sum, err
}
