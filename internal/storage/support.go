package storage

import (
	"context"

	"github.com/AlenaMolokova/gamehub/internal/models"
)

func (q *Queries) CreateSupportMessage(ctx context.Context, msg models.SupportMessage) (models.SupportMessage, error) {
	err := q.db.QueryRow(ctx, `
		INSERT INTO support_messages (user_id, username, message, is_admin_reply, admin_username)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		msg.UserID, msg.Username, msg.Message, msg.IsAdminReply, msg.AdminUsername,
	).Scan(&msg.ID, &msg.CreatedAt)
	return msg, mapError(err)
}

func (q *Queries) GetSupportThread(ctx context.Context, userID int64) ([]models.SupportMessage, error) {
	rows, err := q.db.Query(ctx, `
		SELECT id, user_id, username, message, is_admin_reply, admin_username, is_read, created_at
		FROM support_messages
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.SupportMessage{}
	for rows.Next() {
		var m models.SupportMessage
		if err := rows.Scan(&m.ID, &m.UserID, &m.Username, &m.Message, &m.IsAdminReply,
			&m.AdminUsername, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (q *Queries) MarkAdminRepliesRead(ctx context.Context, userID int64) error {
	_, err := q.db.Exec(ctx, `
		UPDATE support_messages SET is_read = TRUE
		WHERE user_id = $1 AND is_admin_reply = TRUE AND is_read = FALSE`, userID)
	return err
}

func (q *Queries) MarkUserMessagesRead(ctx context.Context, userID int64) error {
	_, err := q.db.Exec(ctx, `
		UPDATE support_messages SET is_read = TRUE
		WHERE user_id = $1 AND is_admin_reply = FALSE AND is_read = FALSE`, userID)
	return err
}

func (q *Queries) ListSupportChats(ctx context.Context) ([]models.ChatSummary, error) {
	rows, err := q.db.Query(ctx, `
		SELECT last.user_id, last.username, last.message, last.created_at,
			(SELECT COUNT(*) FROM support_messages sm
			 WHERE sm.user_id = last.user_id AND sm.is_read = FALSE AND sm.is_admin_reply = FALSE)
		FROM (
			SELECT DISTINCT ON (user_id) user_id, username, message, created_at
			FROM support_messages
			ORDER BY user_id, created_at DESC, id DESC
		) AS last
		ORDER BY last.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chats := []models.ChatSummary{}
	for rows.Next() {
		var c models.ChatSummary
		if err := rows.Scan(&c.UserID, &c.Username, &c.LastMessage, &c.LastMessageTime, &c.UnreadCount); err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}
