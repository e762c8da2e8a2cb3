package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlenaMolokova/gamehub/internal/models"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/sirupsen/logrus"
)

const maxSupportMessageLength = 4000

type PostMessageParams struct {
	UserID        int64
	Username      string
	Message       string
	IsAdminReply  bool
	AdminUsername string
}

type SupportUseCase struct {
	store models.TxStore
	log   logrus.FieldLogger
}

func NewSupportUseCase(store models.TxStore, log logrus.FieldLogger) *SupportUseCase {
	return &SupportUseCase{store: store, log: log}
}

func (u *SupportUseCase) Post(ctx context.Context, p PostMessageParams) (models.SupportMessage, error) {
	p.Username = strings.TrimSpace(p.Username)
	p.Message = strings.TrimSpace(p.Message)
	if p.UserID <= 0 || p.Username == "" || p.Message == "" {
		return models.SupportMessage{}, validationError(errors.New("userId, username and message are required"))
	}
	if len([]rune(p.Message)) > maxSupportMessageLength {
		return models.SupportMessage{}, validationError(fmt.Errorf("message is longer than %d characters", maxSupportMessageLength))
	}

	msg := models.SupportMessage{
		UserID:       p.UserID,
		Username:     p.Username,
		Message:      p.Message,
		IsAdminReply: p.IsAdminReply,
	}
	if p.IsAdminReply {
		msg.AdminUsername = pgtype.Text{String: p.AdminUsername, Valid: p.AdminUsername != ""}
	}

	saved, err := u.store.CreateSupportMessage(ctx, msg)
	if err != nil {
		return models.SupportMessage{}, fmt.Errorf("failed to save message: %w", err)
	}
	u.log.WithFields(logrus.Fields{
		"user_id":     p.UserID,
		"message_id":  saved.ID,
		"admin_reply": p.IsAdminReply,
	}).Debug("support message saved")
	return saved, nil
}

// Thread returns the user's conversation oldest first. Reading it as the user
// marks admin replies read; reading it as admin marks the user's messages
// read, which clears the inbox counter.
func (u *SupportUseCase) Thread(ctx context.Context, userID int64, asAdmin bool) ([]models.SupportMessage, error) {
	if userID <= 0 {
		return nil, validationError(errors.New("userId is required"))
	}

	var messages []models.SupportMessage
	err := u.store.RunInTx(ctx, func(store models.Store) error {
		var err error
		messages, err = store.GetSupportThread(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get thread: %w", err)
		}
		if asAdmin {
			err = store.MarkUserMessagesRead(ctx, userID)
		} else {
			err = store.MarkAdminRepliesRead(ctx, userID)
		}
		if err != nil {
			return fmt.Errorf("failed to mark messages read: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (u *SupportUseCase) Inbox(ctx context.Context) ([]models.ChatSummary, error) {
	chats, err := u.store.ListSupportChats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	return chats, nil
}
