package handlers

import (
	"net/http"

	"github.com/AlenaMolokova/gamehub/internal/usecase"
	"github.com/AlenaMolokova/gamehub/internal/utils"
	"github.com/sirupsen/logrus"
)

// PostSupportMessageHandler stores a chat message. Mounted on the admin
// router it records an admin reply; on the public router the message is
// always the user's.
type PostSupportMessageHandler struct {
	supportUC *usecase.SupportUseCase
	log       logrus.FieldLogger
	asAdmin   bool
}

func NewPostSupportMessageHandler(supportUC *usecase.SupportUseCase, log logrus.FieldLogger, asAdmin bool) *PostSupportMessageHandler {
	return &PostSupportMessageHandler{supportUC: supportUC, log: log, asAdmin: asAdmin}
}

func (h *PostSupportMessageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID        int64  `json:"userId"`
		Username      string `json:"username"`
		Message       string `json:"message"`
		AdminUsername string `json:"adminUsername"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	msg, err := h.supportUC.Post(r.Context(), usecase.PostMessageParams{
		UserID:        req.UserID,
		Username:      req.Username,
		Message:       req.Message,
		IsAdminReply:  h.asAdmin,
		AdminUsername: req.AdminUsername,
	})
	if err != nil {
		writeUseCaseError(w, h.log, err, "post support message")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, newMessageResponse(msg))
}

type SupportThreadHandler struct {
	supportUC *usecase.SupportUseCase
	log       logrus.FieldLogger
	asAdmin   bool
}

func NewSupportThreadHandler(supportUC *usecase.SupportUseCase, log logrus.FieldLogger, asAdmin bool) *SupportThreadHandler {
	return &SupportThreadHandler{supportUC: supportUC, log: log, asAdmin: asAdmin}
}

func (h *SupportThreadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "userId")
	if err != nil {
		utils.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	thread, err := h.supportUC.Thread(r.Context(), userID, h.asAdmin)
	if err != nil {
		writeUseCaseError(w, h.log, err, "get support thread")
		return
	}

	messages := make([]messageResponse, 0, len(thread))
	for _, m := range thread {
		messages = append(messages, newMessageResponse(m))
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

type SupportChatsHandler struct {
	supportUC *usecase.SupportUseCase
	log       logrus.FieldLogger
}

func NewSupportChatsHandler(supportUC *usecase.SupportUseCase, log logrus.FieldLogger) *SupportChatsHandler {
	return &SupportChatsHandler{supportUC: supportUC, log: log}
}

func (h *SupportChatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	inbox, err := h.supportUC.Inbox(r.Context())
	if err != nil {
		writeUseCaseError(w, h.log, err, "list support chats")
		return
	}

	chats := make([]chatResponse, 0, len(inbox))
	for _, c := range inbox {
		chats = append(chats, chatResponse{
			UserID:          c.UserID,
			Username:        c.Username,
			LastMessage:     c.LastMessage,
			LastMessageTime: timePtr(c.LastMessageTime),
			UnreadCount:     c.UnreadCount,
		})
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"chats": chats})
}
