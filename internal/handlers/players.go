package handlers

import (
	"net/http"

	"github.com/AlenaMolokova/gamehub/internal/usecase"
	"github.com/AlenaMolokova/gamehub/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ListPlayersHandler struct {
	playerUC *usecase.PlayerUseCase
	log      logrus.FieldLogger
}

func NewListPlayersHandler(playerUC *usecase.PlayerUseCase, log logrus.FieldLogger) *ListPlayersHandler {
	return &ListPlayersHandler{playerUC: playerUC, log: log}
}

func (h *ListPlayersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	users, err := h.playerUC.List(r.Context())
	if err != nil {
		writeUseCaseError(w, h.log, err, "list players")
		return
	}

	players := make([]playerResponse, 0, len(users))
	for _, u := range users {
		players = append(players, newPlayerResponse(u))
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"players": players})
}

type UpdatePlayerHandler struct {
	playerUC *usecase.PlayerUseCase
	log      logrus.FieldLogger
}

func NewUpdatePlayerHandler(playerUC *usecase.PlayerUseCase, log logrus.FieldLogger) *UpdatePlayerHandler {
	return &UpdatePlayerHandler{playerUC: playerUC, log: log}
}

func (h *UpdatePlayerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		utils.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Balance       decimal.NullDecimal `json:"balance"`
		ReferralCount *int64              `json:"referralCount"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.Balance.Valid || req.ReferralCount == nil {
		utils.WriteJSONError(w, http.StatusBadRequest, "balance and referralCount are required")
		return
	}

	if err := h.playerUC.Update(r.Context(), id, req.Balance.Decimal, *req.ReferralCount); err != nil {
		writeUseCaseError(w, h.log, err, "update player")
		return
	}
	utils.WriteJSON(w, http.StatusOK, successResponse{Success: true})
}

type BanPlayerHandler struct {
	playerUC *usecase.PlayerUseCase
	log      logrus.FieldLogger
}

func NewBanPlayerHandler(playerUC *usecase.PlayerUseCase, log logrus.FieldLogger) *BanPlayerHandler {
	return &BanPlayerHandler{playerUC: playerUC, log: log}
}

func (h *BanPlayerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		utils.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.playerUC.Ban(r.Context(), id, req.Reason); err != nil {
		writeUseCaseError(w, h.log, err, "ban player")
		return
	}
	utils.WriteJSON(w, http.StatusOK, successResponse{Success: true})
}

type UnbanPlayerHandler struct {
	playerUC *usecase.PlayerUseCase
	log      logrus.FieldLogger
}

func NewUnbanPlayerHandler(playerUC *usecase.PlayerUseCase, log logrus.FieldLogger) *UnbanPlayerHandler {
	return &UnbanPlayerHandler{playerUC: playerUC, log: log}
}

func (h *UnbanPlayerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		utils.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.playerUC.Unban(r.Context(), id); err != nil {
		writeUseCaseError(w, h.log, err, "unban player")
		return
	}
	utils.WriteJSON(w, http.StatusOK, successResponse{Success: true})
}

type DeletePlayerHandler struct {
	playerUC *usecase.PlayerUseCase
	log      logrus.FieldLogger
}

func NewDeletePlayerHandler(playerUC *usecase.PlayerUseCase, log logrus.FieldLogger) *DeletePlayerHandler {
	return &DeletePlayerHandler{playerUC: playerUC, log: log}
}

func (h *DeletePlayerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		utils.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.playerUC.Delete(r.Context(), id); err != nil {
		writeUseCaseError(w, h.log, err, "delete player")
		return
	}
	utils.WriteJSON(w, http.StatusOK, successResponse{Success: true})
}
