package handlers

import (
	"net/http"

	"github.com/AlenaMolokova/gamehub/internal/usecase"
	"github.com/AlenaMolokova/gamehub/internal/utils"
	"github.com/sirupsen/logrus"
)

type ReferralClickHandler struct {
	referralUC *usecase.ReferralUseCase
	log        logrus.FieldLogger
}

func NewReferralClickHandler(referralUC *usecase.ReferralUseCase, log logrus.FieldLogger) *ReferralClickHandler {
	return &ReferralClickHandler{referralUC: referralUC, log: log}
}

func (h *ReferralClickHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefUserID int64 `json:"refUserId"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.referralUC.TrackClick(r.Context(), req.RefUserID); err != nil {
		writeUseCaseError(w, h.log, err, "track referral click")
		return
	}
	utils.WriteJSON(w, http.StatusOK, successResponse{Success: true})
}

type ReferralRegistrationHandler struct {
	referralUC *usecase.ReferralUseCase
	log        logrus.FieldLogger
}

func NewReferralRegistrationHandler(referralUC *usecase.ReferralUseCase, log logrus.FieldLogger) *ReferralRegistrationHandler {
	return &ReferralRegistrationHandler{referralUC: referralUC, log: log}
}

func (h *ReferralRegistrationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefUserID int64 `json:"refUserId"`
		NewUserID int64 `json:"newUserId"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.referralUC.TrackRegistration(r.Context(), req.RefUserID, req.NewUserID); err != nil {
		writeUseCaseError(w, h.log, err, "track referral registration")
		return
	}
	utils.WriteJSON(w, http.StatusOK, successResponse{Success: true})
}

type ReferralStatsHandler struct {
	referralUC *usecase.ReferralUseCase
	log        logrus.FieldLogger
}

func NewReferralStatsHandler(referralUC *usecase.ReferralUseCase, log logrus.FieldLogger) *ReferralStatsHandler {
	return &ReferralStatsHandler{referralUC: referralUC, log: log}
}

func (h *ReferralStatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "userId")
	if err != nil {
		utils.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := h.referralUC.Stats(r.Context(), userID)
	if err != nil {
		writeUseCaseError(w, h.log, err, "get referral stats")
		return
	}
	utils.WriteJSON(w, http.StatusOK, newStatsResponse(stats))
}
