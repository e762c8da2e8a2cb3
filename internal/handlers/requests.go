package handlers

import (
	"net/http"

	"github.com/AlenaMolokova/gamehub/internal/constants"
	"github.com/AlenaMolokova/gamehub/internal/middleware"
	"github.com/AlenaMolokova/gamehub/internal/usecase"
	"github.com/AlenaMolokova/gamehub/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type CreateRequestHandler struct {
	ledger *usecase.RequestLedger
	log    logrus.FieldLogger
}

func NewCreateRequestHandler(ledger *usecase.RequestLedger, log logrus.FieldLogger) *CreateRequestHandler {
	return &CreateRequestHandler{ledger: ledger, log: log}
}

func (h *CreateRequestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID        int64               `json:"userId"`
		Username      string              `json:"username"`
		Amount        decimal.NullDecimal `json:"amount"`
		ScreenshotURL string              `json:"screenshotUrl"`
		CryptoType    string              `json:"cryptoType"`
		Network       string              `json:"network"`
		WalletAddress string              `json:"walletAddress"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.ledger.Create(r.Context(), usecase.CreateParams{
		UserID:        req.UserID,
		Username:      req.Username,
		Amount:        req.Amount,
		ScreenshotURL: req.ScreenshotURL,
		CryptoType:    req.CryptoType,
		Network:       req.Network,
		WalletAddress: req.WalletAddress,
	})
	if err != nil {
		writeUseCaseError(w, h.log, err, "create "+h.ledger.Kind()+" request")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, struct {
		Success   bool      `json:"success"`
		RequestID uuid.UUID `json:"requestId"`
		Status    string    `json:"status"`
	}{Success: true, RequestID: id, Status: constants.StatusPending})
}

// ListRequestsHandler serves both views of a ledger. The user view requires
// userId; the admin view sits behind AdminAuth and defaults to the pending
// queue.
type ListRequestsHandler struct {
	ledger    *usecase.RequestLedger
	log       logrus.FieldLogger
	adminView bool
}

func NewListRequestsHandler(ledger *usecase.RequestLedger, log logrus.FieldLogger, adminView bool) *ListRequestsHandler {
	return &ListRequestsHandler{ledger: ledger, log: log, adminView: adminView}
}

func (h *ListRequestsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt64(r, "userId")
	if err != nil {
		utils.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !h.adminView && userID == 0 {
		utils.WriteJSONError(w, http.StatusBadRequest, "userId is required")
		return
	}

	requests, err := h.ledger.List(r.Context(), usecase.ListParams{
		Status: r.URL.Query().Get("status"),
		UserID: userID,
	})
	if err != nil {
		writeUseCaseError(w, h.log, err, "list "+h.ledger.Kind()+" requests")
		return
	}

	resp := make([]requestResponse, 0, len(requests))
	for _, req := range requests {
		resp = append(resp, newRequestResponse(req))
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{"requests": resp})
}

type GetRequestHandler struct {
	ledger *usecase.RequestLedger
	log    logrus.FieldLogger
}

func NewGetRequestHandler(ledger *usecase.RequestLedger, log logrus.FieldLogger) *GetRequestHandler {
	return &GetRequestHandler{ledger: ledger, log: log}
}

func (h *GetRequestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, err := h.ledger.Get(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, h.log, err, "get "+h.ledger.Kind()+" request")
		return
	}
	utils.WriteJSON(w, http.StatusOK, newRequestResponse(req))
}

type ResolveRequestHandler struct {
	ledger *usecase.RequestLedger
	log    logrus.FieldLogger
}

func NewResolveRequestHandler(ledger *usecase.RequestLedger, log logrus.FieldLogger) *ResolveRequestHandler {
	return &ResolveRequestHandler{ledger: ledger, log: log}
}

func (h *ResolveRequestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RequestID uuid.UUID `json:"requestId"`
		Action    string    `json:"action"`
		Decision  string    `json:"decision"`
		AdminNote string    `json:"adminNote"`
		AdminID   int64     `json:"adminId"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Action == "" {
		req.Action = req.Decision
	}
	if tokenAdminID, ok := middleware.GetAdminID(r); ok {
		req.AdminID = tokenAdminID
	}

	err := h.ledger.Resolve(r.Context(), usecase.ResolveParams{
		RequestID: req.RequestID,
		AdminID:   req.AdminID,
		Decision:  req.Action,
		Note:      req.AdminNote,
	})
	if err != nil {
		writeUseCaseError(w, h.log, err, "resolve "+h.ledger.Kind()+" request")
		return
	}
	utils.WriteJSON(w, http.StatusOK, successResponse{Success: true, Message: "Status updated"})
}

type DeleteRequestHandler struct {
	ledger *usecase.RequestLedger
	log    logrus.FieldLogger
}

func NewDeleteRequestHandler(ledger *usecase.RequestLedger, log logrus.FieldLogger) *DeleteRequestHandler {
	return &DeleteRequestHandler{ledger: ledger, log: log}
}

func (h *DeleteRequestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		utils.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.ledger.Delete(r.Context(), id); err != nil {
		writeUseCaseError(w, h.log, err, "delete "+h.ledger.Kind()+" request")
		return
	}
	utils.WriteJSON(w, http.StatusOK, successResponse{Success: true, Message: "Request deleted"})
}
