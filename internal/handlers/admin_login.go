package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/AlenaMolokova/gamehub/internal/middleware"
	"github.com/AlenaMolokova/gamehub/internal/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AdminCredentials struct {
	Login        string
	PasswordHash string
	AdminID      int64
}

type AdminLoginHandler struct {
	creds     AdminCredentials
	jwtSecret string
	tokenTTL  time.Duration
	log       logrus.FieldLogger
}

func NewAdminLoginHandler(creds AdminCredentials, jwtSecret string, tokenTTL time.Duration, log logrus.FieldLogger) *AdminLoginHandler {
	return &AdminLoginHandler{creds: creds, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (h *AdminLoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Login == "" || req.Password == "" {
		utils.WriteJSONError(w, http.StatusBadRequest, "Login and password are required")
		return
	}

	loginOK := subtle.ConstantTimeCompare([]byte(req.Login), []byte(h.creds.Login)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(h.creds.PasswordHash), []byte(req.Password))
	if !loginOK || passErr != nil {
		h.log.WithField("login", req.Login).Warn("admin login failed")
		utils.WriteJSONError(w, http.StatusUnauthorized, "Invalid login or password")
		return
	}

	token, err := middleware.IssueAdminToken(h.jwtSecret, h.creds.AdminID, h.tokenTTL)
	if err != nil {
		h.log.WithError(err).Error("failed to sign admin token")
		utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.log.WithField("admin_id", h.creds.AdminID).Info("admin authenticated")
	w.Header().Set("Authorization", "Bearer "+token)
	utils.WriteJSON(w, http.StatusOK, map[string]any{"token": token, "adminId": h.creds.AdminID})
}
