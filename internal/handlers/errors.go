package handlers

import (
	"errors"
	"net/http"

	"github.com/AlenaMolokova/gamehub/internal/usecase"
	"github.com/AlenaMolokova/gamehub/internal/utils"
	"github.com/sirupsen/logrus"
)

// writeUseCaseError maps usecase sentinels to client statuses. Anything else
// is a store fault: it is logged and hidden behind a generic 500.
func writeUseCaseError(w http.ResponseWriter, log logrus.FieldLogger, err error, op string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		utils.WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrConflict):
		utils.WriteJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, usecase.ErrNotFound):
		utils.WriteJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, usecase.ErrInsufficientFunds):
		utils.WriteJSONError(w, http.StatusPaymentRequired, err.Error())
	default:
		log.WithError(err).Errorf("failed to %s", op)
		utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
	}
}
