package httperr

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/GlebRadaev/affiliate-ledger/pkg/utils"
	"go.uber.org/zap"
)

const RetryAfter = time.Second

// Respond writes the HTTP status matching a domain error.
func Respond(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInactive):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrInsufficientReversal),
		errors.Is(err, domain.ErrInvalidState):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrConcurrencyConflict):
		utils.RespondRetryLater(w, RetryAfter, "ledger is busy, retry later")
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrTokenExpired):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrConfiguration):
		utils.RespondWithError(w, http.StatusServiceUnavailable, err.Error())
	default:
		zap.L().Error("request failed", zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// PathID parses a positive int64 path parameter.
func PathID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
