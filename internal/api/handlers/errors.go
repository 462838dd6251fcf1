package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/baharkarakas/cat-tracker/internal/api/httpx"
	"github.com/baharkarakas/cat-tracker/internal/api/validate"
	"github.com/baharkarakas/cat-tracker/internal/middleware"
	repo "github.com/baharkarakas/cat-tracker/internal/repository"
	"github.com/baharkarakas/cat-tracker/internal/services"
)

var errorTable = []struct {
	err    error
	status int
	code   string
}{
	{services.ErrDuplicatePhone, http.StatusConflict, "duplicate_phone"},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{services.ErrWrongPassword, http.StatusForbidden, "wrong_password"},
	{services.ErrWrongOldPassword, http.StatusForbidden, "wrong_old_password"},
	{services.ErrInsufficientBalance, http.StatusUnprocessableEntity, "insufficient_balance"},
	{services.ErrNoBankDetails, http.StatusUnprocessableEntity, "no_bank_details"},
	{services.ErrBelowMinimum, http.StatusUnprocessableEntity, "below_minimum"},
	{services.ErrOutsideWithdrawalWindow, http.StatusUnprocessableEntity, "outside_withdrawal_window"},
	{services.ErrPlanNotFound, http.StatusNotFound, "not_found"},
	{repo.ErrNotFound, http.StatusNotFound, "not_found"},
}

// writeErr maps a service error onto the JSON error envelope. Unknown errors
// are logged and reported as 500 without their text.
func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", services.ErrValidation.Error(), verr.Fields)
		return
	}
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			httpx.WriteError(w, e.status, e.code, e.err.Error(), nil)
			return
		}
	}
	slog.Error("request failed",
		"request_id", middleware.RequestIDFrom(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"err", err,
	)
	httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
}

func writeInvalid(w http.ResponseWriter, errs validate.Errs) bool {
	if len(errs) == 0 {
		return false
	}
	httpx.WriteError(w, http.StatusBadRequest, "validation_error", services.ErrValidation.Error(), errs)
	return true
}

func badBody(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid request body", nil)
}

// principal is only called behind Authenticate.
func principal(r *http.Request) middleware.Principal {
	p, _ := middleware.PrincipalFrom(r.Context())
	return p
}
