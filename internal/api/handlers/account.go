package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/baharkarakas/cat-tracker/internal/api/httpx"
	"github.com/baharkarakas/cat-tracker/internal/api/validate"
	"github.com/baharkarakas/cat-tracker/internal/models"
	"github.com/baharkarakas/cat-tracker/internal/services"
)

type AccountHandler struct {
	accounts  *services.AccountService
	balances  *services.BalanceService
	team      *services.TeamService
	publicURL string
}

func NewAccountHandler(accounts *services.AccountService, balances *services.BalanceService, team *services.TeamService, publicURL string) *AccountHandler {
	return &AccountHandler{accounts: accounts, balances: balances, team: team, publicURL: strings.TrimRight(publicURL, "/")}
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.accounts.Resume(r.Context(), principal(r).UserID)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	bal, err := h.balances.Current(r.Context(), principal(r).UserID)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"balance": bal})
}

type bankReq struct {
	HolderName    string `json:"holder_name"`
	AccountNumber string `json:"account_number"`
	IFSC          string `json:"ifsc"`
}

func (h *AccountHandler) UpdateBankDetails(w http.ResponseWriter, r *http.Request) {
	var req bankReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		badBody(w)
		return
	}
	if writeInvalid(w, validate.Collect(
		validate.Required("holder_name", req.HolderName),
		validate.Required("account_number", req.AccountNumber),
		validate.Required("ifsc", req.IFSC),
	)) {
		return
	}
	u, err := h.accounts.UpdateBankDetails(r.Context(), principal(r).UserID, models.BankDetails{
		HolderName:    strings.TrimSpace(req.HolderName),
		AccountNumber: strings.TrimSpace(req.AccountNumber),
		IFSC:          strings.ToUpper(strings.TrimSpace(req.IFSC)),
	})
	if err != nil {
		writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

type passwordReq struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *AccountHandler) decodePassword(w http.ResponseWriter, r *http.Request) (passwordReq, bool) {
	var req passwordReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		badBody(w)
		return req, false
	}
	if writeInvalid(w, validate.Collect(
		validate.Required("old_password", req.OldPassword),
		validate.MinLen("new_password", req.NewPassword, 4),
		validate.MaxBytes("new_password", req.NewPassword, 72),
	)) {
		return req, false
	}
	return req, true
}

func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodePassword(w, r)
	if !ok {
		return
	}
	if err := h.accounts.ChangePassword(r.Context(), principal(r).UserID, req.OldPassword, req.NewPassword); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) ChangeWithdrawalPassword(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodePassword(w, r)
	if !ok {
		return
	}
	if err := h.accounts.ChangeWithdrawalPassword(r.Context(), principal(r).UserID, req.OldPassword, req.NewPassword); err != nil {
		writeErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) Team(w http.ResponseWriter, r *http.Request) {
	stats, err := h.team.CalculateTeamStats(r.Context(), principal(r).UserID)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stats)
}

// InviteLink returns the shareable registration link for the caller's referral code.
func (h *AccountHandler) InviteLink(w http.ResponseWriter, r *http.Request) {
	u, err := h.accounts.Resume(r.Context(), principal(r).UserID)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"referral_code": u.ReferralCode,
		"link":          h.publicURL + "/?ref=" + url.QueryEscape(u.ReferralCode),
	})
}
