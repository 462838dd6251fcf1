package handlers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/baharkarakas/cat-tracker/internal/api/httpx"
	"github.com/baharkarakas/cat-tracker/internal/api/validate"
	"github.com/baharkarakas/cat-tracker/internal/models"
	"github.com/baharkarakas/cat-tracker/internal/services"
)

var (
	minDeposit = decimal.NewFromInt(500)
	maxDeposit = decimal.NewFromInt(50000)
)

const minUTRLen = 10

type WalletHandler struct {
	wallet *services.WalletService
}

func NewWalletHandler(wallet *services.WalletService) *WalletHandler {
	return &WalletHandler{wallet: wallet}
}

func (h *WalletHandler) Plans(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.wallet.Plans())
}

type depositReq struct {
	Amount decimal.Decimal `json:"amount"`
	UTR    string          `json:"utr"`
}

func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req depositReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		badBody(w)
		return
	}
	req.UTR = strings.TrimSpace(req.UTR)
	if writeInvalid(w, validate.Collect(
		validate.Between("amount", req.Amount, minDeposit, maxDeposit),
		validate.MaxScale("amount", req.Amount, 2),
		validate.MinLen("utr", req.UTR, minUTRLen),
	)) {
		return
	}
	tx, err := h.wallet.Deposit(r.Context(), principal(r).UserID, req.Amount, req.UTR)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, tx)
}

type withdrawReq struct {
	Amount   decimal.Decimal `json:"amount"`
	Password string          `json:"password"`
}

func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req withdrawReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		badBody(w)
		return
	}
	if writeInvalid(w, validate.Collect(
		validate.Positive("amount", req.Amount),
		validate.MaxScale("amount", req.Amount, 2),
	)) {
		return
	}
	tx, err := h.wallet.Withdraw(r.Context(), principal(r).UserID, req.Amount, req.Password)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, tx)
}

type investReq struct {
	PlanID string `json:"plan_id"`
}

type investResp struct {
	Transaction models.Transaction `json:"transaction"`
	Plan        models.UserPlan    `json:"plan"`
}

func (h *WalletHandler) Invest(w http.ResponseWriter, r *http.Request) {
	var req investReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		badBody(w)
		return
	}
	plan, err := h.wallet.Plan(req.PlanID)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if plan.Status != models.PlanActive {
		httpx.WriteError(w, http.StatusConflict, "plan_unavailable", "this plan is coming soon", nil)
		return
	}
	tx, holding, err := h.wallet.Invest(r.Context(), principal(r).UserID, plan)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, investResp{Transaction: tx, Plan: holding})
}

func (h *WalletHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	limit, offset := httpx.Page(r, 50, 200)
	txs, err := h.wallet.ListByUser(r.Context(), principal(r).UserID, limit, offset)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, nonNil(txs))
}

func (h *WalletHandler) MyPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.wallet.PlansByUser(r.Context(), principal(r).UserID)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, nonNil(plans))
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
