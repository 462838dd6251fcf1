package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/cat-tracker/internal/api/httpx"
	"github.com/baharkarakas/cat-tracker/internal/api/validate"
	"github.com/baharkarakas/cat-tracker/internal/services"
)

type AdminHandler struct {
	admin *services.AdminService
}

func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.admin.Dashboard(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, d)
}

func (h *AdminHandler) Pending(w http.ResponseWriter, r *http.Request) {
	limit, offset := httpx.Page(r, 100, 500)
	txs, err := h.admin.Pending(r.Context(), limit, offset)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, nonNil(txs))
}

func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	tx, err := h.admin.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tx)
}

func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	tx, err := h.admin.Reject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tx)
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	limit, offset := httpx.Page(r, 100, 500)
	users, err := h.admin.Users(r.Context(), limit, offset)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, nonNil(users))
}

type setBalanceReq struct {
	Balance *decimal.Decimal `json:"balance"`
}

func (h *AdminHandler) SetBalance(w http.ResponseWriter, r *http.Request) {
	var req setBalanceReq
	if err := httpx.DecodeJSON(r, &req); err != nil || req.Balance == nil {
		badBody(w)
		return
	}
	if writeInvalid(w, validate.Collect(validate.MaxScale("balance", *req.Balance, 2))) {
		return
	}
	u, err := h.admin.SetBalance(r.Context(), chi.URLParam(r, "id"), *req.Balance)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (h *AdminHandler) Audit(w http.ResponseWriter, r *http.Request) {
	limit, _ := httpx.Page(r, 100, 500)
	logs, err := h.admin.AuditTrail(r.Context(), limit)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, nonNil(logs))
}
