package handlers

import (
	"net/http"

	"github.com/baharkarakas/cat-tracker/internal/api/httpx"
	"github.com/baharkarakas/cat-tracker/internal/auth"
	"github.com/baharkarakas/cat-tracker/internal/models"
	"github.com/baharkarakas/cat-tracker/internal/services"
)

type AuthHandler struct {
	accounts *services.AccountService
	tm       *auth.TokenManager
}

func NewAuthHandler(accounts *services.AccountService, tm *auth.TokenManager) *AuthHandler {
	return &AuthHandler{accounts: accounts, tm: tm}
}

type sessionResp struct {
	User   models.User `json:"user"`
	Tokens auth.Pair   `json:"tokens"`
}

func (h *AuthHandler) issue(w http.ResponseWriter, r *http.Request, status int, u models.User) {
	pair, err := h.tm.GeneratePair(u.ID, u.Role())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, status, sessionResp{User: u, Tokens: pair})
}

type registerReq struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Password     string `json:"password"`
	ReferralCode string `json:"referral_code"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		badBody(w)
		return
	}
	u, err := h.accounts.Register(r.Context(), req.Name, req.Phone, req.Password, req.ReferralCode)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	h.issue(w, r, http.StatusCreated, u)
}

type loginReq struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		badBody(w)
		return
	}
	u, err := h.accounts.Login(r.Context(), req.Phone, req.Password)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	h.issue(w, r, http.StatusOK, u)
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh trades a refresh token for a new pair, provided the account still exists.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshReq
	if err := httpx.DecodeJSON(r, &req); err != nil || req.RefreshToken == "" {
		badBody(w)
		return
	}
	claims, err := h.tm.ParseRefresh(req.RefreshToken)
	if err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid refresh token", nil)
		return
	}
	u, err := h.accounts.Resume(r.Context(), claims.UserID)
	if err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid refresh token", nil)
		return
	}
	h.issue(w, r, http.StatusOK, u)
}

// Invite resolves a referral deep link (?ref=CODE) into the registration form
// state. Unknown codes are still prefilled; known reports whether one matched.
func (h *AuthHandler) Invite(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("ref")
	known, err := h.accounts.ReferralCodeKnown(r.Context(), code)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"mode":          "register",
		"referral_code": code,
		"known":         known,
	})
}
