package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/cat-tracker/internal/auth"
	"github.com/baharkarakas/cat-tracker/internal/config"
	"github.com/baharkarakas/cat-tracker/internal/repository/memory"
	"github.com/baharkarakas/cat-tracker/internal/services"
)

type testAPI struct {
	t *testing.T
	h http.Handler
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	cfg := config.Config{
		AdminPhone:    "0000000000",
		AdminPassword: "admin",
		PublicURL:     "https://cat.example/",
	}
	repos := memory.NewRepositories(memory.NewStore())
	audit := services.NewAuditor(repos.AuditLogs, nil)
	team := services.NewTeamService(repos.Users, repos.Transactions)
	noon := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	h := NewRouter(RouterDeps{
		Cfg:      cfg,
		Tokens:   auth.NewTokenManager("a", "r", "test", time.Hour, 24*time.Hour),
		Accounts: services.NewAccountService(repos.Users, audit, cfg),
		Balances: services.NewBalanceService(repos.Balances),
		Wallet: services.NewWalletService(repos, services.DefaultCatalog(), audit, time.UTC).
			WithClock(func() time.Time { return noon }),
		Team:  team,
		Admin: services.NewAdminService(repos, team, audit),
	})
	return &testAPI{t: t, h: h}
}

func (a *testAPI) do(method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.h.ServeHTTP(rec, req)

	var out map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec, out
}

// session returns the access token and user id from a login/register response.
func session(t *testing.T, body map[string]any) (string, string) {
	t.Helper()
	tokens, ok := body["tokens"].(map[string]any)
	require.True(t, ok, "tokens missing: %v", body)
	user := body["user"].(map[string]any)
	return tokens["access_token"].(string), user["id"].(string)
}

func TestHealthAndAuthGuard(t *testing.T) {
	a := newTestAPI(t)

	rec, _ := a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec, body := a.do(http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", body["code"])

	rec, _ = a.do(http.MethodGet, "/api/v1/plans", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterLoginAndErrors(t *testing.T) {
	a := newTestAPI(t)

	rec, body := a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Asha", "phone": "9876543210", "password": "secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	user := body["user"].(map[string]any)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.Equal(t, "0", user["balance"])

	rec, body = a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Other", "phone": "9876543210", "password": "secret",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "phone number already registered", body["error"])

	rec, body = a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "", "phone": "1", "password": "",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", body["code"])
	assert.Len(t, body["details"], 3)

	rec, body = a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Long", "phone": "9876543219", "password": strings.Repeat("p", 100),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", body["code"])

	rec, _ = a.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"phone": "9876543210", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body = a.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"phone": "9876543210", "password": "secret"})
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := session(t, body)

	rec, body = a.do(http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Asha", body["name"])
}

func TestRefresh(t *testing.T) {
	a := newTestAPI(t)
	_, body := a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Asha", "phone": "9876543210", "password": "secret",
	})
	refresh := body["tokens"].(map[string]any)["refresh_token"].(string)
	access := body["tokens"].(map[string]any)["access_token"].(string)

	rec, body := a.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, rec.Code)
	_, _ = session(t, body)

	rec, _ = a.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh_token": access})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDepositApproveInvestFlow(t *testing.T) {
	a := newTestAPI(t)

	_, body := a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Asha", "phone": "9876543210", "password": "secret",
	})
	userTok, userID := session(t, body)

	rec, body := a.do(http.MethodPost, "/api/v1/deposits", userTok, map[string]any{"amount": 100, "utr": "UTR123456789"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", body["code"])

	rec, body = a.do(http.MethodPost, "/api/v1/deposits", userTok, map[string]any{"amount": 1000, "utr": "short"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = a.do(http.MethodPost, "/api/v1/deposits", userTok, map[string]any{"amount": 1000, "utr": "UTR123456789"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Pending", body["status"])
	txID := body["id"].(string)

	rec, _ = a.do(http.MethodGet, "/api/v1/admin/transactions/pending", userTok, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	_, body = a.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"phone": "0000000000", "password": "admin"})
	adminTok, adminID := session(t, body)
	assert.Equal(t, "admin_000", adminID)

	rec, body = a.do(http.MethodPost, "/api/v1/admin/transactions/"+txID+"/approve", adminTok, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Success", body["status"])

	rec, body = a.do(http.MethodGet, "/api/v1/me/balance", userTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1000", body["balance"])

	rec, body = a.do(http.MethodPost, "/api/v1/investments", userTok, map[string]string{"plan_id": "plan_2"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "plan_unavailable", body["code"])

	rec, _ = a.do(http.MethodPost, "/api/v1/investments", userTok, map[string]string{"plan_id": "plan_x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = a.do(http.MethodPost, "/api/v1/investments", userTok, map[string]string{"plan_id": "plan_1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Invested in Plan A (Starter)", body["transaction"].(map[string]any)["description"])

	_, body = a.do(http.MethodGet, "/api/v1/me/balance", userTok, nil)
	assert.Equal(t, "250", body["balance"])

	rec, body = a.do(http.MethodPut, "/api/v1/admin/users/"+userID+"/balance", adminTok, map[string]any{"balance": "42.5"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "42.5", body["balance"])

	rec, body = a.do(http.MethodGet, "/api/v1/admin/dashboard", adminTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["total_users"])
	assert.EqualValues(t, 0, body["pending_count"])
}

func TestWithdrawRequiresBankDetails(t *testing.T) {
	a := newTestAPI(t)
	_, body := a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Asha", "phone": "9876543210", "password": "secret",
	})
	tok, _ := session(t, body)

	rec, body := a.do(http.MethodPost, "/api/v1/withdrawals", tok, map[string]any{"amount": 200})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "no_bank_details", body["code"])

	rec, body = a.do(http.MethodPost, "/api/v1/withdrawals", tok, map[string]any{"amount": "150.005"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", body["code"])

	rec, body = a.do(http.MethodPost, "/api/v1/withdrawals", tok, map[string]any{"amount": 100})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "below_minimum", body["code"])

	rec, _ = a.do(http.MethodPut, "/api/v1/me/bank-details", tok, map[string]string{"holder_name": "Asha"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = a.do(http.MethodPut, "/api/v1/me/bank-details", tok, map[string]string{
		"holder_name": "Asha", "account_number": "1234567890", "ifsc": "sbin0000001",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SBIN0000001", body["bank_details"].(map[string]any)["ifsc"])

	rec, body = a.do(http.MethodPost, "/api/v1/withdrawals", tok, map[string]any{"amount": 200})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "insufficient_balance", body["code"])
}

func TestInviteLinks(t *testing.T) {
	a := newTestAPI(t)
	_, body := a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Asha", "phone": "9876543210", "password": "secret",
	})
	tok, _ := session(t, body)
	code := body["user"].(map[string]any)["referral_code"].(string)

	rec, body := a.do(http.MethodGet, "/api/v1/me/invite", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://cat.example/?ref="+code, body["link"])

	rec, body = a.do(http.MethodGet, "/api/v1/auth/invite?ref="+code, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "register", body["mode"])
	assert.Equal(t, code, body["referral_code"])
	assert.Equal(t, true, body["known"])

	rec, body = a.do(http.MethodGet, "/api/v1/auth/invite?ref=CAT-0000", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CAT-0000", body["referral_code"])
	assert.Equal(t, false, body["known"])

	rec, body = a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Ravi", "phone": "9876543211", "password": "secret", "referral_code": code,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body = a.do(http.MethodGet, "/api/v1/me/team", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["team_size"])
	assert.Equal(t, "0", body["total_recharge"])
}
