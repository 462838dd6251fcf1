package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/cat-tracker/internal/api/handlers"
	"github.com/baharkarakas/cat-tracker/internal/auth"
	"github.com/baharkarakas/cat-tracker/internal/config"
	"github.com/baharkarakas/cat-tracker/internal/metrics"
	"github.com/baharkarakas/cat-tracker/internal/middleware"
	"github.com/baharkarakas/cat-tracker/internal/services"
)

type RouterDeps struct {
	Cfg      config.Config
	Tokens   *auth.TokenManager
	Accounts *services.AccountService
	Balances *services.BalanceService
	Wallet   *services.WalletService
	Team     *services.TeamService
	Admin    *services.AdminService
}

func NewRouter(d RouterDeps) http.Handler {
	authH := handlers.NewAuthHandler(d.Accounts, d.Tokens)
	accountH := handlers.NewAccountHandler(d.Accounts, d.Balances, d.Team, d.Cfg.PublicURL)
	walletH := handlers.NewWalletHandler(d.Wallet)
	adminH := handlers.NewAdminHandler(d.Admin)
	authn := middleware.NewAuthenticator(d.Tokens)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// ---------- public ----------
		r.Get("/plans", walletH.Plans)
		r.Get("/auth/invite", authH.Invite)
		r.Post("/auth/register", authH.Register)
		r.Post("/auth/login", authH.Login)
		r.Post("/auth/refresh", authH.Refresh)

		// ---------- signed in ----------
		r.Group(func(r chi.Router) {
			r.Use(authn.Authenticate)

			r.Get("/me", accountH.Me)
			r.Get("/me/balance", accountH.Balance)
			r.Put("/me/bank-details", accountH.UpdateBankDetails)
			r.Put("/me/password", accountH.ChangePassword)
			r.Put("/me/withdrawal-password", accountH.ChangeWithdrawalPassword)
			r.Get("/me/team", accountH.Team)
			r.Get("/me/invite", accountH.InviteLink)
			r.Get("/me/transactions", walletH.Transactions)
			r.Get("/me/plans", walletH.MyPlans)

			r.Post("/deposits", walletH.Deposit)
			r.Post("/withdrawals", walletH.Withdraw)
			r.Post("/investments", walletH.Invest)

			// ---------- admin ----------
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireRole("admin"))
				r.Get("/dashboard", adminH.Dashboard)
				r.Get("/transactions/pending", adminH.Pending)
				r.Post("/transactions/{id}/approve", adminH.Approve)
				r.Post("/transactions/{id}/reject", adminH.Reject)
				r.Get("/users", adminH.Users)
				r.Put("/users/{id}/balance", adminH.SetBalance)
				r.Get("/audit", adminH.Audit)
			})
		})
	})

	return r
}
