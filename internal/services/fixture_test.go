package services

import (
	"context"
	"testing"
	"time"

	"github.com/baharkarakas/cat-tracker/internal/config"
	"github.com/baharkarakas/cat-tracker/internal/models"
	repo "github.com/baharkarakas/cat-tracker/internal/repository"
	"github.com/baharkarakas/cat-tracker/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	repos   repo.Repositories
	account *AccountService
	wallet  *WalletService
	team    *TeamService
	admin   *AdminService
	clock   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := memory.NewRepositories(memory.NewStore())
	audit := NewAuditor(repos.AuditLogs, nil)
	cfg := config.Config{AdminPhone: "0000000000", AdminPassword: "admin"}

	f := &fixture{
		repos: repos,
		clock: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	f.account = NewAccountService(repos.Users, audit, cfg)
	f.wallet = NewWalletService(repos, DefaultCatalog(), audit, time.UTC).WithClock(func() time.Time { return f.clock })
	f.team = NewTeamService(repos.Users, repos.Transactions)
	f.admin = NewAdminService(repos, f.team, audit)
	return f
}

func (f *fixture) register(t *testing.T, name, phone, referredBy string) models.User {
	t.Helper()
	u, err := f.account.Register(context.Background(), name, phone, "secret", referredBy)
	require.NoError(t, err)
	return u
}

func (f *fixture) fund(t *testing.T, userID string, amount int64) {
	t.Helper()
	require.NoError(t, f.repos.Balances.Set(context.Background(), userID, decimal.NewFromInt(amount)))
}

func (f *fixture) withBank(t *testing.T, userID string) {
	t.Helper()
	_, err := f.account.UpdateBankDetails(context.Background(), userID, models.BankDetails{
		HolderName: "A Holder", AccountNumber: "1234567890", IFSC: "SBIN0000001",
	})
	require.NoError(t, err)
}

func (f *fixture) balance(t *testing.T, userID string) decimal.Decimal {
	t.Helper()
	b, err := f.repos.Balances.Get(context.Background(), userID)
	require.NoError(t, err)
	return b
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }
