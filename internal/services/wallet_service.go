package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/baharkarakas/cat-tracker/internal/api/validate"
	"github.com/baharkarakas/cat-tracker/internal/auth"
	"github.com/baharkarakas/cat-tracker/internal/metrics"
	"github.com/baharkarakas/cat-tracker/internal/models"
	repo "github.com/baharkarakas/cat-tracker/internal/repository"
	"github.com/shopspring/decimal"
)

var (
	MinWithdrawal     = decimal.NewFromInt(150)
	WithdrawalTaxRate = decimal.RequireFromString("0.10")
)

// moneyPlaces matches the NUMERIC(20,2) storage scale.
const moneyPlaces = 2

const (
	withdrawOpenHour  = 6
	withdrawCloseHour = 18
)

// WalletService moves money between a user's balance and the ledger.
// Multi-write operations reserve funds first and undo the reservation when a
// later write fails.
type WalletService struct {
	users repo.Users
	bal   repo.Balances
	trx   repo.Transactions
	plans repo.UserPlans
	cat   *Catalog
	audit *Auditor
	loc   *time.Location
	now   func() time.Time
}

func NewWalletService(r repo.Repositories, catalog *Catalog, audit *Auditor, loc *time.Location) *WalletService {
	if loc == nil {
		loc = time.Local
	}
	return &WalletService{
		users: r.Users,
		bal:   r.Balances,
		trx:   r.Transactions,
		plans: r.UserPlans,
		cat:   catalog,
		audit: audit,
		loc:   loc,
		now:   time.Now,
	}
}

// WithClock replaces the time source used for the withdrawal window and plan dates.
func (s *WalletService) WithClock(now func() time.Time) *WalletService {
	s.now = now
	return s
}

// ----------------- DEPOSIT -----------------

// Deposit records a pending deposit claim. The balance is credited only when
// an administrator approves it.
func (s *WalletService) Deposit(ctx context.Context, userID string, amount decimal.Decimal, utr string) (models.Transaction, error) {
	if err := invalid(validate.Collect(validate.MaxScale("amount", amount, moneyPlaces))); err != nil {
		return models.Transaction{}, err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("load user: %w", err)
	}
	tx, err := s.trx.Create(ctx, models.Transaction{
		UserID:      u.ID,
		UserName:    u.Name,
		Type:        models.TxnDeposit,
		Amount:      amount,
		Status:      models.TxnPending,
		UTR:         utr,
		Description: "Deposit via UTR: " + utr,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return models.Transaction{}, fmt.Errorf("record deposit: %w", err)
	}
	metrics.TransactionsTotal.WithLabelValues(string(tx.Type), string(tx.Status)).Inc()
	s.audit.Record("transaction", tx.ID, "created", map[string]any{"type": tx.Type, "amount": tx.Amount.String()})
	return tx, nil
}

// ----------------- WITHDRAW -----------------

var refusalReasons = map[error]string{
	ErrOutsideWithdrawalWindow: "window",
	ErrBelowMinimum:            "minimum",
	ErrNoBankDetails:           "no_bank_details",
	ErrWrongPassword:           "wrong_password",
	ErrInsufficientBalance:     "insufficient_balance",
}

func (s *WalletService) refuse(op string, err error) error {
	metrics.TransactionsRefused.WithLabelValues(op, refusalReasons[err]).Inc()
	return err
}

// InWithdrawalWindow reports whether t falls in [06:00, 18:00) local time.
func (s *WalletService) InWithdrawalWindow(t time.Time) bool {
	h := t.In(s.loc).Hour()
	return h >= withdrawOpenHour && h < withdrawCloseHour
}

// Withdraw debits the full gross amount immediately and records a pending
// withdrawal. An empty password skips the withdrawal password check.
func (s *WalletService) Withdraw(ctx context.Context, userID string, amount decimal.Decimal, password string) (models.Transaction, error) {
	if err := invalid(validate.Collect(validate.MaxScale("amount", amount, moneyPlaces))); err != nil {
		return models.Transaction{}, err
	}
	if !s.InWithdrawalWindow(s.now()) {
		return models.Transaction{}, s.refuse("withdraw", ErrOutsideWithdrawalWindow)
	}
	if amount.LessThan(MinWithdrawal) {
		return models.Transaction{}, s.refuse("withdraw", ErrBelowMinimum)
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("load user: %w", err)
	}
	if !u.HasBankDetails() {
		return models.Transaction{}, s.refuse("withdraw", ErrNoBankDetails)
	}
	if password != "" && auth.VerifyPassword(password, u.WithdrawalPasswordHash) != nil {
		return models.Transaction{}, s.refuse("withdraw", ErrWrongPassword)
	}
	if u.Balance.LessThan(amount) {
		return models.Transaction{}, s.refuse("withdraw", ErrInsufficientBalance)
	}

	tax := amount.Mul(WithdrawalTaxRate)
	net := amount.Sub(tax)

	// phase 1: reserve
	if err := s.reserve(ctx, "withdraw", userID, amount); err != nil {
		return models.Transaction{}, err
	}

	// phase 2: record
	tx, err := s.trx.Create(ctx, models.Transaction{
		UserID:      u.ID,
		UserName:    u.Name,
		Type:        models.TxnWithdraw,
		Amount:      amount,
		Status:      models.TxnPending,
		Description: fmt.Sprintf("Withdraw: ₹%s (Tax: ₹%s, Net: ₹%s)", amount, tax, net),
		CreatedAt:   s.now(),
	})
	if err != nil {
		s.release(ctx, "withdraw", userID, amount)
		return models.Transaction{}, fmt.Errorf("record withdrawal: %w", err)
	}
	metrics.TransactionsTotal.WithLabelValues(string(tx.Type), string(tx.Status)).Inc()
	s.audit.Record("transaction", tx.ID, "created", map[string]any{
		"type": tx.Type, "amount": amount.String(), "tax": tax.String(), "net": net.String(),
	})
	return tx, nil
}

// reserve debits amount, mapping a refused debit to ErrInsufficientBalance.
func (s *WalletService) reserve(ctx context.Context, op, userID string, amount decimal.Decimal) error {
	_, err := s.bal.Adjust(ctx, userID, amount.Neg())
	if errors.Is(err, repo.ErrInsufficientFunds) {
		return s.refuse(op, ErrInsufficientBalance)
	}
	if err != nil {
		return fmt.Errorf("reserve funds: %w", err)
	}
	return nil
}

// release is the compensating action for reserve.
func (s *WalletService) release(ctx context.Context, op, userID string, amount decimal.Decimal) {
	if _, err := s.bal.Adjust(ctx, userID, amount); err != nil {
		metrics.Compensations.WithLabelValues(op, "failed").Inc()
		slog.Error("compensation failed: reserved funds not returned",
			"op", op, "user_id", userID, "amount", amount.String(), "err", err)
		return
	}
	metrics.Compensations.WithLabelValues(op, "applied").Inc()
	slog.Warn("compensation applied", "op", op, "user_id", userID, "amount", amount.String())
	s.audit.Record("user", userID, "reservation_released", map[string]any{"op": op, "amount": amount.String()})
}

// ----------------- INVEST -----------------

// Invest buys a plan: funds are reserved, the holding is created, then a
// Success investment is recorded.
func (s *WalletService) Invest(ctx context.Context, userID string, plan models.InvestmentPlan) (models.Transaction, models.UserPlan, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.Transaction{}, models.UserPlan{}, fmt.Errorf("load user: %w", err)
	}
	if u.Balance.LessThan(plan.Amount) {
		return models.Transaction{}, models.UserPlan{}, s.refuse("invest", ErrInsufficientBalance)
	}

	if err := s.reserve(ctx, "invest", userID, plan.Amount); err != nil {
		return models.Transaction{}, models.UserPlan{}, err
	}

	start := s.now()
	holding, err := s.plans.Create(ctx, models.UserPlan{
		PlanID:         plan.ID,
		UserID:         u.ID,
		Name:           plan.Name,
		InvestedAmount: plan.Amount,
		DailyReturn:    plan.DailyReturn,
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, plan.DurationDays),
		Status:         models.UserPlanActive,
	})
	if err != nil {
		s.release(ctx, "invest", userID, plan.Amount)
		return models.Transaction{}, models.UserPlan{}, fmt.Errorf("create holding: %w", err)
	}

	tx, err := s.trx.Create(ctx, models.Transaction{
		UserID:      u.ID,
		UserName:    u.Name,
		Type:        models.TxnInvestment,
		Amount:      plan.Amount,
		Status:      models.TxnSuccess,
		Description: "Invested in " + plan.Name,
		CreatedAt:   start,
	})
	if err != nil {
		if delErr := s.plans.Delete(ctx, holding.ID); delErr != nil {
			slog.Error("compensation failed: holding not removed", "user_plan_id", holding.ID, "err", delErr)
		}
		s.release(ctx, "invest", userID, plan.Amount)
		return models.Transaction{}, models.UserPlan{}, fmt.Errorf("record investment: %w", err)
	}
	metrics.TransactionsTotal.WithLabelValues(string(tx.Type), string(tx.Status)).Inc()
	s.audit.Record("transaction", tx.ID, "created", map[string]any{"type": tx.Type, "plan_id": plan.ID, "user_plan_id": holding.ID})
	return tx, holding, nil
}

// ----------------- Queries -----------------

func (s *WalletService) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	return s.trx.GetByID(ctx, id)
}

func (s *WalletService) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Transaction, error) {
	return s.trx.ListByUser(ctx, userID, limit, offset)
}

func (s *WalletService) PlansByUser(ctx context.Context, userID string) ([]models.UserPlan, error) {
	return s.plans.ListByUser(ctx, userID)
}

func (s *WalletService) Plans() []models.InvestmentPlan { return s.cat.All() }

func (s *WalletService) Plan(id string) (models.InvestmentPlan, error) { return s.cat.Get(id) }
