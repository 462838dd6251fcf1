package repository

import (
	"context"
	"errors"

	"github.com/baharkarakas/cat-tracker/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrPhoneTaken        = errors.New("phone already registered")
	ErrReferralCodeTaken = errors.New("referral code already taken")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByPhone(ctx context.Context, phone string) (models.User, error)
	GetByReferralCode(ctx context.Context, code string) (models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	ListReferredBy(ctx context.Context, code string) ([]models.User, error)
	UpdateBankDetails(ctx context.Context, id string, d models.BankDetails) (models.User, error)
	UpdatePassword(ctx context.Context, id, hash string) error
	UpdateWithdrawalPassword(ctx context.Context, id, hash string) error
}

// Balances operates on the balance column of a user record.
type Balances interface {
	Get(ctx context.Context, userID string) (decimal.Decimal, error)
	// Adjust adds delta and returns the new balance. A debit that would take the
	// balance below zero is refused with ErrInsufficientFunds; check and write
	// are atomic. Credits always apply.
	Adjust(ctx context.Context, userID string, delta decimal.Decimal) (decimal.Decimal, error)
	// Set overwrites the balance with no checks.
	Set(ctx context.Context, userID string, value decimal.Decimal) error
}

type Transactions interface {
	Create(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	GetByID(ctx context.Context, id string) (models.Transaction, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Transaction, error)
	ListByStatus(ctx context.Context, status models.TransactionStatus, limit, offset int) ([]models.Transaction, error)
	ListByUsers(ctx context.Context, userIDs []string, status models.TransactionStatus) ([]models.Transaction, error)
	// Transition moves a transaction from one status to another only if it is
	// currently in `from`. The returned bool reports whether the write happened;
	// the returned transaction is the current record either way.
	Transition(ctx context.Context, id string, from, to models.TransactionStatus) (models.Transaction, bool, error)
}

type UserPlans interface {
	Create(ctx context.Context, p models.UserPlan) (models.UserPlan, error)
	ListByUser(ctx context.Context, userID string) ([]models.UserPlan, error)
	Delete(ctx context.Context, id string) error
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error)
}

type Repositories struct {
	Users        Users
	Balances     Balances
	Transactions Transactions
	UserPlans    UserPlans
	AuditLogs    AuditLogs
}
