package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/baharkarakas/cat-tracker/internal/metrics"
	"github.com/baharkarakas/cat-tracker/internal/models"
	repo "github.com/baharkarakas/cat-tracker/internal/repository"
	"github.com/shopspring/decimal"
)

const scanPage = 500

type AdminService struct {
	users repo.Users
	bal   repo.Balances
	trx   repo.Transactions
	team  *TeamService
	audit *Auditor
}

func NewAdminService(r repo.Repositories, team *TeamService, audit *Auditor) *AdminService {
	return &AdminService{users: r.Users, bal: r.Balances, trx: r.Transactions, team: team, audit: audit}
}

// Approve settles a pending transaction. Deposits credit the owner; other
// types only change status. Non-pending transactions are returned unchanged.
func (s *AdminService) Approve(ctx context.Context, txID string) (models.Transaction, error) {
	return s.settle(ctx, txID, models.TxnSuccess, models.TxnDeposit)
}

// Reject fails a pending transaction. Withdrawals refund the amount debited
// when they were requested.
func (s *AdminService) Reject(ctx context.Context, txID string) (models.Transaction, error) {
	return s.settle(ctx, txID, models.TxnFailed, models.TxnWithdraw)
}

// settle moves txID from Pending to `to` and credits the owner when the
// transaction type equals creditType. A failed credit puts the transaction
// back to Pending.
func (s *AdminService) settle(ctx context.Context, txID string, to models.TransactionStatus, creditType models.TransactionType) (models.Transaction, error) {
	if !models.CanTransition(models.TxnPending, to) {
		return models.Transaction{}, fmt.Errorf("unsupported transition to %s", to)
	}
	tx, applied, err := s.trx.Transition(ctx, txID, models.TxnPending, to)
	if err != nil {
		return models.Transaction{}, err
	}
	if !applied {
		return tx, nil
	}

	if tx.Type == creditType {
		if _, err := s.bal.Adjust(ctx, tx.UserID, tx.Amount); err != nil {
			if _, _, revErr := s.trx.Transition(ctx, txID, to, models.TxnPending); revErr != nil {
				metrics.Compensations.WithLabelValues("settle", "failed").Inc()
				slog.Error("compensation failed: transaction left settled without credit",
					"tx_id", txID, "status", to, "err", revErr)
			} else {
				metrics.Compensations.WithLabelValues("settle", "applied").Inc()
			}
			return models.Transaction{}, fmt.Errorf("credit owner: %w", err)
		}
	}

	metrics.TransactionsTotal.WithLabelValues(string(tx.Type), string(tx.Status)).Inc()
	s.audit.Record("transaction", tx.ID, "status_change", map[string]any{
		"to": string(to), "type": string(tx.Type), "amount": tx.Amount.String(), "user_id": tx.UserID,
	})
	return tx, nil
}

// SetBalance overwrites a balance. No ledger entry is written.
func (s *AdminService) SetBalance(ctx context.Context, userID string, value decimal.Decimal) (models.User, error) {
	before, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if err := s.bal.Set(ctx, userID, value); err != nil {
		return models.User{}, err
	}
	s.audit.Record("user", userID, "balance_override", map[string]any{
		"from": before.Balance.String(), "to": value.String(),
	})
	return s.users.GetByID(ctx, userID)
}

func (s *AdminService) Pending(ctx context.Context, limit, offset int) ([]models.Transaction, error) {
	return s.trx.ListByStatus(ctx, models.TxnPending, limit, offset)
}

type UserOverview struct {
	models.User
	Team TeamStats `json:"team"`
}

func (s *AdminService) Users(ctx context.Context, limit, offset int) ([]UserOverview, error) {
	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]UserOverview, 0, len(users))
	for _, u := range users {
		if u.IsAdmin {
			continue
		}
		stats, err := s.team.statsFor(ctx, u)
		if err != nil {
			return nil, err
		}
		out = append(out, UserOverview{User: u, Team: stats})
	}
	return out, nil
}

type Dashboard struct {
	TotalUsers   int             `json:"total_users"`
	TotalBalance decimal.Decimal `json:"total_balance"`
	PendingCount int             `json:"pending_count"`
}

func (s *AdminService) Dashboard(ctx context.Context) (Dashboard, error) {
	var users []models.User
	for offset := 0; ; offset += scanPage {
		page, err := s.users.List(ctx, scanPage, offset)
		if err != nil {
			return Dashboard{}, err
		}
		for _, u := range page {
			if !u.IsAdmin {
				users = append(users, u)
			}
		}
		if len(page) < scanPage {
			break
		}
	}

	pending := 0
	for offset := 0; ; offset += scanPage {
		page, err := s.trx.ListByStatus(ctx, models.TxnPending, scanPage, offset)
		if err != nil {
			return Dashboard{}, err
		}
		pending += len(page)
		if len(page) < scanPage {
			break
		}
	}

	return Dashboard{TotalUsers: len(users), TotalBalance: TotalBalance(users), PendingCount: pending}, nil
}

func (s *AdminService) AuditTrail(ctx context.Context, limit int) ([]models.AuditLog, error) {
	return s.audit.Recent(ctx, limit)
}
