package services

import (
	"context"
	"errors"

	"github.com/baharkarakas/cat-tracker/internal/models"
	repo "github.com/baharkarakas/cat-tracker/internal/repository"
	"github.com/shopspring/decimal"
)

type TeamStats struct {
	TotalRecharge decimal.Decimal `json:"total_recharge"`
	TotalWithdraw decimal.Decimal `json:"total_withdraw"`
	TeamSize      int             `json:"team_size"`
}

type TeamService struct {
	users repo.Users
	trx   repo.Transactions
}

func NewTeamService(users repo.Users, trx repo.Transactions) *TeamService {
	return &TeamService{users: users, trx: trx}
}

// CalculateTeamStats covers direct referrals only. Unknown users get zero stats.
func (s *TeamService) CalculateTeamStats(ctx context.Context, userID string) (TeamStats, error) {
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return zeroStats(), nil
	}
	if err != nil {
		return TeamStats{}, err
	}
	return s.statsFor(ctx, u)
}

func (s *TeamService) statsFor(ctx context.Context, u models.User) (TeamStats, error) {
	team, err := s.users.ListReferredBy(ctx, u.ReferralCode)
	if err != nil {
		return TeamStats{}, err
	}
	if len(team) == 0 {
		return zeroStats(), nil
	}
	ids := make([]string, len(team))
	for i, m := range team {
		ids[i] = m.ID
	}
	txs, err := s.trx.ListByUsers(ctx, ids, models.TxnSuccess)
	if err != nil {
		return TeamStats{}, err
	}
	return teamStats(team, txs), nil
}

func teamStats(team []models.User, txs []models.Transaction) TeamStats {
	stats := zeroStats()
	stats.TeamSize = len(team)
	for _, m := range team {
		settled := WithStatus(TransactionsOf(txs, m.ID), models.TxnSuccess)
		stats.TotalRecharge = stats.TotalRecharge.Add(SumByType(settled, models.TxnDeposit))
		stats.TotalWithdraw = stats.TotalWithdraw.Add(SumByType(settled, models.TxnWithdraw))
	}
	return stats
}

func zeroStats() TeamStats {
	return TeamStats{TotalRecharge: decimal.Zero, TotalWithdraw: decimal.Zero}
}
