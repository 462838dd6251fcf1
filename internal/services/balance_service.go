package services

import (
	"context"

	"github.com/baharkarakas/cat-tracker/internal/models"
	repo "github.com/baharkarakas/cat-tracker/internal/repository"
	"github.com/shopspring/decimal"
)

type BalanceService struct{ r repo.Balances }

func NewBalanceService(r repo.Balances) *BalanceService { return &BalanceService{r: r} }

func (s *BalanceService) Current(ctx context.Context, userID string) (decimal.Decimal, error) {
	if userID == models.AdminID {
		return decimal.Zero, nil
	}
	return s.r.Get(ctx, userID)
}
