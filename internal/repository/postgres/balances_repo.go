package postgres

import (
	"context"
	"errors"

	repo "github.com/baharkarakas/cat-tracker/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type balancesRepo struct{ pool *pgxpool.Pool }

func (r *balancesRepo) Get(ctx context.Context, userID string) (decimal.Decimal, error) {
	var b decimal.Decimal
	err := r.pool.QueryRow(ctx, `SELECT balance FROM users WHERE id=$1`, userID).Scan(&b)
	return b, mapErr(err)
}

func (r *balancesRepo) Adjust(ctx context.Context, userID string, delta decimal.Decimal) (decimal.Decimal, error) {
	var b decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`UPDATE users
		    SET balance = balance + $2,
		        updated_at = now()
		  WHERE id = $1 AND ($2 >= 0 OR balance + $2 >= 0)
		  RETURNING balance`,
		userID, delta,
	).Scan(&b)
	if errors.Is(err, pgx.ErrNoRows) {
		// either the user is missing or the guard refused the write
		if _, getErr := r.Get(ctx, userID); getErr != nil {
			return decimal.Decimal{}, getErr
		}
		return decimal.Decimal{}, repo.ErrInsufficientFunds
	}
	return b, err
}

func (r *balancesRepo) Set(ctx context.Context, userID string, value decimal.Decimal) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET balance=$2, updated_at=now() WHERE id=$1`, userID, value)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
