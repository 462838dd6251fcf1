package postgres

import (
	"context"
	"errors"

	"github.com/baharkarakas/cat-tracker/internal/models"
	repo "github.com/baharkarakas/cat-tracker/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type transactionsRepo struct{ pool *pgxpool.Pool }

const txnColumns = `id, user_id, user_name, type, amount, status, utr, description, created_at`

func scanTxn(row pgx.Row) (models.Transaction, error) {
	var (
		tx  models.Transaction
		utr *string
	)
	err := row.Scan(&tx.ID, &tx.UserID, &tx.UserName, &tx.Type, &tx.Amount, &tx.Status, &utr, &tx.Description, &tx.CreatedAt)
	if err != nil {
		return models.Transaction{}, mapErr(err)
	}
	tx.UTR = deref(utr)
	return tx, nil
}

func collectTxns(rows pgx.Rows) ([]models.Transaction, error) {
	defer rows.Close()
	var out []models.Transaction
	for rows.Next() {
		tx, err := scanTxn(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

func (r *transactionsRepo) Create(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	var utr *string
	if tx.UTR != "" {
		utr = &tx.UTR
	}
	return scanTxn(r.pool.QueryRow(ctx,
		`INSERT INTO transactions (id, user_id, user_name, type, amount, status, utr, description)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING `+txnColumns,
		tx.ID, tx.UserID, tx.UserName, tx.Type, tx.Amount, tx.Status, utr, tx.Description,
	))
}

func (r *transactionsRepo) GetByID(ctx context.Context, id string) (models.Transaction, error) {
	return scanTxn(r.pool.QueryRow(ctx, `SELECT `+txnColumns+` FROM transactions WHERE id=$1`, id))
}

func (r *transactionsRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+txnColumns+`
		   FROM transactions
		  WHERE user_id=$1
		  ORDER BY created_at DESC
		  LIMIT $2 OFFSET $3`,
		userID, limitArg(limit), offset,
	)
	if err != nil {
		return nil, err
	}
	return collectTxns(rows)
}

func (r *transactionsRepo) ListByStatus(ctx context.Context, status models.TransactionStatus, limit, offset int) ([]models.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+txnColumns+`
		   FROM transactions
		  WHERE status=$1
		  ORDER BY created_at DESC
		  LIMIT $2 OFFSET $3`,
		status, limitArg(limit), offset,
	)
	if err != nil {
		return nil, err
	}
	return collectTxns(rows)
}

func (r *transactionsRepo) ListByUsers(ctx context.Context, userIDs []string, status models.TransactionStatus) ([]models.Transaction, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+txnColumns+`
		   FROM transactions
		  WHERE user_id = ANY($1) AND status=$2
		  ORDER BY created_at DESC`,
		userIDs, status,
	)
	if err != nil {
		return nil, err
	}
	return collectTxns(rows)
}

func (r *transactionsRepo) Transition(ctx context.Context, id string, from, to models.TransactionStatus) (models.Transaction, bool, error) {
	tx, err := scanTxn(r.pool.QueryRow(ctx,
		`UPDATE transactions SET status=$3 WHERE id=$1 AND status=$2 RETURNING `+txnColumns,
		id, from, to,
	))
	if err == nil {
		return tx, true, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return models.Transaction{}, false, err
	}
	// not applied: report the current record, or ErrNotFound
	cur, getErr := r.GetByID(ctx, id)
	if getErr != nil {
		return models.Transaction{}, false, getErr
	}
	return cur, false, nil
}
