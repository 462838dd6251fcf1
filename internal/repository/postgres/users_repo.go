package postgres

import (
	"context"

	"github.com/baharkarakas/cat-tracker/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type usersRepo struct{ pool *pgxpool.Pool }

const userColumns = `id, name, phone, password_hash, withdrawal_password_hash, balance,
	referral_code, referred_by, referral_earnings, kyc_verified,
	bank_holder_name, bank_account_number, bank_ifsc, is_admin, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var (
		u                     models.User
		referredBy            *string
		holder, account, ifsc *string
	)
	err := row.Scan(&u.ID, &u.Name, &u.Phone, &u.PasswordHash, &u.WithdrawalPasswordHash, &u.Balance,
		&u.ReferralCode, &referredBy, &u.ReferralEarnings, &u.KYCVerified,
		&holder, &account, &ifsc, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return models.User{}, mapErr(err)
	}
	if referredBy != nil {
		u.ReferredBy = *referredBy
	}
	if holder != nil || account != nil || ifsc != nil {
		u.BankDetails = &models.BankDetails{HolderName: deref(holder), AccountNumber: deref(account), IFSC: deref(ifsc)}
	}
	return u, nil
}

func collectUsers(rows pgx.Rows) ([]models.User, error) {
	defer rows.Close()
	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	var referredBy *string
	if u.ReferredBy != "" {
		referredBy = &u.ReferredBy
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users(id, name, phone, password_hash, withdrawal_password_hash, balance,
		                   referral_code, referred_by, referral_earnings, kyc_verified, is_admin)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		u.ID, u.Name, u.Phone, u.PasswordHash, u.WithdrawalPasswordHash, u.Balance,
		u.ReferralCode, referredBy, u.ReferralEarnings, u.KYCVerified, u.IsAdmin,
	)
	if err != nil {
		return models.User{}, mapErr(err)
	}
	return r.GetByID(ctx, u.ID)
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *usersRepo) GetByPhone(ctx context.Context, phone string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE phone=$1`, phone))
}

func (r *usersRepo) GetByReferralCode(ctx context.Context, code string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE referral_code=$1`, code))
}

func (r *usersRepo) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limitArg(limit), offset)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *usersRepo) ListReferredBy(ctx context.Context, code string) ([]models.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE referred_by=$1 ORDER BY created_at`, code)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (r *usersRepo) UpdateBankDetails(ctx context.Context, id string, d models.BankDetails) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`UPDATE users
		    SET bank_holder_name=$2, bank_account_number=$3, bank_ifsc=$4, updated_at=now()
		  WHERE id=$1
		  RETURNING `+userColumns,
		id, d.HolderName, d.AccountNumber, d.IFSC,
	))
}

func (r *usersRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	return r.exec1(ctx, `UPDATE users SET password_hash=$2, updated_at=now() WHERE id=$1`, id, hash)
}

func (r *usersRepo) UpdateWithdrawalPassword(ctx context.Context, id, hash string) error {
	return r.exec1(ctx, `UPDATE users SET withdrawal_password_hash=$2, updated_at=now() WHERE id=$1`, id, hash)
}

// exec1 runs a single-row update and reports ErrNotFound when nothing matched.
func (r *usersRepo) exec1(ctx context.Context, q string, args ...any) error {
	tag, err := r.pool.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return mapErr(pgx.ErrNoRows)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
