package postgres

import (
	"context"

	"github.com/baharkarakas/cat-tracker/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userPlansRepo struct{ pool *pgxpool.Pool }

func (r *userPlansRepo) Create(ctx context.Context, p models.UserPlan) (models.UserPlan, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_plans (id, plan_id, user_id, name, invested_amount, daily_return, start_date, end_date, status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.PlanID, p.UserID, p.Name, p.InvestedAmount, p.DailyReturn, p.StartDate, p.EndDate, p.Status,
	)
	if err != nil {
		return models.UserPlan{}, mapErr(err)
	}
	return p, nil
}

func (r *userPlansRepo) ListByUser(ctx context.Context, userID string) ([]models.UserPlan, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, plan_id, user_id, name, invested_amount, daily_return, start_date, end_date, status
		   FROM user_plans
		  WHERE user_id=$1
		  ORDER BY start_date DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.UserPlan
	for rows.Next() {
		var p models.UserPlan
		if err := rows.Scan(&p.ID, &p.PlanID, &p.UserID, &p.Name, &p.InvestedAmount, &p.DailyReturn, &p.StartDate, &p.EndDate, &p.Status); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *userPlansRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM user_plans WHERE id=$1`, id)
	return err
}
