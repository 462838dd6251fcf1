package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PlanAvailability string

const (
	PlanActive     PlanAvailability = "Active"
	PlanComingSoon PlanAvailability = "Coming Soon"
)

// InvestmentPlan is a catalog entry. Not owned by any user.
type InvestmentPlan struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Amount       decimal.Decimal  `json:"amount"`
	DailyReturn  decimal.Decimal  `json:"daily_return"`
	DurationDays int              `json:"duration_days"`
	TotalReturn  decimal.Decimal  `json:"total_return"`
	Description  string           `json:"description"`
	ImageURL     string           `json:"image_url,omitempty"`
	Status       PlanAvailability `json:"status"`
}

type UserPlanStatus string

const (
	UserPlanActive    UserPlanStatus = "Active"
	UserPlanCompleted UserPlanStatus = "Completed"
)

// UserPlan is an active investment held by a user.
type UserPlan struct {
	ID             string          `json:"id"`
	PlanID         string          `json:"plan_id"`
	UserID         string          `json:"user_id"`
	Name           string          `json:"name"`
	InvestedAmount decimal.Decimal `json:"invested_amount"`
	DailyReturn    decimal.Decimal `json:"daily_return"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	Status         UserPlanStatus  `json:"status"`
}
