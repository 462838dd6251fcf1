package services

import (
	"github.com/baharkarakas/cat-tracker/internal/models"
	"github.com/shopspring/decimal"
)

type Catalog struct {
	plans []models.InvestmentPlan
}

func NewCatalog(plans []models.InvestmentPlan) *Catalog {
	return &Catalog{plans: plans}
}

func DefaultCatalog() *Catalog {
	plan := func(id, name string, amount, daily int64, desc, img string, status models.PlanAvailability) models.InvestmentPlan {
		const days = 365
		return models.InvestmentPlan{
			ID:           id,
			Name:         name,
			Amount:       decimal.NewFromInt(amount),
			DailyReturn:  decimal.NewFromInt(daily),
			DurationDays: days,
			TotalReturn:  decimal.NewFromInt(daily * days),
			Description:  desc,
			ImageURL:     img,
			Status:       status,
		}
	}
	return NewCatalog([]models.InvestmentPlan{
		plan("plan_1", "Plan A (Starter)", 750, 100, "Entry level computational power share.",
			"https://images.unsplash.com/photo-1639322537228-f710d846310a?w=800&auto=format&fit=crop&q=60", models.PlanActive),
		plan("plan_2", "Plan B (Growth)", 2000, 300, "Short term high-yield algorithmic trading.",
			"https://images.unsplash.com/photo-1642104704074-907c0698cbd9?w=800&auto=format&fit=crop&q=60", models.PlanComingSoon),
		plan("plan_3", "Plan C (Pro)", 5000, 800, "Leveraged crypto-asset staking pool.",
			"https://images.unsplash.com/photo-1639762681485-074b7f938ba0?w=800&auto=format&fit=crop&q=60", models.PlanComingSoon),
		plan("plan_4", "Plan D (Elite)", 10000, 1800, "Institutional grade infrastructure access.",
			"https://images.unsplash.com/photo-1620321023374-d1a68fdd720e?w=800&auto=format&fit=crop&q=60", models.PlanComingSoon),
	})
}

func (c *Catalog) All() []models.InvestmentPlan {
	out := make([]models.InvestmentPlan, len(c.plans))
	copy(out, c.plans)
	return out
}

func (c *Catalog) Get(id string) (models.InvestmentPlan, error) {
	for _, p := range c.plans {
		if p.ID == id {
			return p, nil
		}
	}
	return models.InvestmentPlan{}, ErrPlanNotFound
}
