package services

import (
	"github.com/baharkarakas/cat-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// Pure derivations over collections. Nothing here is stored.

func TransactionsOf(all []models.Transaction, userID string) []models.Transaction {
	var out []models.Transaction
	for _, tx := range all {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out
}

func WithStatus(all []models.Transaction, status models.TransactionStatus) []models.Transaction {
	var out []models.Transaction
	for _, tx := range all {
		if tx.Status == status {
			out = append(out, tx)
		}
	}
	return out
}

func SumByType(all []models.Transaction, typ models.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range all {
		if tx.Type == typ {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

func TotalBalance(users []models.User) decimal.Decimal {
	total := decimal.Zero
	for _, u := range users {
		total = total.Add(u.Balance)
	}
	return total
}
