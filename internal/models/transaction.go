package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxnDeposit    TransactionType = "Deposit"
	TxnWithdraw   TransactionType = "Withdraw"
	TxnInvestment TransactionType = "Investment"
	TxnReferral   TransactionType = "Referral"
)

type TransactionStatus string

const (
	TxnPending    TransactionStatus = "Pending"
	TxnProcessing TransactionStatus = "Processing"
	TxnSuccess    TransactionStatus = "Success"
	TxnFailed     TransactionStatus = "Failed"
	TxnCompleted  TransactionStatus = "Completed"
)

type Transaction struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	UserName    string            `json:"user_name,omitempty"`
	Type        TransactionType   `json:"type"`
	Amount      decimal.Decimal   `json:"amount"`
	Status      TransactionStatus `json:"status"`
	UTR         string            `json:"utr,omitempty"`
	Description string            `json:"description,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// CanTransition reports whether a status change is allowed.
// Only Pending transactions move, and only to Success or Failed.
func CanTransition(from, to TransactionStatus) bool {
	return from == TxnPending && (to == TxnSuccess || to == TxnFailed)
}
