package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdminID is the id of the reserved administrator identity. It never exists in the store.
const AdminID = "admin_000"

type BankDetails struct {
	HolderName    string `json:"holder_name"`
	AccountNumber string `json:"account_number"`
	IFSC          string `json:"ifsc"`
}

type User struct {
	ID                     string          `json:"id"`
	Name                   string          `json:"name"`
	Phone                  string          `json:"phone"`
	PasswordHash           string          `json:"-"`
	WithdrawalPasswordHash string          `json:"-"`
	Balance                decimal.Decimal `json:"balance"`
	ReferralCode           string          `json:"referral_code"`
	ReferredBy             string          `json:"referred_by,omitempty"`
	ReferralEarnings       decimal.Decimal `json:"referral_earnings"`
	KYCVerified            bool            `json:"kyc_verified"`
	BankDetails            *BankDetails    `json:"bank_details,omitempty"`
	IsAdmin                bool            `json:"is_admin"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

func (u User) Role() string {
	if u.IsAdmin {
		return "admin"
	}
	return "user"
}

func (u User) HasBankDetails() bool { return u.BankDetails != nil }
