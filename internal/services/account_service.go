package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/baharkarakas/cat-tracker/internal/api/validate"
	"github.com/baharkarakas/cat-tracker/internal/auth"
	"github.com/baharkarakas/cat-tracker/internal/config"
	"github.com/baharkarakas/cat-tracker/internal/models"
	repo "github.com/baharkarakas/cat-tracker/internal/repository"
	"github.com/shopspring/decimal"
)

const (
	referralCodeAttempts = 10
	minPasswordLen       = 4
	// bcrypt ignores or refuses anything past 72 bytes.
	maxPasswordBytes = 72
)

// AccountService owns identity and session resolution: login, registration,
// profile secrets and bank details.
type AccountService struct {
	users repo.Users
	audit *Auditor
	c     config.Config
}

func NewAccountService(users repo.Users, audit *Auditor, c config.Config) *AccountService {
	return &AccountService{users: users, audit: audit, c: c}
}

// Admin is the reserved administrator identity. It is never persisted.
func (s *AccountService) Admin() models.User {
	return models.User{
		ID:           models.AdminID,
		Name:         "Super Admin",
		Phone:        s.c.AdminPhone,
		ReferralCode: "ADMIN",
		KYCVerified:  true,
		IsAdmin:      true,
	}
}

func (s *AccountService) isAdmin(phone, password string) bool {
	phoneOK := subtle.ConstantTimeCompare([]byte(phone), []byte(s.c.AdminPhone)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.c.AdminPassword)) == 1
	return phoneOK && passOK
}

func (s *AccountService) Login(ctx context.Context, phone, password string) (models.User, error) {
	if s.isAdmin(phone, password) {
		return s.Admin(), nil
	}
	u, err := s.users.GetByPhone(ctx, phone)
	if errors.Is(err, repo.ErrNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("lookup user: %w", err)
	}
	if auth.VerifyPassword(password, u.PasswordHash) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Register creates a user. referralCode is stored as given without checking
// that a referrer owns it.
func (s *AccountService) Register(ctx context.Context, name, phone, password, referralCode string) (models.User, error) {
	if err := invalid(validate.Collect(
		validate.Required("name", name),
		validate.MinLen("phone", phone, 10),
		validate.MinLen("password", password, minPasswordLen),
		validate.MaxBytes("password", password, maxPasswordBytes),
	)); err != nil {
		return models.User{}, err
	}

	if phone == s.c.AdminPhone {
		return models.User{}, ErrDuplicatePhone
	}
	_, err := s.users.GetByPhone(ctx, phone)
	if err == nil {
		return models.User{}, ErrDuplicatePhone
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return models.User{}, fmt.Errorf("lookup phone: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	u := models.User{
		Name:                   name,
		Phone:                  phone,
		PasswordHash:           hash,
		WithdrawalPasswordHash: hash,
		Balance:                decimal.Zero,
		ReferralEarnings:       decimal.Zero,
		ReferredBy:             strings.TrimSpace(referralCode),
	}
	for attempt := 0; attempt < referralCodeAttempts; attempt++ {
		u.ReferralCode = NewReferralCode()
		created, err := s.users.Create(ctx, u)
		switch {
		case err == nil:
			s.audit.Record("user", created.ID, "registered", map[string]any{"referred_by": created.ReferredBy})
			return created, nil
		case errors.Is(err, repo.ErrReferralCodeTaken):
			continue
		case errors.Is(err, repo.ErrPhoneTaken):
			return models.User{}, ErrDuplicatePhone
		default:
			return models.User{}, fmt.Errorf("create user: %w", err)
		}
	}
	return models.User{}, errors.New("could not allocate a referral code")
}

// NewReferralCode returns a code of the form CAT-#### with #### in [1000, 9999].
func NewReferralCode() string {
	return "CAT-" + strconv.Itoa(1000+rand.IntN(9000))
}

// ReferralCodeKnown reports whether some stored user owns code.
func (s *AccountService) ReferralCodeKnown(ctx context.Context, code string) (bool, error) {
	if strings.TrimSpace(code) == "" {
		return false, nil
	}
	_, err := s.users.GetByReferralCode(ctx, strings.TrimSpace(code))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repo.ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("lookup referral code: %w", err)
	}
}

// Resume resolves a session anchor (user id) back into the full record.
func (s *AccountService) Resume(ctx context.Context, userID string) (models.User, error) {
	if userID == models.AdminID {
		return s.Admin(), nil
	}
	return s.users.GetByID(ctx, userID)
}

func (s *AccountService) UpdateBankDetails(ctx context.Context, userID string, d models.BankDetails) (models.User, error) {
	u, err := s.users.UpdateBankDetails(ctx, userID, d)
	if err != nil {
		return models.User{}, err
	}
	s.audit.Record("user", userID, "bank_details_updated", nil)
	return u, nil
}

func checkNewPassword(newPass string) error {
	return invalid(validate.Collect(
		validate.MinLen("new_password", newPass, minPasswordLen),
		validate.MaxBytes("new_password", newPass, maxPasswordBytes),
	))
}

func (s *AccountService) ChangePassword(ctx context.Context, userID, oldPass, newPass string) error {
	if err := checkNewPassword(newPass); err != nil {
		return err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if auth.VerifyPassword(oldPass, u.PasswordHash) != nil {
		return ErrWrongOldPassword
	}
	hash, err := auth.HashPassword(newPass)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}
	s.audit.Record("user", userID, "password_changed", nil)
	return nil
}

func (s *AccountService) ChangeWithdrawalPassword(ctx context.Context, userID, oldPass, newPass string) error {
	if err := checkNewPassword(newPass); err != nil {
		return err
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if auth.VerifyPassword(oldPass, u.WithdrawalPasswordHash) != nil {
		return ErrWrongOldPassword
	}
	hash, err := auth.HashPassword(newPass)
	if err != nil {
		return err
	}
	if err := s.users.UpdateWithdrawalPassword(ctx, userID, hash); err != nil {
		return err
	}
	s.audit.Record("user", userID, "withdrawal_password_changed", nil)
	return nil
}

// ListUsers pages through stored users. The reserved admin is never stored,
// so it never appears here.
func (s *AccountService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.users.List(ctx, limit, offset)
}
