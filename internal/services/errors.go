package services

import (
	"errors"

	"github.com/baharkarakas/cat-tracker/internal/api/validate"
)

// Messages are shown to the end user as-is.
var (
	ErrValidation              = errors.New("please fill all fields correctly")
	ErrDuplicatePhone          = errors.New("phone number already registered")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrWrongPassword           = errors.New("incorrect withdrawal password")
	ErrWrongOldPassword        = errors.New("incorrect old password")
	ErrInsufficientBalance     = errors.New("insufficient balance")
	ErrNoBankDetails           = errors.New("please add bank details in profile first")
	ErrBelowMinimum            = errors.New("minimum withdrawal amount is ₹150")
	ErrOutsideWithdrawalWindow = errors.New("withdrawals are only allowed between 6 AM and 6 PM")
	ErrPlanNotFound            = errors.New("plan not found")
)

// ValidationError carries per-field detail and matches ErrValidation.
type ValidationError struct {
	Fields validate.Errs
}

func (e *ValidationError) Error() string { return ErrValidation.Error() }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(errs validate.Errs) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}
