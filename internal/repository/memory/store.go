// Package memory is an in-process implementation of the repository
// interfaces. It backs dev mode and the service tests.
package memory

import (
	"sync"

	"github.com/baharkarakas/cat-tracker/internal/models"
	repo "github.com/baharkarakas/cat-tracker/internal/repository"
)

// Store is a thread-safe in-memory store shared by all repositories built from it.
type Store struct {
	mu        sync.RWMutex
	users     map[string]*models.User
	phones    map[string]string // phone -> user id
	codes     map[string]string // referral code -> user id
	txns      map[string]*models.Transaction
	txnOrder  []string
	plans     map[string]*models.UserPlan
	planOrder []string
	audit     []models.AuditLog
}

func NewStore() *Store {
	return &Store{
		users:  make(map[string]*models.User),
		phones: make(map[string]string),
		codes:  make(map[string]string),
		txns:   make(map[string]*models.Transaction),
		plans:  make(map[string]*models.UserPlan),
	}
}

func NewRepositories(s *Store) repo.Repositories {
	return repo.Repositories{
		Users:        &usersRepo{s},
		Balances:     &balancesRepo{s},
		Transactions: &transactionsRepo{s},
		UserPlans:    &userPlansRepo{s},
		AuditLogs:    &auditLogsRepo{s},
	}
}

// copyUser detaches a record from the store so callers cannot mutate it.
func copyUser(u *models.User) models.User {
	out := *u
	if u.BankDetails != nil {
		d := *u.BankDetails
		out.BankDetails = &d
	}
	return out
}

func paginate[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
