package memory

import (
	"context"
	"sort"
	"time"

	"github.com/baharkarakas/cat-tracker/internal/models"
	repo "github.com/baharkarakas/cat-tracker/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type usersRepo struct{ s *Store }

func (r *usersRepo) Create(_ context.Context, u models.User) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.phones[u.Phone]; ok {
		return models.User{}, repo.ErrPhoneTaken
	}
	if _, ok := r.s.codes[u.ReferralCode]; ok {
		return models.User{}, repo.ErrReferralCodeTaken
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	stored := copyUser(&u)
	r.s.users[u.ID] = &stored
	r.s.phones[u.Phone] = u.ID
	r.s.codes[u.ReferralCode] = u.ID
	return copyUser(&stored), nil
}

func (r *usersRepo) GetByID(_ context.Context, id string) (models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return copyUser(u), nil
}

func (r *usersRepo) GetByPhone(ctx context.Context, phone string) (models.User, error) {
	r.s.mu.RLock()
	id, ok := r.s.phones[phone]
	r.s.mu.RUnlock()
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *usersRepo) GetByReferralCode(ctx context.Context, code string) (models.User, error) {
	r.s.mu.RLock()
	id, ok := r.s.codes[code]
	r.s.mu.RUnlock()
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *usersRepo) List(_ context.Context, limit, offset int) ([]models.User, error) {
	return paginate(r.filter(func(*models.User) bool { return true }, true), limit, offset), nil
}

func (r *usersRepo) ListReferredBy(_ context.Context, code string) ([]models.User, error) {
	return r.filter(func(u *models.User) bool { return u.ReferredBy == code }, false), nil
}

// filter returns matching users ordered by creation time.
func (r *usersRepo) filter(keep func(*models.User) bool, newestFirst bool) []models.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.User
	for _, u := range r.s.users {
		if keep(u) {
			out = append(out, copyUser(u))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if newestFirst {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r *usersRepo) UpdateBankDetails(_ context.Context, id string, d models.BankDetails) (models.User, error) {
	var out models.User
	err := r.s.update(id, func(u *models.User) {
		u.BankDetails = &d
		out = copyUser(u)
	})
	return out, err
}

func (r *usersRepo) UpdatePassword(_ context.Context, id, hash string) error {
	return r.s.update(id, func(u *models.User) { u.PasswordHash = hash })
}

func (r *usersRepo) UpdateWithdrawalPassword(_ context.Context, id, hash string) error {
	return r.s.update(id, func(u *models.User) { u.WithdrawalPasswordHash = hash })
}

func (s *Store) update(id string, fn func(u *models.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	fn(u)
	u.UpdatedAt = time.Now()
	return nil
}

type balancesRepo struct{ s *Store }

func (r *balancesRepo) Get(_ context.Context, userID string) (decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[userID]
	if !ok {
		return decimal.Decimal{}, repo.ErrNotFound
	}
	return u.Balance, nil
}

func (r *balancesRepo) Adjust(_ context.Context, userID string, delta decimal.Decimal) (decimal.Decimal, error) {
	var (
		out decimal.Decimal
		err error
	)
	updErr := r.s.update(userID, func(u *models.User) {
		next := u.Balance.Add(delta)
		if delta.IsNegative() && next.IsNegative() {
			err = repo.ErrInsufficientFunds
			return
		}
		u.Balance = next
		out = next
	})
	if updErr != nil {
		return decimal.Decimal{}, updErr
	}
	return out, err
}

func (r *balancesRepo) Set(_ context.Context, userID string, value decimal.Decimal) error {
	return r.s.update(userID, func(u *models.User) { u.Balance = value })
}
