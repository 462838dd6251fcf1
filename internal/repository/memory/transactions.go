package memory

import (
	"context"
	"time"

	"github.com/baharkarakas/cat-tracker/internal/models"
	repo "github.com/baharkarakas/cat-tracker/internal/repository"
	"github.com/google/uuid"
)

type transactionsRepo struct{ s *Store }

func (r *transactionsRepo) Create(_ context.Context, tx models.Transaction) (models.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	stored := tx
	r.s.txns[tx.ID] = &stored
	r.s.txnOrder = append(r.s.txnOrder, tx.ID)
	return tx, nil
}

func (r *transactionsRepo) GetByID(_ context.Context, id string) (models.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	tx, ok := r.s.txns[id]
	if !ok {
		return models.Transaction{}, repo.ErrNotFound
	}
	return *tx, nil
}

// newestFirst walks transactions in reverse insertion order.
func (r *transactionsRepo) newestFirst(keep func(*models.Transaction) bool) []models.Transaction {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Transaction
	for i := len(r.s.txnOrder) - 1; i >= 0; i-- {
		tx := r.s.txns[r.s.txnOrder[i]]
		if keep(tx) {
			out = append(out, *tx)
		}
	}
	return out
}

func (r *transactionsRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]models.Transaction, error) {
	all := r.newestFirst(func(tx *models.Transaction) bool { return tx.UserID == userID })
	return paginate(all, limit, offset), nil
}

func (r *transactionsRepo) ListByStatus(_ context.Context, status models.TransactionStatus, limit, offset int) ([]models.Transaction, error) {
	all := r.newestFirst(func(tx *models.Transaction) bool { return tx.Status == status })
	return paginate(all, limit, offset), nil
}

func (r *transactionsRepo) ListByUsers(_ context.Context, userIDs []string, status models.TransactionStatus) ([]models.Transaction, error) {
	ids := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		ids[id] = struct{}{}
	}
	return r.newestFirst(func(tx *models.Transaction) bool {
		_, ok := ids[tx.UserID]
		return ok && tx.Status == status
	}), nil
}

func (r *transactionsRepo) Transition(_ context.Context, id string, from, to models.TransactionStatus) (models.Transaction, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tx, ok := r.s.txns[id]
	if !ok {
		return models.Transaction{}, false, repo.ErrNotFound
	}
	if tx.Status != from {
		return *tx, false, nil
	}
	tx.Status = to
	return *tx, true, nil
}
