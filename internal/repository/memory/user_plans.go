package memory

import (
	"context"
	"time"

	"github.com/baharkarakas/cat-tracker/internal/models"
	"github.com/google/uuid"
)

type userPlansRepo struct{ s *Store }

func (r *userPlansRepo) Create(_ context.Context, p models.UserPlan) (models.UserPlan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	stored := p
	r.s.plans[p.ID] = &stored
	r.s.planOrder = append(r.s.planOrder, p.ID)
	return p, nil
}

func (r *userPlansRepo) ListByUser(_ context.Context, userID string) ([]models.UserPlan, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.UserPlan
	for i := len(r.s.planOrder) - 1; i >= 0; i-- {
		p, ok := r.s.plans[r.s.planOrder[i]]
		if ok && p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *userPlansRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.plans, id)
	for i, pid := range r.s.planOrder {
		if pid == id {
			r.s.planOrder = append(r.s.planOrder[:i], r.s.planOrder[i+1:]...)
			break
		}
	}
	return nil
}

type auditLogsRepo struct{ s *Store }

func (r *auditLogsRepo) Create(_ context.Context, l models.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	r.s.audit = append(r.s.audit, l)
	return nil
}

func (r *auditLogsRepo) ListRecent(_ context.Context, limit int) ([]models.AuditLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.AuditLog
	for i := len(r.s.audit) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, r.s.audit[i])
	}
	return out, nil
}
