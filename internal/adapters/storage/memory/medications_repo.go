package memory

import (
	"context"
	"sort"
	"strings"

	"med-reminder/internal/domain/medications"

	"github.com/google/uuid"
)

type medicationsRepo struct {
	s *Store
}

func (r *medicationsRepo) Create(ctx context.Context, ownerUserID, name, dosage string) (medications.Medication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	m := medications.Medication{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        name,
		Dosage:      dosage,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	r.s.meds[m.ID] = m
	r.s.nextSeq(m.ID)
	return m, nil
}

func (r *medicationsRepo) Update(ctx context.Context, ownerUserID, id, name, dosage string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.meds[strings.TrimSpace(id)]
	if !ok || m.OwnerUserID != ownerUserID {
		// Una fila ajena es indistinguible de una inexistente.
		return medications.ErrNotFound
	}

	m.Name = name
	m.Dosage = dosage
	m.UpdatedAt = r.s.now()
	r.s.meds[m.ID] = m
	return nil
}

func (r *medicationsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]medications.Medication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]medications.Medication, 0)
	for _, m := range r.s.meds {
		if m.OwnerUserID == ownerUserID {
			out = append(out, m)
		}
	}

	// Más recientes primero, como el store real.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return r.s.order[out[i].ID] > r.s.order[out[j].ID]
	})

	return out, nil
}
