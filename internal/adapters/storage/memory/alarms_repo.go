package memory

import (
	"context"
	"sort"
	"strings"

	"med-reminder/internal/domain/medications"

	"github.com/google/uuid"
)

type alarmsRepo struct {
	s *Store
}

func (r *alarmsRepo) Create(ctx context.Context, ownerUserID, medicationID string, spec medications.AlarmSpec) (medications.Alarm, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.insert(ownerUserID, medicationID, spec)
}

// insert asume el lock tomado.
func (r *alarmsRepo) insert(ownerUserID, medicationID string, spec medications.AlarmSpec) (medications.Alarm, error) {
	m, ok := r.s.meds[medicationID]
	if !ok || m.OwnerUserID != ownerUserID {
		// Sin medicamento propio no hay alarma (FK + ownership).
		return medications.Alarm{}, medications.ErrNotFound
	}

	a := medications.Alarm{
		ID:           uuid.NewString(),
		MedicationID: medicationID,
		Time:         spec.Time,
		Label:        spec.Label,
		IsActive:     spec.IsActive,
	}

	r.s.alarms[a.ID] = a
	r.s.nextSeq(a.ID)
	return a, nil
}

func (r *alarmsRepo) ListByMedication(ctx context.Context, medicationID string) ([]medications.Alarm, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]medications.Alarm, 0)
	for _, a := range r.s.alarms {
		if a.MedicationID == medicationID {
			out = append(out, a)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return r.s.order[out[i].ID] < r.s.order[out[j].ID]
	})

	return out, nil
}

func (r *alarmsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]medications.Alarm, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]medications.Alarm, 0)
	for _, a := range r.s.alarms {
		m, ok := r.s.meds[a.MedicationID]
		if !ok || m.OwnerUserID != ownerUserID {
			continue
		}
		a.MedicationName = m.Name
		out = append(out, a)
	}

	// Orden por hora asc; empates por orden de inserción.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return r.s.order[out[i].ID] < r.s.order[out[j].ID]
	})

	return out, nil
}

func (r *alarmsRepo) ReplaceForMedication(ctx context.Context, ownerUserID, medicationID string, specs []medications.AlarmSpec) ([]medications.Alarm, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if m, ok := r.s.meds[medicationID]; !ok || m.OwnerUserID != ownerUserID {
		return nil, medications.ErrNotFound
	}

	// Delete-all-then-insert-all: cada alarma sobreviviente vuelve con
	// ID nuevo, igual que contra el store real.
	for id, a := range r.s.alarms {
		if a.MedicationID == medicationID {
			delete(r.s.alarms, id)
			delete(r.s.order, id)
		}
	}

	out := make([]medications.Alarm, 0, len(specs))
	for _, spec := range specs {
		a, err := r.insert(ownerUserID, medicationID, spec)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, nil
}

func (r *alarmsRepo) SetActive(ctx context.Context, ownerUserID, alarmID string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.alarms[strings.TrimSpace(alarmID)]
	if !ok {
		return medications.ErrNotFound
	}
	if m, ok := r.s.meds[a.MedicationID]; !ok || m.OwnerUserID != ownerUserID {
		return medications.ErrNotFound
	}
	a.IsActive = active
	r.s.alarms[a.ID] = a
	return nil
}
