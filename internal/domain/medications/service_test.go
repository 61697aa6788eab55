package medications

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// -------------------------
// Test repos (in-memory)
// -------------------------

type testMedRepo struct {
	byID    map[string]Medication
	seq     int
	failAll bool
}

func newTestMedRepo() *testMedRepo {
	return &testMedRepo{byID: map[string]Medication{}}
}

var errRepoDown = errors.New("repo: connection refused")

func (r *testMedRepo) Create(ctx context.Context, ownerUserID, name, dosage string) (Medication, error) {
	if r.failAll {
		return Medication{}, errRepoDown
	}
	r.seq++
	m := Medication{
		ID:          fmt.Sprintf("med-%d", r.seq),
		OwnerUserID: ownerUserID,
		Name:        name,
		Dosage:      dosage,
	}
	r.byID[m.ID] = m
	return m, nil
}

func (r *testMedRepo) Update(ctx context.Context, ownerUserID, id, name, dosage string) error {
	if r.failAll {
		return errRepoDown
	}
	m, ok := r.byID[id]
	if !ok || m.OwnerUserID != ownerUserID {
		return ErrNotFound
	}
	m.Name = name
	m.Dosage = dosage
	r.byID[id] = m
	return nil
}

func (r *testMedRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Medication, error) {
	if r.failAll {
		return nil, errRepoDown
	}
	out := make([]Medication, 0)
	for _, m := range r.byID {
		if m.OwnerUserID == ownerUserID {
			out = append(out, m)
		}
	}
	return out, nil
}

type testAlarmRepo struct {
	byID    map[string]Alarm
	seq     int
	failAll bool
}

func newTestAlarmRepo() *testAlarmRepo {
	return &testAlarmRepo{byID: map[string]Alarm{}}
}

func (r *testAlarmRepo) Create(ctx context.Context, ownerUserID, medicationID string, spec AlarmSpec) (Alarm, error) {
	if r.failAll {
		return Alarm{}, errRepoDown
	}
	r.seq++
	a := Alarm{
		ID:           fmt.Sprintf("alarm-%d", r.seq),
		MedicationID: medicationID,
		Time:         spec.Time,
		Label:        spec.Label,
		IsActive:     spec.IsActive,
	}
	r.byID[a.ID] = a
	return a, nil
}

func (r *testAlarmRepo) ListByMedication(ctx context.Context, medicationID string) ([]Alarm, error) {
	if r.failAll {
		return nil, errRepoDown
	}
	out := make([]Alarm, 0)
	for _, a := range r.byID {
		if a.MedicationID == medicationID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testAlarmRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Alarm, error) {
	if r.failAll {
		return nil, errRepoDown
	}
	return nil, nil
}

func (r *testAlarmRepo) ReplaceForMedication(ctx context.Context, ownerUserID, medicationID string, specs []AlarmSpec) ([]Alarm, error) {
	if r.failAll {
		return nil, errRepoDown
	}
	for id, a := range r.byID {
		if a.MedicationID == medicationID {
			delete(r.byID, id)
		}
	}
	out := make([]Alarm, 0, len(specs))
	for _, spec := range specs {
		a, _ := r.Create(ctx, ownerUserID, medicationID, spec)
		out = append(out, a)
	}
	return out, nil
}

func (r *testAlarmRepo) SetActive(ctx context.Context, ownerUserID, alarmID string, active bool) error {
	if r.failAll {
		return errRepoDown
	}
	a, ok := r.byID[alarmID]
	if !ok {
		return ErrNotFound
	}
	a.IsActive = active
	r.byID[alarmID] = a
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_RejectsEmptyFields(t *testing.T) {
	svc := NewService(newTestMedRepo(), newTestAlarmRepo())

	cases := []struct {
		owner, name, dosage string
	}{
		{"", "Ibuprofen", "200mg"},
		{"user-1", "", "200mg"},
		{"user-1", "Ibuprofen", ""},
		{"user-1", "   ", "200mg"},
	}

	for _, c := range cases {
		_, err := svc.Create(context.Background(), c.owner, c.name, c.dosage)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Create(%q,%q,%q): expected ErrInvalidInput, got %v", c.owner, c.name, c.dosage, err)
		}
	}
}

func TestService_Create_TrimsAndAssignsID(t *testing.T) {
	svc := NewService(newTestMedRepo(), newTestAlarmRepo())

	m, err := svc.Create(context.Background(), "user-1", "  Ibuprofen ", " 200mg ")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if m.ID == "" {
		t.Fatalf("expected store-assigned ID")
	}
	if m.Name != "Ibuprofen" || m.Dosage != "200mg" {
		t.Fatalf("expected trimmed fields, got %q / %q", m.Name, m.Dosage)
	}
}

func TestService_Create_WrapsStoreError(t *testing.T) {
	repo := newTestMedRepo()
	repo.failAll = true
	svc := NewService(repo, newTestAlarmRepo())

	_, err := svc.Create(context.Background(), "user-1", "Ibuprofen", "200mg")

	var store *StoreError
	if !errors.As(err, &store) {
		t.Fatalf("expected StoreError, got %v", err)
	}
	if !errors.Is(err, errRepoDown) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestService_Update_NotFoundPassesThrough(t *testing.T) {
	svc := NewService(newTestMedRepo(), newTestAlarmRepo())

	err := svc.Update(context.Background(), "user-1", "missing", "Ibuprofen", "200mg")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound sin envolver, got %v", err)
	}
}

func TestService_Update_ForeignOwnerLooksNotFound(t *testing.T) {
	repo := newTestMedRepo()
	svc := NewService(repo, newTestAlarmRepo())

	m, err := svc.Create(context.Background(), "user-1", "Ibuprofen", "200mg")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	err = svc.Update(context.Background(), "user-2", m.ID, "Hijacked", "999mg")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}
	if repo.byID[m.ID].Name != "Ibuprofen" {
		t.Fatalf("foreign update went through: %+v", repo.byID[m.ID])
	}
}

func TestService_CreateAlarm_RejectsEmptyTimeOrLabel(t *testing.T) {
	svc := NewService(newTestMedRepo(), newTestAlarmRepo())

	_, err := svc.CreateAlarm(context.Background(), "user-1", "med-1", AlarmSpec{Time: "", Label: "Morning"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty time, got %v", err)
	}

	_, err = svc.CreateAlarm(context.Background(), "user-1", "med-1", AlarmSpec{Time: "09:00", Label: "  "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty label, got %v", err)
	}
}

func TestService_ReplaceAlarms_AssignsFreshIDs(t *testing.T) {
	medRepo := newTestMedRepo()
	alarmRepo := newTestAlarmRepo()
	svc := NewService(medRepo, alarmRepo)

	m, err := svc.Create(context.Background(), "user-1", "Ibuprofen", "200mg")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	a1, err := svc.CreateAlarm(context.Background(), "user-1", m.ID, AlarmSpec{Time: "09:00", Label: "Morning", IsActive: true})
	if err != nil {
		t.Fatalf("CreateAlarm error: %v", err)
	}

	out, err := svc.ReplaceAlarms(context.Background(), "user-1", m.ID, []AlarmSpec{
		{Time: "09:00", Label: "Morning", IsActive: true},
		{Time: "21:00", Label: "Night", IsActive: true},
	})
	if err != nil {
		t.Fatalf("ReplaceAlarms error: %v", err)
	}

	if len(out) != 2 {
		t.Fatalf("expected 2 alarms, got %d", len(out))
	}
	for _, a := range out {
		if a.ID == a1.ID {
			t.Fatalf("alarm identity survived replace: %s", a.ID)
		}
	}
}

func TestService_ReplaceAlarms_ValidatesSpecsBeforeStore(t *testing.T) {
	alarmRepo := newTestAlarmRepo()
	svc := NewService(newTestMedRepo(), alarmRepo)

	_, err := svc.ReplaceAlarms(context.Background(), "user-1", "med-1", []AlarmSpec{
		{Time: "09:00", Label: "Morning"},
		{Time: "", Label: "Broken"},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(alarmRepo.byID) != 0 {
		t.Fatalf("expected no writes on invalid spec, got %d", len(alarmRepo.byID))
	}
}
