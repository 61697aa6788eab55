package medications

import (
	"context"
	"strings"
)

// Service es el gateway tipado sobre el store remoto: valida inputs
// antes de tocar la red y normaliza los fallos de backend a StoreError.
type Service struct {
	repo   Repository
	alarms AlarmRepository
}

func NewService(repo Repository, alarms AlarmRepository) *Service {
	return &Service{
		repo:   repo,
		alarms: alarms,
	}
}

// ListByOwner devuelve los medicamentos del usuario (sin alarmas),
// los más recientes primero.
func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Medication, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return nil, ErrInvalidInput
	}
	out, err := s.repo.ListByOwner(ctx, ownerUserID)
	return out, storeErr("list medications", err)
}

func (s *Service) ListAlarmsByMedication(ctx context.Context, medicationID string) ([]Alarm, error) {
	if strings.TrimSpace(medicationID) == "" {
		return nil, ErrInvalidInput
	}
	out, err := s.alarms.ListByMedication(ctx, medicationID)
	return out, storeErr("list alarms", err)
}

// ListAlarmsByOwner devuelve la vista global de alarmas del usuario,
// con MedicationName resuelto, ordenada por time ascendente.
func (s *Service) ListAlarmsByOwner(ctx context.Context, ownerUserID string) ([]Alarm, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return nil, ErrInvalidInput
	}
	out, err := s.alarms.ListByOwner(ctx, ownerUserID)
	return out, storeErr("list owner alarms", err)
}

// Create valida y crea el medicamento; el store asigna el ID.
func (s *Service) Create(ctx context.Context, ownerUserID, name, dosage string) (Medication, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Medication{}, ErrInvalidInput
	}
	name = strings.TrimSpace(name)
	dosage = strings.TrimSpace(dosage)
	if name == "" || dosage == "" {
		return Medication{}, ErrInvalidInput
	}

	m, err := s.repo.Create(ctx, ownerUserID, name, dosage)
	if err != nil {
		return Medication{}, storeErr("create medication", err)
	}
	return m, nil
}

// Update edita nombre/dosis. El id se resuelve acotado al owner: un
// medicamento ajeno se reporta como ErrNotFound.
func (s *Service) Update(ctx context.Context, ownerUserID, id, name, dosage string) error {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	dosage = strings.TrimSpace(dosage)
	if strings.TrimSpace(ownerUserID) == "" || id == "" || name == "" || dosage == "" {
		return ErrInvalidInput
	}
	return storeErr("update medication", s.repo.Update(ctx, ownerUserID, id, name, dosage))
}

func (s *Service) CreateAlarm(ctx context.Context, ownerUserID, medicationID string, spec AlarmSpec) (Alarm, error) {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(medicationID) == "" {
		return Alarm{}, ErrInvalidInput
	}
	spec.Time = strings.TrimSpace(spec.Time)
	spec.Label = strings.TrimSpace(spec.Label)
	if spec.Time == "" || spec.Label == "" {
		return Alarm{}, ErrInvalidInput
	}

	a, err := s.alarms.Create(ctx, ownerUserID, medicationID, spec)
	if err != nil {
		return Alarm{}, storeErr("create alarm", err)
	}
	return a, nil
}

// ReplaceAlarms aplica la estrategia replace-set: borra todas las
// alarmas del medicamento e inserta specs como filas nuevas. El adapter
// de Postgres lo hace en una transacción; el de memoria no es atómico.
func (s *Service) ReplaceAlarms(ctx context.Context, ownerUserID, medicationID string, specs []AlarmSpec) ([]Alarm, error) {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(medicationID) == "" {
		return nil, ErrInvalidInput
	}
	for _, sp := range specs {
		if strings.TrimSpace(sp.Time) == "" || strings.TrimSpace(sp.Label) == "" {
			return nil, ErrInvalidInput
		}
	}

	out, err := s.alarms.ReplaceForMedication(ctx, ownerUserID, medicationID, specs)
	if err != nil {
		return nil, storeErr("replace alarms", err)
	}
	return out, nil
}

func (s *Service) SetAlarmActive(ctx context.Context, ownerUserID, alarmID string, active bool) error {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(alarmID) == "" {
		return ErrInvalidInput
	}
	return storeErr("toggle alarm", s.alarms.SetActive(ctx, ownerUserID, alarmID, active))
}
