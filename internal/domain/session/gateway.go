package session

import (
	"context"

	"med-reminder/internal/domain/medications"
)

// Gateway es lo que la sesión necesita del store remoto.
// *medications.Service lo implementa; los tests usan fakes.
// Toda mutación lleva el owner: el store resuelve los IDs acotados al
// usuario y reporta ErrNotFound para filas ajenas.
type Gateway interface {
	ListByOwner(ctx context.Context, ownerUserID string) ([]medications.Medication, error)
	ListAlarmsByMedication(ctx context.Context, medicationID string) ([]medications.Alarm, error)
	ListAlarmsByOwner(ctx context.Context, ownerUserID string) ([]medications.Alarm, error)
	Create(ctx context.Context, ownerUserID, name, dosage string) (medications.Medication, error)
	Update(ctx context.Context, ownerUserID, id, name, dosage string) error
	CreateAlarm(ctx context.Context, ownerUserID, medicationID string, spec medications.AlarmSpec) (medications.Alarm, error)
	ReplaceAlarms(ctx context.Context, ownerUserID, medicationID string, specs []medications.AlarmSpec) ([]medications.Alarm, error)
	SetAlarmActive(ctx context.Context, ownerUserID, alarmID string, active bool) error
}
