package medications

import "context"

// Repository es el puerto de persistencia de medications.
// Los IDs los asigna el adapter al crear (el store es la autoridad).
// Las mutaciones van acotadas al owner: una fila de otro usuario es
// indistinguible de una inexistente (ErrNotFound).
type Repository interface {
	Create(ctx context.Context, ownerUserID, name, dosage string) (Medication, error)
	Update(ctx context.Context, ownerUserID, id, name, dosage string) error
	ListByOwner(ctx context.Context, ownerUserID string) ([]Medication, error)
}

// AlarmRepository es el puerto de persistencia de alarms. Las
// mutaciones verifican que el medicamento padre pertenezca al owner.
type AlarmRepository interface {
	Create(ctx context.Context, ownerUserID, medicationID string, spec AlarmSpec) (Alarm, error)
	ListByMedication(ctx context.Context, medicationID string) ([]Alarm, error)

	// ListByOwner devuelve todas las alarmas del usuario con
	// MedicationName resuelto (join con el padre), orden time asc.
	ListByOwner(ctx context.Context, ownerUserID string) ([]Alarm, error)

	// ReplaceForMedication borra todas las alarmas del medicamento e
	// inserta specs como filas nuevas (estrategia replace-set: la
	// identidad de las alarmas nunca sobrevive).
	ReplaceForMedication(ctx context.Context, ownerUserID, medicationID string, specs []AlarmSpec) ([]Alarm, error)

	SetActive(ctx context.Context, ownerUserID, alarmID string, active bool) error
}
