package session

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthRequired se devuelve ante cualquier mutación sin identidad.
	// Se chequea antes que cualquier otra validación y sin tocar la red.
	ErrAuthRequired = errors.New("auth required")

	// ErrNoMedications: pedir una alarma sin medicamentos registrados es
	// estructuralmente imposible. El caller muestra un mensaje, no reintenta.
	ErrNoMedications = errors.New("no medications registered")
)

// PartialSaveError indica que un guardado multi-paso dejó estado parcial:
// el medicamento quedó persistido pero el paso de alarmas falló. El espejo
// local ya fue refrescado desde el server, así que refleja lo que quedó.
type PartialSaveError struct {
	MedicationID string
	Stage        string
	Err          error
}

func (e *PartialSaveError) Error() string {
	return fmt.Sprintf("partial save: medication %s persisted but %s failed: %v", e.MedicationID, e.Stage, e.Err)
}

func (e *PartialSaveError) Unwrap() error { return e.Err }
