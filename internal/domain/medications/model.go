package medications

import "time"

// Medication representa un medicamento registrado por un usuario.
// OwnerUserID se fija al crear y no cambia nunca (aislamiento por fila).
type Medication struct {
	ID          string
	OwnerUserID string

	Name   string
	Dosage string

	// Alarms es la colección hija; un alarm no existe sin su medicamento.
	Alarms []Alarm

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Alarm es un recordatorio que pertenece a exactamente un medicamento.
type Alarm struct {
	ID           string
	MedicationID string

	// Time es hora del día en formato 24h "HH:MM"; es la clave de orden
	// de la vista global de alarmas.
	Time     string
	Label    string
	IsActive bool

	// MedicationName es una proyección de lectura (join con el padre).
	// Nunca es autoritativa ni se escribe de vuelta.
	MedicationName string
}

// AlarmSpec describe una alarma todavía sin ID (propuesta en un
// formulario). El store asigna el ID al insertarla.
type AlarmSpec struct {
	Time     string
	Label    string
	IsActive bool
}

// Spec devuelve los campos de formulario de la alarma (sin identidad).
func (a Alarm) Spec() AlarmSpec {
	return AlarmSpec{Time: a.Time, Label: a.Label, IsActive: a.IsActive}
}
