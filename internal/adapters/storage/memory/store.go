package memory

import (
	"sync"
	"time"

	"med-reminder/internal/domain/medications"
)

// Store es el backend in-memory para dev/tests. Las dos "tablas" viven
// juntas porque la vista global de alarmas se resuelve con un join
// contra medications.
type Store struct {
	mu sync.RWMutex

	meds   map[string]medications.Medication
	alarms map[string]medications.Alarm

	// Orden de inserción por fila: desempata created_at iguales y da
	// orden estable a las alarmas de un mismo horario.
	seq   int
	order map[string]int

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		meds:   make(map[string]medications.Medication),
		alarms: make(map[string]medications.Alarm),
		order:  make(map[string]int),
		now:    time.Now,
	}
}

// Medications expone la tabla de medicamentos como Repository.
func (s *Store) Medications() medications.Repository {
	return &medicationsRepo{s: s}
}

// Alarms expone la tabla de alarmas como AlarmRepository.
func (s *Store) Alarms() medications.AlarmRepository {
	return &alarmsRepo{s: s}
}

func (s *Store) nextSeq(id string) {
	s.seq++
	s.order[id] = s.seq
}
