package session

import (
	"context"
	"sort"
	"sync"

	"med-reminder/internal/domain/medications"
	"med-reminder/internal/ports/auth"
	"med-reminder/internal/ports/notify"

	"golang.org/x/sync/errgroup"
)

// Session es el espejo local de medicamentos y alarmas de un usuario.
// Se crea al sign-in y se destruye al sign-out; toda operación pasa
// primero por el gate de identidad (sesión sin claims = vista vacía,
// solo lectura).
type Session struct {
	owner    auth.Claims
	gw       Gateway
	notifier notify.Notifier

	mu     sync.RWMutex
	meds   []medications.Medication
	alarms []medications.Alarm
	loaded bool
}

func New(owner auth.Claims, gw Gateway, notifier notify.Notifier) *Session {
	return &Session{
		owner:    owner,
		gw:       gw,
		notifier: notifier,
	}
}

func (s *Session) Owner() auth.Claims { return s.owner }

func (s *Session) Authenticated() bool { return s.owner.UserID != "" }

// SaveInput es el estado del formulario de alta/edición.
type SaveInput struct {
	Name   string
	Dosage string
	Alarms []medications.AlarmSpec
}

// Load refresca el espejo completo desde el store. Sin identidad deja
// ambas colecciones vacías y retorna de inmediato, sin llamadas de red.
// Ante StoreError el espejo conserva su valor anterior (stale pero
// consistente) y el error se reporta al caller.
func (s *Session) Load(ctx context.Context) error {
	if !s.Authenticated() {
		s.mu.Lock()
		s.meds = []medications.Medication{}
		s.alarms = []medications.Alarm{}
		s.loaded = true
		s.mu.Unlock()
		return nil
	}

	if err := s.refresh(ctx); err != nil {
		s.notifyError(ctx, "Failed to load medications", "Please try again later.")
		return err
	}

	s.notifyInfo(ctx, "Medications loaded", "Your reminders are up to date.")
	return nil
}

// refresh trae medications + vista global + alarmas por medicamento
// (fan-out paralelo, sin tope: se esperan decenas, no miles) y recién
// al final reemplaza el espejo.
func (s *Session) refresh(ctx context.Context) error {
	meds, err := s.gw.ListByOwner(ctx, s.owner.UserID)
	if err != nil {
		return err
	}

	all, err := s.gw.ListAlarmsByOwner(ctx, s.owner.UserID)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range meds {
		g.Go(func() error {
			alarms, err := s.gw.ListAlarmsByMedication(gctx, meds[i].ID)
			if err != nil {
				return err
			}
			meds[i].Alarms = alarms
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sortAlarms(all)

	s.mu.Lock()
	s.meds = meds
	s.alarms = all
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// AddAlarm crea una alarma para el medicamento y la inserta en el
// espejo ya ordenada. No hay inserción optimista: el MedicationName
// denormalizado requiere el round trip (acá lo resolvemos del espejo,
// pero el ID sigue siendo del server).
func (s *Session) AddAlarm(ctx context.Context, medicationID, timeOfDay, label string) (medications.Alarm, error) {
	if !s.Authenticated() {
		s.notifyError(ctx, "Authentication error", "You must be logged in to add alarms.")
		return medications.Alarm{}, ErrAuthRequired
	}

	s.mu.RLock()
	empty := len(s.meds) == 0
	s.mu.RUnlock()
	if empty {
		s.notifyError(ctx, "No medications", "Add a medication before setting alarms.")
		return medications.Alarm{}, ErrNoMedications
	}

	a, err := s.gw.CreateAlarm(ctx, s.owner.UserID, medicationID, medications.AlarmSpec{
		Time:     timeOfDay,
		Label:    label,
		IsActive: true,
	})
	if err != nil {
		s.notifyError(ctx, "Failed to add alarm", "Please try again later.")
		return medications.Alarm{}, err
	}

	s.mu.Lock()
	for i := range s.meds {
		if s.meds[i].ID == a.MedicationID {
			if a.MedicationName == "" {
				a.MedicationName = s.meds[i].Name
			}
			s.meds[i].Alarms = append(s.meds[i].Alarms, a)
			break
		}
	}
	s.alarms = append(s.alarms, a)
	sortAlarms(s.alarms)
	s.mu.Unlock()

	s.notifyInfo(ctx, "Alarm added", a.Label+" at "+medications.FormatDisplayTime(a.Time))
	return a, nil
}

// SaveMedication es el alta/edición completa del formulario.
//
// Alta (existingID vacío): crea el medicamento y después una alarma por
// entrada. Si una alarma falla, el medicamento ya existe con un set
// parcial: se refresca el espejo y se reporta PartialSaveError, no se
// hace rollback.
//
// Edición: actualiza los campos escalares y reemplaza el set completo
// de alarmas (replace-set). Ninguna alarma conserva su ID a través de
// una edición, aunque sus campos no hayan cambiado.
//
// En ambas ramas el espejo se recarga entero del server en lugar de
// parchearse, porque el replace-set cambia la identidad de todas las
// alarmas.
func (s *Session) SaveMedication(ctx context.Context, in SaveInput, existingID string) (medications.Medication, error) {
	if !s.Authenticated() {
		s.notifyError(ctx, "Authentication error", "You must be logged in to save medications.")
		return medications.Medication{}, ErrAuthRequired
	}

	if existingID == "" {
		return s.createMedication(ctx, in)
	}
	return s.updateMedication(ctx, in, existingID)
}

func (s *Session) createMedication(ctx context.Context, in SaveInput) (medications.Medication, error) {
	m, err := s.gw.Create(ctx, s.owner.UserID, in.Name, in.Dosage)
	if err != nil {
		s.notifyError(ctx, "Failed to save medication", "Please try again later.")
		return medications.Medication{}, err
	}

	for _, spec := range in.Alarms {
		if _, err := s.gw.CreateAlarm(ctx, s.owner.UserID, m.ID, spec); err != nil {
			perr := &PartialSaveError{MedicationID: m.ID, Stage: "alarm creation", Err: err}
			// El espejo se refresca igual: el usuario ve exactamente
			// lo que quedó persistido.
			_ = s.refresh(ctx)
			s.notifyError(ctx, "Medication partially saved", m.Name+" was created but some alarms could not be added.")
			return medications.Medication{}, perr
		}
	}

	if err := s.refresh(ctx); err != nil {
		s.notifyError(ctx, "Failed to refresh medications", "Please reload the page.")
		return medications.Medication{}, err
	}

	s.notifyInfo(ctx, "Medication added", m.Name+" was added successfully.")
	return s.medicationByID(m.ID), nil
}

func (s *Session) updateMedication(ctx context.Context, in SaveInput, existingID string) (medications.Medication, error) {
	if err := s.gw.Update(ctx, s.owner.UserID, existingID, in.Name, in.Dosage); err != nil {
		s.notifyError(ctx, "Failed to save medication", "Please try again later.")
		return medications.Medication{}, err
	}

	if _, err := s.gw.ReplaceAlarms(ctx, s.owner.UserID, existingID, in.Alarms); err != nil {
		perr := &PartialSaveError{MedicationID: existingID, Stage: "alarm replacement", Err: err}
		_ = s.refresh(ctx)
		s.notifyError(ctx, "Medication partially saved", in.Name+" was updated but its alarms may be incomplete.")
		return medications.Medication{}, perr
	}

	if err := s.refresh(ctx); err != nil {
		s.notifyError(ctx, "Failed to refresh medications", "Please reload the page.")
		return medications.Medication{}, err
	}

	s.notifyInfo(ctx, "Medication updated", in.Name+" was updated successfully.")
	return s.medicationByID(existingID), nil
}

// ToggleAlarm aplica el flag localmente primero y después lo confirma
// contra el store. Si el store falla, el flag local se revierte al valor
// previo antes de reportar el error (two-phase: apply, revert on fail).
func (s *Session) ToggleAlarm(ctx context.Context, alarmID string, active bool) error {
	if !s.Authenticated() {
		s.notifyError(ctx, "Authentication error", "You must be logged in to update alarms.")
		return ErrAuthRequired
	}

	prev, found := s.setLocalActive(alarmID, active)

	if err := s.gw.SetAlarmActive(ctx, s.owner.UserID, alarmID, active); err != nil {
		if found {
			s.setLocalActive(alarmID, prev)
		}
		s.notifyError(ctx, "Failed to update alarm", "The alarm was left as it was. Please try again.")
		return err
	}

	s.notifyInfo(ctx, "Alarm updated", "Your reminder was updated.")
	return nil
}

// setLocalActive flipea el flag en la vista global y en la colección
// del medicamento dueño; devuelve el valor previo.
func (s *Session) setLocalActive(alarmID string, active bool) (prev bool, found bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.alarms {
		if s.alarms[i].ID == alarmID {
			prev = s.alarms[i].IsActive
			found = true
			s.alarms[i].IsActive = active
		}
	}
	for i := range s.meds {
		for j := range s.meds[i].Alarms {
			if s.meds[i].Alarms[j].ID == alarmID {
				prev = s.meds[i].Alarms[j].IsActive
				found = true
				s.meds[i].Alarms[j].IsActive = active
			}
		}
	}
	return prev, found
}

// Medications devuelve una copia del espejo de medicamentos.
func (s *Session) Medications() []medications.Medication {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]medications.Medication, len(s.meds))
	for i, m := range s.meds {
		m.Alarms = append([]medications.Alarm(nil), m.Alarms...)
		out[i] = m
	}
	return out
}

// Alarms devuelve una copia de la vista global, ordenada por hora.
func (s *Session) Alarms() []medications.Alarm {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]medications.Alarm(nil), s.alarms...)
}

func (s *Session) medicationByID(id string) medications.Medication {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.meds {
		if m.ID == id {
			m.Alarms = append([]medications.Alarm(nil), m.Alarms...)
			return m
		}
	}
	return medications.Medication{ID: id}
}

func (s *Session) notifyInfo(ctx context.Context, title, desc string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, notify.Notification{Title: title, Description: desc, Severity: notify.SeverityInfo})
}

func (s *Session) notifyError(ctx context.Context, title, desc string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, notify.Notification{Title: title, Description: desc, Severity: notify.SeverityError})
}

// Orden estable por hora ascendente; empates conservan orden de llegada.
func sortAlarms(alarms []medications.Alarm) {
	sort.SliceStable(alarms, func(i, j int) bool {
		return alarms[i].Time < alarms[j].Time
	})
}
