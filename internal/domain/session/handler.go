package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"med-reminder/internal/domain/medications"
	"med-reminder/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func RegisterRoutes(r chi.Router, mgr *Manager) {
	r.Route("/medications", func(mr chi.Router) {
		mr.Get("/", listMedicationsHandler(mgr))
		mr.Post("/", createMedicationHandler(mgr))
		mr.Put("/{medicationID}", updateMedicationHandler(mgr))
		mr.Post("/{medicationID}/alarms", addAlarmHandler(mgr))
	})

	// Vista global del dashboard: todas las alarmas del usuario.
	r.Route("/alarms", func(ar chi.Router) {
		ar.Get("/", listAlarmsHandler(mgr))
		ar.Patch("/{alarmID}", toggleAlarmHandler(mgr))
	})
}

// alarmSpecRequest es una alarma propuesta en el formulario (sin ID).
type alarmSpecRequest struct {
	Time     string `json:"time" validate:"required"`
	Label    string `json:"label" validate:"required"`
	IsActive *bool  `json:"is_active"` // opcional, default true
}

type saveMedicationRequest struct {
	Name   string             `json:"name" validate:"required"`
	Dosage string             `json:"dosage" validate:"required"`
	Alarms []alarmSpecRequest `json:"alarms" validate:"dive"`
}

type addAlarmRequest struct {
	Time  string `json:"time" validate:"required"`
	Label string `json:"label" validate:"required"`
}

type toggleAlarmRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type alarmResponse struct {
	ID             string `json:"id"`
	MedicationID   string `json:"medication_id"`
	Time           string `json:"time"`
	DisplayTime    string `json:"display_time"`
	Label          string `json:"label"`
	IsActive       bool   `json:"is_active"`
	MedicationName string `json:"medication_name,omitempty"`
}

type medicationResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Dosage    string          `json:"dosage"`
	Alarms    []alarmResponse `json:"alarms"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// listMedicationsHandler godoc
// @Summary Listar medicamentos
// @Description Devuelve los medicamentos del usuario con sus alarmas, los más recientes primero. Sin identidad devuelve lista vacía. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags medications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} medicationResponse
// @Failure 502 {string} string "store unavailable"
// @Router /medications [get]
func listMedicationsHandler(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		s, err := mgr.Resolve(r.Context(), claims)
		if err != nil {
			writeError(w, err)
			return
		}

		meds := s.Medications()
		out := make([]medicationResponse, 0, len(meds))
		for _, m := range meds {
			out = append(out, toMedicationResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// createMedicationHandler godoc
// @Summary Crear medicamento
// @Description Crea un medicamento con alarmas opcionales. Si alguna alarma falla después de crear el medicamento, la respuesta indica guardado parcial.
// @Tags medications
// @Accept json
// @Produce json
// @Param payload body saveMedicationRequest true "Datos del medicamento"
// @Success 201 {object} medicationResponse
// @Failure 400 {string} string "invalid json / campos requeridos"
// @Failure 401 {string} string "unauthorized"
// @Router /medications [post]
func createMedicationHandler(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		// El gate va primero: sin identidad nunca se llega a validar
		// el payload (un 400 acá filtraría qué campos faltan).
		if claims.UserID == "" {
			writeError(w, ErrAuthRequired)
			return
		}

		var req saveMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s, err := mgr.Resolve(r.Context(), claims)
		if err != nil {
			writeError(w, err)
			return
		}

		m, err := s.SaveMedication(r.Context(), toSaveInput(req), "")
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toMedicationResponse(m))
	}
}

// updateMedicationHandler godoc
// @Summary Editar medicamento
// @Description Actualiza nombre/dosis y reemplaza el set completo de alarmas. Las alarmas no conservan su ID a través de la edición.
// @Tags medications
// @Accept json
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Param payload body saveMedicationRequest true "Estado completo del formulario"
// @Success 200 {object} medicationResponse
// @Failure 400 {string} string "invalid json / campos requeridos"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID} [put]
func updateMedicationHandler(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		if claims.UserID == "" {
			writeError(w, ErrAuthRequired)
			return
		}
		medicationID := chi.URLParam(r, "medicationID")

		var req saveMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s, err := mgr.Resolve(r.Context(), claims)
		if err != nil {
			writeError(w, err)
			return
		}

		m, err := s.SaveMedication(r.Context(), toSaveInput(req), medicationID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toMedicationResponse(m))
	}
}

// addAlarmHandler godoc
// @Summary Agregar alarma
// @Description Crea una alarma para el medicamento. Requiere al menos un medicamento registrado.
// @Tags alarms
// @Accept json
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Param payload body addAlarmRequest true "Hora (HH:MM 24h) y etiqueta"
// @Success 201 {object} alarmResponse
// @Failure 400 {string} string "invalid json / campos requeridos"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Failure 412 {string} string "no medications registered"
// @Router /medications/{medicationID}/alarms [post]
func addAlarmHandler(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		if claims.UserID == "" {
			writeError(w, ErrAuthRequired)
			return
		}
		medicationID := chi.URLParam(r, "medicationID")

		var req addAlarmRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s, err := mgr.Resolve(r.Context(), claims)
		if err != nil {
			writeError(w, err)
			return
		}

		a, err := s.AddAlarm(r.Context(), medicationID, req.Time, req.Label)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAlarmResponse(a))
	}
}

// listAlarmsHandler godoc
// @Summary Listar alarmas del dashboard
// @Description Vista global de alarmas del usuario, con nombre del medicamento y hora formateada, ordenada por hora ascendente.
// @Tags alarms
// @Produce json
// @Success 200 {array} alarmResponse
// @Failure 502 {string} string "store unavailable"
// @Router /alarms [get]
func listAlarmsHandler(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		s, err := mgr.Resolve(r.Context(), claims)
		if err != nil {
			writeError(w, err)
			return
		}

		alarms := s.Alarms()
		out := make([]alarmResponse, 0, len(alarms))
		for _, a := range alarms {
			out = append(out, toAlarmResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// toggleAlarmHandler godoc
// @Summary Activar/desactivar alarma
// @Description Flipea el flag localmente y lo confirma contra el store; si el store falla, el flag local se revierte.
// @Tags alarms
// @Accept json
// @Produce json
// @Param alarmID path string true "ID de la alarma"
// @Param payload body toggleAlarmRequest true "Nuevo estado"
// @Success 204 {string} string ""
// @Failure 400 {string} string "invalid json / is_active requerido"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "alarm not found"
// @Router /alarms/{alarmID} [patch]
func toggleAlarmHandler(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		if claims.UserID == "" {
			writeError(w, ErrAuthRequired)
			return
		}
		alarmID := chi.URLParam(r, "alarmID")

		var req toggleAlarmRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s, err := mgr.Resolve(r.Context(), claims)
		if err != nil {
			writeError(w, err)
			return
		}

		if err := s.ToggleAlarm(r.Context(), alarmID, *req.IsActive); err != nil {
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func toSaveInput(req saveMedicationRequest) SaveInput {
	specs := make([]medications.AlarmSpec, 0, len(req.Alarms))
	for _, a := range req.Alarms {
		active := true
		if a.IsActive != nil {
			active = *a.IsActive
		}
		specs = append(specs, medications.AlarmSpec{
			Time:     a.Time,
			Label:    a.Label,
			IsActive: active,
		})
	}
	return SaveInput{Name: req.Name, Dosage: req.Dosage, Alarms: specs}
}

func toAlarmResponse(a medications.Alarm) alarmResponse {
	return alarmResponse{
		ID:             a.ID,
		MedicationID:   a.MedicationID,
		Time:           a.Time,
		DisplayTime:    medications.FormatDisplayTime(a.Time),
		Label:          a.Label,
		IsActive:       a.IsActive,
		MedicationName: a.MedicationName,
	}
}

func toMedicationResponse(m medications.Medication) medicationResponse {
	alarms := make([]alarmResponse, 0, len(m.Alarms))
	for _, a := range m.Alarms {
		alarms = append(alarms, toAlarmResponse(a))
	}
	return medicationResponse{
		ID:        m.ID,
		Name:      m.Name,
		Dosage:    m.Dosage,
		Alarms:    alarms,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// writeError mapea los errores del dominio a status HTTP.
// El guardado parcial se distingue del fallo total: el caller tiene que
// saber que parte del formulario sí quedó persistida.
func writeError(w http.ResponseWriter, err error) {
	var partial *PartialSaveError
	if errors.As(err, &partial) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":         partial.Error(),
			"partial":       true,
			"medication_id": partial.MedicationID,
		})
		return
	}

	var store *medications.StoreError
	switch {
	case errors.Is(err, ErrAuthRequired):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrNoMedications):
		http.Error(w, "no medications registered", http.StatusPreconditionFailed)
	case errors.Is(err, medications.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, medications.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &store):
		http.Error(w, "store unavailable", http.StatusBadGateway)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
