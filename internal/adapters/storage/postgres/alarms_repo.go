package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"med-reminder/internal/domain/medications"

	"github.com/google/uuid"
)

type AlarmsRepo struct {
	db *sql.DB
}

func NewAlarmsRepo(db *sql.DB) *AlarmsRepo {
	return &AlarmsRepo{db: db}
}

// querier cubre *sql.DB y *sql.Tx para los checks de ownership.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// medicationOwned falla con ErrNotFound si el medicamento no existe o
// pertenece a otro usuario.
func medicationOwned(ctx context.Context, q querier, ownerUserID, medicationID string) error {
	var one int
	err := q.QueryRowContext(ctx, `
		SELECT 1 FROM medications WHERE id = $1 AND user_id = $2
	`, medicationID, ownerUserID).Scan(&one)
	if err == sql.ErrNoRows {
		return medications.ErrNotFound
	}
	return err
}

func (r *AlarmsRepo) Create(ctx context.Context, ownerUserID, medicationID string, spec medications.AlarmSpec) (medications.Alarm, error) {
	if err := medicationOwned(ctx, r.db, ownerUserID, medicationID); err != nil {
		return medications.Alarm{}, err
	}

	a := medications.Alarm{
		ID:           uuid.NewString(),
		MedicationID: medicationID,
		Time:         spec.Time,
		Label:        spec.Label,
		IsActive:     spec.IsActive,
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO alarms (id, medication_id, time, label, is_active)
		VALUES ($1,$2,$3,$4,$5)
	`,
		a.ID,
		a.MedicationID,
		a.Time,
		a.Label,
		a.IsActive,
	)
	if err != nil {
		return medications.Alarm{}, err
	}
	return a, nil
}

func (r *AlarmsRepo) ListByMedication(ctx context.Context, medicationID string) ([]medications.Alarm, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, medication_id, time, label, is_active
		FROM alarms
		WHERE medication_id = $1
		ORDER BY time ASC
	`, medicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAlarms(rows, false)
}

func (r *AlarmsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]medications.Alarm, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	// Join con el padre para el nombre denormalizado. El desempate fino
	// entre horarios iguales lo resuelve el espejo local (sort estable);
	// acá solo garantizamos orden por hora.
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.medication_id, a.time, a.label, a.is_active, m.name
		FROM alarms a
		JOIN medications m ON m.id = a.medication_id
		WHERE m.user_id = $1
		ORDER BY a.time ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAlarms(rows, true)
}

// ReplaceForMedication borra e inserta en una sola transacción: contra
// Postgres el replace-set no puede quedar a medias, aunque la identidad
// de las alarmas igualmente no sobrevive.
func (r *AlarmsRepo) ReplaceForMedication(ctx context.Context, ownerUserID, medicationID string, specs []medications.AlarmSpec) ([]medications.Alarm, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := medicationOwned(ctx, tx, ownerUserID, medicationID); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM alarms WHERE medication_id = $1`, medicationID); err != nil {
		return nil, err
	}

	out := make([]medications.Alarm, 0, len(specs))
	for _, spec := range specs {
		a := medications.Alarm{
			ID:           uuid.NewString(),
			MedicationID: medicationID,
			Time:         spec.Time,
			Label:        spec.Label,
			IsActive:     spec.IsActive,
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO alarms (id, medication_id, time, label, is_active)
			VALUES ($1,$2,$3,$4,$5)
		`, a.ID, a.MedicationID, a.Time, a.Label, a.IsActive); err != nil {
			return nil, fmt.Errorf("insert alarm: %w", err)
		}
		out = append(out, a)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AlarmsRepo) SetActive(ctx context.Context, ownerUserID, alarmID string, active bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE alarms SET is_active = $3
		FROM medications m
		WHERE alarms.medication_id = m.id
		  AND alarms.id = $1
		  AND m.user_id = $2
	`, alarmID, ownerUserID, active)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medications.ErrNotFound
	}
	return nil
}

func scanAlarms(rows *sql.Rows, withName bool) ([]medications.Alarm, error) {
	out := make([]medications.Alarm, 0)
	for rows.Next() {
		var a medications.Alarm
		var err error
		if withName {
			err = rows.Scan(&a.ID, &a.MedicationID, &a.Time, &a.Label, &a.IsActive, &a.MedicationName)
		} else {
			err = rows.Scan(&a.ID, &a.MedicationID, &a.Time, &a.Label, &a.IsActive)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
