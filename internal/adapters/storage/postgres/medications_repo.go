package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"med-reminder/internal/domain/medications"

	"github.com/google/uuid"
)

type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

func (r *MedicationsRepo) Create(ctx context.Context, ownerUserID, name, dosage string) (medications.Medication, error) {
	now := time.Now().UTC()
	m := medications.Medication{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        name,
		Dosage:      dosage,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medications (
			id, user_id, name, dosage, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		m.ID,
		m.OwnerUserID,
		m.Name,
		m.Dosage,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return medications.Medication{}, err
	}
	return m, nil
}

// Update acota por owner: una fila ajena cuenta como inexistente.
func (r *MedicationsRepo) Update(ctx context.Context, ownerUserID, id, name, dosage string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medications
		SET name = $3, dosage = $4, updated_at = $5
		WHERE id = $1 AND user_id = $2
	`,
		id,
		ownerUserID,
		name,
		dosage,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medications.ErrNotFound
	}
	return nil
}

func (r *MedicationsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]medications.Medication, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, dosage, created_at, updated_at
		FROM medications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.Medication, 0)
	for rows.Next() {
		var m medications.Medication
		if err := rows.Scan(
			&m.ID,
			&m.OwnerUserID,
			&m.Name,
			&m.Dosage,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, rows.Err()
}
