package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/gb4everrr/fettlemed-backend/internal/model"
	apperrors "github.com/gb4everrr/fettlemed-backend/pkg/errors"
)

func (r *clinicRepository) CreateWithOwner(ctx context.Context, clinic *model.Clinic, owner *model.ClinicStaffAssignment) error {
	clinic.ID = uuid.New()
	clinic.CreatedAt = time.Now()
	clinic.UpdatedAt = time.Now()

	owner.ID = uuid.New()
	owner.ClinicID = clinic.ID
	owner.Active = true
	owner.CreatedAt = clinic.CreatedAt
	owner.UpdatedAt = clinic.UpdatedAt

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO clinics (
				id, name, address, email, phone, timezone, parent_id,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			clinic.ID, clinic.Name, clinic.Address, clinic.Email,
			clinic.Phone, clinic.Timezone, clinic.ParentID,
			clinic.CreatedAt, clinic.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to create clinic: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO clinic_staff_assignments (
				id, user_id, clinic_id, role, custom_permissions, active,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			owner.ID, owner.UserID, owner.ClinicID, owner.Role,
			owner.CustomPermissions, owner.Active,
			owner.CreatedAt, owner.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to create owner assignment: %w", err)
		}
		return nil
	})
}

func (r *clinicRepository) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	var clinic model.Clinic
	err := r.db.GetContext(ctx, &clinic, `SELECT * FROM clinics WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("clinic", err)
		}
		return nil, fmt.Errorf("failed to get clinic: %w", err)
	}
	return &clinic, nil
}

func (r *clinicRepository) Update(ctx context.Context, clinic *model.Clinic) error {
	clinic.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, `
		UPDATE clinics
		SET name = $1, address = $2, email = $3, phone = $4, timezone = $5, updated_at = $6
		WHERE id = $7
	`,
		clinic.Name, clinic.Address, clinic.Email, clinic.Phone,
		clinic.Timezone, clinic.UpdatedAt, clinic.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update clinic: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("clinic", nil)
	}
	return nil
}

func (r *clinicRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Clinic, error) {
	var clinics []*model.Clinic
	err := r.db.SelectContext(ctx, &clinics, `
		SELECT c.* FROM clinics c
		JOIN clinic_staff_assignments sa ON sa.clinic_id = c.id
		WHERE sa.user_id = $1 AND sa.active = true
		ORDER BY c.name ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clinics for user: %w", err)
	}
	return clinics, nil
}
