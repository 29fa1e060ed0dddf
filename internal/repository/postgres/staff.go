package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gb4everrr/fettlemed-backend/internal/model"
	apperrors "github.com/gb4everrr/fettlemed-backend/pkg/errors"
)

func (r *staffAssignmentRepository) Get(ctx context.Context, userID, clinicID uuid.UUID) (*model.ClinicStaffAssignment, error) {
	var sa model.ClinicStaffAssignment
	err := r.db.GetContext(ctx, &sa, `
		SELECT * FROM clinic_staff_assignments
		WHERE user_id = $1 AND clinic_id = $2
	`, userID, clinicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("staff assignment", err)
		}
		return nil, fmt.Errorf("failed to get staff assignment: %w", err)
	}
	return &sa, nil
}

func (r *staffAssignmentRepository) Create(ctx context.Context, sa *model.ClinicStaffAssignment) error {
	sa.ID = uuid.New()
	sa.CreatedAt = time.Now()
	sa.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clinic_staff_assignments (
			id, user_id, clinic_id, role, custom_permissions, active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		sa.ID, sa.UserID, sa.ClinicID, sa.Role,
		sa.CustomPermissions, sa.Active, sa.CreatedAt, sa.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create staff assignment: %w", err)
	}
	return nil
}

func (r *staffAssignmentRepository) Update(ctx context.Context, sa *model.ClinicStaffAssignment) error {
	sa.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, `
		UPDATE clinic_staff_assignments
		SET role = $1, custom_permissions = $2, active = $3, updated_at = $4
		WHERE user_id = $5 AND clinic_id = $6
	`,
		sa.Role, sa.CustomPermissions, sa.Active, sa.UpdatedAt,
		sa.UserID, sa.ClinicID,
	)
	if err != nil {
		return fmt.Errorf("failed to update staff assignment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("staff assignment", nil)
	}
	return nil
}

func (r *staffAssignmentRepository) ListForClinic(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicStaffAssignment, error) {
	var assignments []*model.ClinicStaffAssignment
	err := r.db.SelectContext(ctx, &assignments, `
		SELECT * FROM clinic_staff_assignments
		WHERE clinic_id = $1
		ORDER BY created_at ASC
	`, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff assignments: %w", err)
	}
	return assignments, nil
}
