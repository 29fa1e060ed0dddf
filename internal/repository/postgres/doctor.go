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

// CreateWithAssignment inserts the clinic doctor and, when sa is non-nil (the
// doctor already holds a user account), the matching staff assignment. The
// two writes are one transaction: a doctor without their permission grant is
// an invariant violation.
func (r *doctorRepository) CreateWithAssignment(ctx context.Context, doctor *model.ClinicDoctor, sa *model.ClinicStaffAssignment) error {
	doctor.ID = uuid.New()
	doctor.Active = true
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = time.Now()

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO clinic_doctors (
				id, clinic_id, global_doctor_id, first_name, last_name,
				email, phone_number, address, specialization,
				medical_reg_no, started_date, active, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		`,
			doctor.ID, doctor.ClinicID, doctor.GlobalDoctorID,
			doctor.FirstName, doctor.LastName, doctor.Email,
			doctor.PhoneNumber, doctor.Address, doctor.Specialization,
			doctor.MedicalRegNo, doctor.StartedDate, doctor.Active,
			doctor.CreatedAt, doctor.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to create clinic doctor: %w", err)
		}

		if sa != nil {
			sa.ID = uuid.New()
			sa.ClinicID = doctor.ClinicID
			sa.Active = true
			sa.CreatedAt = doctor.CreatedAt
			sa.UpdatedAt = doctor.UpdatedAt
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO clinic_staff_assignments (
					id, user_id, clinic_id, role, custom_permissions, active,
					created_at, updated_at
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				ON CONFLICT (user_id, clinic_id) DO UPDATE
				SET role = EXCLUDED.role, active = true, updated_at = EXCLUDED.updated_at
			`,
				sa.ID, sa.UserID, sa.ClinicID, sa.Role,
				sa.CustomPermissions, sa.Active, sa.CreatedAt, sa.UpdatedAt,
			); err != nil {
				return fmt.Errorf("failed to create doctor staff assignment: %w", err)
			}
		}
		return nil
	})
}

func (r *doctorRepository) Get(ctx context.Context, id, clinicID uuid.UUID) (*model.ClinicDoctor, error) {
	var doctor model.ClinicDoctor
	err := r.db.GetContext(ctx, &doctor, `
		SELECT * FROM clinic_doctors WHERE id = $1 AND clinic_id = $2
	`, id, clinicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("doctor", err)
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicDoctor, error) {
	var doctors []*model.ClinicDoctor
	err := r.db.SelectContext(ctx, &doctors, `
		SELECT * FROM clinic_doctors WHERE clinic_id = $1 ORDER BY last_name ASC
	`, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.ClinicDoctor) error {
	doctor.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, `
		UPDATE clinic_doctors
		SET first_name = $1, last_name = $2, email = $3, phone_number = $4,
			address = $5, specialization = $6, medical_reg_no = $7,
			started_date = $8, active = $9, updated_at = $10
		WHERE id = $11 AND clinic_id = $12
	`,
		doctor.FirstName, doctor.LastName, doctor.Email, doctor.PhoneNumber,
		doctor.Address, doctor.Specialization, doctor.MedicalRegNo,
		doctor.StartedDate, doctor.Active, doctor.UpdatedAt,
		doctor.ID, doctor.ClinicID,
	)
	if err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("doctor", nil)
	}
	return nil
}

// Deactivate retires the doctor profile and, when the doctor is linked to a
// user account, their staff assignment in the same transaction. A deactivated
// doctor must not keep passing the authorization gate.
func (r *doctorRepository) Deactivate(ctx context.Context, id, clinicID uuid.UUID) error {
	now := time.Now()

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var globalID uuid.NullUUID
		err := tx.GetContext(ctx, &globalID, `
			UPDATE clinic_doctors SET active = false, updated_at = $1
			WHERE id = $2 AND clinic_id = $3
			RETURNING global_doctor_id
		`, now, id, clinicID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NotFound("doctor", err)
			}
			return fmt.Errorf("failed to deactivate doctor: %w", err)
		}

		if globalID.Valid {
			_, err = tx.ExecContext(ctx, `
				UPDATE clinic_staff_assignments SET active = false, updated_at = $1
				WHERE user_id = $2 AND clinic_id = $3
			`, now, globalID.UUID, clinicID)
			if err != nil {
				return fmt.Errorf("failed to deactivate staff assignment: %w", err)
			}
		}
		return nil
	})
}
