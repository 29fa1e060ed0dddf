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

// CreateIfAbsent inserts a speculative slot unless one already exists at the
// same UTC start for the doctor, keeping bulk regeneration idempotent.
func (r *slotRepository) CreateIfAbsent(ctx context.Context, slot *model.AppointmentSlot) error {
	slot.ID = uuid.New()
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointment_slots (
			id, clinic_id, clinic_doctor_id, start_time, end_time, booked,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (clinic_doctor_id, clinic_id, start_time) DO NOTHING
	`,
		slot.ID, slot.ClinicID, slot.ClinicDoctorID,
		slot.StartTime, slot.EndTime, slot.Booked,
		slot.CreatedAt, slot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create slot: %w", err)
	}
	return nil
}

func (r *slotRepository) Get(ctx context.Context, id uuid.UUID) (*model.AppointmentSlot, error) {
	var slot model.AppointmentSlot
	err := r.db.GetContext(ctx, &slot, `SELECT * FROM appointment_slots WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("slot", err)
		}
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	return &slot, nil
}

func (r *slotRepository) ListBookedInRange(ctx context.Context, clinicDoctorID, clinicID uuid.UUID, from, to time.Time) ([]*model.AppointmentSlot, error) {
	var slots []*model.AppointmentSlot
	err := r.db.SelectContext(ctx, &slots, `
		SELECT * FROM appointment_slots
		WHERE clinic_doctor_id = $1 AND clinic_id = $2 AND booked = true
		AND start_time >= $3 AND start_time < $4
		ORDER BY start_time ASC
	`, clinicDoctorID, clinicID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list booked slots: %w", err)
	}
	return slots, nil
}

func (r *slotRepository) ListFreeInRange(ctx context.Context, clinicDoctorID, clinicID uuid.UUID, from, to time.Time) ([]*model.AppointmentSlot, error) {
	var slots []*model.AppointmentSlot
	err := r.db.SelectContext(ctx, &slots, `
		SELECT * FROM appointment_slots
		WHERE clinic_doctor_id = $1 AND clinic_id = $2 AND booked = false
		AND start_time >= $3 AND start_time < $4
		ORDER BY start_time ASC
	`, clinicDoctorID, clinicID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list free slots: %w", err)
	}
	return slots, nil
}

func (r *slotRepository) DeleteUnbookedInRange(ctx context.Context, clinicDoctorID, clinicID uuid.UUID, from, to time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM appointment_slots
		WHERE clinic_doctor_id = $1 AND clinic_id = $2 AND booked = false
		AND start_time >= $3 AND start_time < $4
	`, clinicDoctorID, clinicID, from, to)
	if err != nil {
		return fmt.Errorf("failed to delete unbooked slots: %w", err)
	}
	return nil
}

func (r *slotRepository) SetBooked(ctx context.Context, id uuid.UUID, booked bool) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE appointment_slots SET booked = $1, updated_at = $2 WHERE id = $3
	`, booked, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update slot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("slot", nil)
	}
	return nil
}
