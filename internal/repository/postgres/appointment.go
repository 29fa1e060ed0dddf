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

// overlapQuery matches any non-cancelled standard appointment whose interval
// intersects [start, end). Walk-ins and emergencies never block a window.
const overlapQuery = `
	SELECT COUNT(*) FROM appointments
	WHERE clinic_doctor_id = $1 AND clinic_id = $2
	AND status != $3 AND appointment_type = $4
	AND datetime_start < $5 AND datetime_end > $6
`

func (r *appointmentRepository) CreateBooked(ctx context.Context, appt *model.Appointment, slot *model.AppointmentSlot) error {
	now := time.Now()
	appt.ID = uuid.New()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	slot.ID = uuid.New()
	slot.Booked = true
	slot.CreatedAt = now
	slot.UpdatedAt = now
	appt.SlotID = &slot.ID

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var count int
		err := tx.GetContext(ctx, &count, overlapQuery,
			appt.ClinicDoctorID, appt.ClinicID,
			model.AppointmentStatusCancelled, model.AppointmentTypeBooked,
			appt.DatetimeEnd, appt.DatetimeStart,
		)
		if err != nil {
			return fmt.Errorf("failed to check for conflicts: %w", err)
		}
		if count > 0 {
			return apperrors.BadRequest("Time slot is already booked", nil)
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE appointment_slots SET booked = true, updated_at = $1
			WHERE clinic_doctor_id = $2 AND clinic_id = $3 AND start_time = $4 AND booked = false
		`, now, appt.ClinicDoctorID, appt.ClinicID, slot.StartTime)
		if err != nil {
			return fmt.Errorf("failed to book slot: %w", err)
		}
		updated, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if updated > 0 {
			// An existing speculative slot was claimed; reuse its id.
			var existingID uuid.UUID
			err = tx.GetContext(ctx, &existingID, `
				SELECT id FROM appointment_slots
				WHERE clinic_doctor_id = $1 AND clinic_id = $2 AND start_time = $3
			`, appt.ClinicDoctorID, appt.ClinicID, slot.StartTime)
			if err != nil {
				return fmt.Errorf("failed to load booked slot: %w", err)
			}
			slot.ID = existingID
			appt.SlotID = &existingID
		} else {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO appointment_slots (
					id, clinic_id, clinic_doctor_id, start_time, end_time, booked,
					created_at, updated_at
				) VALUES ($1, $2, $3, $4, $5, true, $6, $7)
			`,
				slot.ID, slot.ClinicID, slot.ClinicDoctorID,
				slot.StartTime, slot.EndTime, slot.CreatedAt, slot.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to create slot: %w", err)
			}
		}

		_, err = tx.ExecContext(ctx, insertAppointmentQuery,
			appt.ID, appt.ClinicID, appt.ClinicDoctorID, appt.ClinicPatientID,
			appt.SlotID, appt.DatetimeStart, appt.DatetimeEnd,
			appt.Status, appt.Type, appt.ArrivalTime, appt.Notes,
			appt.CreatedAt, appt.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		return nil
	})
}

const insertAppointmentQuery = `
	INSERT INTO appointments (
		id, clinic_id, clinic_doctor_id, clinic_patient_id, slot_id,
		datetime_start, datetime_end, status, appointment_type,
		arrival_time, notes, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`

// Create inserts an appointment without slot bookkeeping. Used for walk-ins
// and emergencies, which bypass the slot grid entirely.
func (r *appointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	appt.ID = uuid.New()
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, insertAppointmentQuery,
		appt.ID, appt.ClinicID, appt.ClinicDoctorID, appt.ClinicPatientID,
		appt.SlotID, appt.DatetimeStart, appt.DatetimeEnd,
		appt.Status, appt.Type, appt.ArrivalTime, appt.Notes,
		appt.CreatedAt, appt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id, clinicID uuid.UUID) (*model.Appointment, error) {
	var appt model.Appointment
	err := r.db.GetContext(ctx, &appt, `
		SELECT * FROM appointments WHERE id = $1 AND clinic_id = $2
	`, id, clinicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appt, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appt *model.Appointment) error {
	appt.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, `
		UPDATE appointments SET
			status = $1, appointment_type = $2, arrival_time = $3, notes = $4,
			datetime_start = $5, datetime_end = $6, updated_at = $7
		WHERE id = $8 AND clinic_id = $9
	`,
		appt.Status, appt.Type, appt.ArrivalTime, appt.Notes,
		appt.DatetimeStart, appt.DatetimeEnd, appt.UpdatedAt,
		appt.ID, appt.ClinicID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE clinic_id = $1`
	args := []interface{}{filters.ClinicID}

	if filters.ClinicDoctorID != nil {
		args = append(args, *filters.ClinicDoctorID)
		query += fmt.Sprintf(" AND clinic_doctor_id = $%d", len(args))
	}
	if filters.ClinicPatientID != nil {
		args = append(args, *filters.ClinicPatientID)
		query += fmt.Sprintf(" AND clinic_patient_id = $%d", len(args))
	}
	if filters.Status != nil {
		args = append(args, *filters.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filters.StartDate != nil {
		args = append(args, *filters.StartDate)
		query += fmt.Sprintf(" AND datetime_start >= $%d", len(args))
	}
	if filters.EndDate != nil {
		args = append(args, *filters.EndDate)
		query += fmt.Sprintf(" AND datetime_start < $%d", len(args))
	}
	query += " ORDER BY datetime_start ASC"

	var appts []*model.Appointment
	if err := r.db.SelectContext(ctx, &appts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}

func (r *appointmentRepository) HasOverlap(ctx context.Context, clinicDoctorID, clinicID uuid.UUID, start, end time.Time) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count, overlapQuery,
		clinicDoctorID, clinicID,
		model.AppointmentStatusCancelled, model.AppointmentTypeBooked,
		end, start,
	)
	if err != nil {
		return false, fmt.Errorf("failed to check for conflicts: %w", err)
	}
	return count > 0, nil
}

func (r *appointmentRepository) Reschedule(ctx context.Context, appt *model.Appointment, oldSlotID *uuid.UUID, newSlot *model.AppointmentSlot) error {
	now := time.Now()

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE appointment_slots SET booked = true, updated_at = $1
			WHERE id = $2 AND clinic_id = $3 AND booked = false
		`, now, newSlot.ID, newSlot.ClinicID)
		if err != nil {
			return fmt.Errorf("failed to book new slot: %w", err)
		}
		booked, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if booked == 0 {
			return apperrors.BadRequest("Time slot is already booked", nil)
		}

		if oldSlotID != nil {
			_, err = tx.ExecContext(ctx, `
				UPDATE appointment_slots SET booked = false, updated_at = $1 WHERE id = $2
			`, now, *oldSlotID)
			if err != nil {
				return fmt.Errorf("failed to release old slot: %w", err)
			}
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE appointments SET
				slot_id = $1, datetime_start = $2, datetime_end = $3,
				status = $4, updated_at = $5
			WHERE id = $6 AND clinic_id = $7
		`,
			newSlot.ID, newSlot.StartTime, newSlot.EndTime,
			model.AppointmentStatusPending, now,
			appt.ID, appt.ClinicID,
		)
		if err != nil {
			return fmt.Errorf("failed to move appointment: %w", err)
		}
		return nil
	})
}

func (r *appointmentRepository) CancelAndRelease(ctx context.Context, appt *model.Appointment) error {
	now := time.Now()

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			UPDATE appointments SET status = $1, updated_at = $2
			WHERE id = $3 AND clinic_id = $4
		`, model.AppointmentStatusCancelled, now, appt.ID, appt.ClinicID)
		if err != nil {
			return fmt.Errorf("failed to cancel appointment: %w", err)
		}

		if appt.SlotID != nil {
			_, err = tx.ExecContext(ctx, `
				UPDATE appointment_slots SET booked = false, updated_at = $1 WHERE id = $2
			`, now, *appt.SlotID)
			if err != nil {
				return fmt.Errorf("failed to release slot: %w", err)
			}
		}
		return nil
	})
}
