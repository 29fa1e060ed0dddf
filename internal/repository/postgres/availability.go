package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gb4everrr/fettlemed-backend/internal/model"
	apperrors "github.com/gb4everrr/fettlemed-backend/pkg/errors"
)

func (r *availabilityRepository) Create(ctx context.Context, a *model.DoctorAvailability) error {
	a.ID = uuid.New()
	a.Active = true
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO doctor_availability (
			id, clinic_doctor_id, clinic_id, weekday, start_time, end_time,
			active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		a.ID, a.ClinicDoctorID, a.ClinicID, a.Weekday,
		a.StartTime, a.EndTime, a.Active, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create availability: %w", err)
	}
	return nil
}

func (r *availabilityRepository) Update(ctx context.Context, a *model.DoctorAvailability) error {
	a.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, `
		UPDATE doctor_availability
		SET weekday = $1, start_time = $2, end_time = $3, active = $4, updated_at = $5
		WHERE id = $6 AND clinic_id = $7
	`,
		a.Weekday, a.StartTime, a.EndTime, a.Active, a.UpdatedAt,
		a.ID, a.ClinicID,
	)
	if err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("availability", nil)
	}
	return nil
}

func (r *availabilityRepository) Delete(ctx context.Context, id, clinicID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM doctor_availability WHERE id = $1 AND clinic_id = $2
	`, id, clinicID)
	if err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("availability", nil)
	}
	return nil
}

func (r *availabilityRepository) ListForClinic(ctx context.Context, clinicID uuid.UUID) ([]*model.DoctorAvailability, error) {
	var records []*model.DoctorAvailability
	err := r.db.SelectContext(ctx, &records, `
		SELECT * FROM doctor_availability
		WHERE clinic_id = $1
		ORDER BY weekday ASC, start_time ASC
	`, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	return records, nil
}

func (r *availabilityRepository) ListForWeekday(ctx context.Context, clinicDoctorID, clinicID uuid.UUID, weekday time.Weekday) ([]*model.DoctorAvailability, error) {
	var records []*model.DoctorAvailability
	err := r.db.SelectContext(ctx, &records, `
		SELECT * FROM doctor_availability
		WHERE clinic_doctor_id = $1 AND clinic_id = $2 AND weekday = $3 AND active = true
		ORDER BY start_time ASC
	`, clinicDoctorID, clinicID, weekday)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability for weekday: %w", err)
	}
	return records, nil
}

func (r *availabilityRepository) UpsertException(ctx context.Context, e *model.AvailabilityException) error {
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	e.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO availability_exceptions (
			id, clinic_doctor_id, clinic_id, date, start_time, end_time,
			is_available, note, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (clinic_doctor_id, clinic_id, date, start_time) DO UPDATE
		SET end_time = EXCLUDED.end_time,
			is_available = EXCLUDED.is_available,
			note = EXCLUDED.note,
			updated_at = EXCLUDED.updated_at
	`,
		e.ID, e.ClinicDoctorID, e.ClinicID, e.Date, e.StartTime,
		e.EndTime, e.IsAvailable, e.Note, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert exception: %w", err)
	}
	return nil
}

func (r *availabilityRepository) DeleteException(ctx context.Context, id, clinicID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM availability_exceptions WHERE id = $1 AND clinic_id = $2
	`, id, clinicID)
	if err != nil {
		return fmt.Errorf("failed to delete exception: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("exception", nil)
	}
	return nil
}

func (r *availabilityRepository) ListExceptions(ctx context.Context, clinicID uuid.UUID) ([]*model.AvailabilityException, error) {
	var exceptions []*model.AvailabilityException
	err := r.db.SelectContext(ctx, &exceptions, `
		SELECT * FROM availability_exceptions
		WHERE clinic_id = $1
		ORDER BY date ASC, start_time ASC
	`, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list exceptions: %w", err)
	}
	return exceptions, nil
}

func (r *availabilityRepository) ListExceptionsForDate(ctx context.Context, clinicDoctorID, clinicID uuid.UUID, date string) ([]*model.AvailabilityException, error) {
	var exceptions []*model.AvailabilityException
	err := r.db.SelectContext(ctx, &exceptions, `
		SELECT * FROM availability_exceptions
		WHERE clinic_doctor_id = $1 AND clinic_id = $2 AND date = $3
		ORDER BY start_time ASC
	`, clinicDoctorID, clinicID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list exceptions for date: %w", err)
	}
	return exceptions, nil
}
