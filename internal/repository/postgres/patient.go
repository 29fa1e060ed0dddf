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

func (r *patientRepository) Create(ctx context.Context, patient *model.ClinicPatient) error {
	patient.ID = uuid.New()
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clinic_patients (
			id, clinic_id, global_patient_id, first_name, last_name,
			email, phone_number, address, emergency_contact,
			patient_code, clinic_notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		patient.ID, patient.ClinicID, patient.GlobalPatientID,
		patient.FirstName, patient.LastName, patient.Email,
		patient.PhoneNumber, patient.Address, patient.EmergencyContact,
		patient.PatientCode, patient.ClinicNotes,
		patient.CreatedAt, patient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create clinic patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id, clinicID uuid.UUID) (*model.ClinicPatient, error) {
	var patient model.ClinicPatient
	err := r.db.GetContext(ctx, &patient, `
		SELECT * FROM clinic_patients WHERE id = $1 AND clinic_id = $2
	`, id, clinicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicPatient, error) {
	var patients []*model.ClinicPatient
	err := r.db.SelectContext(ctx, &patients, `
		SELECT * FROM clinic_patients WHERE clinic_id = $1 ORDER BY last_name ASC
	`, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.ClinicPatient) error {
	patient.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, `
		UPDATE clinic_patients
		SET first_name = $1, last_name = $2, email = $3, phone_number = $4,
			address = $5, emergency_contact = $6, patient_code = $7,
			clinic_notes = $8, updated_at = $9
		WHERE id = $10 AND clinic_id = $11
	`,
		patient.FirstName, patient.LastName, patient.Email,
		patient.PhoneNumber, patient.Address, patient.EmergencyContact,
		patient.PatientCode, patient.ClinicNotes, patient.UpdatedAt,
		patient.ID, patient.ClinicID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("patient", nil)
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id, clinicID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM clinic_patients WHERE id = $1 AND clinic_id = $2
	`, id, clinicID)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("patient", nil)
	}
	return nil
}
