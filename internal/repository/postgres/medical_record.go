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

// SavePrescription upserts on the appointment: each encounter keeps a single
// prescription document that subsequent saves replace.
func (r *medicalRecordRepository) SavePrescription(ctx context.Context, p *model.Prescription) error {
	now := time.Now()
	p.ID = uuid.New()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO prescriptions (id, clinic_id, appointment_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (appointment_id) DO UPDATE SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at
	`, p.ID, p.ClinicID, p.AppointmentID, p.Content, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save prescription: %w", err)
	}
	return nil
}

func (r *medicalRecordRepository) GetPrescription(ctx context.Context, appointmentID, clinicID uuid.UUID) (*model.Prescription, error) {
	var p model.Prescription
	err := r.db.GetContext(ctx, &p, `
		SELECT * FROM prescriptions WHERE appointment_id = $1 AND clinic_id = $2
	`, appointmentID, clinicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("prescription", err)
		}
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return &p, nil
}

func (r *medicalRecordRepository) SaveConsultationNote(ctx context.Context, n *model.ConsultationNote) error {
	now := time.Now()
	n.ID = uuid.New()
	n.CreatedAt = now
	n.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO consultation_notes (id, clinic_id, appointment_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (appointment_id) DO UPDATE SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at
	`, n.ID, n.ClinicID, n.AppointmentID, n.Content, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save consultation note: %w", err)
	}
	return nil
}

func (r *medicalRecordRepository) GetConsultationNote(ctx context.Context, appointmentID, clinicID uuid.UUID) (*model.ConsultationNote, error) {
	var n model.ConsultationNote
	err := r.db.GetContext(ctx, &n, `
		SELECT * FROM consultation_notes WHERE appointment_id = $1 AND clinic_id = $2
	`, appointmentID, clinicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("consultation note", err)
		}
		return nil, fmt.Errorf("failed to get consultation note: %w", err)
	}
	return &n, nil
}

func (r *medicalRecordRepository) AddDiagnosis(ctx context.Context, d *model.AppointmentDiagnosis) error {
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	d.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointment_diagnoses (id, clinic_id, appointment_id, catalog_id, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, d.ID, d.ClinicID, d.AppointmentID, d.CatalogID, d.Notes, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to add diagnosis: %w", err)
	}
	return nil
}

func (r *medicalRecordRepository) RemoveDiagnosis(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointment_diagnoses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to remove diagnosis: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("diagnosis", nil)
	}
	return nil
}

func (r *medicalRecordRepository) ListDiagnoses(ctx context.Context, appointmentID uuid.UUID) ([]*model.AppointmentDiagnosis, error) {
	var diagnoses []*model.AppointmentDiagnosis
	err := r.db.SelectContext(ctx, &diagnoses, `
		SELECT * FROM appointment_diagnoses WHERE appointment_id = $1 ORDER BY created_at ASC
	`, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list diagnoses: %w", err)
	}
	return diagnoses, nil
}

func (r *medicalRecordRepository) AddLabOrder(ctx context.Context, o *model.LabOrder) error {
	o.ID = uuid.New()
	o.CreatedAt = time.Now()
	o.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lab_orders (id, clinic_id, appointment_id, catalog_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, o.ID, o.ClinicID, o.AppointmentID, o.CatalogID, o.Status, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to add lab order: %w", err)
	}
	return nil
}

func (r *medicalRecordRepository) RemoveLabOrder(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM lab_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to remove lab order: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("lab order", nil)
	}
	return nil
}

func (r *medicalRecordRepository) ListLabOrders(ctx context.Context, appointmentID uuid.UUID) ([]*model.LabOrder, error) {
	var orders []*model.LabOrder
	err := r.db.SelectContext(ctx, &orders, `
		SELECT * FROM lab_orders WHERE appointment_id = $1 ORDER BY created_at ASC
	`, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lab orders: %w", err)
	}
	return orders, nil
}
