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

func (r *invoiceRepository) CreateService(ctx context.Context, svc *model.ClinicService) error {
	svc.ID = uuid.New()
	svc.CreatedAt = time.Now()
	svc.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clinic_services (id, clinic_id, name, price, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, svc.ID, svc.ClinicID, svc.Name, svc.Price, svc.Active, svc.CreatedAt, svc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *invoiceRepository) GetService(ctx context.Context, id, clinicID uuid.UUID) (*model.ClinicService, error) {
	var svc model.ClinicService
	err := r.db.GetContext(ctx, &svc, `
		SELECT * FROM clinic_services WHERE id = $1 AND clinic_id = $2
	`, id, clinicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("service", err)
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &svc, nil
}

func (r *invoiceRepository) ListServices(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicService, error) {
	var services []*model.ClinicService
	err := r.db.SelectContext(ctx, &services, `
		SELECT * FROM clinic_services WHERE clinic_id = $1 ORDER BY name ASC
	`, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *invoiceRepository) UpdateService(ctx context.Context, svc *model.ClinicService) error {
	svc.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, `
		UPDATE clinic_services SET name = $1, price = $2, active = $3, updated_at = $4
		WHERE id = $5 AND clinic_id = $6
	`, svc.Name, svc.Price, svc.Active, svc.UpdatedAt, svc.ID, svc.ClinicID)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("service", nil)
	}
	return nil
}

// CreateInvoice allocates the next per-clinic invoice number and inserts the
// invoice with its lines in one transaction.
func (r *invoiceRepository) CreateInvoice(ctx context.Context, inv *model.Invoice, lines []*model.InvoiceLine) error {
	now := time.Now()
	inv.ID = uuid.New()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &inv.InvoiceNo, `
			SELECT COALESCE(MAX(invoice_no), 0) + 1 FROM invoices WHERE clinic_id = $1
		`, inv.ClinicID)
		if err != nil {
			return fmt.Errorf("failed to allocate invoice number: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO invoices (
				id, clinic_id, clinic_patient_id, appointment_id, invoice_no,
				total_amount, notes, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			inv.ID, inv.ClinicID, inv.ClinicPatientID, inv.AppointmentID,
			inv.InvoiceNo, inv.TotalAmount, inv.Notes, inv.CreatedAt, inv.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		for _, line := range lines {
			line.ID = uuid.New()
			line.InvoiceID = inv.ID
			line.CreatedAt = now
			line.UpdatedAt = now

			_, err = tx.ExecContext(ctx, `
				INSERT INTO invoice_lines (id, invoice_id, service_id, quantity, amount, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, line.ID, line.InvoiceID, line.ServiceID, line.Quantity, line.Amount, line.CreatedAt, line.UpdatedAt)
			if err != nil {
				return fmt.Errorf("failed to create invoice line: %w", err)
			}
		}
		return nil
	})
}

func (r *invoiceRepository) GetInvoice(ctx context.Context, id, clinicID uuid.UUID) (*model.Invoice, []*model.InvoiceLine, error) {
	var inv model.Invoice
	err := r.db.GetContext(ctx, &inv, `
		SELECT * FROM invoices WHERE id = $1 AND clinic_id = $2
	`, id, clinicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, apperrors.NotFound("invoice", err)
		}
		return nil, nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	var lines []*model.InvoiceLine
	err = r.db.SelectContext(ctx, &lines, `
		SELECT * FROM invoice_lines WHERE invoice_id = $1 ORDER BY created_at ASC
	`, inv.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get invoice lines: %w", err)
	}
	return &inv, lines, nil
}

func (r *invoiceRepository) ListInvoices(ctx context.Context, clinicID uuid.UUID) ([]*model.Invoice, error) {
	var invoices []*model.Invoice
	err := r.db.SelectContext(ctx, &invoices, `
		SELECT * FROM invoices WHERE clinic_id = $1 ORDER BY invoice_no DESC
	`, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}
