package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/gb4everrr/fettlemed-backend/internal/model"
	apperrors "github.com/gb4everrr/fettlemed-backend/pkg/errors"
)

func (r *vitalsRepository) CreateConfig(ctx context.Context, cfg *model.ClinicVitalConfig) error {
	cfg.ID = uuid.New()
	cfg.CreatedAt = time.Now()
	cfg.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clinic_vital_configs (id, clinic_id, vital_name, unit, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, cfg.ID, cfg.ClinicID, cfg.VitalName, cfg.Unit, cfg.Active, cfg.CreatedAt, cfg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create vital config: %w", err)
	}
	return nil
}

func (r *vitalsRepository) ListConfigs(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicVitalConfig, error) {
	var configs []*model.ClinicVitalConfig
	err := r.db.SelectContext(ctx, &configs, `
		SELECT * FROM clinic_vital_configs WHERE clinic_id = $1 ORDER BY vital_name ASC
	`, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vital configs: %w", err)
	}
	return configs, nil
}

func (r *vitalsRepository) UpdateConfig(ctx context.Context, cfg *model.ClinicVitalConfig) error {
	cfg.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, `
		UPDATE clinic_vital_configs SET vital_name = $1, unit = $2, active = $3, updated_at = $4
		WHERE id = $5 AND clinic_id = $6
	`, cfg.VitalName, cfg.Unit, cfg.Active, cfg.UpdatedAt, cfg.ID, cfg.ClinicID)
	if err != nil {
		return fmt.Errorf("failed to update vital config: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("vital config", nil)
	}
	return nil
}

func (r *vitalsRepository) CreateEntry(ctx context.Context, entry *model.VitalsEntry, values []*model.VitalsRecordedValue) error {
	now := time.Now()
	entry.ID = uuid.New()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO vitals_entries (
				id, clinic_id, clinic_patient_id, appointment_id, recorded_by,
				entry_date, entry_time, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			entry.ID, entry.ClinicID, entry.ClinicPatientID, entry.AppointmentID,
			entry.RecordedBy, entry.EntryDate, entry.EntryTime, entry.CreatedAt, entry.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create vitals entry: %w", err)
		}

		for _, v := range values {
			v.ID = uuid.New()
			v.EntryID = entry.ID
			v.CreatedAt = now
			v.UpdatedAt = now

			_, err = tx.ExecContext(ctx, `
				INSERT INTO vitals_recorded_values (id, entry_id, config_id, vital_value, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, v.ID, v.EntryID, v.ConfigID, v.VitalValue, v.CreatedAt, v.UpdatedAt)
			if err != nil {
				return fmt.Errorf("failed to record vital value: %w", err)
			}
		}
		return nil
	})
}

func (r *vitalsRepository) ListEntriesForPatient(ctx context.Context, clinicPatientID, clinicID uuid.UUID) ([]*model.VitalsEntry, error) {
	var entries []*model.VitalsEntry
	err := r.db.SelectContext(ctx, &entries, `
		SELECT * FROM vitals_entries
		WHERE clinic_patient_id = $1 AND clinic_id = $2
		ORDER BY entry_date DESC, entry_time DESC
	`, clinicPatientID, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vitals entries: %w", err)
	}
	return entries, nil
}

func (r *vitalsRepository) ListValuesForEntry(ctx context.Context, entryID uuid.UUID) ([]*model.VitalsRecordedValue, error) {
	var values []*model.VitalsRecordedValue
	err := r.db.SelectContext(ctx, &values, `
		SELECT * FROM vitals_recorded_values WHERE entry_id = $1
	`, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recorded values: %w", err)
	}
	return values, nil
}
