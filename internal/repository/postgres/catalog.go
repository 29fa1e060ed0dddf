package postgres

import (
	"context"
	"fmt"

	"github.com/gb4everrr/fettlemed-backend/internal/model"
)

func (r *catalogRepository) SearchDrugs(ctx context.Context, query string, limit int) ([]*model.DrugCatalogEntry, error) {
	var entries []*model.DrugCatalogEntry
	err := r.db.SelectContext(ctx, &entries, `
		SELECT * FROM drug_catalog
		WHERE active = true AND name ILIKE $1
		ORDER BY name ASC
		LIMIT $2
	`, query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search drugs: %w", err)
	}
	return entries, nil
}

func (r *catalogRepository) SearchDiagnoses(ctx context.Context, query string, limit int) ([]*model.DiagnosisCatalogEntry, error) {
	var entries []*model.DiagnosisCatalogEntry
	err := r.db.SelectContext(ctx, &entries, `
		SELECT * FROM diagnosis_catalog
		WHERE code ILIKE $1 OR description ILIKE $2
		ORDER BY code ASC
		LIMIT $3
	`, query+"%", "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search diagnoses: %w", err)
	}
	return entries, nil
}

func (r *catalogRepository) SearchLabs(ctx context.Context, query string, limit int) ([]*model.LabCatalogEntry, error) {
	var entries []*model.LabCatalogEntry
	err := r.db.SelectContext(ctx, &entries, `
		SELECT * FROM lab_catalog
		WHERE active = true AND test_name ILIKE $1
		ORDER BY test_name ASC
		LIMIT $2
	`, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search labs: %w", err)
	}
	return entries, nil
}
