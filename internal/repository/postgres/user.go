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

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (
			id, email, password_hash, role, first_name, last_name,
			phone_number, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.FirstName,
		user.LastName,
		user.PhoneNumber,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// CreateAndLinkProfiles registers the user and, in the same transaction,
// claims any ghost clinic profiles sharing the phone number. All-or-nothing:
// a linked profile without an account (or the reverse) must never persist.
func (r *userRepository) CreateAndLinkProfiles(ctx context.Context, user *model.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO users (
				id, email, password_hash, role, first_name, last_name,
				phone_number, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		if _, err := tx.ExecContext(ctx, query,
			user.ID, user.Email, user.PasswordHash, user.Role,
			user.FirstName, user.LastName, user.PhoneNumber,
			user.CreatedAt, user.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		switch user.Role {
		case model.UserRolePatient:
			if _, err := tx.ExecContext(ctx, `
				UPDATE clinic_patients
				SET global_patient_id = $1, updated_at = $2
				WHERE global_patient_id IS NULL AND phone_number = $3
			`, user.ID, time.Now(), user.PhoneNumber); err != nil {
				return fmt.Errorf("failed to link patient profiles: %w", err)
			}
		case model.UserRoleDoctor:
			if _, err := tx.ExecContext(ctx, `
				UPDATE clinic_doctors
				SET global_doctor_id = $1, updated_at = $2
				WHERE global_doctor_id IS NULL AND phone_number = $3
			`, user.ID, time.Now(), user.PhoneNumber); err != nil {
				return fmt.Errorf("failed to link doctor profiles: %w", err)
			}
		}
		return nil
	})
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE phone_number = $1`, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, fmt.Errorf("failed to get user by phone: %w", err)
	}
	return &user, nil
}
