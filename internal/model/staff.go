package model

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ClinicStaffAssignment ties a user to a clinic with a role and optional
// per-user permission overrides. One row per (user, clinic); rows are
// soft-deactivated rather than deleted.
type ClinicStaffAssignment struct {
	Base
	UserID            uuid.UUID      `db:"user_id" json:"user_id"`
	ClinicID          uuid.UUID      `db:"clinic_id" json:"clinic_id"`
	Role              string         `db:"role" json:"role"`
	CustomPermissions pq.StringArray `db:"custom_permissions" json:"custom_permissions"`
	Active            bool           `db:"active" json:"active"`
}

type UpdateStaffPermissionsRequest struct {
	ClinicID          string   `json:"clinic_id" binding:"required,uuid"`
	UserID            string   `json:"user_id" binding:"required,uuid"`
	Role              *string  `json:"role"`
	CustomPermissions []string `json:"custom_permissions"`
	Active            *bool    `json:"active"`
}
