package model

import "github.com/google/uuid"

type Clinic struct {
	Base
	Name    string `db:"name" json:"name"`
	Address string `db:"address" json:"address"`
	Email   string `db:"email" json:"email"`
	Phone   string `db:"phone" json:"phone"`
	// IANA timezone name, e.g. "Asia/Kolkata" or "America/New_York".
	Timezone string     `db:"timezone" json:"timezone"`
	ParentID *uuid.UUID `db:"parent_id" json:"parent_id,omitempty"`
}

type CreateClinicRequest struct {
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Timezone string `json:"timezone"`
}

type CreateBranchRequest struct {
	ClinicID string `json:"clinic_id" binding:"required,uuid"`
	CreateClinicRequest
}

type UpdateClinicRequest struct {
	ClinicID string  `json:"clinic_id" binding:"required,uuid"`
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Timezone *string `json:"timezone"`
}
