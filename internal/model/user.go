package model

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleClinicAdmin UserRole = "clinic_admin"
	UserRoleDoctor      UserRole = "doctor"
	UserRolePatient     UserRole = "patient"
)

type User struct {
	Base
	Email        string   `db:"email" json:"email"`
	PasswordHash string   `db:"password_hash" json:"-"`
	Role         UserRole `db:"role" json:"role"`
	FirstName    string   `db:"first_name" json:"first_name"`
	LastName     string   `db:"last_name" json:"last_name"`
	PhoneNumber  string   `db:"phone_number" json:"phone_number"`
}

type RegisterRequest struct {
	Email       string   `json:"email" binding:"required,email"`
	Password    string   `json:"password" binding:"required,min=8"`
	Role        UserRole `json:"role" binding:"required,oneof=clinic_admin doctor patient"`
	FirstName   string   `json:"first_name" binding:"required"`
	LastName    string   `json:"last_name" binding:"required"`
	PhoneNumber string   `json:"phone_number" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string    `json:"token"`
	User  *User     `json:"user"`
	Issued time.Time `json:"issued_at"`
}

type TokenClaims struct {
	UserID uuid.UUID
	Role   string
}
