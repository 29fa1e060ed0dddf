package model

import "github.com/google/uuid"

// ClinicDoctor is a doctor's membership in one clinic. GlobalDoctorID is nil
// for "ghost" profiles created before the doctor registered an account; it is
// linked by phone number at registration time.
type ClinicDoctor struct {
	Base
	ClinicID       uuid.UUID  `db:"clinic_id" json:"clinic_id"`
	GlobalDoctorID *uuid.UUID `db:"global_doctor_id" json:"global_doctor_id,omitempty"`
	FirstName      string     `db:"first_name" json:"first_name"`
	LastName       string     `db:"last_name" json:"last_name"`
	Email          string     `db:"email" json:"email"`
	PhoneNumber    string     `db:"phone_number" json:"phone_number"`
	Address        string     `db:"address" json:"address"`
	Specialization string     `db:"specialization" json:"specialization"`
	MedicalRegNo   string     `db:"medical_reg_no" json:"medical_reg_no"`
	StartedDate    string     `db:"started_date" json:"started_date"`
	Active         bool       `db:"active" json:"active"`
}

type UpdateClinicDoctorRequest struct {
	ClinicID       string  `json:"clinic_id" binding:"required,uuid"`
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Email          *string `json:"email" binding:"omitempty,email"`
	PhoneNumber    *string `json:"phone_number"`
	Address        *string `json:"address"`
	Specialization *string `json:"specialization"`
	MedicalRegNo   *string `json:"medical_reg_no"`
}

type AddClinicDoctorRequest struct {
	ClinicID       string `json:"clinic_id" binding:"required,uuid"`
	PhoneNumber    string `json:"phone_number" binding:"required"`
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Email          string `json:"email" binding:"omitempty,email"`
	Address        string `json:"address"`
	Specialization string `json:"specialization"`
	MedicalRegNo   string `json:"medical_reg_no"`
	StartedDate    string `json:"started_date"`
	Role           string `json:"role"`
}
