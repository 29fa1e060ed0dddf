package model

import "github.com/google/uuid"

// ClinicPatient is a patient's record in one clinic, analogous to
// ClinicDoctor: GlobalPatientID stays nil until a user account links to it.
type ClinicPatient struct {
	Base
	ClinicID         uuid.UUID  `db:"clinic_id" json:"clinic_id"`
	GlobalPatientID  *uuid.UUID `db:"global_patient_id" json:"global_patient_id,omitempty"`
	FirstName        string     `db:"first_name" json:"first_name"`
	LastName         string     `db:"last_name" json:"last_name"`
	Email            string     `db:"email" json:"email"`
	PhoneNumber      string     `db:"phone_number" json:"phone_number"`
	Address          string     `db:"address" json:"address"`
	EmergencyContact string     `db:"emergency_contact" json:"emergency_contact"`
	PatientCode      string     `db:"patient_code" json:"patient_code"`
	ClinicNotes      string     `db:"clinic_notes" json:"clinic_notes"`
}

type AddClinicPatientRequest struct {
	ClinicID         string `json:"clinic_id" binding:"required,uuid"`
	PhoneNumber      string `json:"phone_number" binding:"required"`
	FirstName        string `json:"first_name" binding:"required"`
	LastName         string `json:"last_name" binding:"required"`
	Email            string `json:"email" binding:"omitempty,email"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergency_contact"`
	PatientCode      string `json:"patient_code"`
	ClinicNotes      string `json:"clinic_notes"`
}
