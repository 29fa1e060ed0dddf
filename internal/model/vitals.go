package model

import "github.com/google/uuid"

// ClinicVitalConfig is one measurable in the clinic's vitals library.
type ClinicVitalConfig struct {
	Base
	ClinicID  uuid.UUID `db:"clinic_id" json:"clinic_id"`
	VitalName string    `db:"vital_name" json:"vital_name"`
	Unit      string    `db:"unit" json:"unit"`
	Active    bool      `db:"active" json:"active"`
}

type VitalsEntry struct {
	Base
	ClinicID        uuid.UUID  `db:"clinic_id" json:"clinic_id"`
	ClinicPatientID uuid.UUID  `db:"clinic_patient_id" json:"clinic_patient_id"`
	AppointmentID   *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	RecordedBy      uuid.UUID  `db:"recorded_by" json:"recorded_by"`
	EntryDate       string     `db:"entry_date" json:"entry_date"`
	EntryTime       string     `db:"entry_time" json:"entry_time"`
}

type VitalsRecordedValue struct {
	Base
	EntryID    uuid.UUID `db:"entry_id" json:"entry_id"`
	ConfigID   uuid.UUID `db:"config_id" json:"config_id"`
	VitalValue string    `db:"vital_value" json:"vital_value"`
}

type CreateVitalConfigRequest struct {
	ClinicID  string `json:"clinic_id" binding:"required,uuid"`
	VitalName string `json:"vital_name" binding:"required"`
	Unit      string `json:"unit"`
}

type UpdateVitalConfigRequest struct {
	ClinicID  string `json:"clinic_id" binding:"required,uuid"`
	VitalName string `json:"vital_name" binding:"required"`
	Unit      string `json:"unit"`
	Active    *bool  `json:"active"`
}

type SubmitVitalsRequest struct {
	ClinicID        string  `json:"clinic_id" binding:"required,uuid"`
	ClinicPatientID string  `json:"clinic_patient_id" binding:"required,uuid"`
	AppointmentID   *string `json:"appointment_id"`
	Values          []struct {
		ConfigID   string `json:"config_id" binding:"required,uuid"`
		VitalValue string `json:"vital_value" binding:"required"`
	} `json:"values" binding:"required,min=1,dive"`
}
