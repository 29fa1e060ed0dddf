package model

import (
	"encoding/json"

	"github.com/google/uuid"
)

type Prescription struct {
	Base
	ClinicID      uuid.UUID       `db:"clinic_id" json:"clinic_id"`
	AppointmentID uuid.UUID       `db:"appointment_id" json:"appointment_id"`
	Content       json.RawMessage `db:"content" json:"content"`
}

type ConsultationNote struct {
	Base
	ClinicID      uuid.UUID       `db:"clinic_id" json:"clinic_id"`
	AppointmentID uuid.UUID       `db:"appointment_id" json:"appointment_id"`
	Content       json.RawMessage `db:"content" json:"content"`
}

type AppointmentDiagnosis struct {
	Base
	ClinicID      uuid.UUID `db:"clinic_id" json:"clinic_id"`
	AppointmentID uuid.UUID `db:"appointment_id" json:"appointment_id"`
	CatalogID     uuid.UUID `db:"catalog_id" json:"catalog_id"`
	Notes         string    `db:"notes" json:"notes"`
}

type LabOrder struct {
	Base
	ClinicID      uuid.UUID `db:"clinic_id" json:"clinic_id"`
	AppointmentID uuid.UUID `db:"appointment_id" json:"appointment_id"`
	CatalogID     uuid.UUID `db:"catalog_id" json:"catalog_id"`
	Status        string    `db:"status" json:"status"`
}

// Catalog rows backing autocomplete search.
type DrugCatalogEntry struct {
	Base
	Name   string `db:"name" json:"name"`
	Active bool   `db:"active" json:"active"`
}

type DiagnosisCatalogEntry struct {
	Base
	Code        string `db:"code" json:"code"`
	Description string `db:"description" json:"description"`
}

type LabCatalogEntry struct {
	Base
	TestName string `db:"test_name" json:"test_name"`
	Active   bool   `db:"active" json:"active"`
}

type SavePrescriptionRequest struct {
	ClinicID      string          `json:"clinic_id" binding:"required,uuid"`
	AppointmentID string          `json:"appointment_id" binding:"required,uuid"`
	Content       json.RawMessage `json:"content" binding:"required"`
}

type SaveConsultationNoteRequest struct {
	ClinicID      string          `json:"clinic_id" binding:"required,uuid"`
	AppointmentID string          `json:"appointment_id" binding:"required,uuid"`
	Content       json.RawMessage `json:"content" binding:"required"`
}

// EncounterDetails is the aggregated one-call payload for the encounter view.
type EncounterDetails struct {
	Appointment *Appointment           `json:"appointment"`
	Patient     *ClinicPatient         `json:"patient"`
	Vitals      []*VitalsEntry         `json:"vitals"`
	Note        *ConsultationNote      `json:"note,omitempty"`
	Prescription *Prescription         `json:"prescription,omitempty"`
	LabOrders   []*LabOrder            `json:"lab_orders"`
	Diagnoses   []*AppointmentDiagnosis `json:"diagnoses"`
}
