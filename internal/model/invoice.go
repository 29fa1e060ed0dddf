package model

import "github.com/google/uuid"

// ClinicService is a billable catalog entry (consultation, procedure, ...).
type ClinicService struct {
	Base
	ClinicID uuid.UUID `db:"clinic_id" json:"clinic_id"`
	Name     string    `db:"name" json:"name"`
	Price    int64     `db:"price" json:"price"`
	Active   bool      `db:"active" json:"active"`
}

type Invoice struct {
	Base
	ClinicID        uuid.UUID  `db:"clinic_id" json:"clinic_id"`
	ClinicPatientID uuid.UUID  `db:"clinic_patient_id" json:"clinic_patient_id"`
	AppointmentID   *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	InvoiceNo       int64      `db:"invoice_no" json:"invoice_no"`
	TotalAmount     int64      `db:"total_amount" json:"total_amount"`
	Notes           string     `db:"notes" json:"notes"`
}

type InvoiceLine struct {
	Base
	InvoiceID uuid.UUID `db:"invoice_id" json:"invoice_id"`
	ServiceID uuid.UUID `db:"service_id" json:"service_id"`
	Quantity  int       `db:"quantity" json:"quantity"`
	Amount    int64     `db:"amount" json:"amount"`
}

type CreateServiceRequest struct {
	ClinicID string `json:"clinic_id" binding:"required,uuid"`
	Name     string `json:"name" binding:"required"`
	Price    int64  `json:"price" binding:"required,min=0"`
}

type UpdateServiceRequest struct {
	ClinicID string  `json:"clinic_id" binding:"required,uuid"`
	Name     *string `json:"name"`
	Price    *int64  `json:"price" binding:"omitempty,min=0"`
	Active   *bool   `json:"active"`
}

type CreateInvoiceRequest struct {
	ClinicID        string  `json:"clinic_id" binding:"required,uuid"`
	ClinicPatientID string  `json:"clinic_patient_id" binding:"required,uuid"`
	AppointmentID   *string `json:"appointment_id"`
	Notes           string  `json:"notes"`
	Lines           []struct {
		ServiceID string `json:"service_id" binding:"required,uuid"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
	} `json:"lines" binding:"required,min=1,dive"`
}
