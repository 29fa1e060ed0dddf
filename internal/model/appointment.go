package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus int

const (
	AppointmentStatusPending   AppointmentStatus = 0
	AppointmentStatusConfirmed AppointmentStatus = 1
	AppointmentStatusCancelled AppointmentStatus = 2
)

type AppointmentType int

// Type values carry over from the legacy schema, including the gap at 2.
const (
	AppointmentTypeBooked    AppointmentType = 0
	AppointmentTypeWalkIn    AppointmentType = 1
	AppointmentTypeEmergency AppointmentType = 3
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching boundaries do not count. The conflict
// query in the appointment repository encodes this same comparison in SQL.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// AppointmentSlot is a one-hour bookable window. Booked is the mutual
// exclusion marker for the window; only the booking service flips it.
type AppointmentSlot struct {
	Base
	ClinicID       uuid.UUID `db:"clinic_id" json:"clinic_id"`
	ClinicDoctorID uuid.UUID `db:"clinic_doctor_id" json:"clinic_doctor_id"`
	StartTime      time.Time `db:"start_time" json:"start_time"`
	EndTime        time.Time `db:"end_time" json:"end_time"`
	Booked         bool      `db:"booked" json:"booked"`
}

type Appointment struct {
	Base
	ClinicID       uuid.UUID         `db:"clinic_id" json:"clinic_id"`
	ClinicDoctorID uuid.UUID         `db:"clinic_doctor_id" json:"clinic_doctor_id"`
	ClinicPatientID uuid.UUID        `db:"clinic_patient_id" json:"clinic_patient_id"`
	SlotID         *uuid.UUID        `db:"slot_id" json:"slot_id,omitempty"`
	DatetimeStart  time.Time         `db:"datetime_start" json:"datetime_start"`
	DatetimeEnd    time.Time         `db:"datetime_end" json:"datetime_end"`
	Status         AppointmentStatus `db:"status" json:"status"`
	Type           AppointmentType   `db:"appointment_type" json:"appointment_type"`
	ArrivalTime    *time.Time        `db:"arrival_time" json:"arrival_time,omitempty"`
	Notes          string            `db:"notes" json:"notes"`
}

type CreateAppointmentRequest struct {
	ClinicID        string          `json:"clinic_id" binding:"required,uuid"`
	ClinicDoctorID  string          `json:"clinic_doctor_id" binding:"required,uuid"`
	ClinicPatientID string          `json:"clinic_patient_id" binding:"required,uuid"`
	Start           string          `json:"datetime_start" binding:"required"`
	End             string          `json:"datetime_end" binding:"required"`
	Timezone        string          `json:"timezone"`
	Type            AppointmentType `json:"appointment_type"`
	Notes           string          `json:"notes" binding:"max=1000"`
}

type RescheduleAppointmentRequest struct {
	ClinicID  string `json:"clinic_id" binding:"required,uuid"`
	NewSlotID string `json:"new_slot_id" binding:"required,uuid"`
}

type AppointmentFilters struct {
	ClinicID       uuid.UUID
	ClinicDoctorID *uuid.UUID
	ClinicPatientID *uuid.UUID
	Status         *AppointmentStatus
	StartDate      *time.Time
	EndDate        *time.Time
}
