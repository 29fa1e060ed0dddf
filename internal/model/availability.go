package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DoctorAvailability is a standing weekly shift. Start and end are
// wall-clock values ("HH:MM") in the clinic's local timezone; they are only
// converted to UTC when a concrete date is in play.
type DoctorAvailability struct {
	Base
	ClinicDoctorID uuid.UUID    `db:"clinic_doctor_id" json:"clinic_doctor_id"`
	ClinicID       uuid.UUID    `db:"clinic_id" json:"clinic_id"`
	Weekday        time.Weekday `db:"weekday" json:"weekday"`
	StartTime      string       `db:"start_time" json:"start_time"`
	EndTime        string       `db:"end_time" json:"end_time"`
	Active         bool         `db:"active" json:"active"`
}

// AvailabilityException overrides the weekly template on one date.
// IsAvailable=true adds an extra window; false removes any overlapping
// availability (time off).
type AvailabilityException struct {
	Base
	ClinicDoctorID uuid.UUID `db:"clinic_doctor_id" json:"clinic_doctor_id"`
	ClinicID       uuid.UUID `db:"clinic_id" json:"clinic_id"`
	Date           string    `db:"date" json:"date"`
	StartTime      string    `db:"start_time" json:"start_time"`
	EndTime        string    `db:"end_time" json:"end_time"`
	IsAvailable    bool      `db:"is_available" json:"is_available"`
	Note           string    `db:"note" json:"note"`
}

type AddAvailabilityRequest struct {
	ClinicID       string `json:"clinic_id" binding:"required,uuid"`
	ClinicDoctorID string `json:"clinic_doctor_id" binding:"required,uuid"`
	Weekday        string `json:"weekday" binding:"required"`
	StartTime      string `json:"start_time" binding:"required,wallclock"`
	EndTime        string `json:"end_time" binding:"required,wallclock"`
}

type UpdateAvailabilityRequest struct {
	ClinicID       string `json:"clinic_id" binding:"required,uuid"`
	ClinicDoctorID string `json:"clinic_doctor_id" binding:"required,uuid"`
	Weekday        string `json:"weekday" binding:"required"`
	StartTime      string `json:"start_time" binding:"required,wallclock"`
	EndTime        string `json:"end_time" binding:"required,wallclock"`
	Active         *bool  `json:"active"`
}

type AddExceptionRequest struct {
	ClinicID       string `json:"clinic_id" binding:"required,uuid"`
	ClinicDoctorID string `json:"clinic_doctor_id" binding:"required,uuid"`
	Date           string `json:"date" binding:"required"`
	StartTime      string `json:"start_time" binding:"required,wallclock"`
	EndTime        string `json:"end_time" binding:"required,wallclock"`
	IsAvailable    *bool  `json:"is_available" binding:"required"`
	Note           string `json:"note"`
}

// ParseWeekday maps a weekday name ("Monday") to time.Weekday.
func ParseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if d.String() == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", name)
}
