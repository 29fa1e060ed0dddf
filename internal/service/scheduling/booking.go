package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gb4everrr/fettlemed-backend/internal/model"
	"github.com/gb4everrr/fettlemed-backend/internal/repository"
	apperrors "github.com/gb4everrr/fettlemed-backend/pkg/errors"
	"github.com/gb4everrr/fettlemed-backend/pkg/logger"
	"github.com/gb4everrr/fettlemed-backend/pkg/timeutil"
)

const (
	EventAppointmentCreated   = "appointment.created"
	EventAppointmentCancelled = "appointment.cancelled"
)

// BookingService owns the appointment lifecycle. The AppointmentSlot.booked
// flag is the mutual exclusion marker for a window and only flips here.
type BookingService struct {
	appointmentRepo repository.AppointmentRepository
	slotRepo        repository.SlotRepository
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	outboxRepo      repository.OutboxRepository
	engine          *Engine
	logger          *logger.Logger
}

func NewBookingService(
	appointmentRepo repository.AppointmentRepository,
	slotRepo repository.SlotRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	outboxRepo repository.OutboxRepository,
	engine *Engine,
	logger *logger.Logger,
) *BookingService {
	return &BookingService{
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		outboxRepo:      outboxRepo,
		engine:          engine,
		logger:          logger,
	}
}

var requestTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// resolveRequestTime turns a caller-supplied timestamp into a UTC instant.
// Precedence: an explicit timezone parameter wins, then a zone-qualified ISO
// string, then interpretation as clinic-local wall-clock time.
func resolveRequestTime(value, timezone string, clinicLoc *time.Location) (time.Time, error) {
	if timezone != "" {
		loc, err := timeutil.LoadLocation(timezone)
		if err != nil {
			return time.Time{}, apperrors.BadRequest(fmt.Sprintf("unrecognized timezone %q", timezone), err)
		}
		for _, layout := range requestTimeLayouts {
			if t, err := time.ParseInLocation(layout, value, loc); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, apperrors.BadRequest(fmt.Sprintf("invalid datetime %q", value), nil)
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}

	for _, layout := range requestTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, clinicLoc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperrors.BadRequest(fmt.Sprintf("invalid datetime %q", value), nil)
}

// Create books a standard appointment or records a walk-in/emergency
// arrival. Walk-ins bypass the slot grid and the conflict check and enter
// directly at Confirmed with arrival time stamped.
func (s *BookingService) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid clinic_id", err)
	}
	doctorID, err := uuid.Parse(req.ClinicDoctorID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid clinic_doctor_id", err)
	}
	patientID, err := uuid.Parse(req.ClinicPatientID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid clinic_patient_id", err)
	}

	// Cross-reference failures are 400s: the caller named entities that do
	// not belong together, not a missing resource.
	doctor, err := s.doctorRepo.Get(ctx, doctorID, clinicID)
	if err != nil {
		return nil, apperrors.BadRequest("Doctor does not belong to this clinic", err)
	}
	if !doctor.Active {
		return nil, apperrors.BadRequest("Doctor is not active in this clinic", nil)
	}
	if _, err := s.patientRepo.Get(ctx, patientID, clinicID); err != nil {
		return nil, apperrors.BadRequest("Patient does not belong to this clinic", err)
	}

	loc, err := s.engine.ClinicLocation(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	start, err := resolveRequestTime(req.Start, req.Timezone, loc)
	if err != nil {
		return nil, err
	}
	end, err := resolveRequestTime(req.End, req.Timezone, loc)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, apperrors.BadRequest("datetime_end must be after datetime_start", nil)
	}

	appt := &model.Appointment{
		ClinicID:        clinicID,
		ClinicDoctorID:  doctorID,
		ClinicPatientID: patientID,
		DatetimeStart:   start,
		DatetimeEnd:     end,
		Type:            req.Type,
		Notes:           req.Notes,
	}

	if req.Type == model.AppointmentTypeWalkIn || req.Type == model.AppointmentTypeEmergency {
		now := time.Now().UTC()
		appt.Status = model.AppointmentStatusConfirmed
		appt.ArrivalTime = &now
		if err := s.appointmentRepo.Create(ctx, appt); err != nil {
			return nil, err
		}
		s.emit(ctx, EventAppointmentCreated, appt)
		return appt, nil
	}

	appt.Status = model.AppointmentStatusPending
	slot := &model.AppointmentSlot{
		ClinicID:       clinicID,
		ClinicDoctorID: doctorID,
		StartTime:      start,
		EndTime:        end,
	}
	if err := s.appointmentRepo.CreateBooked(ctx, appt, slot); err != nil {
		return nil, err
	}
	s.emit(ctx, EventAppointmentCreated, appt)
	return appt, nil
}

func (s *BookingService) Get(ctx context.Context, id, clinicID uuid.UUID) (*model.Appointment, error) {
	return s.appointmentRepo.Get(ctx, id, clinicID)
}

func (s *BookingService) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	return s.appointmentRepo.List(ctx, filters)
}

// Reschedule moves the appointment onto a free slot in the same clinic and
// resets it to Pending for re-confirmation.
func (s *BookingService) Reschedule(ctx context.Context, id, clinicID, newSlotID uuid.UUID) (*model.Appointment, error) {
	appt, err := s.appointmentRepo.Get(ctx, id, clinicID)
	if err != nil {
		return nil, err
	}
	if appt.Status == model.AppointmentStatusCancelled {
		return nil, apperrors.BadRequest("Cannot reschedule a cancelled appointment", nil)
	}

	newSlot, err := s.slotRepo.Get(ctx, newSlotID)
	if err != nil {
		return nil, err
	}
	if newSlot.ClinicID != clinicID {
		return nil, apperrors.BadRequest("Slot does not belong to this clinic", nil)
	}
	if newSlot.Booked {
		return nil, apperrors.BadRequest("Time slot is already booked", nil)
	}

	if err := s.appointmentRepo.Reschedule(ctx, appt, appt.SlotID, newSlot); err != nil {
		return nil, err
	}

	appt.SlotID = &newSlot.ID
	appt.DatetimeStart = newSlot.StartTime
	appt.DatetimeEnd = newSlot.EndTime
	appt.Status = model.AppointmentStatusPending
	return appt, nil
}

// Cancel marks the appointment cancelled and frees its slot. Re-cancelling
// is not rejected.
func (s *BookingService) Cancel(ctx context.Context, id, clinicID uuid.UUID) error {
	appt, err := s.appointmentRepo.Get(ctx, id, clinicID)
	if err != nil {
		return err
	}
	if err := s.appointmentRepo.CancelAndRelease(ctx, appt); err != nil {
		return err
	}
	s.emit(ctx, EventAppointmentCancelled, appt)
	return nil
}

// CheckIn stamps the arrival time, which is write-once, and confirms the
// appointment.
func (s *BookingService) CheckIn(ctx context.Context, id, clinicID uuid.UUID) (*model.Appointment, error) {
	appt, err := s.appointmentRepo.Get(ctx, id, clinicID)
	if err != nil {
		return nil, err
	}
	if appt.ArrivalTime != nil {
		return nil, apperrors.BadRequest("Patient has already checked in", nil)
	}

	now := time.Now().UTC()
	appt.ArrivalTime = &now
	appt.Status = model.AppointmentStatusConfirmed
	if err := s.appointmentRepo.Update(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// ToggleConfirmation flips Pending to Confirmed and back. Cancelled is
// terminal.
func (s *BookingService) ToggleConfirmation(ctx context.Context, id, clinicID uuid.UUID) (*model.Appointment, error) {
	appt, err := s.appointmentRepo.Get(ctx, id, clinicID)
	if err != nil {
		return nil, err
	}

	switch appt.Status {
	case model.AppointmentStatusPending:
		appt.Status = model.AppointmentStatusConfirmed
	case model.AppointmentStatusConfirmed:
		appt.Status = model.AppointmentStatusPending
	default:
		return nil, apperrors.BadRequest("Cannot change status of a cancelled appointment", nil)
	}

	if err := s.appointmentRepo.Update(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// emit records a domain event for the outbox worker. Event delivery is
// best-effort relative to the booking itself.
func (s *BookingService) emit(ctx context.Context, eventType string, appt *model.Appointment) {
	payload, err := json.Marshal(appt)
	if err != nil {
		s.logger.Error(err, "failed to marshal event payload", "event_type", eventType)
		return
	}
	event := &model.OutboxEvent{EventType: eventType, Payload: payload}
	if err := s.outboxRepo.Create(ctx, event); err != nil {
		s.logger.Error(err, "failed to record outbox event", "event_type", eventType)
	}
}
