package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gb4everrr/fettlemed-backend/internal/model"
	"github.com/gb4everrr/fettlemed-backend/internal/repository"
	"github.com/gb4everrr/fettlemed-backend/internal/service/scheduling"
	apperrors "github.com/gb4everrr/fettlemed-backend/pkg/errors"
	"github.com/gb4everrr/fettlemed-backend/pkg/logger"
	"github.com/gb4everrr/fettlemed-backend/pkg/timeutil"
)

type Service struct {
	availabilityRepo repository.AvailabilityRepository
	engine           *scheduling.Engine
	horizonDays      int
	logger           *logger.Logger
}

func NewService(availabilityRepo repository.AvailabilityRepository, engine *scheduling.Engine, horizonDays int, logger *logger.Logger) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		engine:           engine,
		horizonDays:      horizonDays,
		logger:           logger,
	}
}

// AddShift records a weekly availability window and regenerates the
// speculative slot grid over the scheduling horizon.
func (s *Service) AddShift(ctx context.Context, req *model.AddAvailabilityRequest) (*model.DoctorAvailability, error) {
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid clinic_id", err)
	}
	doctorID, err := uuid.Parse(req.ClinicDoctorID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid clinic_doctor_id", err)
	}
	weekday, err := model.ParseWeekday(req.Weekday)
	if err != nil {
		return nil, apperrors.BadRequest("invalid weekday", err)
	}
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	shift := &model.DoctorAvailability{
		ClinicDoctorID: doctorID,
		ClinicID:       clinicID,
		Weekday:        weekday,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Active:         true,
	}
	if err := s.availabilityRepo.Create(ctx, shift); err != nil {
		return nil, err
	}

	s.regenerate(ctx, doctorID, clinicID)
	return shift, nil
}

func (s *Service) UpdateShift(ctx context.Context, id uuid.UUID, req *model.UpdateAvailabilityRequest) (*model.DoctorAvailability, error) {
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid clinic_id", err)
	}
	doctorID, err := uuid.Parse(req.ClinicDoctorID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid clinic_doctor_id", err)
	}
	weekday, err := model.ParseWeekday(req.Weekday)
	if err != nil {
		return nil, apperrors.BadRequest("invalid weekday", err)
	}
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	shift := &model.DoctorAvailability{
		ClinicDoctorID: doctorID,
		ClinicID:       clinicID,
		Weekday:        weekday,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Active:         true,
	}
	shift.ID = id
	if req.Active != nil {
		shift.Active = *req.Active
	}
	if err := s.availabilityRepo.Update(ctx, shift); err != nil {
		return nil, err
	}

	s.regenerate(ctx, doctorID, clinicID)
	return shift, nil
}

func (s *Service) DeleteShift(ctx context.Context, id, clinicID uuid.UUID) error {
	return s.availabilityRepo.Delete(ctx, id, clinicID)
}

func (s *Service) ListForClinic(ctx context.Context, clinicID uuid.UUID) ([]*model.DoctorAvailability, error) {
	return s.availabilityRepo.ListForClinic(ctx, clinicID)
}

// UpsertException records a date-specific override. Re-submitting the same
// (doctor, clinic, date, start) window updates it in place.
func (s *Service) UpsertException(ctx context.Context, req *model.AddExceptionRequest) (*model.AvailabilityException, error) {
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid clinic_id", err)
	}
	doctorID, err := uuid.Parse(req.ClinicDoctorID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid clinic_doctor_id", err)
	}
	if _, err := time.Parse(timeutil.DateLayout, req.Date); err != nil {
		return nil, apperrors.BadRequest("invalid date", err)
	}
	if err := validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	exc := &model.AvailabilityException{
		ClinicDoctorID: doctorID,
		ClinicID:       clinicID,
		Date:           req.Date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		IsAvailable:    *req.IsAvailable,
		Note:           req.Note,
	}
	if err := s.availabilityRepo.UpsertException(ctx, exc); err != nil {
		return nil, err
	}

	s.regenerate(ctx, doctorID, clinicID)
	return exc, nil
}

func (s *Service) DeleteException(ctx context.Context, id, clinicID uuid.UUID) error {
	return s.availabilityRepo.DeleteException(ctx, id, clinicID)
}

func (s *Service) ListExceptions(ctx context.Context, clinicID uuid.UUID) ([]*model.AvailabilityException, error) {
	return s.availabilityRepo.ListExceptions(ctx, clinicID)
}

func validateWindow(start, end string) error {
	startD, err := timeutil.ParseClock(start)
	if err != nil {
		return apperrors.BadRequest("invalid start_time", err)
	}
	endD, err := timeutil.ParseClock(end)
	if err != nil {
		return apperrors.BadRequest("invalid end_time", err)
	}
	if endD <= startD {
		return apperrors.BadRequest("end_time must be after start_time", nil)
	}
	return nil
}

// regenerate rebuilds the doctor's slot grid. A failure here leaves the grid
// stale, not the availability record, so it only logs.
func (s *Service) regenerate(ctx context.Context, doctorID, clinicID uuid.UUID) {
	if err := s.engine.RegenerateSlots(ctx, doctorID, clinicID, time.Now(), s.horizonDays); err != nil {
		s.logger.Error(err, "failed to regenerate slots",
			"clinic_doctor_id", doctorID.String(), "clinic_id", clinicID.String())
	}
}
