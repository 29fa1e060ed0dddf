package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/gb4everrr/fettlemed-backend/internal/model"
	"github.com/gb4everrr/fettlemed-backend/internal/repository"
	apperrors "github.com/gb4everrr/fettlemed-backend/pkg/errors"
)

type Service struct {
	patientRepo repository.PatientRepository
	userRepo    repository.UserRepository
}

func NewService(patientRepo repository.PatientRepository, userRepo repository.UserRepository) *Service {
	return &Service{
		patientRepo: patientRepo,
		userRepo:    userRepo,
	}
}

// Add registers a patient in the clinic. If a user account already holds the
// phone number the record links to it immediately; otherwise it stays a
// ghost profile until the patient registers.
func (s *Service) Add(ctx context.Context, req *model.AddClinicPatientRequest) (*model.ClinicPatient, error) {
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid clinic_id", err)
	}

	patient := &model.ClinicPatient{
		ClinicID:         clinicID,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		PatientCode:      req.PatientCode,
		ClinicNotes:      req.ClinicNotes,
	}

	if user, err := s.userRepo.GetByPhone(ctx, req.PhoneNumber); err == nil {
		patient.GlobalPatientID = &user.ID
	}

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) Get(ctx context.Context, id, clinicID uuid.UUID) (*model.ClinicPatient, error) {
	return s.patientRepo.Get(ctx, id, clinicID)
}

func (s *Service) List(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicPatient, error) {
	return s.patientRepo.List(ctx, clinicID)
}

func (s *Service) Update(ctx context.Context, patient *model.ClinicPatient) error {
	return s.patientRepo.Update(ctx, patient)
}

func (s *Service) Delete(ctx context.Context, id, clinicID uuid.UUID) error {
	return s.patientRepo.Delete(ctx, id, clinicID)
}
