package staff

import (
	"context"

	"github.com/google/uuid"

	"github.com/gb4everrr/fettlemed-backend/internal/model"
	"github.com/gb4everrr/fettlemed-backend/internal/rbac"
	"github.com/gb4everrr/fettlemed-backend/internal/repository"
	apperrors "github.com/gb4everrr/fettlemed-backend/pkg/errors"
)

// AssignmentInvalidator drops a cached staff assignment after it changes.
// The authorization middleware owns the cache and implements this.
type AssignmentInvalidator interface {
	Invalidate(userID, clinicID uuid.UUID)
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(userID, clinicID uuid.UUID) {}

type Service struct {
	staffRepo   repository.StaffAssignmentRepository
	doctorRepo  repository.DoctorRepository
	userRepo    repository.UserRepository
	invalidator AssignmentInvalidator
}

func NewService(staffRepo repository.StaffAssignmentRepository, doctorRepo repository.DoctorRepository, userRepo repository.UserRepository) *Service {
	return &Service{
		staffRepo:   staffRepo,
		doctorRepo:  doctorRepo,
		userRepo:    userRepo,
		invalidator: noopInvalidator{},
	}
}

// SetInvalidator is wired at startup, after the authorization middleware
// exists.
func (s *Service) SetInvalidator(inv AssignmentInvalidator) {
	s.invalidator = inv
}

// AddDoctor creates the clinic doctor profile. If a registered user already
// holds the phone number, the doctor profile is linked to them and a staff
// assignment is granted in the same transaction; otherwise a ghost profile
// is created for later linking.
func (s *Service) AddDoctor(ctx context.Context, req *model.AddClinicDoctorRequest) (*model.ClinicDoctor, error) {
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid clinic_id", err)
	}

	role := req.Role
	if role == "" {
		role = rbac.RoleDoctorVisiting
	}
	if !rbac.IsKnownRole(role) {
		return nil, apperrors.BadRequest("unknown role", nil)
	}

	doctor := &model.ClinicDoctor{
		ClinicID:       clinicID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		Address:        req.Address,
		Specialization: req.Specialization,
		MedicalRegNo:   req.MedicalRegNo,
		StartedDate:    req.StartedDate,
		Active:         true,
	}

	var assignment *model.ClinicStaffAssignment
	if user, err := s.userRepo.GetByPhone(ctx, req.PhoneNumber); err == nil {
		doctor.GlobalDoctorID = &user.ID
		assignment = &model.ClinicStaffAssignment{
			UserID:   user.ID,
			ClinicID: clinicID,
			Role:     role,
			Active:   true,
		}
	}

	if err := s.doctorRepo.CreateWithAssignment(ctx, doctor, assignment); err != nil {
		return nil, err
	}
	if assignment != nil {
		s.invalidator.Invalidate(assignment.UserID, clinicID)
	}
	return doctor, nil
}

func (s *Service) GetDoctor(ctx context.Context, id, clinicID uuid.UUID) (*model.ClinicDoctor, error) {
	return s.doctorRepo.Get(ctx, id, clinicID)
}

func (s *Service) ListDoctors(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicDoctor, error) {
	return s.doctorRepo.List(ctx, clinicID)
}

func (s *Service) UpdateDoctor(ctx context.Context, id uuid.UUID, req *model.UpdateClinicDoctorRequest) (*model.ClinicDoctor, error) {
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid clinic_id", err)
	}

	doctor, err := s.doctorRepo.Get(ctx, id, clinicID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		doctor.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		doctor.LastName = *req.LastName
	}
	if req.Email != nil {
		doctor.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		doctor.PhoneNumber = *req.PhoneNumber
	}
	if req.Address != nil {
		doctor.Address = *req.Address
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.MedicalRegNo != nil {
		doctor.MedicalRegNo = *req.MedicalRegNo
	}

	if err := s.doctorRepo.Update(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

// DeactivateDoctor retires a doctor profile. For a linked doctor the repository
// also retires the staff assignment, so the cached grant is invalidated here to
// stop the gate honoring it until expiry.
func (s *Service) DeactivateDoctor(ctx context.Context, id, clinicID uuid.UUID) error {
	doctor, err := s.doctorRepo.Get(ctx, id, clinicID)
	if err != nil {
		return err
	}
	if err := s.doctorRepo.Deactivate(ctx, id, clinicID); err != nil {
		return err
	}
	if doctor.GlobalDoctorID != nil {
		s.invalidator.Invalidate(*doctor.GlobalDoctorID, clinicID)
	}
	return nil
}

func (s *Service) ListStaff(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicStaffAssignment, error) {
	return s.staffRepo.ListForClinic(ctx, clinicID)
}

// UpdatePermissions edits a staff member's role, custom permission overrides
// or active flag, then invalidates their cached assignment.
func (s *Service) UpdatePermissions(ctx context.Context, req *model.UpdateStaffPermissionsRequest) (*model.ClinicStaffAssignment, error) {
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid clinic_id", err)
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid user_id", err)
	}

	assignment, err := s.staffRepo.Get(ctx, userID, clinicID)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		if !rbac.IsKnownRole(*req.Role) {
			return nil, apperrors.BadRequest("unknown role", nil)
		}
		assignment.Role = *req.Role
	}
	if req.CustomPermissions != nil {
		assignment.CustomPermissions = req.CustomPermissions
	}
	if req.Active != nil {
		assignment.Active = *req.Active
	}

	if err := s.staffRepo.Update(ctx, assignment); err != nil {
		return nil, err
	}
	s.invalidator.Invalidate(userID, clinicID)
	return assignment, nil
}
