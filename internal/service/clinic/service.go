package clinic

import (
	"context"

	"github.com/google/uuid"

	"github.com/gb4everrr/fettlemed-backend/internal/model"
	"github.com/gb4everrr/fettlemed-backend/internal/rbac"
	"github.com/gb4everrr/fettlemed-backend/internal/repository"
	apperrors "github.com/gb4everrr/fettlemed-backend/pkg/errors"
	"github.com/gb4everrr/fettlemed-backend/pkg/timeutil"
)

type Service struct {
	clinicRepo repository.ClinicRepository
}

func NewService(clinicRepo repository.ClinicRepository) *Service {
	return &Service{clinicRepo: clinicRepo}
}

// Create registers a clinic and assigns the creating user as its owner in
// one transaction.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *model.CreateClinicRequest) (*model.Clinic, error) {
	if req.Timezone != "" {
		if _, err := timeutil.LoadLocation(req.Timezone); err != nil {
			return nil, apperrors.BadRequest("unrecognized timezone", err)
		}
	}

	clinic := &model.Clinic{
		Name:     req.Name,
		Address:  req.Address,
		Email:    req.Email,
		Phone:    req.Phone,
		Timezone: req.Timezone,
	}
	owner := &model.ClinicStaffAssignment{
		UserID: userID,
		Role:   rbac.RoleOwner,
		Active: true,
	}
	if err := s.clinicRepo.CreateWithOwner(ctx, clinic, owner); err != nil {
		return nil, err
	}
	return clinic, nil
}

// CreateBranch creates a child clinic under parentID. The owner of the
// parent becomes the owner of the branch.
func (s *Service) CreateBranch(ctx context.Context, userID, parentID uuid.UUID, req *model.CreateClinicRequest) (*model.Clinic, error) {
	parent, err := s.clinicRepo.Get(ctx, parentID)
	if err != nil {
		return nil, err
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = parent.Timezone
	} else if _, err := timeutil.LoadLocation(timezone); err != nil {
		return nil, apperrors.BadRequest("unrecognized timezone", err)
	}

	branch := &model.Clinic{
		Name:     req.Name,
		Address:  req.Address,
		Email:    req.Email,
		Phone:    req.Phone,
		Timezone: timezone,
		ParentID: &parent.ID,
	}
	owner := &model.ClinicStaffAssignment{
		UserID: userID,
		Role:   rbac.RoleOwner,
		Active: true,
	}
	if err := s.clinicRepo.CreateWithOwner(ctx, branch, owner); err != nil {
		return nil, err
	}
	return branch, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	return s.clinicRepo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateClinicRequest) (*model.Clinic, error) {
	clinic, err := s.clinicRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		clinic.Name = *req.Name
	}
	if req.Address != nil {
		clinic.Address = *req.Address
	}
	if req.Email != nil {
		clinic.Email = *req.Email
	}
	if req.Phone != nil {
		clinic.Phone = *req.Phone
	}
	if req.Timezone != nil {
		if _, err := timeutil.LoadLocation(*req.Timezone); err != nil {
			return nil, apperrors.BadRequest("unrecognized timezone", err)
		}
		clinic.Timezone = *req.Timezone
	}

	if err := s.clinicRepo.Update(ctx, clinic); err != nil {
		return nil, err
	}
	return clinic, nil
}

func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Clinic, error) {
	return s.clinicRepo.ListForUser(ctx, userID)
}
