package invoice

import (
	"context"

	"github.com/google/uuid"

	"github.com/gb4everrr/fettlemed-backend/internal/model"
	"github.com/gb4everrr/fettlemed-backend/internal/repository"
	apperrors "github.com/gb4everrr/fettlemed-backend/pkg/errors"
)

type Service struct {
	invoiceRepo repository.InvoiceRepository
	patientRepo repository.PatientRepository
}

func NewService(invoiceRepo repository.InvoiceRepository, patientRepo repository.PatientRepository) *Service {
	return &Service{
		invoiceRepo: invoiceRepo,
		patientRepo: patientRepo,
	}
}

func (s *Service) CreateService(ctx context.Context, req *model.CreateServiceRequest) (*model.ClinicService, error) {
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid clinic_id", err)
	}

	svc := &model.ClinicService{
		ClinicID: clinicID,
		Name:     req.Name,
		Price:    req.Price,
		Active:   true,
	}
	if err := s.invoiceRepo.CreateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) ListServices(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicService, error) {
	return s.invoiceRepo.ListServices(ctx, clinicID)
}

func (s *Service) UpdateService(ctx context.Context, id uuid.UUID, req *model.UpdateServiceRequest) (*model.ClinicService, error) {
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid clinic_id", err)
	}

	svc, err := s.invoiceRepo.GetService(ctx, id, clinicID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := s.invoiceRepo.UpdateService(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// Create prices each line from the service catalog at creation time and
// persists invoice plus lines atomically. Line amounts are snapshots; later
// price changes never rewrite history.
func (s *Service) Create(ctx context.Context, req *model.CreateInvoiceRequest) (*model.Invoice, []*model.InvoiceLine, error) {
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, nil, apperrors.BadRequest("invalid clinic_id", err)
	}
	patientID, err := uuid.Parse(req.ClinicPatientID)
	if err != nil {
		return nil, nil, apperrors.BadRequest("invalid clinic_patient_id", err)
	}
	if _, err := s.patientRepo.Get(ctx, patientID, clinicID); err != nil {
		return nil, nil, apperrors.BadRequest("Patient does not belong to this clinic", err)
	}

	inv := &model.Invoice{
		ClinicID:        clinicID,
		ClinicPatientID: patientID,
		Notes:           req.Notes,
	}
	if req.AppointmentID != nil {
		apptID, err := uuid.Parse(*req.AppointmentID)
		if err != nil {
			return nil, nil, apperrors.BadRequest("invalid appointment_id", err)
		}
		inv.AppointmentID = &apptID
	}

	lines := make([]*model.InvoiceLine, 0, len(req.Lines))
	var total int64
	for _, reqLine := range req.Lines {
		serviceID, err := uuid.Parse(reqLine.ServiceID)
		if err != nil {
			return nil, nil, apperrors.BadRequest("invalid service_id", err)
		}
		svc, err := s.invoiceRepo.GetService(ctx, serviceID, clinicID)
		if err != nil {
			return nil, nil, apperrors.BadRequest("Service does not belong to this clinic", err)
		}
		if !svc.Active {
			return nil, nil, apperrors.BadRequest("Service is not active", nil)
		}

		amount := svc.Price * int64(reqLine.Quantity)
		total += amount
		lines = append(lines, &model.InvoiceLine{
			ServiceID: serviceID,
			Quantity:  reqLine.Quantity,
			Amount:    amount,
		})
	}
	inv.TotalAmount = total

	if err := s.invoiceRepo.CreateInvoice(ctx, inv, lines); err != nil {
		return nil, nil, err
	}
	return inv, lines, nil
}

func (s *Service) Get(ctx context.Context, id, clinicID uuid.UUID) (*model.Invoice, []*model.InvoiceLine, error) {
	return s.invoiceRepo.GetInvoice(ctx, id, clinicID)
}

func (s *Service) List(ctx context.Context, clinicID uuid.UUID) ([]*model.Invoice, error) {
	return s.invoiceRepo.ListInvoices(ctx, clinicID)
}
