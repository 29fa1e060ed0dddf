package medical

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/gb4everrr/fettlemed-backend/internal/model"
	"github.com/gb4everrr/fettlemed-backend/internal/repository"
	apperrors "github.com/gb4everrr/fettlemed-backend/pkg/errors"
)

const (
	defaultSearchLimit = 20
	minSearchQueryLen  = 2
)

type Service struct {
	recordRepo      repository.MedicalRecordRepository
	catalogRepo     repository.CatalogRepository
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	vitalsRepo      repository.VitalsRepository
}

func NewService(
	recordRepo repository.MedicalRecordRepository,
	catalogRepo repository.CatalogRepository,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	vitalsRepo repository.VitalsRepository,
) *Service {
	return &Service{
		recordRepo:      recordRepo,
		catalogRepo:     catalogRepo,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		vitalsRepo:      vitalsRepo,
	}
}

func (s *Service) SavePrescription(ctx context.Context, req *model.SavePrescriptionRequest) (*model.Prescription, error) {
	clinicID, apptID, err := parseEncounterIDs(req.ClinicID, req.AppointmentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.appointmentRepo.Get(ctx, apptID, clinicID); err != nil {
		return nil, apperrors.BadRequest("Appointment does not belong to this clinic", err)
	}

	p := &model.Prescription{
		ClinicID:      clinicID,
		AppointmentID: apptID,
		Content:       req.Content,
	}
	if err := s.recordRepo.SavePrescription(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetPrescription(ctx context.Context, appointmentID, clinicID uuid.UUID) (*model.Prescription, error) {
	return s.recordRepo.GetPrescription(ctx, appointmentID, clinicID)
}

func (s *Service) SaveConsultationNote(ctx context.Context, req *model.SaveConsultationNoteRequest) (*model.ConsultationNote, error) {
	clinicID, apptID, err := parseEncounterIDs(req.ClinicID, req.AppointmentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.appointmentRepo.Get(ctx, apptID, clinicID); err != nil {
		return nil, apperrors.BadRequest("Appointment does not belong to this clinic", err)
	}

	n := &model.ConsultationNote{
		ClinicID:      clinicID,
		AppointmentID: apptID,
		Content:       req.Content,
	}
	if err := s.recordRepo.SaveConsultationNote(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) AddDiagnosis(ctx context.Context, d *model.AppointmentDiagnosis) error {
	return s.recordRepo.AddDiagnosis(ctx, d)
}

func (s *Service) RemoveDiagnosis(ctx context.Context, id uuid.UUID) error {
	return s.recordRepo.RemoveDiagnosis(ctx, id)
}

func (s *Service) AddLabOrder(ctx context.Context, o *model.LabOrder) error {
	return s.recordRepo.AddLabOrder(ctx, o)
}

func (s *Service) RemoveLabOrder(ctx context.Context, id uuid.UUID) error {
	return s.recordRepo.RemoveLabOrder(ctx, id)
}

func (s *Service) SearchDrugs(ctx context.Context, query string) ([]*model.DrugCatalogEntry, error) {
	if err := validateSearchQuery(query); err != nil {
		return nil, err
	}
	return s.catalogRepo.SearchDrugs(ctx, query, defaultSearchLimit)
}

func (s *Service) SearchDiagnoses(ctx context.Context, query string) ([]*model.DiagnosisCatalogEntry, error) {
	if err := validateSearchQuery(query); err != nil {
		return nil, err
	}
	return s.catalogRepo.SearchDiagnoses(ctx, query, defaultSearchLimit)
}

func (s *Service) SearchLabs(ctx context.Context, query string) ([]*model.LabCatalogEntry, error) {
	if err := validateSearchQuery(query); err != nil {
		return nil, err
	}
	return s.catalogRepo.SearchLabs(ctx, query, defaultSearchLimit)
}

func validateSearchQuery(query string) error {
	if len(strings.TrimSpace(query)) < minSearchQueryLen {
		return apperrors.BadRequest("search query must be at least 2 characters", nil)
	}
	return nil
}

// Encounter aggregates everything the consultation screen needs for one
// appointment in a single call. Absent note or prescription is not an
// error; those sections simply come back empty.
func (s *Service) Encounter(ctx context.Context, appointmentID, clinicID uuid.UUID) (*model.EncounterDetails, error) {
	appt, err := s.appointmentRepo.Get(ctx, appointmentID, clinicID)
	if err != nil {
		return nil, err
	}
	patient, err := s.patientRepo.Get(ctx, appt.ClinicPatientID, clinicID)
	if err != nil {
		return nil, err
	}

	details := &model.EncounterDetails{
		Appointment: appt,
		Patient:     patient,
	}

	if note, err := s.recordRepo.GetConsultationNote(ctx, appointmentID, clinicID); err == nil {
		details.Note = note
	}
	if p, err := s.recordRepo.GetPrescription(ctx, appointmentID, clinicID); err == nil {
		details.Prescription = p
	}

	vitals, err := s.vitalsRepo.ListEntriesForPatient(ctx, appt.ClinicPatientID, clinicID)
	if err != nil {
		return nil, err
	}
	details.Vitals = vitals

	orders, err := s.recordRepo.ListLabOrders(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	details.LabOrders = orders

	diagnoses, err := s.recordRepo.ListDiagnoses(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	details.Diagnoses = diagnoses

	return details, nil
}

func parseEncounterIDs(clinicID, appointmentID string) (uuid.UUID, uuid.UUID, error) {
	cid, err := uuid.Parse(clinicID)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperrors.BadRequest("invalid clinic_id", err)
	}
	aid, err := uuid.Parse(appointmentID)
	if err != nil {
		return uuid.Nil, uuid.Nil, apperrors.BadRequest("invalid appointment_id", err)
	}
	return cid, aid, nil
}
