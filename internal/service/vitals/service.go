package vitals

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gb4everrr/fettlemed-backend/internal/model"
	"github.com/gb4everrr/fettlemed-backend/internal/repository"
	apperrors "github.com/gb4everrr/fettlemed-backend/pkg/errors"
	"github.com/gb4everrr/fettlemed-backend/pkg/timeutil"
)

type Service struct {
	vitalsRepo  repository.VitalsRepository
	patientRepo repository.PatientRepository
}

func NewService(vitalsRepo repository.VitalsRepository, patientRepo repository.PatientRepository) *Service {
	return &Service{
		vitalsRepo:  vitalsRepo,
		patientRepo: patientRepo,
	}
}

func (s *Service) CreateConfig(ctx context.Context, req *model.CreateVitalConfigRequest) (*model.ClinicVitalConfig, error) {
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid clinic_id", err)
	}

	cfg := &model.ClinicVitalConfig{
		ClinicID:  clinicID,
		VitalName: req.VitalName,
		Unit:      req.Unit,
		Active:    true,
	}
	if err := s.vitalsRepo.CreateConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *Service) ListConfigs(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicVitalConfig, error) {
	return s.vitalsRepo.ListConfigs(ctx, clinicID)
}

func (s *Service) UpdateConfig(ctx context.Context, id uuid.UUID, req *model.UpdateVitalConfigRequest) (*model.ClinicVitalConfig, error) {
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid clinic_id", err)
	}

	cfg := &model.ClinicVitalConfig{
		ClinicID:  clinicID,
		VitalName: req.VitalName,
		Unit:      req.Unit,
		Active:    true,
	}
	cfg.ID = id
	if req.Active != nil {
		cfg.Active = *req.Active
	}
	if err := s.vitalsRepo.UpdateConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Submit records one set of measurements against the clinic's vitals
// library. Values land with their entry atomically; a half-recorded reading
// never exists.
func (s *Service) Submit(ctx context.Context, recordedBy uuid.UUID, req *model.SubmitVitalsRequest) (*model.VitalsEntry, error) {
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid clinic_id", err)
	}
	patientID, err := uuid.Parse(req.ClinicPatientID)
	if err != nil {
		return nil, apperrors.BadRequest("invalid clinic_patient_id", err)
	}
	if _, err := s.patientRepo.Get(ctx, patientID, clinicID); err != nil {
		return nil, apperrors.BadRequest("Patient does not belong to this clinic", err)
	}

	configs, err := s.vitalsRepo.ListConfigs(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	known := make(map[uuid.UUID]bool, len(configs))
	for _, cfg := range configs {
		known[cfg.ID] = cfg.Active
	}

	now := time.Now().UTC()
	entry := &model.VitalsEntry{
		ClinicID:        clinicID,
		ClinicPatientID: patientID,
		RecordedBy:      recordedBy,
		EntryDate:       now.Format(timeutil.DateLayout),
		EntryTime:       now.Format(timeutil.ClockLayoutSecs),
	}
	if req.AppointmentID != nil {
		apptID, err := uuid.Parse(*req.AppointmentID)
		if err != nil {
			return nil, apperrors.BadRequest("invalid appointment_id", err)
		}
		entry.AppointmentID = &apptID
	}

	values := make([]*model.VitalsRecordedValue, 0, len(req.Values))
	for _, reqValue := range req.Values {
		configID, err := uuid.Parse(reqValue.ConfigID)
		if err != nil {
			return nil, apperrors.BadRequest("invalid config_id", err)
		}
		if active, ok := known[configID]; !ok || !active {
			return nil, apperrors.BadRequest("Vital is not configured for this clinic", nil)
		}
		values = append(values, &model.VitalsRecordedValue{
			ConfigID:   configID,
			VitalValue: reqValue.VitalValue,
		})
	}

	if err := s.vitalsRepo.CreateEntry(ctx, entry, values); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) HistoryForPatient(ctx context.Context, clinicPatientID, clinicID uuid.UUID) ([]*model.VitalsEntry, error) {
	return s.vitalsRepo.ListEntriesForPatient(ctx, clinicPatientID, clinicID)
}

func (s *Service) ValuesForEntry(ctx context.Context, entryID uuid.UUID) ([]*model.VitalsRecordedValue, error) {
	return s.vitalsRepo.ListValuesForEntry(ctx, entryID)
}
