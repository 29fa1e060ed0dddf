package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gb4everrr/fettlemed-backend/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// CreateAndLinkProfiles registers the user and links any ghost
	// doctor/patient rows sharing the phone number, atomically.
	CreateAndLinkProfiles(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByPhone(ctx context.Context, phone string) (*model.User, error)
}

type ClinicRepository interface {
	// CreateWithOwner creates the clinic and the owner's staff assignment
	// in one transaction.
	CreateWithOwner(ctx context.Context, clinic *model.Clinic, owner *model.ClinicStaffAssignment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
	Update(ctx context.Context, clinic *model.Clinic) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Clinic, error)
}

type StaffAssignmentRepository interface {
	Get(ctx context.Context, userID, clinicID uuid.UUID) (*model.ClinicStaffAssignment, error)
	Create(ctx context.Context, sa *model.ClinicStaffAssignment) error
	Update(ctx context.Context, sa *model.ClinicStaffAssignment) error
	ListForClinic(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicStaffAssignment, error)
}

type DoctorRepository interface {
	// CreateWithAssignment creates the clinic doctor and, when the doctor
	// already has a user account, their staff assignment, atomically.
	CreateWithAssignment(ctx context.Context, doctor *model.ClinicDoctor, sa *model.ClinicStaffAssignment) error
	Get(ctx context.Context, id, clinicID uuid.UUID) (*model.ClinicDoctor, error)
	List(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicDoctor, error)
	Update(ctx context.Context, doctor *model.ClinicDoctor) error
	Deactivate(ctx context.Context, id, clinicID uuid.UUID) error
}

type PatientRepository interface {
	Create(ctx context.Context, patient *model.ClinicPatient) error
	Get(ctx context.Context, id, clinicID uuid.UUID) (*model.ClinicPatient, error)
	List(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicPatient, error)
	Update(ctx context.Context, patient *model.ClinicPatient) error
	Delete(ctx context.Context, id, clinicID uuid.UUID) error
}

type AvailabilityRepository interface {
	Create(ctx context.Context, a *model.DoctorAvailability) error
	Update(ctx context.Context, a *model.DoctorAvailability) error
	Delete(ctx context.Context, id, clinicID uuid.UUID) error
	ListForClinic(ctx context.Context, clinicID uuid.UUID) ([]*model.DoctorAvailability, error)
	ListForWeekday(ctx context.Context, clinicDoctorID, clinicID uuid.UUID, weekday time.Weekday) ([]*model.DoctorAvailability, error)
	// UpsertException updates in place on the (doctor, clinic, date,
	// start_time) key so re-submitting a window is idempotent.
	UpsertException(ctx context.Context, e *model.AvailabilityException) error
	DeleteException(ctx context.Context, id, clinicID uuid.UUID) error
	ListExceptions(ctx context.Context, clinicID uuid.UUID) ([]*model.AvailabilityException, error)
	ListExceptionsForDate(ctx context.Context, clinicDoctorID, clinicID uuid.UUID, date string) ([]*model.AvailabilityException, error)
}

type SlotRepository interface {
	CreateIfAbsent(ctx context.Context, slot *model.AppointmentSlot) error
	Get(ctx context.Context, id uuid.UUID) (*model.AppointmentSlot, error)
	ListBookedInRange(ctx context.Context, clinicDoctorID, clinicID uuid.UUID, from, to time.Time) ([]*model.AppointmentSlot, error)
	ListFreeInRange(ctx context.Context, clinicDoctorID, clinicID uuid.UUID, from, to time.Time) ([]*model.AppointmentSlot, error)
	DeleteUnbookedInRange(ctx context.Context, clinicDoctorID, clinicID uuid.UUID, from, to time.Time) error
	SetBooked(ctx context.Context, id uuid.UUID, booked bool) error
}

type AppointmentRepository interface {
	// CreateBooked runs the conflict check and inserts the slot and the
	// appointment inside one transaction, closing the check-then-act race.
	CreateBooked(ctx context.Context, appt *model.Appointment, slot *model.AppointmentSlot) error
	Create(ctx context.Context, appt *model.Appointment) error
	Get(ctx context.Context, id, clinicID uuid.UUID) (*model.Appointment, error)
	Update(ctx context.Context, appt *model.Appointment) error
	List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	HasOverlap(ctx context.Context, clinicDoctorID, clinicID uuid.UUID, start, end time.Time) (bool, error)
	// Reschedule releases the old slot, books the new one and moves the
	// appointment onto it, atomically.
	Reschedule(ctx context.Context, appt *model.Appointment, oldSlotID *uuid.UUID, newSlot *model.AppointmentSlot) error
	// CancelAndRelease marks the appointment cancelled and frees its slot.
	CancelAndRelease(ctx context.Context, appt *model.Appointment) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *model.OutboxEvent) error
	// ClaimPending atomically marks a batch of pending events PROCESSING
	// and returns them, so concurrent workers never share an event.
	ClaimPending(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	MarkProcessed(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
}

type InvoiceRepository interface {
	CreateService(ctx context.Context, svc *model.ClinicService) error
	GetService(ctx context.Context, id, clinicID uuid.UUID) (*model.ClinicService, error)
	ListServices(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicService, error)
	UpdateService(ctx context.Context, svc *model.ClinicService) error
	// CreateInvoice inserts the invoice and its lines in one transaction.
	CreateInvoice(ctx context.Context, inv *model.Invoice, lines []*model.InvoiceLine) error
	GetInvoice(ctx context.Context, id, clinicID uuid.UUID) (*model.Invoice, []*model.InvoiceLine, error)
	ListInvoices(ctx context.Context, clinicID uuid.UUID) ([]*model.Invoice, error)
}

type VitalsRepository interface {
	CreateConfig(ctx context.Context, cfg *model.ClinicVitalConfig) error
	ListConfigs(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicVitalConfig, error)
	UpdateConfig(ctx context.Context, cfg *model.ClinicVitalConfig) error
	// CreateEntry inserts the entry and its recorded values atomically.
	CreateEntry(ctx context.Context, entry *model.VitalsEntry, values []*model.VitalsRecordedValue) error
	ListEntriesForPatient(ctx context.Context, clinicPatientID, clinicID uuid.UUID) ([]*model.VitalsEntry, error)
	ListValuesForEntry(ctx context.Context, entryID uuid.UUID) ([]*model.VitalsRecordedValue, error)
}

type MedicalRecordRepository interface {
	SavePrescription(ctx context.Context, p *model.Prescription) error
	GetPrescription(ctx context.Context, appointmentID, clinicID uuid.UUID) (*model.Prescription, error)
	SaveConsultationNote(ctx context.Context, n *model.ConsultationNote) error
	GetConsultationNote(ctx context.Context, appointmentID, clinicID uuid.UUID) (*model.ConsultationNote, error)
	AddDiagnosis(ctx context.Context, d *model.AppointmentDiagnosis) error
	RemoveDiagnosis(ctx context.Context, id uuid.UUID) error
	ListDiagnoses(ctx context.Context, appointmentID uuid.UUID) ([]*model.AppointmentDiagnosis, error)
	AddLabOrder(ctx context.Context, o *model.LabOrder) error
	RemoveLabOrder(ctx context.Context, id uuid.UUID) error
	ListLabOrders(ctx context.Context, appointmentID uuid.UUID) ([]*model.LabOrder, error)
}

type CatalogRepository interface {
	SearchDrugs(ctx context.Context, query string, limit int) ([]*model.DrugCatalogEntry, error)
	SearchDiagnoses(ctx context.Context, query string, limit int) ([]*model.DiagnosisCatalogEntry, error)
	SearchLabs(ctx context.Context, query string, limit int) ([]*model.LabCatalogEntry, error)
}
