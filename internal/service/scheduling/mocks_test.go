package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/gb4everrr/fettlemed-backend/internal/model"
)

type MockAvailabilityRepository struct {
	mock.Mock
}

func (m *MockAvailabilityRepository) Create(ctx context.Context, a *model.DoctorAvailability) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) Update(ctx context.Context, a *model.DoctorAvailability) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) Delete(ctx context.Context, id, clinicID uuid.UUID) error {
	args := m.Called(ctx, id, clinicID)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) ListForClinic(ctx context.Context, clinicID uuid.UUID) ([]*model.DoctorAvailability, error) {
	args := m.Called(ctx, clinicID)
	return args.Get(0).([]*model.DoctorAvailability), args.Error(1)
}

func (m *MockAvailabilityRepository) ListForWeekday(ctx context.Context, clinicDoctorID, clinicID uuid.UUID, weekday time.Weekday) ([]*model.DoctorAvailability, error) {
	args := m.Called(ctx, clinicDoctorID, clinicID, weekday)
	return args.Get(0).([]*model.DoctorAvailability), args.Error(1)
}

func (m *MockAvailabilityRepository) UpsertException(ctx context.Context, e *model.AvailabilityException) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) DeleteException(ctx context.Context, id, clinicID uuid.UUID) error {
	args := m.Called(ctx, id, clinicID)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) ListExceptions(ctx context.Context, clinicID uuid.UUID) ([]*model.AvailabilityException, error) {
	args := m.Called(ctx, clinicID)
	return args.Get(0).([]*model.AvailabilityException), args.Error(1)
}

func (m *MockAvailabilityRepository) ListExceptionsForDate(ctx context.Context, clinicDoctorID, clinicID uuid.UUID, date string) ([]*model.AvailabilityException, error) {
	args := m.Called(ctx, clinicDoctorID, clinicID, date)
	return args.Get(0).([]*model.AvailabilityException), args.Error(1)
}

type MockSlotRepository struct {
	mock.Mock
}

func (m *MockSlotRepository) CreateIfAbsent(ctx context.Context, slot *model.AppointmentSlot) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}

func (m *MockSlotRepository) Get(ctx context.Context, id uuid.UUID) (*model.AppointmentSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AppointmentSlot), args.Error(1)
}

func (m *MockSlotRepository) ListBookedInRange(ctx context.Context, clinicDoctorID, clinicID uuid.UUID, from, to time.Time) ([]*model.AppointmentSlot, error) {
	args := m.Called(ctx, clinicDoctorID, clinicID, from, to)
	return args.Get(0).([]*model.AppointmentSlot), args.Error(1)
}

func (m *MockSlotRepository) ListFreeInRange(ctx context.Context, clinicDoctorID, clinicID uuid.UUID, from, to time.Time) ([]*model.AppointmentSlot, error) {
	args := m.Called(ctx, clinicDoctorID, clinicID, from, to)
	return args.Get(0).([]*model.AppointmentSlot), args.Error(1)
}

func (m *MockSlotRepository) DeleteUnbookedInRange(ctx context.Context, clinicDoctorID, clinicID uuid.UUID, from, to time.Time) error {
	args := m.Called(ctx, clinicDoctorID, clinicID, from, to)
	return args.Error(0)
}

func (m *MockSlotRepository) SetBooked(ctx context.Context, id uuid.UUID, booked bool) error {
	args := m.Called(ctx, id, booked)
	return args.Error(0)
}

type MockClinicRepository struct {
	mock.Mock
}

func (m *MockClinicRepository) CreateWithOwner(ctx context.Context, clinic *model.Clinic, owner *model.ClinicStaffAssignment) error {
	args := m.Called(ctx, clinic, owner)
	return args.Error(0)
}

func (m *MockClinicRepository) Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Clinic), args.Error(1)
}

func (m *MockClinicRepository) Update(ctx context.Context, clinic *model.Clinic) error {
	args := m.Called(ctx, clinic)
	return args.Error(0)
}

func (m *MockClinicRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Clinic, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*model.Clinic), args.Error(1)
}

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) CreateBooked(ctx context.Context, appt *model.Appointment, slot *model.AppointmentSlot) error {
	args := m.Called(ctx, appt, slot)
	return args.Error(0)
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *MockAppointmentRepository) Get(ctx context.Context, id, clinicID uuid.UUID) (*model.Appointment, error) {
	args := m.Called(ctx, id, clinicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Update(ctx context.Context, appt *model.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *MockAppointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*model.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) HasOverlap(ctx context.Context, clinicDoctorID, clinicID uuid.UUID, start, end time.Time) (bool, error) {
	args := m.Called(ctx, clinicDoctorID, clinicID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) Reschedule(ctx context.Context, appt *model.Appointment, oldSlotID *uuid.UUID, newSlot *model.AppointmentSlot) error {
	args := m.Called(ctx, appt, oldSlotID, newSlot)
	return args.Error(0)
}

func (m *MockAppointmentRepository) CancelAndRelease(ctx context.Context, appt *model.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) CreateWithAssignment(ctx context.Context, doctor *model.ClinicDoctor, sa *model.ClinicStaffAssignment) error {
	args := m.Called(ctx, doctor, sa)
	return args.Error(0)
}

func (m *MockDoctorRepository) Get(ctx context.Context, id, clinicID uuid.UUID) (*model.ClinicDoctor, error) {
	args := m.Called(ctx, id, clinicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClinicDoctor), args.Error(1)
}

func (m *MockDoctorRepository) List(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicDoctor, error) {
	args := m.Called(ctx, clinicID)
	return args.Get(0).([]*model.ClinicDoctor), args.Error(1)
}

func (m *MockDoctorRepository) Update(ctx context.Context, doctor *model.ClinicDoctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) Deactivate(ctx context.Context, id, clinicID uuid.UUID) error {
	args := m.Called(ctx, id, clinicID)
	return args.Error(0)
}

type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) Create(ctx context.Context, event *model.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockOutboxRepository) ClaimPending(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*model.OutboxEvent), args.Error(1)
}

func (m *MockOutboxRepository) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	args := m.Called(ctx, id, errMsg)
	return args.Error(0)
}

type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) Create(ctx context.Context, patient *model.ClinicPatient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepository) Get(ctx context.Context, id, clinicID uuid.UUID) (*model.ClinicPatient, error) {
	args := m.Called(ctx, id, clinicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClinicPatient), args.Error(1)
}

func (m *MockPatientRepository) List(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicPatient, error) {
	args := m.Called(ctx, clinicID)
	return args.Get(0).([]*model.ClinicPatient), args.Error(1)
}

func (m *MockPatientRepository) Update(ctx context.Context, patient *model.ClinicPatient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepository) Delete(ctx context.Context, id, clinicID uuid.UUID) error {
	args := m.Called(ctx, id, clinicID)
	return args.Error(0)
}
