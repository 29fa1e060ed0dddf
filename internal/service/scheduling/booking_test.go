package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gb4everrr/fettlemed-backend/internal/model"
	apperrors "github.com/gb4everrr/fettlemed-backend/pkg/errors"
	"github.com/gb4everrr/fettlemed-backend/pkg/logger"
)

type bookingFixture struct {
	appointments *MockAppointmentRepository
	slots        *MockSlotRepository
	doctors      *MockDoctorRepository
	patients     *MockPatientRepository
	outbox       *MockOutboxRepository
	availability *MockAvailabilityRepository
	clinics      *MockClinicRepository
	svc          *BookingService

	clinicID  uuid.UUID
	doctorID  uuid.UUID
	patientID uuid.UUID
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		appointments: new(MockAppointmentRepository),
		slots:        new(MockSlotRepository),
		doctors:      new(MockDoctorRepository),
		patients:     new(MockPatientRepository),
		outbox:       new(MockOutboxRepository),
		availability: new(MockAvailabilityRepository),
		clinics:      new(MockClinicRepository),
		clinicID:     uuid.New(),
		doctorID:     uuid.New(),
		patientID:    uuid.New(),
	}
	log := logger.NewLogger(nil)
	engine := NewEngine(f.availability, f.slots, f.clinics, time.Hour, "", log)
	f.svc = NewBookingService(f.appointments, f.slots, f.doctors, f.patients, f.outbox, engine, log)
	return f
}

func (f *bookingFixture) expectValidReferences() {
	f.doctors.On("Get", mock.Anything, f.doctorID, f.clinicID).
		Return(&model.ClinicDoctor{
			Base:     model.Base{ID: f.doctorID},
			ClinicID: f.clinicID,
			Active:   true,
		}, nil)
	f.patients.On("Get", mock.Anything, f.patientID, f.clinicID).
		Return(&model.ClinicPatient{
			Base:     model.Base{ID: f.patientID},
			ClinicID: f.clinicID,
		}, nil)
	f.clinics.On("Get", mock.Anything, f.clinicID).Return(utcClinic(f.clinicID), nil)
}

func (f *bookingFixture) createRequest(apptType model.AppointmentType) *model.CreateAppointmentRequest {
	return &model.CreateAppointmentRequest{
		ClinicID:        f.clinicID.String(),
		ClinicDoctorID:  f.doctorID.String(),
		ClinicPatientID: f.patientID.String(),
		Start:           "2025-06-09T09:00:00Z",
		End:             "2025-06-09T10:00:00Z",
		Type:            apptType,
	}
}

func TestCreateAppointment_StandardBooking(t *testing.T) {
	f := newBookingFixture()
	f.expectValidReferences()

	f.appointments.On("CreateBooked", mock.Anything, mock.MatchedBy(func(appt *model.Appointment) bool {
		return appt.Status == model.AppointmentStatusPending &&
			appt.DatetimeStart.Equal(time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC)) &&
			appt.ArrivalTime == nil
	}), mock.AnythingOfType("*model.AppointmentSlot")).Return(nil)
	f.outbox.On("Create", mock.Anything, mock.Anything).Return(nil)

	appt, err := f.svc.Create(context.Background(), f.createRequest(model.AppointmentTypeBooked))

	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, appt.Status)
	f.appointments.AssertExpectations(t)
}

func TestCreateAppointment_ConflictRejected(t *testing.T) {
	f := newBookingFixture()
	f.expectValidReferences()

	f.appointments.On("CreateBooked", mock.Anything, mock.Anything, mock.Anything).
		Return(apperrors.BadRequest("Time slot is already booked", nil))

	_, err := f.svc.Create(context.Background(), f.createRequest(model.AppointmentTypeBooked))

	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode())
	assert.Equal(t, "Time slot is already booked", appErr.Message)
}

func TestCreateAppointment_WalkInBypassesSlots(t *testing.T) {
	f := newBookingFixture()
	f.expectValidReferences()

	f.appointments.On("Create", mock.Anything, mock.MatchedBy(func(appt *model.Appointment) bool {
		return appt.Status == model.AppointmentStatusConfirmed &&
			appt.ArrivalTime != nil &&
			appt.SlotID == nil
	})).Return(nil)
	f.outbox.On("Create", mock.Anything, mock.Anything).Return(nil)

	appt, err := f.svc.Create(context.Background(), f.createRequest(model.AppointmentTypeWalkIn))

	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, appt.Status)
	require.NotNil(t, appt.ArrivalTime)
	f.appointments.AssertNotCalled(t, "CreateBooked", mock.Anything, mock.Anything, mock.Anything)
	f.appointments.AssertNotCalled(t, "HasOverlap", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateAppointment_UnknownDoctorIsBadRequest(t *testing.T) {
	f := newBookingFixture()
	f.doctors.On("Get", mock.Anything, f.doctorID, f.clinicID).
		Return(nil, apperrors.NotFound("doctor", nil))

	_, err := f.svc.Create(context.Background(), f.createRequest(model.AppointmentTypeBooked))

	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode())
}

func TestCreateAppointment_InactiveDoctorIsBadRequest(t *testing.T) {
	f := newBookingFixture()
	f.doctors.On("Get", mock.Anything, f.doctorID, f.clinicID).
		Return(&model.ClinicDoctor{
			Base:     model.Base{ID: f.doctorID},
			ClinicID: f.clinicID,
			Active:   false,
		}, nil)

	_, err := f.svc.Create(context.Background(), f.createRequest(model.AppointmentTypeBooked))

	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode())
}

func TestCreateAppointment_ExplicitTimezoneWins(t *testing.T) {
	f := newBookingFixture()
	f.expectValidReferences()

	req := f.createRequest(model.AppointmentTypeBooked)
	req.Start = "2025-06-09T09:00:00"
	req.End = "2025-06-09T10:00:00"
	req.Timezone = "Asia/Kolkata"

	f.appointments.On("CreateBooked", mock.Anything, mock.MatchedBy(func(appt *model.Appointment) bool {
		// 09:00 IST is 03:30 UTC.
		return appt.DatetimeStart.Equal(time.Date(2025, 6, 9, 3, 30, 0, 0, time.UTC))
	}), mock.Anything).Return(nil)
	f.outbox.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)
	f.appointments.AssertExpectations(t)
}

func TestCreateAppointment_BareTimestampIsClinicLocal(t *testing.T) {
	f := newBookingFixture()
	f.doctors.On("Get", mock.Anything, f.doctorID, f.clinicID).
		Return(&model.ClinicDoctor{
			Base:     model.Base{ID: f.doctorID},
			ClinicID: f.clinicID,
			Active:   true,
		}, nil)
	f.patients.On("Get", mock.Anything, f.patientID, f.clinicID).
		Return(&model.ClinicPatient{
			Base:     model.Base{ID: f.patientID},
			ClinicID: f.clinicID,
		}, nil)
	f.clinics.On("Get", mock.Anything, f.clinicID).Return(&model.Clinic{
		Base:     model.Base{ID: f.clinicID},
		Name:     "Kolkata Clinic",
		Timezone: "Asia/Kolkata",
	}, nil)

	req := f.createRequest(model.AppointmentTypeBooked)
	req.Start = "2025-06-09T09:00:00"
	req.End = "2025-06-09T10:00:00"

	f.appointments.On("CreateBooked", mock.Anything, mock.MatchedBy(func(appt *model.Appointment) bool {
		return appt.DatetimeStart.Equal(time.Date(2025, 6, 9, 3, 30, 0, 0, time.UTC))
	}), mock.Anything).Return(nil)
	f.outbox.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)
	f.appointments.AssertExpectations(t)
}

func TestReschedule_BookedSlotRejected(t *testing.T) {
	f := newBookingFixture()
	apptID := uuid.New()
	slotID := uuid.New()

	f.appointments.On("Get", mock.Anything, apptID, f.clinicID).
		Return(&model.Appointment{
			Base:     model.Base{ID: apptID},
			ClinicID: f.clinicID,
			Status:   model.AppointmentStatusPending,
		}, nil)
	f.slots.On("Get", mock.Anything, slotID).
		Return(&model.AppointmentSlot{
			Base:     model.Base{ID: slotID},
			ClinicID: f.clinicID,
			Booked:   true,
		}, nil)

	_, err := f.svc.Reschedule(context.Background(), apptID, f.clinicID, slotID)

	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Time slot is already booked", appErr.Message)
}

func TestReschedule_ResetsToPending(t *testing.T) {
	f := newBookingFixture()
	apptID := uuid.New()
	oldSlotID := uuid.New()
	newSlotID := uuid.New()
	newStart := time.Date(2025, 6, 10, 11, 0, 0, 0, time.UTC)

	f.appointments.On("Get", mock.Anything, apptID, f.clinicID).
		Return(&model.Appointment{
			Base:     model.Base{ID: apptID},
			ClinicID: f.clinicID,
			SlotID:   &oldSlotID,
			Status:   model.AppointmentStatusConfirmed,
		}, nil)
	f.slots.On("Get", mock.Anything, newSlotID).
		Return(&model.AppointmentSlot{
			Base:      model.Base{ID: newSlotID},
			ClinicID:  f.clinicID,
			StartTime: newStart,
			EndTime:   newStart.Add(time.Hour),
			Booked:    false,
		}, nil)
	f.appointments.On("Reschedule", mock.Anything, mock.Anything, &oldSlotID, mock.Anything).Return(nil)

	appt, err := f.svc.Reschedule(context.Background(), apptID, f.clinicID, newSlotID)

	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, appt.Status)
	assert.Equal(t, newSlotID, *appt.SlotID)
	assert.True(t, appt.DatetimeStart.Equal(newStart))
}

func TestCancel_ReleasesSlot(t *testing.T) {
	f := newBookingFixture()
	apptID := uuid.New()
	slotID := uuid.New()

	appt := &model.Appointment{
		Base:     model.Base{ID: apptID},
		ClinicID: f.clinicID,
		SlotID:   &slotID,
		Status:   model.AppointmentStatusConfirmed,
	}
	f.appointments.On("Get", mock.Anything, apptID, f.clinicID).Return(appt, nil)
	f.appointments.On("CancelAndRelease", mock.Anything, appt).Return(nil)
	f.outbox.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := f.svc.Cancel(context.Background(), apptID, f.clinicID)

	require.NoError(t, err)
	f.appointments.AssertExpectations(t)
}

func TestCheckIn_WriteOnceArrivalTime(t *testing.T) {
	f := newBookingFixture()
	apptID := uuid.New()
	already := time.Date(2025, 6, 9, 9, 5, 0, 0, time.UTC)

	f.appointments.On("Get", mock.Anything, apptID, f.clinicID).
		Return(&model.Appointment{
			Base:        model.Base{ID: apptID},
			ClinicID:    f.clinicID,
			Status:      model.AppointmentStatusConfirmed,
			ArrivalTime: &already,
		}, nil)

	_, err := f.svc.CheckIn(context.Background(), apptID, f.clinicID)

	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode())
	f.appointments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCheckIn_ConfirmsAndStamps(t *testing.T) {
	f := newBookingFixture()
	apptID := uuid.New()

	f.appointments.On("Get", mock.Anything, apptID, f.clinicID).
		Return(&model.Appointment{
			Base:     model.Base{ID: apptID},
			ClinicID: f.clinicID,
			Status:   model.AppointmentStatusPending,
		}, nil)
	f.appointments.On("Update", mock.Anything, mock.MatchedBy(func(appt *model.Appointment) bool {
		return appt.Status == model.AppointmentStatusConfirmed && appt.ArrivalTime != nil
	})).Return(nil)

	appt, err := f.svc.CheckIn(context.Background(), apptID, f.clinicID)

	require.NoError(t, err)
	require.NotNil(t, appt.ArrivalTime)
}

func TestToggleConfirmation(t *testing.T) {
	f := newBookingFixture()

	cases := []struct {
		name    string
		from    model.AppointmentStatus
		to      model.AppointmentStatus
		wantErr bool
	}{
		{"pending to confirmed", model.AppointmentStatusPending, model.AppointmentStatusConfirmed, false},
		{"confirmed back to pending", model.AppointmentStatusConfirmed, model.AppointmentStatusPending, false},
		{"cancelled is terminal", model.AppointmentStatusCancelled, model.AppointmentStatusCancelled, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			apptID := uuid.New()
			f.appointments.On("Get", mock.Anything, apptID, f.clinicID).
				Return(&model.Appointment{
					Base:     model.Base{ID: apptID},
					ClinicID: f.clinicID,
					Status:   tc.from,
				}, nil).Once()
			if !tc.wantErr {
				f.appointments.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
			}

			appt, err := f.svc.ToggleConfirmation(context.Background(), apptID, f.clinicID)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.to, appt.Status)
		})
	}
}
