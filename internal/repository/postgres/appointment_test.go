package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gb4everrr/fettlemed-backend/internal/model"
	apperrors "github.com/gb4everrr/fettlemed-backend/pkg/errors"
)

func newMockRepo(t *testing.T) (*appointmentRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := &appointmentRepository{db: sqlxDB}

	return repo, mock, func() { sqlxDB.Close() }
}

func testAppointment() (*model.Appointment, *model.AppointmentSlot) {
	start := time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	clinicID := uuid.New()
	doctorID := uuid.New()

	appt := &model.Appointment{
		ClinicID:        clinicID,
		ClinicDoctorID:  doctorID,
		ClinicPatientID: uuid.New(),
		DatetimeStart:   start,
		DatetimeEnd:     end,
		Status:          model.AppointmentStatusPending,
		Type:            model.AppointmentTypeBooked,
	}
	slot := &model.AppointmentSlot{
		ClinicID:       clinicID,
		ClinicDoctorID: doctorID,
		StartTime:      start,
		EndTime:        end,
	}
	return appt, slot
}

func TestCreateBooked_ConflictRollsBack(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	appt, slot := testAppointment()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM appointments`).
		WithArgs(appt.ClinicDoctorID, appt.ClinicID,
			model.AppointmentStatusCancelled, model.AppointmentTypeBooked,
			appt.DatetimeEnd, appt.DatetimeStart).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := repo.CreateBooked(context.Background(), appt, slot)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooked_ClaimsExistingSlot(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	appt, slot := testAppointment()
	existingSlotID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM appointments`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`UPDATE appointment_slots SET booked = true`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT id FROM appointment_slots`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(existingSlotID))
	mock.ExpectExec(`INSERT INTO appointments`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreateBooked(context.Background(), appt, slot)

	require.NoError(t, err)
	assert.Equal(t, existingSlotID, slot.ID)
	require.NotNil(t, appt.SlotID)
	assert.Equal(t, existingSlotID, *appt.SlotID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooked_InsertsFreshSlot(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	appt, slot := testAppointment()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM appointments`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`UPDATE appointment_slots SET booked = true`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO appointment_slots`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO appointments`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreateBooked(context.Background(), appt, slot)

	require.NoError(t, err)
	assert.True(t, slot.Booked)
	require.NotNil(t, appt.SlotID)
	assert.Equal(t, slot.ID, *appt.SlotID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_MissingAppointmentIsNotFound(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	appt, _ := testAppointment()
	appt.ID = uuid.New()

	mock.ExpectExec(`UPDATE appointments SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), appt)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasOverlap(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	doctorID := uuid.New()
	clinicID := uuid.New()
	start := time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM appointments`).
		WithArgs(doctorID, clinicID,
			model.AppointmentStatusCancelled, model.AppointmentTypeBooked,
			end, start).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	overlap, err := repo.HasOverlap(context.Background(), doctorID, clinicID, start, end)

	require.NoError(t, err)
	assert.True(t, overlap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReschedule_TakenSlotRejected(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	appt, _ := testAppointment()
	appt.ID = uuid.New()
	oldSlotID := uuid.New()
	newSlot := &model.AppointmentSlot{
		ClinicID:  appt.ClinicID,
		StartTime: appt.DatetimeStart.Add(2 * time.Hour),
		EndTime:   appt.DatetimeEnd.Add(2 * time.Hour),
	}
	newSlot.ID = uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE appointment_slots SET booked = true`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Reschedule(context.Background(), appt, &oldSlotID, newSlot)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelAndRelease_ReleasesSlot(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	appt, _ := testAppointment()
	appt.ID = uuid.New()
	slotID := uuid.New()
	appt.SlotID = &slotID

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE appointments SET status =`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE appointment_slots SET booked = false`).
		WithArgs(sqlmock.AnyArg(), slotID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CancelAndRelease(context.Background(), appt)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
