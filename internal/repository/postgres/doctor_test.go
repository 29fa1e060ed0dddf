package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gb4everrr/fettlemed-backend/pkg/errors"
)

func newMockDoctorRepo(t *testing.T) (*doctorRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := &doctorRepository{db: sqlxDB}

	return repo, mock, func() { sqlxDB.Close() }
}

func TestDeactivate_LinkedDoctorRetiresAssignment(t *testing.T) {
	repo, mock, cleanup := newMockDoctorRepo(t)
	defer cleanup()

	doctorID := uuid.New()
	clinicID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE clinic_doctors SET active = false`).
		WithArgs(sqlmock.AnyArg(), doctorID, clinicID).
		WillReturnRows(sqlmock.NewRows([]string{"global_doctor_id"}).AddRow(userID))
	mock.ExpectExec(`UPDATE clinic_staff_assignments SET active = false`).
		WithArgs(sqlmock.AnyArg(), userID, clinicID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Deactivate(context.Background(), doctorID, clinicID)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivate_GhostDoctorSkipsAssignment(t *testing.T) {
	repo, mock, cleanup := newMockDoctorRepo(t)
	defer cleanup()

	doctorID := uuid.New()
	clinicID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE clinic_doctors SET active = false`).
		WithArgs(sqlmock.AnyArg(), doctorID, clinicID).
		WillReturnRows(sqlmock.NewRows([]string{"global_doctor_id"}).AddRow(nil))
	mock.ExpectCommit()

	err := repo.Deactivate(context.Background(), doctorID, clinicID)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivate_MissingDoctorIsNotFound(t *testing.T) {
	repo, mock, cleanup := newMockDoctorRepo(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE clinic_doctors SET active = false`).
		WillReturnRows(sqlmock.NewRows([]string{"global_doctor_id"}))
	mock.ExpectRollback()

	err := repo.Deactivate(context.Background(), uuid.New(), uuid.New())

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode())
	assert.NoError(t, mock.ExpectationsWereMet())
}
