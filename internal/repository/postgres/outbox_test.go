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
)

func newMockOutboxRepo(t *testing.T) (*outboxRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := &outboxRepository{db: sqlxDB}

	return repo, mock, func() { sqlxDB.Close() }
}

func outboxColumns() []string {
	return []string{"id", "event_type", "payload", "status", "error_message", "retry_count", "created_at", "processed_at"}
}

func TestClaimPending_MarksBatchProcessing(t *testing.T) {
	repo, mock, cleanup := newMockOutboxRepo(t)
	defer cleanup()

	eventID := uuid.New()
	rows := sqlmock.NewRows(outboxColumns()).
		AddRow(eventID, "appointment.created", []byte(`{}`),
			string(model.OutboxStatusProcessing), nil, 0, time.Now(), nil)

	mock.ExpectQuery(`UPDATE outbox_events SET status =`).
		WithArgs(model.OutboxStatusProcessing, model.OutboxStatusPending, 10).
		WillReturnRows(rows)

	events, err := repo.ClaimPending(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, eventID, events[0].ID)
	assert.Equal(t, model.OutboxStatusProcessing, events[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimPending_EmptyQueue(t *testing.T) {
	repo, mock, cleanup := newMockOutboxRepo(t)
	defer cleanup()

	mock.ExpectQuery(`UPDATE outbox_events SET status =`).
		WillReturnRows(sqlmock.NewRows(outboxColumns()))

	events, err := repo.ClaimPending(context.Background(), 10)

	require.NoError(t, err)
	assert.Empty(t, events)
	assert.NoError(t, mock.ExpectationsWereMet())
}
