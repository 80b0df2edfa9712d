package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	id "idverify/pkg/domain"
	audit "idverify/pkg/platform/audit"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eventColumns = []string{
	"category", "timestamp", "user_id", "subject", "action",
	"decision", "reason", "request_id", "actor_id", "subject_id_hash", "confidence",
}

func TestStore_Append(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	userID := id.UserID(uuid.New())
	ts := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	confidence := 91.5
	uid := uuid.UUID(userID)

	mock.ExpectExec("INSERT INTO audit_events").
		WithArgs(pgxmock.AnyArg(), "compliance", ts, &uid, "agent", "verification_decided",
			"verified", "", "req-1", "", "abc", &confidence).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = New(mock).Append(context.Background(), audit.Event{
		Timestamp:     ts,
		UserID:        userID,
		Subject:       "agent",
		Action:        string(audit.EventVerificationDecided),
		Decision:      "verified",
		RequestID:     "req-1",
		SubjectIDHash: "abc",
		Confidence:    &confidence,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_AppendError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO audit_events").WillReturnError(errors.New("connection reset"))

	err = New(mock).Append(context.Background(), audit.Event{Action: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert audit event")
}

func TestStore_ListByUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	userID := id.UserID(uuid.New())
	uid := uuid.UUID(userID)
	ts := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	confidence := 72.0

	rows := pgxmock.NewRows(eventColumns).
		AddRow("compliance", ts, &uid, "agent", "verification_decided", "in_review", "", "req-2", "", "h", &confidence)
	mock.ExpectQuery("FROM audit_events").WithArgs(uid).WillReturnRows(rows)

	events, err := New(mock).ListByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.CategoryCompliance, events[0].Category)
	assert.Equal(t, userID, events[0].UserID)
	assert.Equal(t, "in_review", events[0].Decision)
	require.NotNil(t, events[0].Confidence)
	assert.Equal(t, 72.0, *events[0].Confidence)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListRecent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	var noUser *uuid.UUID
	var noConfidence *float64
	rows := pgxmock.NewRows(eventColumns).
		AddRow("security", time.Now(), noUser, "", "access_denied", "", "missing role", "", "", "", noConfidence)
	mock.ExpectQuery("LIMIT").WithArgs(10).WillReturnRows(rows)

	events, err := New(mock).ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].UserID.IsNil())
	assert.Nil(t, events[0].Confidence)
	assert.NoError(t, mock.ExpectationsWereMet())
}
