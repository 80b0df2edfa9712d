package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idverify/internal/verification/models"
	id "idverify/pkg/domain"
	"idverify/pkg/platform/sentinel"
)

var (
	agentColumns = []string{
		"first_name", "last_name", "email", "phone", "date_of_birth", "id_type", "id_number",
		"status", "rejection_reason", "id_verified", "can_post_properties",
		"verification_data", "verified_at", "updated_at",
	}
	companyColumns = []string{
		"company_name", "rc_number", "status", "rejection_reason", "cac_verified",
		"can_post_properties", "cac_data", "verified_at", "updated_at",
	}
	logColumns = []string{
		"id", "verification_type", "provider", "request_data", "response_data",
		"status", "is_match", "confidence_score", "error_message", "created_at",
	}
	updatedAt = time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestStore_FindAgent(t *testing.T) {
	t.Run("decodes profile and verification data", func(t *testing.T) {
		mock := newMock(t)
		userID := id.UserID(uuid.New())
		dob := time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC)
		verifiedAt := updatedAt
		data := []byte(`{"provider":"persona","confidence_score":92.5,"confidence_breakdown":{"first_name_match":100},"checks_performed":2,"recommendation":"auto_approve","verified_at":"2025-03-04T05:06:07Z"}`)

		rows := pgxmock.NewRows(agentColumns).AddRow(
			"John", "Doe", "john@example.com", "08031234567", &dob, "nin", "12345678901",
			"verified", "", true, true, data, &verifiedAt, updatedAt,
		)
		mock.ExpectQuery("FROM agent_profiles").WithArgs(uuid.UUID(userID)).WillReturnRows(rows)

		agent, err := New(mock).FindAgent(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, userID, agent.UserID)
		assert.Equal(t, dob, agent.DateOfBirth)
		assert.Equal(t, models.TypeNIN, agent.IDType)
		assert.Equal(t, models.StatusVerified, agent.Status)
		assert.True(t, agent.CanPostProperties)
		require.NotNil(t, agent.VerificationData)
		assert.Equal(t, 92.5, agent.VerificationData.ConfidenceScore)
		assert.Equal(t, 100.0, agent.VerificationData.Breakdown["first_name_match"])
		require.NotNil(t, agent.VerifiedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row is ErrNotFound", func(t *testing.T) {
		mock := newMock(t)
		userID := id.UserID(uuid.New())
		mock.ExpectQuery("FROM agent_profiles").WithArgs(uuid.UUID(userID)).WillReturnError(pgx.ErrNoRows)

		_, err := New(mock).FindAgent(context.Background(), userID)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		mock := newMock(t)
		userID := id.UserID(uuid.New())
		mock.ExpectQuery("FROM agent_profiles").WithArgs(uuid.UUID(userID)).WillReturnError(errors.New("connection reset"))

		_, err := New(mock).FindAgent(context.Background(), userID)
		require.Error(t, err)
		assert.NotErrorIs(t, err, sentinel.ErrNotFound)
		assert.Contains(t, err.Error(), "select agent profile")
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestStore_SaveAgent(t *testing.T) {
	mock := newMock(t)
	userID := id.UserID(uuid.New())

	mock.ExpectExec("INSERT INTO agent_profiles").
		WithArgs(uuid.UUID(userID), "John", "Doe", "", "", (*time.Time)(nil), "bvn", "22222222222",
			"in_review", "", false, false, []byte(nil), (*time.Time)(nil), updatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := New(mock).SaveAgent(context.Background(), &models.AgentProfile{
		UserID:    userID,
		FirstName: "John",
		LastName:  "Doe",
		IDType:    models.TypeBVN,
		IDNumber:  "22222222222",
		Status:    models.StatusInReview,
		UpdatedAt: updatedAt,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Company(t *testing.T) {
	t.Run("save encodes cac data", func(t *testing.T) {
		mock := newMock(t)
		userID := id.UserID(uuid.New())
		cac := &models.CompanyVerification{Provider: "kora", RegisteredName: "ACME", NameMatchScore: 95, VerifiedAt: updatedAt}
		encoded, err := json.Marshal(cac)
		require.NoError(t, err)

		mock.ExpectExec("INSERT INTO company_profiles").
			WithArgs(uuid.UUID(userID), "Acme", "RC1", "verified", "", true, true, encoded, pgxmock.AnyArg(), updatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		verifiedAt := updatedAt
		err = New(mock).SaveCompany(context.Background(), &models.CompanyProfile{
			UserID:            userID,
			CompanyName:       "Acme",
			RCNumber:          "RC1",
			Status:            models.StatusVerified,
			CACVerified:       true,
			CACData:           cac,
			CanPostProperties: true,
			VerifiedAt:        &verifiedAt,
			UpdatedAt:         updatedAt,
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("find without cac data", func(t *testing.T) {
		mock := newMock(t)
		userID := id.UserID(uuid.New())
		rows := pgxmock.NewRows(companyColumns).AddRow(
			"Acme", "", "pending", "", false, false, []byte(nil), (*time.Time)(nil), updatedAt,
		)
		mock.ExpectQuery("FROM company_profiles").WithArgs(uuid.UUID(userID)).WillReturnRows(rows)

		company, err := New(mock).FindCompany(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, company.Status)
		assert.Nil(t, company.CACData)
		assert.Nil(t, company.VerifiedAt)
	})

	t.Run("missing row is ErrNotFound", func(t *testing.T) {
		mock := newMock(t)
		userID := id.UserID(uuid.New())
		mock.ExpectQuery("FROM company_profiles").WithArgs(uuid.UUID(userID)).WillReturnError(pgx.ErrNoRows)

		_, err := New(mock).FindCompany(context.Background(), userID)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestStore_Logs(t *testing.T) {
	t.Run("append", func(t *testing.T) {
		mock := newMock(t)
		entry := &models.VerificationLog{
			ID:           id.NewLogID(),
			UserID:       id.UserID(uuid.New()),
			Type:         models.TypeNIN,
			Provider:     "persona",
			RequestData:  map[string]string{"id_hash": "abc"},
			Status:       models.LogFailed,
			ErrorMessage: "Service unavailable",
			CreatedAt:    updatedAt,
		}
		mock.ExpectExec("INSERT INTO verification_logs").
			WithArgs(uuid.UUID(entry.ID), uuid.UUID(entry.UserID), "nin", "persona", []byte(`{"id_hash":"abc"}`),
				[]byte(nil), "failed", false, (*float64)(nil), "Service unavailable", updatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, New(mock).AppendLog(context.Background(), entry))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list", func(t *testing.T) {
		mock := newMock(t)
		userID := id.UserID(uuid.New())
		logID := uuid.New()
		score := 88.0
		rows := pgxmock.NewRows(logColumns).AddRow(
			logID.String(), "bvn", "kora", []byte(`{"id_hash":"h"}`), []byte(`{"status":true}`),
			"success", true, &score, "", updatedAt,
		)
		mock.ExpectQuery("FROM verification_logs").WithArgs(uuid.UUID(userID)).WillReturnRows(rows)

		logs, err := New(mock).ListLogs(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, id.LogID(logID), logs[0].ID)
		assert.Equal(t, userID, logs[0].UserID)
		assert.Equal(t, models.TypeBVN, logs[0].Type)
		assert.Equal(t, "h", logs[0].RequestData["id_hash"])
		assert.JSONEq(t, `{"status":true}`, string(logs[0].ResponseData))
		require.NotNil(t, logs[0].ConfidenceScore)
		assert.Equal(t, 88.0, *logs[0].ConfidenceScore)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		mock := newMock(t)
		userID := id.UserID(uuid.New())
		mock.ExpectQuery("FROM verification_logs").WithArgs(uuid.UUID(userID)).WillReturnError(errors.New("timeout"))

		_, err := New(mock).ListLogs(context.Background(), userID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query verification logs")
		assert.Contains(t, err.Error(), "timeout")
	})
}
