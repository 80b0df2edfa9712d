// Package postgres persists verification profiles and logs with pgx.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"idverify/internal/platform/postgres"
	"idverify/internal/verification/models"
	id "idverify/pkg/domain"
	"idverify/pkg/platform/sentinel"
)

// Store implements ports.Store on the agent_profiles, company_profiles and
// verification_logs tables.
type Store struct {
	db postgres.DB
}

func New(db postgres.DB) *Store {
	return &Store{db: db}
}

const selectAgent = `
	SELECT first_name, last_name, email, phone, date_of_birth, id_type, id_number,
		   status, rejection_reason, id_verified, can_post_properties,
		   verification_data, verified_at, updated_at
	FROM agent_profiles
	WHERE user_id = $1`

func (s *Store) FindAgent(ctx context.Context, userID id.UserID) (*models.AgentProfile, error) {
	var (
		agent  = models.AgentProfile{UserID: userID}
		dob    *time.Time
		idType string
		status string
		data   []byte
	)
	err := s.db.QueryRow(ctx, selectAgent, uuid.UUID(userID)).Scan(
		&agent.FirstName,
		&agent.LastName,
		&agent.Email,
		&agent.Phone,
		&dob,
		&idType,
		&agent.IDNumber,
		&status,
		&agent.RejectionReason,
		&agent.IDVerified,
		&agent.CanPostProperties,
		&data,
		&agent.VerifiedAt,
		&agent.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "select agent profile")
	}
	if dob != nil {
		agent.DateOfBirth = *dob
	}
	agent.IDType = models.VerificationType(idType)
	agent.Status = models.Status(status)
	if len(data) > 0 {
		agent.VerificationData = &models.AgentVerification{}
		if err := json.Unmarshal(data, agent.VerificationData); err != nil {
			return nil, eris.Wrap(err, "decode agent verification data")
		}
	}
	return &agent, nil
}

func (s *Store) SaveAgent(ctx context.Context, p *models.AgentProfile) error {
	data, err := marshalNullable(p.VerificationData)
	if err != nil {
		return eris.Wrap(err, "encode agent verification data")
	}
	query := `
		INSERT INTO agent_profiles (
			user_id, first_name, last_name, email, phone, date_of_birth, id_type, id_number,
			status, rejection_reason, id_verified, can_post_properties,
			verification_data, verified_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (user_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			date_of_birth = EXCLUDED.date_of_birth,
			id_type = EXCLUDED.id_type,
			id_number = EXCLUDED.id_number,
			status = EXCLUDED.status,
			rejection_reason = EXCLUDED.rejection_reason,
			id_verified = EXCLUDED.id_verified,
			can_post_properties = EXCLUDED.can_post_properties,
			verification_data = EXCLUDED.verification_data,
			verified_at = EXCLUDED.verified_at,
			updated_at = EXCLUDED.updated_at
	`
	_, err = s.db.Exec(ctx, query,
		uuid.UUID(p.UserID),
		p.FirstName,
		p.LastName,
		p.Email,
		p.Phone,
		nullableTime(p.DateOfBirth),
		string(p.IDType),
		p.IDNumber,
		string(p.Status),
		p.RejectionReason,
		p.IDVerified,
		p.CanPostProperties,
		data,
		p.VerifiedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return eris.Wrap(err, "upsert agent profile")
	}
	return nil
}

const selectCompany = `
	SELECT company_name, rc_number, status, rejection_reason, cac_verified,
		   can_post_properties, cac_data, verified_at, updated_at
	FROM company_profiles
	WHERE user_id = $1`

func (s *Store) FindCompany(ctx context.Context, userID id.UserID) (*models.CompanyProfile, error) {
	var (
		company = models.CompanyProfile{UserID: userID}
		status  string
		data    []byte
	)
	err := s.db.QueryRow(ctx, selectCompany, uuid.UUID(userID)).Scan(
		&company.CompanyName,
		&company.RCNumber,
		&status,
		&company.RejectionReason,
		&company.CACVerified,
		&company.CanPostProperties,
		&data,
		&company.VerifiedAt,
		&company.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "select company profile")
	}
	company.Status = models.Status(status)
	if len(data) > 0 {
		company.CACData = &models.CompanyVerification{}
		if err := json.Unmarshal(data, company.CACData); err != nil {
			return nil, eris.Wrap(err, "decode company cac data")
		}
	}
	return &company, nil
}

func (s *Store) SaveCompany(ctx context.Context, p *models.CompanyProfile) error {
	data, err := marshalNullable(p.CACData)
	if err != nil {
		return eris.Wrap(err, "encode company cac data")
	}
	query := `
		INSERT INTO company_profiles (
			user_id, company_name, rc_number, status, rejection_reason, cac_verified,
			can_post_properties, cac_data, verified_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			rc_number = EXCLUDED.rc_number,
			status = EXCLUDED.status,
			rejection_reason = EXCLUDED.rejection_reason,
			cac_verified = EXCLUDED.cac_verified,
			can_post_properties = EXCLUDED.can_post_properties,
			cac_data = EXCLUDED.cac_data,
			verified_at = EXCLUDED.verified_at,
			updated_at = EXCLUDED.updated_at
	`
	_, err = s.db.Exec(ctx, query,
		uuid.UUID(p.UserID),
		p.CompanyName,
		p.RCNumber,
		string(p.Status),
		p.RejectionReason,
		p.CACVerified,
		p.CanPostProperties,
		data,
		p.VerifiedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return eris.Wrap(err, "upsert company profile")
	}
	return nil
}

func (s *Store) AppendLog(ctx context.Context, e *models.VerificationLog) error {
	requestData, err := json.Marshal(e.RequestData)
	if err != nil {
		return eris.Wrap(err, "encode request data")
	}
	var responseData []byte
	if len(e.ResponseData) > 0 {
		responseData = e.ResponseData
	}
	query := `
		INSERT INTO verification_logs (
			id, user_id, verification_type, provider, request_data, response_data,
			status, is_match, confidence_score, error_message, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = s.db.Exec(ctx, query,
		uuid.UUID(e.ID),
		uuid.UUID(e.UserID),
		string(e.Type),
		e.Provider,
		requestData,
		responseData,
		string(e.Status),
		e.IsMatch,
		e.ConfidenceScore,
		e.ErrorMessage,
		e.CreatedAt,
	)
	if err != nil {
		return eris.Wrap(err, "insert verification log")
	}
	return nil
}

// ListLogs returns the user's logs newest first.
func (s *Store) ListLogs(ctx context.Context, userID id.UserID) ([]*models.VerificationLog, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, verification_type, provider, request_data, response_data,
			   status, is_match, confidence_score, error_message, created_at
		FROM verification_logs
		WHERE user_id = $1
		ORDER BY created_at DESC`, uuid.UUID(userID))
	if err != nil {
		return nil, eris.Wrap(err, "query verification logs")
	}
	defer rows.Close()

	var logs []*models.VerificationLog
	for rows.Next() {
		var (
			entry       = models.VerificationLog{UserID: userID}
			logID       string
			vType       string
			status      string
			requestData []byte
			response    []byte
		)
		err := rows.Scan(
			&logID,
			&vType,
			&entry.Provider,
			&requestData,
			&response,
			&status,
			&entry.IsMatch,
			&entry.ConfidenceScore,
			&entry.ErrorMessage,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, eris.Wrap(err, "scan verification log")
		}
		parsed, err := uuid.Parse(logID)
		if err != nil {
			return nil, eris.Wrapf(err, "parse log id %q", logID)
		}
		entry.ID = id.LogID(parsed)
		entry.Type = models.VerificationType(vType)
		entry.Status = models.LogStatus(status)
		if len(requestData) > 0 {
			if err := json.Unmarshal(requestData, &entry.RequestData); err != nil {
				return nil, eris.Wrap(err, "decode request data")
			}
		}
		if len(response) > 0 {
			entry.ResponseData = json.RawMessage(response)
		}
		logs = append(logs, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "iterate verification logs")
	}
	return logs, nil
}

func marshalNullable[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
