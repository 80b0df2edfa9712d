package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "idverify/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUserID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseUserID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseUserID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseUserID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, UserID(validUUID), id)
		assert.Equal(t, validUUID.String(), id.String())
		assert.False(t, id.IsNil())
	})
}

func TestParseID_TrustBoundary(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"SQL injection attempt", "'; DROP TABLE users;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Empty string", "", true},
		{"Nil UUID", uuid.Nil.String(), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errUser := ParseUserID(tt.input)
			_, errLog := ParseLogID(tt.input)
			if tt.wantErr {
				require.Error(t, errUser)
				require.Error(t, errLog)
				assert.True(t, dErrors.HasCode(errUser, dErrors.CodeInvalidInput))
				assert.True(t, dErrors.HasCode(errLog, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, errUser)
				require.NoError(t, errLog)
			}
		})
	}
}

func TestNewLogID(t *testing.T) {
	a, b := NewLogID(), NewLogID()
	assert.False(t, a.IsNil())
	assert.NotEqual(t, a, b)
	assert.True(t, LogID{}.IsNil())
}

func TestIDs_JSONText(t *testing.T) {
	u := uuid.New()
	b, err := json.Marshal(struct {
		User UserID `json:"user"`
		Log  LogID  `json:"log"`
	}{UserID(u), LogID(u)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":"`+u.String()+`","log":"`+u.String()+`"}`, string(b))

	var back struct {
		User UserID `json:"user"`
	}
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, UserID(u), back.User)
}
