// Package domain holds typed identifiers shared across modules.
//
// IDs are distinct named types over uuid.UUID so that a user ID can never be
// passed where a log ID is expected.
package domain

import (
	"github.com/google/uuid"

	dErrors "idverify/pkg/domain-errors"
)

type (
	UserID uuid.UUID
	LogID  uuid.UUID
)

func (id UserID) String() string { return uuid.UUID(id).String() }
func (id UserID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id LogID) String() string { return uuid.UUID(id).String() }
func (id LogID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func (id UserID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id LogID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *LogID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }

// NewLogID returns a fresh random log ID.
func NewLogID() LogID { return LogID(uuid.New()) }

// ParseUserID parses a user ID at a trust boundary.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user ID")
	return UserID(u), err
}

// ParseLogID parses a verification log ID at a trust boundary.
func ParseLogID(s string) (LogID, error) {
	u, err := parseUUID(s, "log ID")
	return LogID(u), err
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return u, nil
}
