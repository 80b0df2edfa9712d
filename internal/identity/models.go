package identity

import (
	"errors"
	"time"
)

// ClaimedIdentity holds the identity attributes an external verification
// provider returned for a submitted ID number, already normalized from the
// provider's own key names. Empty strings mean the provider did not return
// the field.
type ClaimedIdentity struct {
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	MiddleName string `json:"middle_name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`

	// DateOfBirth is the provider's raw date string (YYYY-MM-DD or DD-MM-YYYY).
	DateOfBirth string `json:"date_of_birth,omitempty"`
	// BirthDate is set when the provider supplied a native date. It takes
	// precedence over DateOfBirth.
	BirthDate time.Time `json:"-"`
}

// IsEmpty reports whether no scorable field is present.
func (c ClaimedIdentity) IsEmpty() bool {
	return c.FirstName == "" && c.LastName == "" && c.Phone == "" &&
		c.Email == "" && c.DateOfBirth == "" && c.BirthDate.IsZero()
}

// KnownIdentity holds the identity attributes already on file for the user.
// Callers leave a field empty (or DateOfBirth zero) when the profile does
// not carry it.
type KnownIdentity struct {
	FirstName   string    `json:"first_name,omitempty"`
	LastName    string    `json:"last_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	DateOfBirth time.Time `json:"date_of_birth,omitzero"`
}

// Field names a compared identity attribute.
type Field string

const (
	FieldFirstName   Field = "first_name"
	FieldLastName    Field = "last_name"
	FieldPhone       Field = "phone"
	FieldDateOfBirth Field = "date_of_birth"
	FieldEmail       Field = "email"
)

// scoredFields is the fixed comparison order.
var scoredFields = []Field{
	FieldFirstName,
	FieldLastName,
	FieldPhone,
	FieldDateOfBirth,
	FieldEmail,
}

// BreakdownKey returns the MatchResult.Breakdown key for the field.
func (f Field) BreakdownKey() string {
	return string(f) + "_match"
}

// Recommendation is the routing decision derived from overall confidence.
type Recommendation string

const (
	RecommendAutoApprove  Recommendation = "auto_approve"
	RecommendManualReview Recommendation = "manual_review"
	RecommendAutoReject   Recommendation = "auto_reject"
)

// MatchResult is the scorer output for one verification attempt.
type MatchResult struct {
	OverallConfidence float64            `json:"overall_confidence"`
	Breakdown         map[string]float64 `json:"breakdown"`
	ChecksPerformed   int                `json:"checks_performed"`
	Recommendation    Recommendation     `json:"recommendation"`
}

// InsufficientData reports whether nothing could be compared. Callers treat
// this as "unable to verify", which is distinct from a failed match even
// though the recommendation is auto_reject in both cases.
func (r MatchResult) InsufficientData() bool {
	return r.ChecksPerformed == 0
}

// Thresholds configures the recommendation boundaries on the 0-100 scale.
type Thresholds struct {
	AutoVerify   float64 `json:"auto_verify" mapstructure:"auto_verify"`
	ManualReview float64 `json:"manual_review" mapstructure:"manual_review"`
	// AutoReject is reported alongside results but routing never branches on
	// it: anything below ManualReview is already auto_reject.
	AutoReject float64 `json:"auto_reject" mapstructure:"auto_reject"`
}

// DefaultThresholds returns 85 / 70 / 50.
func DefaultThresholds() Thresholds {
	return Thresholds{
		AutoVerify:   85,
		ManualReview: 70,
		AutoReject:   50,
	}
}

var ErrInvalidThresholds = errors.New("invalid thresholds: require 0 <= auto_reject <= manual_review <= auto_verify <= 100")

// Validate checks the thresholds are ordered and within range.
func (t Thresholds) Validate() error {
	if t.AutoReject < 0 || t.AutoVerify > 100 {
		return ErrInvalidThresholds
	}
	if t.AutoReject > t.ManualReview || t.ManualReview > t.AutoVerify {
		return ErrInvalidThresholds
	}
	return nil
}
