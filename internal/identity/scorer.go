package identity

import (
	"math"
	"strings"
)

const (
	fullMatch = 100.0
	noMatch   = 0.0
)

// Scorer compares a provider's claimed identity against the identity on file
// and recommends how to route the verification.
//
// This is pure domain logic - no I/O, no side effects. A Scorer holds only
// its immutable thresholds and is safe for concurrent use.
type Scorer struct {
	thresholds Thresholds
}

// NewScorer builds a scorer with the given thresholds. Use
// DefaultThresholds() for 85 / 70 / 50.
func NewScorer(thresholds Thresholds) *Scorer {
	return &Scorer{thresholds: thresholds}
}

// Thresholds returns the configured thresholds.
func (s *Scorer) Thresholds() Thresholds {
	return s.thresholds
}

// Score compares every field both sides carry, in fixed order, and averages
// the per-field scores.
//
// Rules:
//  1. A field is compared only when both sides have a usable value; a
//     missing value never counts against the score.
//  2. overall_confidence is the unweighted mean rounded to two decimals.
//  3. No comparable fields yields 0 and auto_reject.
//
// Score never fails: malformed input only excludes the field.
func (s *Scorer) Score(claimed ClaimedIdentity, known KnownIdentity) MatchResult {
	breakdown := make(map[string]float64, len(scoredFields))
	var total float64
	checks := 0

	for _, field := range scoredFields {
		score, ok := compareField(field, claimed, known)
		if !ok {
			continue
		}
		breakdown[field.BreakdownKey()] = score
		total += score
		checks++
	}

	overall := 0.0
	if checks > 0 {
		overall = roundTo2(total / float64(checks))
	}

	return MatchResult{
		OverallConfidence: overall,
		Breakdown:         breakdown,
		ChecksPerformed:   checks,
		Recommendation:    s.Recommend(overall),
	}
}

// Recommend maps an overall confidence to a routing decision. Only the
// auto-verify and manual-review thresholds take part.
func (s *Scorer) Recommend(confidence float64) Recommendation {
	switch {
	case confidence >= s.thresholds.AutoVerify:
		return RecommendAutoApprove
	case confidence >= s.thresholds.ManualReview:
		return RecommendManualReview
	default:
		return RecommendAutoReject
	}
}

// MatchName applies the scorer's name policy to an arbitrary pair, such as
// a registered company name against the name on a company profile.
func (s *Scorer) MatchName(a, b string) int {
	return MatchName(a, b)
}

func compareField(field Field, claimed ClaimedIdentity, known KnownIdentity) (float64, bool) {
	switch field {
	case FieldFirstName:
		return compareNames(claimed.FirstName, known.FirstName)
	case FieldLastName:
		return compareNames(claimed.LastName, known.LastName)
	case FieldPhone:
		return comparePhones(claimed.Phone, known.Phone)
	case FieldDateOfBirth:
		return compareBirthdates(claimed, known)
	case FieldEmail:
		return compareEmails(claimed.Email, known.Email)
	default:
		return 0, false
	}
}

func compareNames(claimed, known string) (float64, bool) {
	if claimed == "" || known == "" {
		return 0, false
	}
	return float64(MatchName(claimed, known)), true
}

func comparePhones(claimed, known string) (float64, bool) {
	c, k := NormalizePhone(claimed), NormalizePhone(known)
	if c == "" || k == "" {
		return 0, false
	}
	return exact(phoneSuffix(c) == phoneSuffix(k)), true
}

func compareBirthdates(claimed ClaimedIdentity, known KnownIdentity) (float64, bool) {
	if known.DateOfBirth.IsZero() {
		return 0, false
	}
	dob, ok := claimedBirthdate(claimed)
	if !ok {
		return 0, false
	}
	return exact(sameCalendarDate(dob, known.DateOfBirth)), true
}

func compareEmails(claimed, known string) (float64, bool) {
	if claimed == "" || known == "" {
		return 0, false
	}
	return exact(strings.ToLower(claimed) == strings.ToLower(known)), true
}

func exact(match bool) float64 {
	if match {
		return fullMatch
	}
	return noMatch
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
