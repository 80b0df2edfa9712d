package identity

import (
	"strings"
	"time"
)

const (
	nigeriaDialPrefix = "+234"
	phoneSuffixLen    = 10
)

// birthdateLayouts are tried in order. Single-digit day and month are
// accepted.
var birthdateLayouts = []string{
	"2006-1-2",
	"2-1-2006",
}

// NormalizePhone rewrites the +234 country prefix to a leading 0 and removes
// all whitespace.
func NormalizePhone(raw string) string {
	p := strings.ReplaceAll(raw, nigeriaDialPrefix, "0")
	return strings.Join(strings.Fields(p), "")
}

// phoneSuffix returns the last ten characters of a normalized phone, or the
// whole value when it is shorter.
func phoneSuffix(p string) string {
	r := []rune(p)
	if len(r) <= phoneSuffixLen {
		return p
	}
	return string(r[len(r)-phoneSuffixLen:])
}

// ParseBirthdate parses a provider date string. The second return is false
// when no layout matches.
func ParseBirthdate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range birthdateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// claimedBirthdate resolves the claimed date of birth, preferring the native
// value over the string.
func claimedBirthdate(c ClaimedIdentity) (time.Time, bool) {
	if !c.BirthDate.IsZero() {
		return c.BirthDate, true
	}
	return ParseBirthdate(c.DateOfBirth)
}

// sameCalendarDate compares dates ignoring time of day and location.
func sameCalendarDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
