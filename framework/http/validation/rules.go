package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

// RuleFunc checks value against an optional parameter and returns an empty
// string when the value is valid, or a human-readable message otherwise.
type RuleFunc func(value, param any) string

// Rule names available in every Validator.
const (
	RuleRequired       = "required"
	RuleEmail          = "email"
	RulePhone          = "phone"
	RulePassword       = "password"
	RuleMinLength      = "minLength"
	RuleIsAdult        = "isAdult"
	RuleIsNumber       = "isNumber"
	RuleIsAlphabetic   = "isAlphabetic"
	RuleIsAlphanumeric = "isAlphanumeric"
	RuleMatches        = "matches"
)

// Messages returned by the built-in rules.
const (
	MsgRequired       = "This field is required."
	MsgEmail          = "Please enter a valid email address."
	MsgPhone          = "Please enter a valid 10-digit phone number."
	MsgIsAdult        = "Must be 18 or older."
	MsgIsNumber       = "Must be a valid number."
	MsgIsAlphabetic   = "Must contain only alphabetic characters."
	MsgIsAlphanumeric = "Must contain only alphanumeric characters."
	MsgMatches        = "Fields do not match."

	MsgPasswordRequired = "Password is required."
	MsgPasswordLength   = "Password must be at least 8 characters long."
	MsgPasswordUpper    = "Password must contain at least one uppercase letter."
	MsgPasswordDigit    = "Password must contain at least one number."
	MsgPasswordSpecial  = "Password must contain at least one special character."

	msgMinLength = "Must be at least %s characters."
)

const (
	minPasswordLength = 8
	adultAge          = 18

	// maxDateMillis bounds the representable dates: ±100,000,000 days from
	// the Unix epoch.
	maxDateMillis = 8.64e15
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)
	phonePattern    = regexp.MustCompile(`^[0-9]{10}$`)
	numberPattern   = regexp.MustCompile(`^[0-9]+$`)
	alphaPattern    = regexp.MustCompile(`^[A-Za-z]+$`)
	alphaNumPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

	upperPattern   = regexp.MustCompile(`[A-Z]`)
	digitPattern   = regexp.MustCompile(`[0-9]`)
	specialPattern = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// MinLengthMessage is the message minLength returns for the given minimum.
func MinLengthMessage(min any) string {
	return fmt.Sprintf(msgMinLength, formatNumber(paramNumber(min)))
}

// builtinRules returns a fresh registry of the built-in rules. isAdult reads
// the current year from now.
func builtinRules(now func() time.Time) map[string]RuleFunc {
	return map[string]RuleFunc{
		RuleRequired:       required,
		RuleEmail:          pattern(emailPattern, MsgEmail),
		RulePhone:          pattern(phonePattern, MsgPhone),
		RulePassword:       password,
		RuleMinLength:      minLength,
		RuleIsAdult:        isAdult(now),
		RuleIsNumber:       pattern(numberPattern, MsgIsNumber),
		RuleIsAlphabetic:   pattern(alphaPattern, MsgIsAlphabetic),
		RuleIsAlphanumeric: pattern(alphaNumPattern, MsgIsAlphanumeric),
		RuleMatches:        matches,
	}
}

// ── Rules ────────────────────────────────────────────────────────────────────

func required(value, _ any) string {
	if truthy(value) {
		return ""
	}
	return MsgRequired
}

func pattern(re *regexp.Regexp, msg string) RuleFunc {
	return func(value, _ any) string {
		if re.MatchString(stringOf(value)) {
			return ""
		}
		return msg
	}
}

// password runs its checks in order and reports the first that fails.
func password(value, _ any) string {
	s := stringOf(value)
	switch {
	case !truthy(value):
		return MsgPasswordRequired
	case textLength(s) < minPasswordLength:
		return MsgPasswordLength
	case !upperPattern.MatchString(s):
		return MsgPasswordUpper
	case !digitPattern.MatchString(s):
		return MsgPasswordDigit
	case !specialPattern.MatchString(s):
		return MsgPasswordSpecial
	}
	return ""
}

func minLength(value, param any) string {
	if float64(lengthOf(value)) >= paramNumber(param) {
		return ""
	}
	return MinLengthMessage(param)
}

// isAdult compares calendar years only: someone born on 31 December counts
// as a year older from 1 January.
func isAdult(now func() time.Time) RuleFunc {
	return func(value, _ any) string {
		born, ok := parseDate(value)
		if !ok {
			return MsgIsAdult
		}
		if now().Year()-born.Year() >= adultAge {
			return ""
		}
		return MsgIsAdult
	}
}

func matches(value, param any) string {
	if strictEqual(value, param) {
		return ""
	}
	return MsgMatches
}

// ── Dates ────────────────────────────────────────────────────────────────────

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2006-01",
	"2006",
}

// parseDate accepts a time.Time, a date string in one of dateLayouts, or a
// number of milliseconds since the Unix epoch within ±maxDateMillis.
func parseDate(value any) (time.Time, bool) {
	switch x := value.(type) {
	case time.Time:
		return x, !x.IsZero()
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return *x, !x.IsZero()
	}
	if ms, ok := numberOf(value); ok {
		if math.IsNaN(ms) || math.Abs(ms) > maxDateMillis {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(ms)).UTC(), true
	}

	s := strings.TrimSpace(stringOf(value))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
