package validation_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-formrules/framework/http/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2026, time.January, 1, 9, 0, 0, 0, time.UTC)

func newValidator() *validation.Validator {
	return validation.New(validation.WithClock(func() time.Time { return fixedNow }))
}

// pass asserts that ref accepts value.
func pass(t *testing.T, label string, ref validation.Ref, value any) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		msg, err := newValidator().Apply(ref, value)
		require.NoError(t, err)
		assert.Empty(t, msg, "expected %s to pass for %#v", ref, value)
	})
}

// fail asserts that ref rejects value with want.
func fail(t *testing.T, label string, ref validation.Ref, value any, want string) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		msg, err := newValidator().Apply(ref, value)
		require.NoError(t, err)
		assert.Equal(t, want, msg)
	})
}

// ── required ─────────────────────────────────────────────────────────────────

func TestRule_Required(t *testing.T) {
	r := validation.Rule(validation.RuleRequired)

	fail(t, "empty string", r, "", validation.MsgRequired)
	fail(t, "zero", r, 0, validation.MsgRequired)
	fail(t, "zero float", r, 0.0, validation.MsgRequired)
	fail(t, "NaN", r, math.NaN(), validation.MsgRequired)
	fail(t, "nil", r, nil, validation.MsgRequired)
	fail(t, "false", r, false, validation.MsgRequired)
	fail(t, "nil slice", r, []string(nil), validation.MsgRequired)

	pass(t, "text", r, "Alice")
	pass(t, "whitespace", r, " ")
	pass(t, "number", r, 42)
	pass(t, "negative", r, -1.5)
	pass(t, "true", r, true)
	pass(t, "empty slice", r, []string{})
}

// ── pattern rules ────────────────────────────────────────────────────────────

func TestRule_Email(t *testing.T) {
	r := validation.Rule(validation.RuleEmail)

	pass(t, "short", r, "a@b.co")
	pass(t, "subdomain", r, "user.name@mail.example.co.uk")
	pass(t, "dash and underscore", r, "first_last-1@my-host.org")
	fail(t, "no at sign", r, "not-an-email", validation.MsgEmail)
	fail(t, "no domain", r, "user@", validation.MsgEmail)
	fail(t, "one letter tld", r, "a@b.c", validation.MsgEmail)
	fail(t, "seven letter tld", r, "a@b.abcdefg", validation.MsgEmail)
	fail(t, "plus sign", r, "a+b@example.com", validation.MsgEmail)
	fail(t, "empty", r, "", validation.MsgEmail)
}

func TestRule_Phone(t *testing.T) {
	r := validation.Rule(validation.RulePhone)

	pass(t, "ten digits", r, "1234567890")
	pass(t, "ten digit number", r, 1234567890)
	fail(t, "five digits", r, "12345", validation.MsgPhone)
	fail(t, "eleven digits", r, "12345678901", validation.MsgPhone)
	fail(t, "letter", r, "123456789a", validation.MsgPhone)
	fail(t, "formatted", r, "123-456-7890", validation.MsgPhone)
}

func TestRule_IsNumber(t *testing.T) {
	r := validation.Rule(validation.RuleIsNumber)

	pass(t, "digits", r, "123")
	pass(t, "int", r, 7)
	fail(t, "decimal", r, "12.3", validation.MsgIsNumber)
	fail(t, "negative", r, "-1", validation.MsgIsNumber)
	fail(t, "empty", r, "", validation.MsgIsNumber)
}

func TestRule_IsAlphabetic(t *testing.T) {
	r := validation.Rule(validation.RuleIsAlphabetic)

	pass(t, "letters", r, "HelloWorld")
	fail(t, "digits", r, "abc1", validation.MsgIsAlphabetic)
	fail(t, "space", r, "hello world", validation.MsgIsAlphabetic)
	fail(t, "accented", r, "café", validation.MsgIsAlphabetic)
}

func TestRule_IsAlphanumeric(t *testing.T) {
	r := validation.Rule(validation.RuleIsAlphanumeric)

	pass(t, "letters and digits", r, "user123")
	fail(t, "dash", r, "user-123", validation.MsgIsAlphanumeric)
	fail(t, "empty", r, "", validation.MsgIsAlphanumeric)
}

// ── password ─────────────────────────────────────────────────────────────────

func TestRule_Password(t *testing.T) {
	r := validation.Rule(validation.RulePassword)

	pass(t, "strong", r, "Abc123!@")
	fail(t, "empty", r, "", validation.MsgPasswordRequired)
	fail(t, "nil", r, nil, validation.MsgPasswordRequired)

	// Length is checked before character classes.
	fail(t, "short lowercase", r, "abc", validation.MsgPasswordLength)
	fail(t, "seven UTF-16 units", r, "A1!😀😀", validation.MsgPasswordLength)
	pass(t, "eight UTF-16 units", r, "A1!a😀😀")
	fail(t, "no uppercase", r, "abcdefgh", validation.MsgPasswordUpper)
	fail(t, "no digit", r, "Abcdefgh", validation.MsgPasswordDigit)
	fail(t, "no special", r, "Abcdefg1", validation.MsgPasswordSpecial)

	for _, special := range []string{"!", "@", "#", "$", "%", "^", "&", "*", "(", ")", ",", ".", "?", `"`, ":", "{", "}", "|", "<", ">"} {
		pass(t, "special "+special, r, "Abcdefg1"+special)
	}
	fail(t, "underscore is not special", r, "Abcdefg1_", validation.MsgPasswordSpecial)
}

// ── minLength ────────────────────────────────────────────────────────────────

func TestRule_MinLength(t *testing.T) {
	pass(t, "exact", validation.With(validation.RuleMinLength, 8), "abcdefgh")
	pass(t, "longer", validation.With(validation.RuleMinLength, 3), "abcdef")
	pass(t, "string param", validation.With(validation.RuleMinLength, "8"), "abcdefgh")
	pass(t, "float param", validation.With(validation.RuleMinLength, 8.0), "abcdefgh")
	pass(t, "characters not bytes", validation.With(validation.RuleMinLength, 3), "日本語")
	pass(t, "slice length", validation.With(validation.RuleMinLength, 2), []string{"a", "b"})

	fail(t, "shorter", validation.With(validation.RuleMinLength, 8), "abcdef",
		"Must be at least 8 characters.")
	fail(t, "fractional", validation.With(validation.RuleMinLength, 8.5), "abcdefgh",
		"Must be at least 8.5 characters.")
	fail(t, "characters too few", validation.With(validation.RuleMinLength, 3), "日本",
		"Must be at least 3 characters.")
	pass(t, "emoji counts twice", validation.With(validation.RuleMinLength, 4), "😀😀")
	fail(t, "emoji too few", validation.With(validation.RuleMinLength, 5), "😀😀",
		"Must be at least 5 characters.")
	fail(t, "non-numeric param", validation.With(validation.RuleMinLength, "eight"), "abcdefgh",
		"Must be at least NaN characters.")
}

func TestMinLengthMessage(t *testing.T) {
	assert.Equal(t, "Must be at least 8 characters.", validation.MinLengthMessage(8))
	assert.Equal(t, "Must be at least 12 characters.", validation.MinLengthMessage("12"))
}

// ── isAdult ──────────────────────────────────────────────────────────────────

func TestRule_IsAdult(t *testing.T) {
	r := validation.Rule(validation.RuleIsAdult)

	pass(t, "old enough", r, "1990-05-17")
	pass(t, "time value", r, time.Date(2000, time.June, 1, 0, 0, 0, 0, time.UTC))
	pass(t, "slash date", r, "05/17/1990")
	pass(t, "long form", r, "May 17, 1990")
	pass(t, "rfc3339", r, "1990-05-17T10:00:00Z")

	// Years are subtracted without looking at month or day: on 1 January 2026
	// someone born on 31 December 2008 counts as 18.
	pass(t, "calendar year only", r, "2008-12-31")
	fail(t, "seventeen", r, "2009-01-01", validation.MsgIsAdult)

	fail(t, "unparseable", r, "not a date", validation.MsgIsAdult)
	fail(t, "empty", r, "", validation.MsgIsAdult)
	fail(t, "zero time", r, time.Time{}, validation.MsgIsAdult)

	// Unix milliseconds are valid only within ±8.64e15.
	pass(t, "epoch millis", r, float64(0))
	pass(t, "earliest date", r, -8.64e15)
	fail(t, "latest date is in the future", r, 8.64e15, validation.MsgIsAdult)
	fail(t, "before earliest date", r, -9e15, validation.MsgIsAdult)
	fail(t, "after latest date", r, 9e15, validation.MsgIsAdult)
	fail(t, "huge", r, 1e300, validation.MsgIsAdult)
	fail(t, "infinite", r, math.Inf(-1), validation.MsgIsAdult)
	fail(t, "NaN", r, math.NaN(), validation.MsgIsAdult)
}

func TestRule_IsAdult_UsesClock(t *testing.T) {
	later := validation.New(validation.WithClock(func() time.Time {
		return time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC)
	}))

	msg, err := later.Apply(validation.Rule(validation.RuleIsAdult), "2009-01-01")
	require.NoError(t, err)
	assert.Empty(t, msg)
}

// ── matches ──────────────────────────────────────────────────────────────────

func TestRule_Matches(t *testing.T) {
	pass(t, "same string", validation.With(validation.RuleMatches, "x"), "x")
	pass(t, "same number different type", validation.With(validation.RuleMatches, 8.0), 8)
	pass(t, "both nil", validation.With(validation.RuleMatches, nil), nil)

	fail(t, "different string", validation.With(validation.RuleMatches, "y"), "x", validation.MsgMatches)
	fail(t, "string vs number", validation.With(validation.RuleMatches, 8), "8", validation.MsgMatches)
	fail(t, "case sensitive", validation.With(validation.RuleMatches, "Secret"), "secret", validation.MsgMatches)
	fail(t, "slices are never equal", validation.With(validation.RuleMatches, []string{"a"}), []string{"a"}, validation.MsgMatches)
	fail(t, "missing param", validation.Rule(validation.RuleMatches), "x", validation.MsgMatches)
}

// ── every rule passes its documented input ───────────────────────────────────

func TestRules_PassConditions(t *testing.T) {
	cases := map[string]struct {
		ref   validation.Ref
		value any
	}{
		validation.RuleRequired:       {validation.Rule(validation.RuleRequired), "x"},
		validation.RuleEmail:          {validation.Rule(validation.RuleEmail), "a@b.co"},
		validation.RulePhone:          {validation.Rule(validation.RulePhone), "1234567890"},
		validation.RulePassword:       {validation.Rule(validation.RulePassword), "Abc123!@"},
		validation.RuleMinLength:      {validation.With(validation.RuleMinLength, 1), "x"},
		validation.RuleIsAdult:        {validation.Rule(validation.RuleIsAdult), "1970-01-01"},
		validation.RuleIsNumber:       {validation.Rule(validation.RuleIsNumber), "42"},
		validation.RuleIsAlphabetic:   {validation.Rule(validation.RuleIsAlphabetic), "abc"},
		validation.RuleIsAlphanumeric: {validation.Rule(validation.RuleIsAlphanumeric), "abc123"},
		validation.RuleMatches:        {validation.With(validation.RuleMatches, "x"), "x"},
	}

	v := newValidator()
	require.Len(t, cases, len(v.RuleNames()), "every built-in rule needs a case")

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			msg, err := v.Apply(tc.ref, tc.value)
			require.NoError(t, err)
			assert.Empty(t, msg)
		})
	}
}
