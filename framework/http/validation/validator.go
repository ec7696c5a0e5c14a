package validation

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// ── Validator ────────────────────────────────────────────────────────────────

// Validator applies rule lists to field and form values. Its registry is
// fixed at construction, so a Validator is safe for concurrent use.
type Validator struct {
	rules  map[string]RuleFunc
	logger *slog.Logger
}

type options struct {
	now    func() time.Time
	logger *slog.Logger
	extra  map[string]RuleFunc
}

// Option configures a Validator.
type Option func(*options)

// WithClock sets the clock isAdult reads the current year from.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger used for debug output about failing fields.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRule adds a rule, or replaces a built-in one with the same name.
func WithRule(name string, fn RuleFunc) Option {
	return func(o *options) {
		if name == "" || fn == nil {
			return
		}
		if o.extra == nil {
			o.extra = make(map[string]RuleFunc)
		}
		o.extra[name] = fn
	}
}

// New creates a Validator with the built-in rules.
func New(opts ...Option) *Validator {
	o := options{
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}

	rules := builtinRules(o.now)
	for name, fn := range o.extra {
		rules[name] = fn
	}
	return &Validator{rules: rules, logger: o.logger}
}

var defaultValidator = sync.OnceValue(func() *Validator { return New() })

// Default returns the shared Validator used by the package-level functions.
func Default() *Validator { return defaultValidator() }

// Has reports whether a rule is registered.
func (v *Validator) Has(name string) bool {
	_, ok := v.rules[name]
	return ok
}

// RuleNames returns the registered rule names, sorted.
func (v *Validator) RuleNames() []string {
	names := make([]string, 0, len(v.rules))
	for name := range v.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ── Field validation ─────────────────────────────────────────────────────────

// Apply runs a single rule reference against value.
func (v *Validator) Apply(ref Ref, value any) (string, error) {
	if ref.Name == "" {
		return "", fmt.Errorf("%w: empty rule name", ErrInvalidRef)
	}
	fn, ok := v.rules[ref.Name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRule, ref.Name)
	}
	// Bare references get a nil parameter.
	return fn(value, ref.Param), nil
}

// Messages runs every rule in order and returns all non-empty messages.
// Evaluation does not stop at the first failure.
func (v *Validator) Messages(value any, refs Refs) ([]string, error) {
	var msgs []string
	for _, ref := range refs {
		msg, err := v.Apply(ref, value)
		if err != nil {
			return nil, err
		}
		if msg != "" {
			msgs = append(msgs, msg)
		}
	}
	return msgs, nil
}

// ValidateField returns the first message produced by refs, or "" when every
// rule passes. name is only used for logging. formData is not consulted:
// cross-field parameters (e.g. for matches) must be resolved by the caller.
func (v *Validator) ValidateField(name string, value any, refs Refs, formData FormData) (string, error) {
	msgs, err := v.Messages(value, refs)
	if err != nil {
		return "", fmt.Errorf("field %q: %w", name, err)
	}
	if len(msgs) == 0 {
		return "", nil
	}
	if len(msgs) > 1 {
		v.logger.Debug("field has several failing rules",
			slog.String("field", name),
			slog.Int("failures", len(msgs)),
		)
	}
	return msgs[0], nil
}

// ── Form validation ──────────────────────────────────────────────────────────

// ValidateForm validates every field present in formData. Fields without an
// entry in formRules always pass; rules for fields missing from formData are
// never run.
func (v *Validator) ValidateForm(formData FormData, formRules FormRules) (*Errors, error) {
	errs := newErrors()
	for field, value := range formData {
		msg, err := v.ValidateField(field, value, formRules[field], formData)
		if err != nil {
			return nil, err
		}
		if msg != "" {
			errs.add(field, msg)
		}
	}

	if errs.Has() {
		v.logger.Debug("form validation failed",
			slog.Int("fields", len(formData)),
			slog.Any("failed", errs.Fields()),
		)
	}
	return errs, nil
}

// Check verifies that every reference in rules names a registered rule.
func (v *Validator) Check(rules FormRules) error {
	fields := make([]string, 0, len(rules))
	for f := range rules {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, field := range fields {
		for _, ref := range rules[field] {
			if ref.Name == "" {
				return fmt.Errorf("field %q: %w: empty rule name", field, ErrInvalidRef)
			}
			if !v.Has(ref.Name) {
				return fmt.Errorf("field %q: %w: %q", field, ErrUnknownRule, ref.Name)
			}
		}
	}
	return nil
}

// ── Package-level helpers ────────────────────────────────────────────────────

// ValidateField validates one value with the default Validator.
// It panics when refs name an unknown rule.
//
//	msg := validation.ValidateField("password", pwd, validation.Refs{
//	    validation.Rule("required"),
//	    validation.Rule("password"),
//	}, nil)
func ValidateField(name string, value any, refs Refs, formData FormData) string {
	msg, err := Default().ValidateField(name, value, refs, formData)
	if err != nil {
		panic(err)
	}
	return msg
}

// ValidateForm validates a whole form with the default Validator and returns
// field → first message for failing fields only.
// It panics when a rule list names an unknown rule.
func ValidateForm(formData FormData, formRules FormRules) map[string]string {
	errs, err := Default().ValidateForm(formData, formRules)
	if err != nil {
		panic(err)
	}
	return errs.Bag
}
