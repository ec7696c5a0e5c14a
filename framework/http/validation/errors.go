package validation

import (
	"errors"
	"sort"
	"strings"
)

// Misuse errors. Rule outcomes are never errors; these report broken rule
// lists and are wrapped with the offending name.
var (
	ErrUnknownRule = errors.New("validation: unknown rule")
	ErrInvalidRef  = errors.New("validation: invalid rule reference")
	ErrUnknownForm = errors.New("validation: unknown form")
)

// ── Error bag ────────────────────────────────────────────────────────────────

// Errors holds the first message of every failing field.
// JSON output: {"errors": {"field": "message"}}
type Errors struct {
	Bag map[string]string `json:"errors"`
}

func newErrors() *Errors {
	return &Errors{Bag: make(map[string]string)}
}

func (e *Errors) add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string]string)
	}
	e.Bag[field] = msg
}

// Has returns true if any field failed.
func (e *Errors) Has() bool { return e != nil && len(e.Bag) > 0 }

// Len returns the number of failing fields.
func (e *Errors) Len() int {
	if e == nil {
		return 0
	}
	return len(e.Bag)
}

// First returns the message for a field, or "" when it passed.
func (e *Errors) First(field string) string {
	if e == nil {
		return ""
	}
	return e.Bag[field]
}

// Fields returns the failing field names, sorted.
func (e *Errors) Fields() []string {
	if e == nil {
		return nil
	}
	fields := make([]string, 0, len(e.Bag))
	for f := range e.Bag {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// String renders the bag as "field: message; field: message".
func (e *Errors) String() string {
	parts := make([]string, 0, e.Len())
	for _, f := range e.Fields() {
		parts = append(parts, f+": "+e.Bag[f])
	}
	return strings.Join(parts, "; ")
}
