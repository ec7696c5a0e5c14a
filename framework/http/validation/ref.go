package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Ref names a rule, optionally with a parameter.
//
//	validation.Rule("required")
//	validation.With("minLength", 8)
//	validation.With("matches", form["password"])
type Ref struct {
	Name     string
	Param    any
	HasParam bool
}

// Rule references a zero-parameter rule.
func Rule(name string) Ref { return Ref{Name: name} }

// With references a rule together with its parameter.
func With(name string, param any) Ref {
	return Ref{Name: name, Param: param, HasParam: true}
}

// String renders the reference in pipe syntax: "required", "minLength:8".
func (r Ref) String() string {
	if !r.HasParam {
		return r.Name
	}
	return r.Name + ":" + stringOf(r.Param)
}

// Refs is an ordered rule list for one field.
type Refs []Ref

// String renders the list in pipe syntax: "required|minLength:8".
func (rs Refs) String() string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.String()
	}
	return strings.Join(parts, "|")
}

// FormRules maps a field name to its rule list.
type FormRules map[string]Refs

// FormData maps a field name to its current value.
type FormData map[string]any

// ── Pipe syntax ──────────────────────────────────────────────────────────────

// Parse reads a pipe-separated rule string.
// e.g. "required|email", "required|minLength:8"
//
// Parameters stay strings; rules that need a number parse them.
func Parse(s string) (Refs, error) {
	var refs Refs
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		// minLength:8 → name=minLength, param=8
		name, param, hasParam := strings.Cut(part, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRef, part)
		}
		if hasParam {
			refs = append(refs, With(name, param))
		} else {
			refs = append(refs, Rule(name))
		}
	}
	return refs, nil
}

// MustParse is like Parse but panics on error. Meant for package-level rule
// tables.
func MustParse(s string) Refs {
	refs, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return refs
}

// ── JSON ─────────────────────────────────────────────────────────────────────
//
// A reference is either a string ("required") or a single-key object
// ({"minLength": 8}). Objects with several keys keep only the first key in
// document order, which is why decoding goes through gjson instead of a map.

// MarshalJSON encodes a bare reference as a string and a parameterized one
// as a single-key object.
func (r Ref) MarshalJSON() ([]byte, error) {
	if !r.HasParam {
		return json.Marshal(r.Name)
	}
	return json.Marshal(map[string]any{r.Name: r.Param})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Ref) UnmarshalJSON(b []byte) error {
	if !gjson.ValidBytes(b) {
		return fmt.Errorf("%w: malformed JSON", ErrInvalidRef)
	}
	ref, err := refFromJSON(gjson.ParseBytes(b))
	if err != nil {
		return err
	}
	*r = ref
	return nil
}

// UnmarshalJSON accepts an array of references or a pipe-syntax string.
func (rs *Refs) UnmarshalJSON(b []byte) error {
	if !gjson.ValidBytes(b) {
		return fmt.Errorf("%w: malformed JSON", ErrInvalidRef)
	}
	refs, err := refsFromJSON(gjson.ParseBytes(b))
	if err != nil {
		return err
	}
	*rs = refs
	return nil
}

func refsFromJSON(res gjson.Result) (Refs, error) {
	switch {
	case !res.Exists() || res.Type == gjson.Null:
		return nil, nil
	case res.Type == gjson.String:
		return Parse(res.Str)
	case res.IsArray():
		items := res.Array()
		refs := make(Refs, 0, len(items))
		for i, item := range items {
			ref, err := refFromJSON(item)
			if err != nil {
				return nil, fmt.Errorf("rule %d: %w", i, err)
			}
			refs = append(refs, ref)
		}
		return refs, nil
	}
	return nil, fmt.Errorf("%w: expected array or string, got %s", ErrInvalidRef, res.Type)
}

func refFromJSON(res gjson.Result) (Ref, error) {
	switch {
	case res.Type == gjson.String:
		if res.Str == "" {
			return Ref{}, fmt.Errorf("%w: empty rule name", ErrInvalidRef)
		}
		return Rule(res.Str), nil

	case res.IsObject():
		var (
			ref   Ref
			found bool
		)
		res.ForEach(func(key, val gjson.Result) bool {
			ref, found = With(key.String(), val.Value()), true
			return false
		})
		if !found {
			return Ref{}, fmt.Errorf("%w: empty rule object", ErrInvalidRef)
		}
		if ref.Name == "" {
			return Ref{}, fmt.Errorf("%w: empty rule name", ErrInvalidRef)
		}
		return ref, nil
	}
	return Ref{}, fmt.Errorf("%w: expected string or object, got %s", ErrInvalidRef, res.Type)
}

// ── YAML ─────────────────────────────────────────────────────────────────────

// UnmarshalYAML implements yaml.Unmarshaler with the same shape as JSON:
// a scalar rule name or a single-key mapping.
func (r *Ref) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" {
			return fmt.Errorf("%w: empty rule name (line %d)", ErrInvalidRef, node.Line)
		}
		*r = Rule(node.Value)
		return nil

	case yaml.MappingNode:
		// Content alternates key, value; only the first pair counts.
		if len(node.Content) < 2 {
			return fmt.Errorf("%w: empty rule mapping (line %d)", ErrInvalidRef, node.Line)
		}
		name := node.Content[0].Value
		if name == "" {
			return fmt.Errorf("%w: empty rule name (line %d)", ErrInvalidRef, node.Line)
		}
		var param any
		if err := node.Content[1].Decode(&param); err != nil {
			return fmt.Errorf("rule %q: %w", name, err)
		}
		*r = With(name, param)
		return nil
	}
	return fmt.Errorf("%w: expected scalar or mapping (line %d)", ErrInvalidRef, node.Line)
}

// UnmarshalYAML accepts a sequence of references or a pipe-syntax scalar.
func (rs *Refs) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		refs, err := Parse(node.Value)
		if err != nil {
			return err
		}
		*rs = refs
		return nil

	case yaml.SequenceNode:
		refs := make(Refs, 0, len(node.Content))
		for _, item := range node.Content {
			var ref Ref
			if err := item.Decode(&ref); err != nil {
				return err
			}
			refs = append(refs, ref)
		}
		*rs = refs
		return nil
	}
	return fmt.Errorf("%w: expected sequence or scalar (line %d)", ErrInvalidRef, node.Line)
}
