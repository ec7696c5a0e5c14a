package validation

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// RuleSets maps a form name to its field rules, as loaded from YAML:
//
//	signup:
//	  email: [required, email]
//	  password: [required, password]
//	  password_confirmation: required
//	  birthday: [isAdult]
//	newsletter:
//	  email: required|email
type RuleSets map[string]FormRules

// LoadRuleSets decodes rule sets from YAML. An empty document yields an empty
// set.
func LoadRuleSets(r io.Reader) (RuleSets, error) {
	var sets RuleSets
	if err := yaml.NewDecoder(r).Decode(&sets); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode rule sets: %w", err)
	}
	if sets == nil {
		sets = RuleSets{}
	}
	return sets, nil
}

// LoadRuleSetsFile reads rule sets from a YAML file.
func LoadRuleSetsFile(path string) (RuleSets, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sets, err := LoadRuleSets(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sets, nil
}

// Form returns the rules of a named form.
func (s RuleSets) Form(name string) (FormRules, bool) {
	rules, ok := s[name]
	return rules, ok
}

// Names returns the form names, sorted.
func (s RuleSets) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckRuleSets runs Check on every form so that typos in a rules file fail
// at load time instead of on the first request.
func (v *Validator) CheckRuleSets(sets RuleSets) error {
	for _, name := range sets.Names() {
		if err := v.Check(sets[name]); err != nil {
			return fmt.Errorf("form %q: %w", name, err)
		}
	}
	return nil
}

// ValidateNamed validates formData against the named form of sets.
func (v *Validator) ValidateNamed(sets RuleSets, form string, formData FormData) (*Errors, error) {
	rules, ok := sets.Form(form)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownForm, form)
	}
	return v.ValidateForm(formData, rules)
}
