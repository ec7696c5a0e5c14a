package validation

// Form binds data to rules, mirroring Validator::make($data, $rules).
//
//	f := validation.Make(data, validation.FormRules{
//	    "email":    validation.MustParse("required|email"),
//	    "password": validation.MustParse("required|password"),
//	})
//	if f.Fails() {
//	    // f.Errors().Bag → {"email": "Please enter a valid email address."}
//	}
type Form struct {
	v      *Validator
	data   FormData
	rules  FormRules
	errors *Errors
	err    error
}

// Make binds data and rules to v.
func (v *Validator) Make(data FormData, rules FormRules) *Form {
	return &Form{v: v, data: data, rules: rules, errors: newErrors()}
}

// Make binds data and rules to the default Validator.
func Make(data FormData, rules FormRules) *Form {
	return Default().Make(data, rules)
}

// Fails runs validation and returns true if any field failed or a rule list
// was malformed (see Err).
func (f *Form) Fails() bool {
	f.validate()
	return f.err != nil || f.errors.Has()
}

// Passes runs validation and returns true if every field passed.
func (f *Form) Passes() bool { return !f.Fails() }

// Errors returns the error bag of the last run.
func (f *Form) Errors() *Errors { return f.errors }

// Err returns the misuse error of the last run, if any.
func (f *Form) Err() error { return f.err }

func (f *Form) validate() {
	errs, err := f.v.ValidateForm(f.data, f.rules)
	if err != nil {
		f.errors, f.err = newErrors(), err
		return
	}
	f.errors, f.err = errs, nil
}
