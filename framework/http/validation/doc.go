// Package validation provides named-rule validation for form fields.
//
// # Overview
//
// A rule is a named check that returns an empty string for a valid value or
// a human-readable message otherwise. A field carries an ordered list of rule
// references; validating it runs every rule and reports only the first
// message. Validating a form does this for every field present in the data.
//
// # Basic Usage
//
//	pwd := "Secret1!"
//	errs := validation.ValidateForm(validation.FormData{
//	    "email":    "alice@example",
//	    "password": pwd,
//	    "confirm":  "Secret1!",
//	}, validation.FormRules{
//	    "email":    {validation.Rule("required"), validation.Rule("email")},
//	    "password": validation.MustParse("required|password"),
//	    "confirm":  {validation.With("matches", pwd)},
//	})
//	// errs → {"email": "Please enter a valid email address."}
//
// Fields without rules always pass. Fields that have rules but no data are
// not checked.
//
// # Rule references
//
//	validation.Rule("email"), validation.With("minLength", 8)  // Go
//	"required|minLength:8"                                      // pipe syntax
//	["required", {"minLength": 8}]                              // JSON / YAML
//
// A JSON or YAML object reference uses its first key only.
//
// # Available Rules
//
//   - required        value is present (not nil, "", false, 0)
//   - email           name@domain.tld
//   - phone           exactly 10 digits
//   - password        8+ chars with an uppercase letter, a digit and a symbol
//   - minLength:n     at least n characters
//   - isAdult         birth year at least 18 years before the current year
//   - isNumber        digits only
//   - isAlphabetic    letters only [A-Za-z]
//   - isAlphanumeric  letters and digits only
//   - matches:v       equal to v (resolve the other field's value yourself)
//
// # Error Bag
//
// Validator.ValidateForm returns *Errors, which serialises as
//
//	{
//	  "errors": {
//	    "email": "Please enter a valid email address."
//	  }
//	}
//
// Unknown rule names are reported as ErrUnknownRule by the Validator methods;
// the package-level ValidateField and ValidateForm panic instead.
package validation
