package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/km-arc/go-formrules/framework/app"
	gohttp "github.com/km-arc/go-formrules/framework/http"
	"github.com/km-arc/go-formrules/framework/http/validation"
	"github.com/km-arc/go-formrules/framework/logging"
)

// FormController exposes the validator over HTTP: ad-hoc rule lists sent by
// the client and named forms loaded from the rules file.
type FormController struct {
	app.Controller
	validator *validation.Validator
	forms     validation.RuleSets
}

func NewFormController(v *validation.Validator, forms validation.RuleSets) *FormController {
	return &FormController{validator: v, forms: forms}
}

type validateFormRequest struct {
	Data  validation.FormData  `json:"data"`
	Rules validation.FormRules `json:"rules"`
}

type validateFieldRequest struct {
	Name  string              `json:"name"`
	Value any                 `json:"value"`
	Rules validation.Refs     `json:"rules"`
	Data  validation.FormData `json:"data"`
}

// Rules lists the registered rule names.
//
//	GET /api/v1/rules → {"data": ["email", "isAdult", ...]}
func (fc *FormController) Rules(w http.ResponseWriter, r *http.Request) {
	fc.Response(w).Success(fc.validator.RuleNames())
}

// Validate validates a form against rules sent with it.
//
//	POST /api/v1/validate
//	{"data": {"email": "x"}, "rules": {"email": ["required", "email"]}}
func (fc *FormController) Validate(w http.ResponseWriter, r *http.Request) {
	req, res := fc.Request(r), fc.Response(w)

	var body validateFormRequest
	if err := req.Bind(&body); err != nil {
		badRequest(res, err)
		return
	}
	if body.Data == nil {
		body.Data = validation.FormData{}
	}

	errs, err := fc.validator.ValidateForm(body.Data, body.Rules)
	if err != nil {
		badRequest(res, err)
		return
	}
	if errs.Has() {
		res.ValidationError(errs)
		return
	}
	res.Success(map[string]any{"valid": true})
}

// ValidateField validates one value and reports its first message.
//
//	POST /api/v1/validate/field
//	{"name": "password", "value": "abc", "rules": ["required", "password"]}
//	→ {"data": {"field": "password", "message": "...", "valid": false}}
func (fc *FormController) ValidateField(w http.ResponseWriter, r *http.Request) {
	req, res := fc.Request(r), fc.Response(w)

	var body validateFieldRequest
	if err := req.Bind(&body); err != nil {
		badRequest(res, err)
		return
	}

	msg, err := fc.validator.ValidateField(body.Name, body.Value, body.Rules, body.Data)
	if err != nil {
		badRequest(res, err)
		return
	}
	res.Success(map[string]any{
		"field":   body.Name,
		"message": msg,
		"valid":   msg == "",
	})
}

// Forms lists the named forms from the rules file.
//
//	GET /api/v1/forms → {"data": ["newsletter", "signup"]}
func (fc *FormController) Forms(w http.ResponseWriter, r *http.Request) {
	fc.Response(w).Success(fc.forms.Names())
}

// ValidateNamed validates the submitted fields (JSON object or urlencoded
// form) against a named form.
//
//	POST /api/v1/forms/{form}
func (fc *FormController) ValidateNamed(w http.ResponseWriter, r *http.Request) {
	req, res := fc.Request(r), fc.Response(w)
	form := req.RouteParam("form")

	if _, ok := fc.forms.Form(form); !ok {
		res.NotFound("Unknown form.")
		return
	}

	data, err := req.FormData()
	if err != nil {
		badRequest(res, err)
		return
	}

	errs, err := fc.validator.ValidateNamed(fc.forms, form, data)
	if err != nil {
		// Rule sets are checked at load time, so this is a server bug.
		logging.FromContext(r.Context()).Error("named form validation failed",
			slog.String("form", form),
			slog.Any("error", err),
		)
		res.ServerError()
		return
	}
	if errs.Has() {
		res.ValidationError(errs)
		return
	}
	res.Success(map[string]any{"form": form, "valid": true})
}

// badRequest maps body and rule-list errors to 400, or 413 when the body
// exceeded the size limit.
func badRequest(res *gohttp.Response, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		res.Error(http.StatusRequestEntityTooLarge, "Request body too large.")
		return
	}
	res.Error(http.StatusBadRequest, err.Error())
}
