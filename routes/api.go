// Package routes wires controllers to URLs.
package routes

import (
	"github.com/go-chi/chi/v5/middleware"

	"github.com/km-arc/go-formrules/app/http/controllers"
	"github.com/km-arc/go-formrules/framework/app"
	"github.com/km-arc/go-formrules/framework/container"
	"github.com/km-arc/go-formrules/framework/http/validation"
	"github.com/km-arc/go-formrules/framework/providers"
	"github.com/km-arc/go-formrules/framework/routing"
)

// Register mounts the application routes on the application router.
//
//	GET  /health
//	GET  /api/v1/rules
//	POST /api/v1/validate
//	POST /api/v1/validate/field
//	GET  /api/v1/forms
//	POST /api/v1/forms/{form}
func Register(a *app.Application) error {
	v, err := container.TryResolve[*validation.Validator](a.Container, providers.Validator)
	if err != nil {
		return err
	}
	sets, err := container.TryResolve[validation.RuleSets](a.Container, providers.RuleSets)
	if err != nil {
		return err
	}

	cfg := a.Config()
	health := &controllers.HealthController{Name: cfg.App.Name, Env: a.Environment()}
	forms := controllers.NewFormController(v, sets)

	r := a.Router()
	r.Get("/health", health.Show)

	r.Prefix("/api/v1", func(api *routing.Router) {
		api.Middleware(middleware.RequestSize(cfg.Validation.MaxBody))

		api.Get("/rules", forms.Rules)
		api.Post("/validate", forms.Validate)
		api.Post("/validate/field", forms.ValidateField)
		api.Get("/forms", forms.Forms)
		api.Post("/forms/{form}", forms.ValidateNamed)
	})
	return nil
}
