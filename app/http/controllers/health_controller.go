package controllers

import (
	"net/http"

	"github.com/km-arc/go-formrules/framework/app"
)

type HealthController struct {
	app.Controller
	Name string
	Env  string
}

// Show reports liveness.
//
//	GET /health → {"data": {"status": "ok", "app": "FormRules", "env": "local"}}
func (hc *HealthController) Show(w http.ResponseWriter, r *http.Request) {
	hc.Response(w).Success(map[string]any{
		"status": "ok",
		"app":    hc.Name,
		"env":    hc.Env,
	})
}
