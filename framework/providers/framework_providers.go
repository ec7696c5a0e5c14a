package providers

import (
	"io"
	"log/slog"

	"github.com/km-arc/go-formrules/framework/config"
	"github.com/km-arc/go-formrules/framework/container"
	"github.com/km-arc/go-formrules/framework/http/validation"
	"github.com/km-arc/go-formrules/framework/logging"
	"github.com/km-arc/go-formrules/framework/routing"
)

// Abstracts bound by the framework providers.
const (
	Config    = "config"
	Logger    = "logger"
	Validator = "validator"
	RuleSets  = "rulesets"
	Router    = "router"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the configuration from .env files and the
// environment.
//
// Bound abstracts:
//   - "config"         → *config.Config
//   - "configuration"  → alias of "config"
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	envFiles := p.EnvFiles
	app.Singleton(Config, func(*container.Container) (any, error) {
		return config.Load(envFiles...)
	})
	app.Alias(Config, "configuration")
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider builds the application logger from LOG_LEVEL and
// LOG_FORMAT and installs it as the slog default on Boot.
//
// Bound abstracts:
//   - "logger"  → *slog.Logger
type LoggingServiceProvider struct {
	container.BaseProvider
	Output io.Writer // stderr when nil
}

func (p *LoggingServiceProvider) Register(app *container.Container) {
	out := p.Output
	app.Singleton(Logger, func(c *container.Container) (any, error) {
		cfg, err := container.TryResolve[*config.Config](c, Config)
		if err != nil {
			return nil, err
		}
		return logging.New(cfg.Log, out,
			slog.String("app", cfg.App.Name),
			slog.String("env", cfg.App.Env),
		), nil
	})
}

func (p *LoggingServiceProvider) Boot(app *container.Container) {
	if logger, err := container.TryResolve[*slog.Logger](app, Logger); err == nil {
		slog.SetDefault(logger)
	}
}

// ── ValidationServiceProvider ─────────────────────────────────────────────────

// ValidationServiceProvider registers the validator and the named rule sets
// from VALIDATION_FORMS_FILE. It is deferred: nothing is built until one of
// its abstracts is resolved. Rule sets naming unknown rules fail resolution.
//
// Bound abstracts:
//   - "validator"  → *validation.Validator
//   - "rulesets"   → validation.RuleSets (empty without a forms file)
type ValidationServiceProvider struct {
	container.BaseProvider
	Options []validation.Option
}

func (p *ValidationServiceProvider) Register(app *container.Container) {
	opts := p.Options
	app.Singleton(Validator, func(c *container.Container) (any, error) {
		logger, err := container.TryResolve[*slog.Logger](c, Logger)
		if err != nil {
			return nil, err
		}
		all := append([]validation.Option{
			validation.WithLogger(logger.With(slog.String("component", "validation"))),
		}, opts...)
		return validation.New(all...), nil
	})

	app.Singleton(RuleSets, func(c *container.Container) (any, error) {
		cfg, err := container.TryResolve[*config.Config](c, Config)
		if err != nil {
			return nil, err
		}
		if cfg.Validation.FormsFile == "" {
			return validation.RuleSets{}, nil
		}
		sets, err := validation.LoadRuleSetsFile(cfg.Validation.FormsFile)
		if err != nil {
			return nil, err
		}
		v, err := container.TryResolve[*validation.Validator](c, Validator)
		if err != nil {
			return nil, err
		}
		if err := v.CheckRuleSets(sets); err != nil {
			return nil, err
		}
		return sets, nil
	})
}

func (p *ValidationServiceProvider) IsDeferred() bool { return true }
func (p *ValidationServiceProvider) Provides() []string {
	return []string{Validator, RuleSets}
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router.
//
// Bound abstracts:
//   - "router"  → *routing.Router
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton(Router, func(c *container.Container) (any, error) {
		logger, err := container.TryResolve[*slog.Logger](c, Logger)
		if err != nil {
			return nil, err
		}
		return routing.New(logger), nil
	})
}
