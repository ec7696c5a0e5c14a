package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/km-arc/go-formrules/framework/config"
	"github.com/km-arc/go-formrules/framework/container"
	gohttp "github.com/km-arc/go-formrules/framework/http"
	"github.com/km-arc/go-formrules/framework/http/validation"
	"github.com/km-arc/go-formrules/framework/providers"
	"github.com/km-arc/go-formrules/framework/routing"
)

const shutdownTimeout = 5 * time.Second

// Application embeds the IoC Container and ProviderRegistry so user code can
// call app.Singleton(), app.Register() directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

type options struct {
	envFiles   []string
	logOutput  io.Writer
	validation []validation.Option
}

// Option configures New.
type Option func(*options)

// WithEnvFiles sets the .env files to load (default ".env").
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.envFiles = files }
}

// WithLogOutput redirects the application log (default stderr).
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logOutput = w }
}

// WithValidatorOptions passes options to the validator, e.g. a fixed clock.
func WithValidatorOptions(opts ...validation.Option) Option {
	return func(o *options) { o.validation = append(o.validation, opts...) }
}

// New registers the framework providers and loads the configuration.
// Configuration errors are returned here rather than on first use.
func New(opts ...Option) (*Application, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c := container.New()
	registry := container.NewProviderRegistry(c)
	a := &Application{Container: c, Providers: registry}

	registry.Register(&providers.ConfigServiceProvider{EnvFiles: o.envFiles})
	registry.Register(&providers.LoggingServiceProvider{Output: o.logOutput})
	registry.Register(&providers.ValidationServiceProvider{Options: o.validation})
	registry.Register(&providers.RoutingServiceProvider{})

	if _, err := container.TryResolve[*config.Config](c, providers.Config); err != nil {
		return nil, err
	}
	return a, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) {
	a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() {
	a.Providers.Boot()
}

func (a *Application) Config() *config.Config {
	return container.Resolve[*config.Config](a.Container, providers.Config)
}

func (a *Application) Logger() *slog.Logger {
	return container.Resolve[*slog.Logger](a.Container, providers.Logger)
}

func (a *Application) Router() *routing.Router {
	return container.Resolve[*routing.Router](a.Container, providers.Router)
}

func (a *Application) Validator() *validation.Validator {
	return container.Resolve[*validation.Validator](a.Container, providers.Validator)
}

func (a *Application) RuleSets() validation.RuleSets {
	return container.Resolve[validation.RuleSets](a.Container, providers.RuleSets)
}

// Run boots the application (if needed) and serves HTTP on APP_PORT until
// ctx is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	if !a.Providers.Booted() {
		a.Boot()
	}
	// Surface rules-file errors before accepting traffic.
	if _, err := container.TryResolve[validation.RuleSets](a.Container, providers.RuleSets); err != nil {
		return err
	}

	cfg := a.Config()
	logger := a.Logger()
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("server started", slog.String("addr", cfg.Addr()))

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// Environment returns APP_ENV.
func (a *Application) Environment() string { return a.Config().App.Env }

// Controller is an embeddable base for HTTP controllers.
type Controller struct{}

func (c *Controller) Request(r *http.Request) *gohttp.Request {
	return gohttp.NewRequest(r)
}
func (c *Controller) Response(w http.ResponseWriter) *gohttp.Response {
	return gohttp.NewResponse(w)
}
