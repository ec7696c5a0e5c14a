package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/km-arc/go-formrules/framework/app"
	"github.com/km-arc/go-formrules/routes"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New() // loads .env when present
	if err != nil {
		slog.Error("bootstrap failed", slog.Any("error", err))
		os.Exit(1)
	}
	application.Boot()

	if err := routes.Register(application); err != nil {
		application.Logger().Error("route registration failed", slog.Any("error", err))
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		application.Logger().Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}
