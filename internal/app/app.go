package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/modloadgo/internal/config"
	"github.com/specialistvlad/modloadgo/internal/ctxlog"
	"github.com/specialistvlad/modloadgo/internal/fetch"
	"github.com/specialistvlad/modloadgo/internal/loader"
	"github.com/specialistvlad/modloadgo/internal/sandbox"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	model   *config.Model
	session *loader.Session
}

// New constructs the application: it configures an isolated logger, loads
// the HCL configuration, selects a transport for the configured source,
// and assembles the loader session.
func New(outW io.Writer, appConfig *Config) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := config.Load(ctx, appConfig.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	session := loader.NewSession(loader.Config{
		Globals: model.Table(),
		Fetcher: newFetcher(model.Source),
		Engine:  sandbox.NewGojaEngine(),
		Suffix:  model.Suffix,
		Call:    model.Call,
	})
	logger.Debug("Loader session assembled.", "source", model.Source)

	return &App{
		outW:    outW,
		logger:  logger,
		config:  appConfig,
		model:   model,
		session: session,
	}, nil
}

// newFetcher picks the transport for a source location: HTTP for URLs,
// the filesystem otherwise. An empty source means the current directory.
func newFetcher(source string) fetch.Fetcher {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return fetch.NewHTTP(source)
	}
	if source == "" {
		source = "."
	}
	return fetch.NewDir(source)
}

// Session returns the application's loader session. This is primarily for testing.
func (a *App) Session() *loader.Session {
	return a.session
}
