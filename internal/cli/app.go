package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/mcoot/buitransport/internal/dependencies/clock"
	"github.com/mcoot/buitransport/internal/gateway"
	"github.com/mcoot/buitransport/internal/model"
	"github.com/mcoot/buitransport/internal/services/session"
	"github.com/mcoot/buitransport/internal/storage/file"
)

// app is what every command runs against: one session backed by the credential file
type app struct {
	cfg     *Config
	api     *gateway.Client
	session *session.Store
	out     *Output
	logger  *slog.Logger
}

func newApp(cfg *Config, stdout, stderr io.Writer) *app {
	level := slog.LevelError
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	gwCfg := gateway.DefaultConfig()
	gwCfg.BaseURL = cfg.APIBaseURL
	gwCfg.Timeout = cfg.Timeout
	api := gateway.New(gwCfg)

	return &app{
		cfg:     cfg,
		api:     api,
		session: session.New(file.New(cfg.CredentialFile), api, clock.New(), logger),
		out:     NewOutput(cfg.Output, stdout, stderr),
		logger:  logger,
	}
}

// requireSession resolves the stored credential and fails when nobody is logged in
func (a *app) requireSession(ctx context.Context) (session.State, error) {
	state := a.session.Initialize(ctx)
	if !state.Authenticated() {
		return state, model.ErrNotAuthenticated
	}
	return state, nil
}
