// Package state wires the core components into one container that
// commands and views receive instead of reaching for globals.
package state

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/blackwell-systems/dexctl/internal/aggregate"
	"github.com/blackwell-systems/dexctl/internal/catalog"
	"github.com/blackwell-systems/dexctl/internal/config"
	"github.com/blackwell-systems/dexctl/internal/custom"
	"github.com/blackwell-systems/dexctl/internal/kv"
	"github.com/blackwell-systems/dexctl/internal/logging"
	"github.com/blackwell-systems/dexctl/internal/pokeapi"
	"github.com/blackwell-systems/dexctl/internal/session"
)

// App owns one instance of every state slice. Session and Custom are the
// only writers of their keys.
type App struct {
	Config  *config.Config
	Log     *slog.Logger
	Store   kv.Store
	Session *session.Manager
	Custom  *custom.Store
	Client  *pokeapi.Client

	closers []io.Closer
}

// Open opens the SQLite store at cfg.Storage.Path and builds the App.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	store, err := kv.Open(ctx, cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	app, err := New(ctx, cfg, log, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return app, nil
}

// New builds the App over store, restores the session and loads the
// custom entries. If store is an io.Closer, Close closes it.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger, store kv.Store) (*App, error) {
	if log == nil {
		log = logging.Discard()
	}

	sess, err := session.NewManager(store, session.Options{
		AdminUser:    cfg.Auth.AdminUser,
		Password:     cfg.Auth.Password,
		PasswordHash: cfg.Auth.PasswordHash,
		HashCost:     cfg.Auth.HashCost,
		Logger:       log.With("component", "session"),
	})
	if err != nil {
		return nil, err
	}

	timeout, err := cfg.Catalogue.RequestTimeout()
	if err != nil {
		return nil, err
	}
	client := pokeapi.New(cfg.Catalogue.APIBase,
		pokeapi.WithRateLimit(cfg.Catalogue.RateLimit, cfg.Catalogue.RateBurst),
		pokeapi.WithTimeout(timeout),
		pokeapi.WithUserAgent(cfg.Catalogue.UserAgent),
	)
	log.Debug("catalogue client", "base", client.BaseURL(), "timeout", timeout)

	a := &App{
		Config:  cfg,
		Log:     log,
		Store:   store,
		Session: sess,
		Custom:  custom.New(store, custom.WithLogger(log.With("component", "custom"))),
		Client:  client,
	}
	if c, ok := store.(io.Closer); ok {
		a.closers = append(a.closers, c)
	}

	a.Session.Restore(ctx)
	a.Custom.Load(ctx)
	return a, nil
}

// Aggregator returns an aggregator over the catalogue client and the
// custom store, configured from the catalogue settings.
func (a *App) Aggregator(opts ...aggregate.Option) *aggregate.Aggregator {
	base := []aggregate.Option{
		aggregate.WithConcurrency(a.Config.Catalogue.Concurrency),
		aggregate.WithLogger(a.Log.With("component", "aggregate")),
	}
	return aggregate.New(a.Client, a.Custom, append(base, opts...)...)
}

// Refresh fetches the combined list with the configured page size.
func (a *App) Refresh(ctx context.Context, opts ...aggregate.Option) ([]catalog.Entry, error) {
	return a.Aggregator(opts...).Refresh(ctx, a.Config.Catalogue.PageSize)
}

// Close releases the store.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("closing state: %w", err)
	}
	return nil
}
