package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/nvall/chronoline/internal/application/handlers"
	"github.com/nvall/chronoline/internal/domain/ports"
	"github.com/nvall/chronoline/internal/domain/services"
	"github.com/nvall/chronoline/internal/infrastructure/config"
	"github.com/nvall/chronoline/internal/infrastructure/documentdb/sqlite"
	"github.com/nvall/chronoline/internal/infrastructure/documentdb/surreal"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config     *config.Config
	Section    string
	Events     *handlers.EventHandler
	Import     *handlers.ImportHandler
	Moderation *handlers.ModerationHandler
	Timeline   *handlers.TimelineHandler
}

// internalDeps holds all dependencies including low-level components.
// Used internally by helper functions.
type internalDeps struct {
	Deps
	store    ports.DocumentStore
	sections *services.SectionService
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(fn func(*Deps) error) error {
	return withInternalDeps(func(d *internalDeps) error {
		return fn(&d.Deps)
	})
}

// withInternalDeps provides access to all dependencies including low-level components.
// Used by commands that need direct store or service access.
func withInternalDeps(fn func(*internalDeps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	section := cfg.Section
	if globalSection != "" {
		section = globalSection
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureSchema(context.Background()); err != nil {
		return fmt.Errorf("ensuring store schema: %w", err)
	}

	submissions := services.NewSubmissionService(store)
	moderation := services.NewModerationService(store)
	sections := services.NewSectionService(store)

	deps := &internalDeps{
		Deps: Deps{
			Config:     cfg,
			Section:    section,
			Events:     handlers.NewEventHandler(submissions, store),
			Import:     handlers.NewImportHandler(services.NewImportService(store)),
			Moderation: handlers.NewModerationHandler(moderation),
			Timeline:   handlers.NewTimelineHandler(store, sections),
		},
		store:    store,
		sections: sections,
	}

	return fn(deps)
}

// withSectionService provides direct section-configuration access for the
// periods and settings commands.
func withSectionService(fn func(*services.SectionService) error) error {
	return withInternalDeps(func(d *internalDeps) error {
		return fn(d.sections)
	})
}

// withChangeFeed provides the live change feed for the watch command. Only
// the hosted backend can stream changes.
func withChangeFeed(fn func(ports.ChangeFeed) error) error {
	return withInternalDeps(func(d *internalDeps) error {
		feed, ok := d.store.(ports.ChangeFeed)
		if !ok {
			return fmt.Errorf("the %s backend does not support watching; configure the surreal backend", d.Config.Store.Backend)
		}
		return fn(feed)
	})
}

// openStore builds the configured persistence backend.
func openStore(cfg *config.Config) (ports.DocumentStore, error) {
	switch cfg.Store.Backend {
	case config.BackendSurreal:
		store, err := surreal.NewRepository(cfg.Surreal, newLogger())
		if err != nil {
			return nil, fmt.Errorf("connecting to surrealdb: %w", err)
		}
		return store, nil
	case config.BackendSQLite, "":
		store, err := sqlite.NewRepository(cfg.SQLite)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
