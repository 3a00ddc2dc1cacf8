package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	mem "house-catalog/internal/adapters/storage/memory"
	"house-catalog/internal/adapters/storage/schema"
	"house-catalog/internal/adapters/storage/sqldb"
	"house-catalog/internal/domain/houses"
	"house-catalog/internal/platform/config"
	"house-catalog/internal/platform/logger"
	"house-catalog/internal/presenter"
	"house-catalog/internal/view/console"
)

// MemoryURL usa el store en memoria con los tipos por defecto (modo dev).
const MemoryURL = "memory:"

type Options struct {
	Config config.Config

	// Opcional: si viene, usa esta conexión. Si no, abre Config.DatabaseURL.
	DB      *sql.DB
	Dialect sqldb.Dialect

	In  io.Reader // default stdin
	Out io.Writer // default stdout
	Log logger.Logger
}

// App arma store -> service -> presenter -> vista.
type App struct {
	Service   *houses.Service
	Presenter *presenter.Presenter
	View      *console.View

	log     logger.Logger
	db      *sql.DB
	ownedDB bool
}

func New(ctx context.Context, opts Options) (*App, error) {
	cfg := opts.Config

	log := opts.Log
	if log == nil {
		log = logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, App: cfg.AppName})
	}
	log = log.With(map[string]any{"session": uuid.NewString()})

	a := &App{log: log}

	var repo houses.Repository
	switch {
	case opts.DB != nil:
		a.db = opts.DB
		repo = sqldb.NewHousesRepo(opts.DB, opts.Dialect)
	case strings.EqualFold(strings.TrimSpace(cfg.DatabaseURL), MemoryURL):
		repo = mem.NewHousesRepo(schema.DefaultKinds)
	default:
		db, dialect, err := sqldb.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("error connecting to %s: %w", cfg.DatabaseURL, err)
		}
		a.db, a.ownedDB = db, true
		repo = sqldb.NewHousesRepo(db, dialect)
		log.Info("database opened", map[string]any{"dialect": string(dialect)})
	}

	a.Service = houses.NewService(repo, houses.WithFloorKinds(cfg.FloorKinds))
	if err := a.Service.LoadKinds(ctx); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("can't load kinds from the DB: %w", err)
	}
	log.Info("kinds loaded", map[string]any{"count": len(a.Service.Kinds())})

	in, out := opts.In, opts.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	a.View = console.New(in, out)
	a.Presenter = presenter.New(a.Service, a.View, log)

	return a, nil
}

// Run corre el pump hasta que el usuario sale.
func (a *App) Run(ctx context.Context) error {
	a.Presenter.Start(ctx)
	if err := a.View.Run(ctx, a.Presenter); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	a.log.Info("bye", nil)
	return nil
}

// Close cierra la conexión solo si la abrió la App.
func (a *App) Close() error {
	if a.db == nil || !a.ownedDB {
		return nil
	}
	return a.db.Close()
}
