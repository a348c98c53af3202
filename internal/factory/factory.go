package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/mcoot/timeu6/internal/dependencies/clock"
	"github.com/mcoot/timeu6/internal/dependencies/ids"
	"github.com/mcoot/timeu6/internal/matchstate"
	"github.com/mcoot/timeu6/internal/model"
	"github.com/mcoot/timeu6/internal/services/match"
	"github.com/mcoot/timeu6/internal/services/persistence"
	"github.com/mcoot/timeu6/internal/services/roster"
	"github.com/mcoot/timeu6/internal/storage"
	"github.com/mcoot/timeu6/internal/storage/memory"
	redisstorage "github.com/mcoot/timeu6/internal/storage/redis"
	"github.com/mcoot/timeu6/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Store storage.KeyValueStore

	// External dependencies
	Clock clock.Clock
	IDs   ids.Generator

	// The live match aggregate, shared by every service
	State *matchstate.Handle

	// Services
	Gateway         *persistence.Gateway
	Saver           *persistence.BackgroundSaver
	RosterService   *roster.Service
	MatchController *match.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
	// MatchDuration is the length of a fresh match (optional)
	// If zero, defaults to model.DefaultMatchDuration
	MatchDuration time.Duration
}

// New creates a new application with all dependencies wired.
// Saved state is not loaded; call Gateway.Restore before handling commands.
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	app, err := newWithDependencies(store, clock.New(), ids.New(), cfg.MatchDuration, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return app, nil
}

func openStore(cfg Config) (storage.KeyValueStore, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		return sqlite.Open(cfg.SQLitePath)
	default:
		return nil, errors.Newf("invalid StorageType %q: must be 'memory', 'redis' or 'sqlite'", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.KeyValueStore,
	clk clock.Clock,
	idGen ids.Generator,
	duration time.Duration,
	logger *slog.Logger,
) (*App, error) {
	if duration <= 0 {
		duration = model.DefaultMatchDuration
	}

	state := matchstate.New(model.NewMatchState(duration))
	gateway := persistence.NewGateway(store, state, duration, logger)
	saver, err := persistence.NewBackgroundSaver(gateway, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		Store:           store,
		Clock:           clk,
		IDs:             idGen,
		State:           state,
		Gateway:         gateway,
		Saver:           saver,
		RosterService:   roster.New(state, saver, clk, idGen, logger),
		MatchController: match.NewController(state, saver, clk, logger),
	}, nil
}

// Close waits for outstanding saves and closes the store
func (a *App) Close() error {
	a.Saver.Close()
	return a.Store.Close()
}
