package persistence

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/mcoot/timeu6/internal/matchstate"
	"github.com/mcoot/timeu6/internal/model"
	"github.com/mcoot/timeu6/internal/storage"
)

// MatchStateKey is the single key the aggregate is stored under
const MatchStateKey = "timeU6_matchState"

// Gateway serializes the match aggregate to and from the key-value store
type Gateway struct {
	store           storage.KeyValueStore
	state           *matchstate.Handle
	defaultDuration time.Duration
	logger          *slog.Logger
}

// NewGateway creates a Gateway for the live aggregate held by state
func NewGateway(store storage.KeyValueStore, state *matchstate.Handle, defaultDuration time.Duration, logger *slog.Logger) *Gateway {
	if defaultDuration <= 0 {
		defaultDuration = model.DefaultMatchDuration
	}
	return &Gateway{
		store:           store,
		state:           state,
		defaultDuration: defaultDuration,
		logger:          logger,
	}
}

// Save writes snapshot under MatchStateKey. Errors are logged and returned;
// background callers drop them.
func (g *Gateway) Save(ctx context.Context, snapshot *model.MatchState) error {
	data, err := encodeState(snapshot)
	if err != nil {
		g.logger.Error("failed to encode match state", slog.String("error", err.Error()))
		return err
	}

	if err := g.store.SetItem(ctx, MatchStateKey, data); err != nil {
		g.logger.Error("failed to save match state", slog.String("error", err.Error()))
		return errors.Wrap(err, "save match state")
	}

	g.logger.Debug("match state saved",
		slog.Int("player_count", len(snapshot.AllPlayers)),
		slog.Bool("match_active", snapshot.IsMatchActive),
	)
	return nil
}

// Load reads the stored aggregate. Absent, unreadable or unparsable data yields a fresh state.
func (g *Gateway) Load(ctx context.Context) *model.MatchState {
	data, found, err := g.store.GetItem(ctx, MatchStateKey)
	if err != nil {
		g.logger.Warn("failed to read match state, starting fresh", slog.String("error", err.Error()))
		return model.NewMatchState(g.defaultDuration)
	}
	if !found || data == "" {
		return model.NewMatchState(g.defaultDuration)
	}

	state, err := decodeState(data, g.defaultDuration)
	if err != nil {
		g.logger.Warn("failed to parse match state, starting fresh", slog.String("error", err.Error()))
		return model.NewMatchState(g.defaultDuration)
	}
	return state
}

// Exists reports whether the store holds non-empty match state
func (g *Gateway) Exists(ctx context.Context) bool {
	data, found, err := g.store.GetItem(ctx, MatchStateKey)
	if err != nil {
		g.logger.Warn("failed to check for saved match state", slog.String("error", err.Error()))
		return false
	}
	return found && data != ""
}

// Restore copies saved state, if any, into the live aggregate.
// It runs once at startup before any command; it reports whether state was loaded.
func (g *Gateway) Restore(ctx context.Context) bool {
	if !g.Exists(ctx) {
		g.logger.Info("no saved match state found, starting fresh")
		return false
	}

	saved := g.Load(ctx)
	g.state.Replace(saved)

	g.logger.Info("loaded saved match state",
		slog.Int("player_count", len(saved.AllPlayers)),
		slog.String("phase", string(saved.Phase())),
	)
	return true
}

// Clear removes the stored state and resets the live aggregate to its defaults.
// Unlike saves, a failure here is returned: clearing is a deliberate user action.
func (g *Gateway) Clear(ctx context.Context) error {
	if err := g.store.RemoveItem(ctx, MatchStateKey); err != nil {
		g.logger.Error("failed to clear match state", slog.String("error", err.Error()))
		return errors.Wrap(err, "clear match state")
	}

	g.state.Replace(model.NewMatchState(g.defaultDuration))

	g.logger.Info("cleared saved match state")
	return nil
}
