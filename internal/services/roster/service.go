package roster

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/mcoot/timeu6/internal/dependencies/clock"
	"github.com/mcoot/timeu6/internal/dependencies/ids"
	"github.com/mcoot/timeu6/internal/matchstate"
	"github.com/mcoot/timeu6/internal/model"
	"github.com/mcoot/timeu6/internal/services/persistence"
)

// maxAutoNumber is the highest jersey number handed out automatically
const maxAutoNumber = 99

// Service owns the team roster: who is on it, their numbers and whether they showed up
type Service struct {
	state    *matchstate.Handle
	saver    persistence.Saver
	clock    clock.Clock
	ids      ids.Generator
	validate *validator.Validate
	logger   *slog.Logger
}

// New creates a new roster Service
func New(
	state *matchstate.Handle,
	saver persistence.Saver,
	clock clock.Clock,
	ids ids.Generator,
	logger *slog.Logger,
) *Service {
	return &Service{
		state:    state,
		saver:    saver,
		clock:    clock,
		ids:      ids,
		validate: validator.New(),
		logger:   logger,
	}
}

// AddPlayer appends a present bench player with the lowest free jersey number
func (s *Service) AddPlayer(ctx context.Context, name string) (*model.Player, error) {
	name, err := s.cleanName(name)
	if err != nil {
		return nil, err
	}

	var added model.Player
	snapshot, err := s.state.Mutate(func(m *model.MatchState) (bool, error) {
		player := model.NewPlayer(s.ids.NewPlayerID(), name, nextAvailableNumber(m))
		m.AllPlayers = append(m.AllPlayers, player)
		added = player.Clone()
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	s.saver.Enqueue(ctx, snapshot)

	s.logger.Info("player added",
		slog.String("player_id", string(added.ID)),
		slog.String("name", added.Name),
		slog.Int("number", added.Number),
	)
	return &added, nil
}

// RemovePlayer drops a player from the roster.
// A player on the field is taken off first so their open session is settled.
func (s *Service) RemovePlayer(ctx context.Context, id model.PlayerID) error {
	snapshot, err := s.state.Mutate(func(m *model.MatchState) (bool, error) {
		for i, p := range m.AllPlayers {
			if p.ID != id {
				continue
			}
			if p.IsPlaying {
				p.FlushSession(s.clock.Now())
				p.IsPlaying = false
			}
			m.AllPlayers = append(m.AllPlayers[:i], m.AllPlayers[i+1:]...)
			return true, nil
		}
		return false, model.ErrPlayerNotFound
	})
	if err != nil {
		return err
	}
	s.saver.Enqueue(ctx, snapshot)

	s.logger.Info("player removed", slog.String("player_id", string(id)))
	return nil
}

// UpdatePresence marks a player present or absent.
// An absent player leaves the field; time played up to now is kept.
func (s *Service) UpdatePresence(ctx context.Context, id model.PlayerID, isPresent bool) error {
	snapshot, err := s.state.Mutate(func(m *model.MatchState) (bool, error) {
		player := m.GetPlayer(id)
		if player == nil {
			return false, model.ErrPlayerNotFound
		}

		player.IsPresent = isPresent
		if !isPresent && player.IsPlaying {
			player.FlushSession(s.clock.Now())
			player.IsPlaying = false
		}
		return true, nil
	})
	if err != nil {
		return err
	}
	s.saver.Enqueue(ctx, snapshot)

	s.logger.Info("player presence updated",
		slog.String("player_id", string(id)),
		slog.Bool("present", isPresent),
	)
	return nil
}

// UpdateNumber changes a player's jersey number. Numbers must be positive and unique.
func (s *Service) UpdateNumber(ctx context.Context, id model.PlayerID, number int) error {
	if err := s.validate.Var(number, "gt=0"); err != nil {
		return errors.Wrapf(model.ErrInvalidNumber, "%d", number)
	}

	snapshot, err := s.state.Mutate(func(m *model.MatchState) (bool, error) {
		player := m.GetPlayer(id)
		if player == nil {
			return false, model.ErrPlayerNotFound
		}
		for _, other := range m.AllPlayers {
			if other.ID != id && other.Number == number {
				return false, errors.Wrapf(model.ErrNumberTaken, "%d", number)
			}
		}
		player.Number = number
		return true, nil
	})
	if err != nil {
		return err
	}
	s.saver.Enqueue(ctx, snapshot)

	s.logger.Info("player number updated",
		slog.String("player_id", string(id)),
		slog.Int("number", number),
	)
	return nil
}

// RenamePlayer changes a player's display name, with the same rules as AddPlayer
func (s *Service) RenamePlayer(ctx context.Context, id model.PlayerID, name string) error {
	name, err := s.cleanName(name)
	if err != nil {
		return err
	}

	snapshot, err := s.state.Mutate(func(m *model.MatchState) (bool, error) {
		player := m.GetPlayer(id)
		if player == nil {
			return false, model.ErrPlayerNotFound
		}
		player.Name = name
		return true, nil
	})
	if err != nil {
		return err
	}
	s.saver.Enqueue(ctx, snapshot)

	s.logger.Info("player renamed",
		slog.String("player_id", string(id)),
		slog.String("name", name),
	)
	return nil
}

// GetPlayer returns a copy of the player with the given ID
func (s *Service) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var found *model.Player
	s.state.Read(func(m *model.MatchState) {
		if p := m.GetPlayer(id); p != nil {
			cp := p.Clone()
			found = &cp
		}
	})
	if found == nil {
		return nil, model.ErrPlayerNotFound
	}
	return found, nil
}

// GetAllPlayers returns a copy of the roster in roster order.
// Changing the result does not change the match.
func (s *Service) GetAllPlayers(ctx context.Context) []model.Player {
	return s.collect(func(m *model.MatchState) []*model.Player { return m.AllPlayers })
}

// PlayingPlayers returns copies of the players on the field
func (s *Service) PlayingPlayers(ctx context.Context) []model.Player {
	return s.collect((*model.MatchState).PlayingPlayers)
}

// BenchPlayers returns copies of the present players off the field
func (s *Service) BenchPlayers(ctx context.Context) []model.Player {
	return s.collect((*model.MatchState).BenchPlayers)
}

func (s *Service) collect(view func(m *model.MatchState) []*model.Player) []model.Player {
	var players []model.Player
	s.state.Read(func(m *model.MatchState) {
		selected := view(m)
		players = make([]model.Player, 0, len(selected))
		for _, p := range selected {
			players = append(players, p.Clone())
		}
	})
	return players
}

func (s *Service) cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := s.validate.Var(name, "required"); err != nil {
		return "", model.ErrInvalidName
	}
	return name, nil
}

// nextAvailableNumber returns the lowest unused number in 1..99.
// When all are taken it falls back to len+1, which may collide.
func nextAvailableNumber(m *model.MatchState) int {
	used := make(map[int]bool, len(m.AllPlayers))
	for _, p := range m.AllPlayers {
		used[p.Number] = true
	}
	for n := 1; n <= maxAutoNumber; n++ {
		if !used[n] {
			return n
		}
	}
	return len(m.AllPlayers) + 1
}
