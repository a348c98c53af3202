package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/mcoot/timeu6/internal/model"
	"github.com/mcoot/timeu6/internal/services/match"
)

// resolvePlayer maps a command-line reference to a player ID.
// A reference may be the player's ID, their jersey number or their name (case-insensitive).
func resolvePlayer(ctx context.Context, ref string) (model.PlayerID, error) {
	ref = strings.TrimSpace(ref)
	players := app.RosterService.GetAllPlayers(ctx)

	for _, p := range players {
		if string(p.ID) == ref {
			return p.ID, nil
		}
	}

	if number, err := strconv.Atoi(strings.TrimPrefix(ref, "#")); err == nil {
		for _, p := range players {
			if p.Number == number {
				return p.ID, nil
			}
		}
	}

	var matches []model.PlayerID
	for _, p := range players {
		if strings.EqualFold(p.Name, ref) {
			matches = append(matches, p.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", errors.Wrapf(model.ErrPlayerNotFound, "%q", ref)
	case 1:
		return matches[0], nil
	default:
		return "", errors.Newf("%q matches %d players, use a number or ID", ref, len(matches))
	}
}

// playerViews returns live views of players selected by keep, in roster order
func playerViews(status match.Status, keep func(model.Player) bool) []PlayerView {
	views := make([]PlayerView, 0, len(status.Players))
	for _, p := range status.Players {
		if keep == nil || keep(p.Player) {
			views = append(views, newPlayerView(p.Player, p.CurrentPlayingTime))
		}
	}
	return views
}

func playerView(ctx context.Context, id model.PlayerID) (PlayerView, error) {
	views := playerViews(app.MatchController.Status(ctx), func(p model.Player) bool { return p.ID == id })
	if len(views) == 0 {
		return PlayerView{}, model.ErrPlayerNotFound
	}
	return views[0], nil
}
