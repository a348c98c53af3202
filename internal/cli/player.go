package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/mcoot/timeu6/internal/model"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Roster management commands",
	}

	cmd.AddCommand(newPlayerAddCmd())
	cmd.AddCommand(newPlayerRemoveCmd())
	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerShowCmd())
	cmd.AddCommand(newPlayerPresenceCmd("present", "Mark a player as present", true))
	cmd.AddCommand(newPlayerPresenceCmd("absent", "Mark a player as absent (takes them off the field)", false))
	cmd.AddCommand(newPlayerNumberCmd())
	cmd.AddCommand(newPlayerRenameCmd())

	return cmd
}

func newPlayerAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Add a player to the roster",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.RosterService.AddPlayer(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			newOutput(cmd).Print(newPlayerView(*p, p.PlayingTime))
			return nil
		},
	}
}

func newPlayerRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove PLAYER",
		Short: "Remove a player from the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := app.RosterService.RemovePlayer(cmd.Context(), id); err != nil {
				return err
			}

			newOutput(cmd).PrintMessage(fmt.Sprintf("Removed %s", args[0]))
			return nil
		},
	}
}

func newPlayerListCmd() *cobra.Command {
	var playing, bench bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the roster with playing times",
		RunE: func(cmd *cobra.Command, args []string) error {
			if playing && bench {
				return errors.New("--playing and --bench are mutually exclusive")
			}

			var keep func(model.Player) bool
			switch {
			case playing:
				keep = func(p model.Player) bool { return p.IsPlaying }
			case bench:
				keep = func(p model.Player) bool { return p.IsPresent && !p.IsPlaying }
			}

			newOutput(cmd).Print(playerViews(app.MatchController.Status(cmd.Context()), keep))
			return nil
		},
	}

	cmd.Flags().BoolVar(&playing, "playing", false, "Only players on the field")
	cmd.Flags().BoolVar(&bench, "bench", false, "Only present players off the field")

	return cmd
}

func newPlayerShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show PLAYER",
		Short: "Show a single player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			view, err := playerView(cmd.Context(), id)
			if err != nil {
				return err
			}

			newOutput(cmd).Print(view)
			return nil
		},
	}
}

func newPlayerPresenceCmd(use, short string, isPresent bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " PLAYER",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := app.RosterService.UpdatePresence(cmd.Context(), id, isPresent); err != nil {
				return err
			}

			view, err := playerView(cmd.Context(), id)
			if err != nil {
				return err
			}
			newOutput(cmd).Print(view)
			return nil
		},
	}
}

func newPlayerNumberCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "number PLAYER NUMBER",
		Short: "Change a player's jersey number",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Wrapf(model.ErrInvalidNumber, "%q", args[1])
			}
			id, err := resolvePlayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := app.RosterService.UpdateNumber(cmd.Context(), id, number); err != nil {
				return err
			}

			view, err := playerView(cmd.Context(), id)
			if err != nil {
				return err
			}
			newOutput(cmd).Print(view)
			return nil
		},
	}
}

func newPlayerRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename PLAYER NAME",
		Short: "Change a player's name",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := app.RosterService.RenamePlayer(cmd.Context(), id, strings.Join(args[1:], " ")); err != nil {
				return err
			}

			view, err := playerView(cmd.Context(), id)
			if err != nil {
				return err
			}
			newOutput(cmd).Print(view)
			return nil
		},
	}
}
