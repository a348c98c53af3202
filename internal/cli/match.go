package cli

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/mcoot/timeu6/internal/model"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match clock commands",
	}

	cmd.AddCommand(newMatchInitCmd())
	cmd.AddCommand(newMatchClockCmd("start", "Start the match clock", func(cmd *cobra.Command) { app.MatchController.Start(cmd.Context()) }))
	cmd.AddCommand(newMatchClockCmd("pause", "Pause the match clock", func(cmd *cobra.Command) { app.MatchController.Pause(cmd.Context()) }))
	cmd.AddCommand(newMatchClockCmd("resume", "Resume a paused match", func(cmd *cobra.Command) { app.MatchController.Resume(cmd.Context()) }))
	cmd.AddCommand(newMatchClockCmd("reset", "Reset the clock and all playing times", func(cmd *cobra.Command) { app.MatchController.Reset(cmd.Context()) }))
	cmd.AddCommand(newMatchStatusCmd())
	cmd.AddCommand(newMatchWatchCmd())
	cmd.AddCommand(newMatchDurationCmd())

	return cmd
}

func newMatchInitCmd() *cobra.Command {
	var noPlayers bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Reset and kick off a new match",
		Long: `Reset playing times and start the clock. Unless --no-players is given the
first six present players in roster order are put on the field.

At least three players must be present.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.MatchController.InitializeMatch(cmd.Context(), !noPlayers); err != nil {
				return err
			}

			newOutput(cmd).Print(newStatusView(app.MatchController.Status(cmd.Context())))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noPlayers, "no-players", false, "Start with an empty field")

	return cmd
}

func newMatchClockCmd(use, short string, action func(cmd *cobra.Command)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			action(cmd)

			newOutput(cmd).Print(newStatusView(app.MatchController.Status(cmd.Context())))
			return nil
		},
	}
}

func newMatchStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the match clock and playing times",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			newOutput(cmd).Print(newStatusView(app.MatchController.Status(cmd.Context())))
			return nil
		},
	}
}

func newMatchWatchCmd() *cobra.Command {
	var interval time.Duration
	var count int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh playing times periodically until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return errors.New("--interval must be positive")
			}

			ctx := cmd.Context()
			out := newOutput(cmd)
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for i := 0; count == 0 || i < count; i++ {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}

				app.MatchController.UpdatePlayingTimes(ctx)
				out.Print(newStatusView(app.MatchController.Status(ctx)))
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Second, "Refresh interval")
	cmd.Flags().IntVar(&count, "count", 0, "Stop after this many refreshes (0 runs until interrupted)")

	return cmd
}

func newMatchDurationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duration LENGTH",
		Short: "Set the match length, e.g. 40m",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := time.ParseDuration(args[0])
			if err != nil {
				return errors.Wrapf(model.ErrInvalidDuration, "%q", args[0])
			}
			if err := app.MatchController.SetMatchDuration(cmd.Context(), d); err != nil {
				return err
			}

			newOutput(cmd).Print(newStatusView(app.MatchController.Status(cmd.Context())))
			return nil
		},
	}
}
