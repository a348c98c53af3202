package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/timeu6/internal/model"
)

func newFieldCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "field",
		Short: "Move players on and off the field",
	}

	cmd.AddCommand(newFieldShowCmd())
	cmd.AddCommand(newFieldAddCmd())
	cmd.AddCommand(newFieldRemoveCmd())
	cmd.AddCommand(newFieldSubCmd())

	return cmd
}

func newFieldShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show who is on the field and on the bench",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			status := app.MatchController.Status(ctx)

			newOutput(cmd).Print(FieldView{
				OnField:    playerViews(status, func(p model.Player) bool { return p.IsPlaying }),
				Bench:      playerViews(status, func(p model.Player) bool { return p.IsPresent && !p.IsPlaying }),
				MaxOnField: app.MatchController.MaxPlayersOnField(),
				CanAdd:     app.MatchController.CanAddPlayerToField(ctx),
			})
			return nil
		},
	}
}

func newFieldAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add PLAYER",
		Short: "Put a bench player on the field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := app.MatchController.AddPlayerToField(cmd.Context(), id); err != nil {
				return err
			}

			newOutput(cmd).PrintMessage(fmt.Sprintf("%s is on the field", args[0]))
			return nil
		},
	}
}

func newFieldRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove PLAYER",
		Short: "Send a player to the bench",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolvePlayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := app.MatchController.RemovePlayerFromField(cmd.Context(), id); err != nil {
				return err
			}

			newOutput(cmd).PrintMessage(fmt.Sprintf("%s is on the bench", args[0]))
			return nil
		},
	}
}

func newFieldSubCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sub IN OUT",
		Short: "Substitute a bench player for one on the field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			playerIn, err := resolvePlayer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			playerOut, err := resolvePlayer(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			if err := app.MatchController.SubstitutePlayer(cmd.Context(), playerIn, playerOut); err != nil {
				return err
			}

			newOutput(cmd).PrintMessage(fmt.Sprintf("%s on, %s off", args[0], args[1]))
			return nil
		},
	}
}
