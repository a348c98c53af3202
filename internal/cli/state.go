package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/timeu6/internal/services/persistence"
)

func newStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Saved state commands",
	}

	cmd.AddCommand(newStateExistsCmd())
	cmd.AddCommand(newStateClearCmd())
	cmd.AddCommand(newStateDumpCmd())

	return cmd
}

func newStateExistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exists",
		Short: "Report whether saved match state exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			newOutput(cmd).Print(ExistsResult{Exists: app.Gateway.Exists(cmd.Context())})
			return nil
		},
	}
}

func newStateClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete saved state and start over with an empty roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Gateway.Clear(cmd.Context()); err != nil {
				return err
			}

			newOutput(cmd).PrintMessage("Saved match state cleared")
			return nil
		},
	}
}

func newStateDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the raw saved state document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, found, err := app.Store.GetItem(cmd.Context(), persistence.MatchStateKey)
			if err != nil {
				return err
			}
			if !found {
				newOutput(cmd).Print(ExistsResult{Exists: false})
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), data)
			return nil
		},
	}
}
