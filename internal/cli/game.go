package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "In-game actions",
	}

	cmd.AddCommand(newGameRollCmd())
	cmd.AddCommand(newGameBankCmd())

	return cmd
}

func newGameRollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roll <code>",
		Short: "Roll the dice (current roller only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"client_id": cfg.ClientID}

			var result RoomResult
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/roll", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameBankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bank <code>",
		Short: "Bank the current pot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"client_id": cfg.ClientID}

			var result RoomResult
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/bank", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
