package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room management commands",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomGetCmd())
	cmd.AddCommand(newRoomJoinCmd())
	cmd.AddCommand(newRoomStartCmd())
	cmd.AddCommand(newRoomSettingsCmd())
	cmd.AddCommand(newRoomRestartCmd())
	cmd.AddCommand(newRoomWinnersCmd())

	return cmd
}

// requireNickname resolves the nickname from flag or environment
func requireNickname(nickname string) (string, error) {
	if nickname != "" {
		return nickname, nil
	}
	if cfg.Nickname != "" {
		return cfg.Nickname, nil
	}
	return "", fmt.Errorf("nickname required (use --nickname or BANKIT_NICKNAME)")
}

func newRoomCreateCmd() *cobra.Command {
	var nickname string
	var rounds int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new room",
		RunE: func(cmd *cobra.Command, args []string) error {
			nick, err := requireNickname(nickname)
			if err != nil {
				return err
			}

			req := map[string]any{
				"client_id": cfg.ClientID,
				"nickname":  nick,
			}
			if rounds > 0 {
				req["total_rounds"] = rounds
			}

			var result RoomResult
			if err := client.Post("/api/v1/rooms", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&nickname, "nickname", "", "Your nickname (env: BANKIT_NICKNAME)")
	cmd.Flags().IntVar(&rounds, "rounds", 0, "Number of rounds (default: server default)")

	return cmd
}

func newRoomGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Get room details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RoomResult
			path := fmt.Sprintf("/api/v1/rooms/%s?client_id=%s", args[0], cfg.ClientID)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomJoinCmd() *cobra.Command {
	var nickname string

	cmd := &cobra.Command{
		Use:   "join <code>",
		Short: "Join a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nick, err := requireNickname(nickname)
			if err != nil {
				return err
			}

			req := map[string]any{
				"client_id": cfg.ClientID,
				"nickname":  nick,
			}

			var result RoomResult
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/join", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&nickname, "nickname", "", "Your nickname (env: BANKIT_NICKNAME)")

	return cmd
}

func newRoomStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <code>",
		Short: "Start the game (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"client_id": cfg.ClientID}

			var result RoomResult
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/start", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomSettingsCmd() *cobra.Command {
	var rounds int

	cmd := &cobra.Command{
		Use:   "settings <code>",
		Short: "Update room settings (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"client_id":    cfg.ClientID,
				"total_rounds": rounds,
			}

			var result RoomResult
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/settings", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&rounds, "rounds", 0, "Number of rounds (3-50)")
	_ = cmd.MarkFlagRequired("rounds")

	return cmd
}

func newRoomRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart <code>",
		Short: "Reset the room for a rematch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"client_id": cfg.ClientID}

			var result RoomResult
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/restart", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomWinnersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "winners <code>",
		Short: "Show the final standings of a finished game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result WinnersResult
			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%s/winners", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
