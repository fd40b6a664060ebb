package cli

import (
	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game log commands",
	}

	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameRecentCmd())

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List games stored locally, pending upload",
		RunE: func(cmd *cobra.Command, args []string) error {
			games, err := app.Games.GetAll(cmd.Context())
			if err != nil {
				return err
			}
			out.Print(games)
			return nil
		},
	}
}

func newGameRecentCmd() *cobra.Command {
	var amount int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recent games on the remote service",
		RunE: func(cmd *cobra.Command, args []string) error {
			games, err := app.Remote.MostRecentGames(cmd.Context(), amount)
			if err != nil {
				return err
			}
			out.Print(games)
			return nil
		},
	}

	cmd.Flags().IntVar(&amount, "amount", 10, "Number of games to fetch")

	return cmd
}
