package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Roster management commands",
	}

	cmd.AddCommand(newUserListCmd())
	cmd.AddCommand(newUserAddCmd())

	return cmd
}

func newUserListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List locally known players",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.Roster.LocalUsers(cmd.Context())
			if err != nil {
				return err
			}
			out.Print(users)
			return nil
		},
	}
}

func newUserAddCmd() *cobra.Command {
	var name, alias string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a player offline, pending sync",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			user, err := app.Roster.CreateLocalUser(cmd.Context(), name, alias)
			if err != nil {
				return err
			}
			out.Print(user)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	cmd.Flags().StringVar(&alias, "alias", "", "Display alias")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
