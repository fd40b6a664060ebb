package cli

import (
	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reconcile the roster and upload finished local games",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Users first so uploaded games reference known identities.
			if err := app.Roster.Reconcile(ctx); err != nil {
				out.PrintMessage("roster reconciliation failed, games kept local: " + err.Error())
				return nil
			}

			uploaded, err := app.Uploader.UploadLocalGames(ctx)
			if err != nil {
				return err
			}
			out.Print(uploaded)
			return nil
		},
	}
}
