package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/carsa-legal/cobros/internal/store"
)

var snapshotOut string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Cache the flat files into a sqlite snapshot",
	Long: "Parses the payments ledger and the user table once and writes both to a " +
		"sqlite file. Later runs given --db skip the spreadsheet parse. Regenerate " +
		"the snapshot whenever the source files change; nothing invalidates it " +
		"automatically.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := zap.NewProduction()
		if err != nil {
			return err
		}
		defer log.Sync()

		// Always parse the flat files here, even if a stale snapshot exists.
		st, err := store.Open(store.Options{
			DataPath:  flagData,
			UsersPath: flagUsers,
			Logger:    log,
		})
		if err != nil {
			return err
		}

		if err := st.SaveSnapshot(context.Background(), snapshotOut); err != nil {
			return err
		}
		fmt.Printf("snapshot written to %s (%d payments, %d users)\n",
			snapshotOut, len(st.Payments()), len(st.Credentials()))
		return nil
	},
}

func init() {
	snapshotCmd.Flags().StringVar(&snapshotOut, "out", "cobros.db", "Snapshot file to write")
	rootCmd.AddCommand(snapshotCmd)
}
