package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/carsa-legal/cobros/internal/server"
	"github.com/carsa-legal/cobros/internal/store"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := zap.NewProduction()
		if err != nil {
			return err
		}
		defer log.Sync()

		st, err := store.Open(store.Options{
			DataPath:  flagData,
			UsersPath: flagUsers,
			DBPath:    flagDB,
			Logger:    log,
		})
		if err != nil {
			return err
		}

		srv := server.New(st, serveAddr, log)
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8819", "Listen address")
	rootCmd.AddCommand(serveCmd)
}
