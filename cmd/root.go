package cmd

import (
	"github.com/spf13/cobra"
)

var (
	flagServer string
	flagData   string
	flagUsers  string
	flagDB     string
)

var rootCmd = &cobra.Command{
	Use:   "cobros",
	Short: "Collections reporting dashboard for the legal office",
	Long: "Loads the payments ledger and the user table, gates access per attorney, " +
		"and renders per-client collection reports with a before/after-judgment pivot.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "http://localhost:8819", "Server address")
	rootCmd.PersistentFlags().StringVar(&flagData, "data", "data.xlsx", "Payments ledger path (.xlsx or .xls)")
	rootCmd.PersistentFlags().StringVar(&flagUsers, "users", "usuarios.csv", "Credentials table path (.csv)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Optional sqlite snapshot path (preferred when present)")
}

func Execute() error {
	return rootCmd.Execute()
}
