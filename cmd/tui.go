package cmd

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/carsa-legal/cobros/internal/client"
	"github.com/carsa-legal/cobros/internal/server"
	"github.com/carsa-legal/cobros/internal/store"
	"github.com/carsa-legal/cobros/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		serverAddr := flagServer

		if !cmd.Flags().Changed("server") {
			// Start an embedded server in the background. Logs stay off
			// while the alt-screen is up.
			st, err := store.Open(store.Options{
				DataPath:  flagData,
				UsersPath: flagUsers,
				DBPath:    flagDB,
				Logger:    zap.NewNop(),
			})
			if err != nil {
				return err
			}

			srv := server.New(st, "127.0.0.1:8819", zap.NewNop())
			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()
			serverAddr = "http://127.0.0.1:8819"

			// Wait for the server to be ready.
			c := client.New(serverAddr)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			for {
				if err := c.Ping(ctx); err == nil {
					break
				}
				select {
				case err := <-errCh:
					return fmt.Errorf("embedded server: %w", err)
				default:
				}
				if ctx.Err() != nil {
					return fmt.Errorf("timeout waiting for embedded server")
				}
				time.Sleep(50 * time.Millisecond)
			}
		}

		c := client.New(serverAddr)
		app := tui.NewApp(c)
		p := tea.NewProgram(app, tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
