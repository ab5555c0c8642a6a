package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"weather-chatbot/client/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local control API",
	Long: `Start the local control API used by the browser shell. The server runs
until interrupted and shuts down gracefully.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.Bootstrap(configDir, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Serve(cmd.Context()); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
