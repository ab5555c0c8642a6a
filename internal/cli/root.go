// Package cli is the weatherchat command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"weather-chatbot/client/internal/app"
)

var (
	configDir string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "weatherchat",
	Short: "Weather-aware travel chat client",
	Long: `weatherchat keeps your chat sessions, voice and location state on this
machine and talks to the weather chat backend for replies and forecasts.

Run 'weatherchat serve' to expose the local control API for a browser shell,
or use the other commands to work with sessions from the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree until it finishes or the process receives
// SIGINT or SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "directory holding the .env configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "write logs to stderr")
}

// withApp boots the client for a single command and closes it afterwards.
// Logs are dropped unless --verbose is set or LOG_FILE is configured.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	var logOut io.Writer = io.Discard
	if verbose {
		logOut = cmd.ErrOrStderr()
	}

	a, err := app.Bootstrap(configDir, logOut)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(cmd.Context(), a)
}
