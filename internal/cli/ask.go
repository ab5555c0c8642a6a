package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"weather-chatbot/client/internal/app"
	app_errors "weather-chatbot/client/internal/errors"
	"weather-chatbot/client/internal/model"
)

var askNewSession bool

var askCmd = &cobra.Command{
	Use:   "ask <message...>",
	Short: "Send a message in the active session and print the reply",
	Long: `Send a message to the assistant in the active session. The session's
location and the last messages are sent along for context. A session is
created first when none is active, or when --new is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message := strings.TrimSpace(strings.Join(args, " "))
		if message == "" {
			return fmt.Errorf("message must not be empty: %w", app_errors.ErrValidation)
		}

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if _, ok := a.Sessions.ActiveSession(); !ok || askNewSession {
				a.Sessions.CreateSession(ctx)
			}

			if err := a.Chat.SendMessage(ctx, message); err != nil {
				return fmt.Errorf("failed to send message: %w", err)
			}

			active, ok := a.Sessions.ActiveSession()
			if !ok {
				return app_errors.ErrNoActiveSession
			}
			if reply, ok := active.LastMessage(); ok && reply.Role == model.RoleAssistant {
				fmt.Fprintln(cmd.OutOrStdout(), reply.Content)
			}

			if state := a.Chat.State(); state.Error != "" {
				return fmt.Errorf("chat request failed: %s", state.Error)
			}
			return nil
		})
	},
}

func init() {
	askCmd.Flags().BoolVar(&askNewSession, "new", false, "start a new session for this message")
	rootCmd.AddCommand(askCmd)
}
