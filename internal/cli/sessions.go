package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"weather-chatbot/client/internal/app"
	app_errors "weather-chatbot/client/internal/errors"
	"weather-chatbot/client/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	locationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true)

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)
)

const maxTitleWidth = 40

var sessionsCmd = &cobra.Command{
	Use:     "sessions",
	Aliases: []string{"session"},
	Short:   "Manage chat sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List chat sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			displaySessions(cmd.OutOrStdout(), a.Sessions.Sessions(), a.Sessions.ActiveID())
			return nil
		})
	},
}

var sessionsNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new chat session and make it active",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			s := a.Sessions.CreateSession(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "Created session %s\n", s.ID)
			return nil
		})
	},
}

var sessionsSwitchCmd = &cobra.Command{
	Use:   "switch <id>",
	Short: "Make a session active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if !a.Sessions.SwitchSession(ctx, args[0]) {
				return fmt.Errorf("session %s: %w", args[0], app_errors.ErrNotFound)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Switched to session %s\n", args[0])
			return nil
		})
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a chat session",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if !a.Sessions.DeleteSession(ctx, args[0]) {
				return fmt.Errorf("session %s: %w", args[0], app_errors.ErrNotFound)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", args[0])
			return nil
		})
	},
}

var sessionsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every session and start over with a fresh one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			s := a.Sessions.ClearAllSessions(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared all sessions, active session is %s\n", s.ID)
			return nil
		})
	},
}

var sessionsRenameCmd = &cobra.Command{
	Use:   "rename <title>",
	Short: "Rename the active session",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.TrimSpace(strings.Join(args, " "))
		if title == "" {
			return fmt.Errorf("title must not be empty: %w", app_errors.ErrValidation)
		}
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if !a.Sessions.UpdateSessionTitle(ctx, title) {
				return app_errors.ErrNoActiveSession
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed active session to %q\n", title)
			return nil
		})
	},
}

func displaySessions(out io.Writer, sessions []model.ChatSession, activeID string) {
	if len(sessions) == 0 {
		fmt.Fprintln(out, headerStyle.Render("No chat sessions yet"))
		fmt.Fprintln(out, idStyle.Render("Start one with `weatherchat sessions new`"))
		return
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%d chat session(s)", len(sessions))))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, " \t"+titleStyle.Render("ID")+"\t"+titleStyle.Render("Title")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Updated")+"\t"+titleStyle.Render("Location")+"\t")

	for _, s := range sessions {
		marker := " "
		if s.ID == activeID {
			marker = activeStyle.Render("*")
		}

		title := s.Title
		if r := []rune(title); len(r) > maxTitleWidth {
			title = string(r[:maxTitleWidth-3]) + "..."
		}

		place := dateStyle.Render("-")
		if s.Location != nil {
			place = locationStyle.Render(s.Location.DisplayName())
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			marker,
			idStyle.Render(s.ID),
			title,
			countStyle.Render(strconv.Itoa(len(s.Messages))),
			dateStyle.Render(formatUpdated(s.UpdatedAt, time.Now())),
			place,
		)
	}
	_ = w.Flush()
}

func formatUpdated(t, now time.Time) string {
	t = t.Local()
	diff := now.Sub(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func init() {
	sessionsCmd.AddCommand(sessionsListCmd, sessionsNewCmd, sessionsSwitchCmd, sessionsDeleteCmd, sessionsClearCmd, sessionsRenameCmd)
	rootCmd.AddCommand(sessionsCmd)
}
