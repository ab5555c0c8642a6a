package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"weather-chatbot/client/internal/app"
	app_errors "weather-chatbot/client/internal/errors"
)

var locationCmd = &cobra.Command{
	Use:   "location",
	Short: "Search for places and set the active session's location",
}

var locationSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for places matching a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			results, err := a.Remote.SearchLocations(ctx, query, a.Config.SearchLimit)
			if err != nil {
				return fmt.Errorf("failed to search locations: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("No places found for %q", query)))
				return nil
			}

			fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%d place(s) for %q", len(results), query)))
			w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
			for _, loc := range results {
				_, _ = fmt.Fprintf(w, "%s\t%s\t\n",
					locationStyle.Render(loc.DisplayName()),
					dateStyle.Render(fmt.Sprintf("%.4f, %.4f", loc.Lat, loc.Lon)),
				)
			}
			return w.Flush()
		})
	},
}

var locationSetCmd = &cobra.Command{
	Use:   "set <query>",
	Short: "Set the active session's location to the best match for a query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			results, err := a.Remote.SearchLocations(ctx, query, 1)
			if err != nil {
				return fmt.Errorf("failed to search locations: %w", err)
			}
			if len(results) == 0 {
				return fmt.Errorf("no place matches %q: %w", query, app_errors.ErrNotFound)
			}

			if err := a.Location.Select(ctx, results[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Location set to %s\n", results[0].DisplayName())
			return nil
		})
	},
}

var locationClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the active session's location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := a.Location.ClearLocation(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Location cleared")
			return nil
		})
	},
}

func init() {
	locationCmd.AddCommand(locationSearchCmd, locationSetCmd, locationClearCmd)
	rootCmd.AddCommand(locationCmd)
}
