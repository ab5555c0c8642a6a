package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"weather-chatbot/client/internal/app"
	"weather-chatbot/client/internal/model"
)

var (
	exportFormat string
	exportOutput string
)

// exportDocument is the file written by the export command. Field names follow
// the stored session shape.
type exportDocument struct {
	ExportedAt      time.Time         `json:"exportedAt" yaml:"exportedAt"`
	ActiveSessionID string            `json:"activeSessionId" yaml:"activeSessionId"`
	Sessions        []exportedSession `json:"sessions" yaml:"sessions"`
}

type exportedSession struct {
	ID        string            `json:"id" yaml:"id"`
	Title     string            `json:"title" yaml:"title"`
	Location  *exportedLocation `json:"location" yaml:"location"`
	CreatedAt time.Time         `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt" yaml:"updatedAt"`
	Messages  []exportedMessage `json:"messages" yaml:"messages"`
}

type exportedLocation struct {
	Name    string  `json:"name" yaml:"name"`
	Country string  `json:"country" yaml:"country"`
	State   string  `json:"state,omitempty" yaml:"state,omitempty"`
	Lat     float64 `json:"lat" yaml:"lat"`
	Lon     float64 `json:"lon" yaml:"lon"`
}

type exportedMessage struct {
	ID        string     `json:"id" yaml:"id"`
	Role      model.Role `json:"role" yaml:"role"`
	Content   string     `json:"content" yaml:"content"`
	Timestamp time.Time  `json:"timestamp" yaml:"timestamp"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every chat session",
	Long: `Export every chat session with its messages and location as JSON or YAML.
The document is written to stdout unless --output names a file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(exportFormat)
		if format != "json" && format != "yaml" {
			return fmt.Errorf("unsupported format %q, use json or yaml", exportFormat)
		}

		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			doc := buildExport(a.Sessions.Sessions(), a.Sessions.ActiveID(), time.Now().UTC())

			out := cmd.OutOrStdout()
			if exportOutput != "" {
				f, err := os.Create(exportOutput)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			if err := writeExport(out, format, doc); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			if exportOutput != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d session(s) to %s\n", len(doc.Sessions), exportOutput)
			}
			return nil
		})
	},
}

func buildExport(sessions []model.ChatSession, activeID string, now time.Time) exportDocument {
	doc := exportDocument{
		ExportedAt:      now,
		ActiveSessionID: activeID,
		Sessions:        make([]exportedSession, 0, len(sessions)),
	}
	for _, s := range sessions {
		es := exportedSession{
			ID:        s.ID,
			Title:     s.Title,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
			Messages:  make([]exportedMessage, 0, len(s.Messages)),
		}
		if s.Location != nil {
			es.Location = &exportedLocation{
				Name:    s.Location.Name,
				Country: s.Location.Country,
				State:   s.Location.State,
				Lat:     s.Location.Lat,
				Lon:     s.Location.Lon,
			}
		}
		for _, m := range s.Messages {
			es.Messages = append(es.Messages, exportedMessage{
				ID:        m.ID,
				Role:      m.Role,
				Content:   m.Content,
				Timestamp: m.Timestamp,
			})
		}
		doc.Sessions = append(doc.Sessions, es)
	}
	return doc
}

func writeExport(w io.Writer, format string, doc exportDocument) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "export format (json, yaml)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write the export to this file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
