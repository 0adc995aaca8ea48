package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/briangibbs/overwhelmed-tools/internal/domain"
	"github.com/briangibbs/overwhelmed-tools/internal/engine"
)

func calendarCmd() *cobra.Command {
	cal := &cobra.Command{
		Use:   "calendar",
		Short: "Export tasks to calendar applications",
	}
	cal.AddCommand(calendarExportCmd())
	return cal
}

func calendarExportCmd() *cobra.Command {
	var kind, outDir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the task list as an iCalendar file",
		Long:  "Apple Calendar gets an .ics file; Google Calendar and Microsoft Outlook get .ical. Every task becomes a one-hour event.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				f, count, err := e.ExportCalendar(ctx, domain.CalendarKind(kind), actorID())
				if err != nil {
					return err
				}
				path := filepath.Join(outDir, f.Name)
				if err := os.WriteFile(path, f.Data, 0o644); err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(map[string]any{"file": path, "kind": kind, "content_type": f.ContentType, "task_count": count})
				}
				fmt.Printf("wrote %s for %s (%d tasks)\n", path, kind, count)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(domain.CalendarApple), `calendar application ("Apple Calendar", "Google Calendar", "Microsoft Outlook")`)
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	return cmd
}
