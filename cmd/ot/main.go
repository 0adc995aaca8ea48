package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/briangibbs/overwhelmed-tools/internal/app"
	"github.com/briangibbs/overwhelmed-tools/internal/db"
	"github.com/briangibbs/overwhelmed-tools/internal/engine"
)

var rootCmd = &cobra.Command{
	Use:   "ot",
	Short: "Overwhelmed Tools CLI",
	Long: `Overwhelmed Tools turns a short business profile into a 15-day AI adoption plan.
Core concepts:
- Roadmap: four phases (Assessment & Planning, Tool Selection & Setup, Implementation, Optimization & Scaling) built from your industry and goals.
- Plan store: the latest generated roadmap, kept in the workspace until the next generation replaces it.
- Task calendar: dated tasks imported from the roadmap (two per day by default) plus anything you add by hand.
- Calendar export: the task list as an iCalendar file for Apple Calendar, Google Calendar or Microsoft Outlook.
- Workspace: the .overwhelmed directory holding the SQLite database; config lives next to it in overwhelmed.yml.
- Event log: diary of changes, view with 'ot log tail'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		workspace := viper.GetString("workspace")
		if _, err := db.EnsureWorkspace(workspace); err != nil {
			return err
		}
		return nil
	},
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("OT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("workspace", "w", ".", "workspace directory")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	rootCmd.PersistentFlags().String("actor-id", "local-user", "actor identifier")
	rootCmd.PersistentFlags().String("config", "", "config file (overwhelmed.yml or .toml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log engine activity to stderr")
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("actor-id", rootCmd.PersistentFlags().Lookup("actor-id"))
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func registerCommands() {
	rootCmd.AddCommand(roadmapCmd())
	rootCmd.AddCommand(taskCmd())
	rootCmd.AddCommand(calendarCmd())
	rootCmd.AddCommand(readinessCmd())
	rootCmd.AddCommand(roiCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(logCmd())
	rootCmd.AddCommand(serveCmd())
}

func logCmd() *cobra.Command {
	log := &cobra.Command{
		Use:   "log",
		Short: "Event log",
		Long:  "The diary of everything that happened: roadmap generations, imports, task edits and exports.",
	}
	log.AddCommand(logTailCmd())
	return log
}

func logTailCmd() *cobra.Command {
	var n int
	var evtType, entityKind, entityID string
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Tail events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				events, err := e.Repo.LatestEvents(ctx, n, evtType, entityKind, entityID)
				if err != nil {
					return err
				}
				return printJSONOrTable(events)
			})
		},
	}
	cmd.Flags().IntVar(&n, "n", 20, "number of events")
	cmd.Flags().StringVar(&evtType, "type", "", "event type filter")
	cmd.Flags().StringVar(&entityKind, "entity-kind", "", "entity kind")
	cmd.Flags().StringVar(&entityID, "entity-id", "", "entity id")
	return cmd
}

// --- helpers ---

func engineLogger() *log.Logger {
	if viper.GetBool("verbose") {
		return log.New(os.Stderr, "ot: ", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}

func openWorkspace(ctx context.Context) (*app.Workspace, error) {
	return app.Open(ctx, app.Options{
		Dir:        viper.GetString("workspace"),
		ConfigPath: viper.GetString("config"),
		Logger:     engineLogger(),
	})
}

func withEngine(ctx context.Context, fn func(context.Context, engine.Engine) error) error {
	ws, err := openWorkspace(ctx)
	if err != nil {
		return err
	}
	defer ws.Close()
	return fn(ctx, ws.Engine)
}

func actorID() string {
	return viper.GetString("actor-id")
}

func printJSONOrTable(v any) error {
	if viper.GetBool("json") {
		return printJSON(v)
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
