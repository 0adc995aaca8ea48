package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/briangibbs/overwhelmed-tools/internal/domain"
	"github.com/briangibbs/overwhelmed-tools/internal/engine"
	"github.com/briangibbs/overwhelmed-tools/internal/exporter"
	"github.com/briangibbs/overwhelmed-tools/internal/scheduler"
)

func taskCmd() *cobra.Command {
	task := &cobra.Command{
		Use:   "task",
		Short: "Manage the task calendar",
		Long:  "The task calendar holds dated tasks. 'import' appends the latest roadmap's tasks, two per day starting today; importing twice appends them twice.",
	}
	task.AddCommand(taskListCmd())
	task.AddCommand(taskShowCmd())
	task.AddCommand(taskAddCmd())
	task.AddCommand(taskDeleteCmd())
	task.AddCommand(taskImportCmd())
	task.AddCommand(taskClearCmd())
	task.AddCommand(taskExportCmd())
	return task
}

func renderTasks(tasks []domain.ScheduledTask) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"ID", "Date", "Time", "Title", "Category"})
	for _, t := range tasks {
		tw.AppendRow(table.Row{t.ID, t.Date, t.Time, t.Title, t.Category})
	}
	tw.Render()
}

func taskListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in insertion order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				tasks, err := e.ListTasks(ctx)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(tasks)
				}
				if len(tasks) == 0 {
					fmt.Println("no tasks; run ot task import or ot task add")
					return nil
				}
				renderTasks(tasks)
				return nil
			})
		},
	}
	return cmd
}

func taskShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				t, err := e.GetTask(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSONOrTable(t)
			})
		},
	}
	return cmd
}

func taskAddCmd() *cobra.Command {
	var n scheduler.NewTask
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task by hand",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				t, err := e.AddTask(ctx, n, actorID())
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(t)
				}
				fmt.Printf("added %s\n", t.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&n.Title, "title", "", "task title")
	cmd.Flags().StringVar(&n.Date, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&n.Time, "time", "", "time (HH:MM)")
	cmd.Flags().StringVar(&n.Category, "category", "", "category")
	return cmd
}

func taskDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task (unknown ids are ignored)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				removed, err := e.DeleteTask(ctx, args[0], actorID())
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(map[string]any{"id": args[0], "removed": removed})
				}
				if removed {
					fmt.Printf("deleted %s\n", args[0])
				} else {
					fmt.Printf("no task %s\n", args[0])
				}
				return nil
			})
		},
	}
	return cmd
}

func taskImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Append the latest roadmap's tasks to the calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				added, err := e.ImportTasks(ctx, actorID())
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(added)
				}
				if len(added) == 0 {
					fmt.Println("nothing to import; run ot roadmap generate first")
					return nil
				}
				fmt.Printf("imported %d tasks\n", len(added))
				renderTasks(added)
				return nil
			})
		},
	}
	return cmd
}

func taskClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every task",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				n, err := e.ClearTasks(ctx, actorID())
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(map[string]any{"removed": n})
				}
				fmt.Printf("removed %d tasks\n", n)
				return nil
			})
		},
	}
	return cmd
}

func taskExportCmd() *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the task list as a spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "xlsx" {
				return fmt.Errorf("unsupported format %q (supported: xlsx)", format)
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				data, err := e.ExportSheet(ctx)
				if err != nil {
					return err
				}
				path := out
				if path == "" {
					path = exporter.SheetFileName
				}
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					path = filepath.Join(path, exporter.SheetFileName)
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(map[string]any{"file": path, "bytes": len(data)})
				}
				fmt.Printf("wrote %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "xlsx", "export format")
	cmd.Flags().StringVar(&out, "out", "", "output file or directory")
	return cmd
}
