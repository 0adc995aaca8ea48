package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/briangibbs/overwhelmed-tools/internal/engine"
	"github.com/briangibbs/overwhelmed-tools/internal/readiness"
	"github.com/briangibbs/overwhelmed-tools/internal/roi"
)

func readinessCmd() *cobra.Command {
	var answers []int
	var reportDir string
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Score an AI readiness assessment",
		Long:  "Answer each question from 1 (not at all) to 5 (fully), in order:\n" + questionList(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				res, a, err := e.Assess(ctx, answers, actorID())
				if err != nil {
					return err
				}
				if reportDir != "" {
					path := filepath.Join(reportDir, readiness.ReportFileName)
					if err := os.WriteFile(path, []byte(readiness.Report(res)), 0o644); err != nil {
						return err
					}
					if !viper.GetBool("json") {
						fmt.Println(mutedStyle.Render("wrote " + path))
					}
				}
				if viper.GetBool("json") {
					return printJSON(map[string]any{"id": a.ID, "result": res})
				}
				fmt.Println(titleStyle.Render(fmt.Sprintf("Overall %d%% · %s", res.Score, res.Level.Name)))
				fmt.Println(mutedStyle.Render(res.Level.Description))
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Category", "Answer", "Score"})
				for _, c := range res.Categories {
					tw.AppendRow(table.Row{c.Category, c.Answer, fmt.Sprintf("%d%%", c.Percent)})
				}
				tw.Render()
				fmt.Println(phaseStyle.Render("Priority areas"))
				for _, p := range res.Priorities {
					fmt.Printf("  %s (%d/%d)\n", p.Category, p.Answer, readiness.MaxAnswer)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntSliceVar(&answers, "answer", nil, "answer per question, repeat 5 times or comma separate")
	cmd.Flags().StringVar(&reportDir, "report", "", "write the text report into this directory")
	_ = cmd.MarkFlagRequired("answer")
	return cmd
}

func questionList() string {
	var s string
	for i, q := range readiness.Questions {
		s += fmt.Sprintf("  %d. %s (%s)\n", i+1, q.Text, q.Category)
	}
	return s
}

func roiCmd() *cobra.Command {
	var in roi.Input
	var impl string
	cmd := &cobra.Command{
		Use:   "roi",
		Short: "Estimate the return on a monthly AI budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Implementation = roi.Implementation(impl)
			res, err := roi.Calculate(in)
			if err != nil {
				return err
			}
			if viper.GetBool("json") {
				return printJSON(res)
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendRows([]table.Row{
				{"Monthly savings", fmt.Sprintf("$%.2f", res.MonthlySavings)},
				{"Annual savings", fmt.Sprintf("$%.2f", res.AnnualSavings)},
				{"Annual cost", fmt.Sprintf("$%.2f", res.AnnualCost)},
				{"ROI", fmt.Sprintf("%.0f%%", res.ROIPercent)},
				{"Payback", fmt.Sprintf("%.1f months", res.PaybackMonths)},
				{"5-year return", fmt.Sprintf("$%.2f", res.FiveYearReturn)},
			})
			tw.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&impl, "type", "", "implementation type (chatbot, automation, analytics, marketing, sales)")
	cmd.Flags().Float64Var(&in.MonthlyBudget, "budget", 0, "monthly budget")
	cmd.Flags().Float64Var(&in.HoursSaved, "hours", 0, "hours saved per month")
	cmd.Flags().Float64Var(&in.HourlyRate, "rate", roi.DefaultHourlyRate, "hourly rate")
	return cmd
}
