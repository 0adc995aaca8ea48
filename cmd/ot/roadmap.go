package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/briangibbs/overwhelmed-tools/internal/domain"
	"github.com/briangibbs/overwhelmed-tools/internal/engine"
	"github.com/briangibbs/overwhelmed-tools/internal/roadmap"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	phaseStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

func roadmapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roadmap",
		Short: "Generate and view AI implementation roadmaps",
		Long:  "A roadmap is built from a business profile (name, industry, size, goals). Generating one replaces the stored roadmap that 'ot task import' reads.",
	}
	cmd.AddCommand(roadmapGenerateCmd())
	cmd.AddCommand(roadmapShowCmd())
	cmd.AddCommand(roadmapOptionsCmd())
	return cmd
}

func roadmapGenerateCmd() *cobra.Command {
	var name, industry, size, out string
	var goals []string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a roadmap for a business profile",
		Example: `  ot roadmap generate --name Acme --industry Retail --size "Small (11-50 employees)" \
    --goal "Automate Customer Service" --goal "Enhance Data Analytics"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := domain.BusinessProfile{
				Name:     name,
				Industry: domain.Industry(industry),
				Size:     domain.BusinessSize(size),
			}
			for _, g := range goals {
				p.Goals = append(p.Goals, domain.Goal(g))
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				rm, err := e.GenerateRoadmap(ctx, p, actorID())
				if err != nil {
					return err
				}
				return emitRoadmap(rm, out)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "business name")
	cmd.Flags().StringVar(&industry, "industry", "", "industry (see ot roadmap options)")
	cmd.Flags().StringVar(&size, "size", "", "business size (see ot roadmap options)")
	cmd.Flags().StringArrayVar(&goals, "goal", nil, "goal, repeat in priority order")
	cmd.Flags().StringVar(&out, "out", "", "also write the roadmap as markdown into this directory")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("industry")
	_ = cmd.MarkFlagRequired("size")
	_ = cmd.MarkFlagRequired("goal")
	return cmd
}

func roadmapShowCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the latest generated roadmap",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				rm, err := e.LatestRoadmap(ctx)
				if err != nil {
					return fmt.Errorf("%w; run ot roadmap generate first", err)
				}
				return emitRoadmap(rm, out)
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "write the roadmap as markdown into this directory")
	return cmd
}

func roadmapOptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "List industries, sizes and goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			if viper.GetBool("json") {
				return printJSON(map[string]any{
					"industries":        domain.Industries,
					"sizes":             domain.BusinessSizes,
					"goals":             domain.Goals,
					"calendar_kinds":    domain.CalendarKinds,
					"industry_profiles": roadmap.Profiles(),
				})
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"Industry", "Compliance", "Focus"})
			for _, ind := range domain.Industries {
				p, _ := roadmap.ProfileFor(ind)
				tw.AppendRow(table.Row{ind, p.Compliance, p.Focus})
			}
			tw.Render()
			fmt.Println(titleStyle.Render("Sizes"))
			for _, s := range domain.BusinessSizes {
				fmt.Println("  " + string(s))
			}
			fmt.Println(titleStyle.Render("Goals"))
			for _, g := range domain.Goals {
				fmt.Println("  " + string(g))
			}
			return nil
		},
	}
	return cmd
}

func emitRoadmap(rm domain.Roadmap, outDir string) error {
	if outDir != "" {
		path := filepath.Join(outDir, roadmap.FileSlug(rm.Business)+".md")
		if err := os.WriteFile(path, []byte(roadmap.Markdown(rm)), 0o644); err != nil {
			return err
		}
		if !viper.GetBool("json") {
			fmt.Println(mutedStyle.Render("wrote " + path))
		}
	}
	if viper.GetBool("json") {
		return printJSON(rm)
	}
	fmt.Println(renderRoadmap(rm))
	return nil
}

func renderRoadmap(rm domain.Roadmap) string {
	goals := make([]string, len(rm.Goals))
	for i, g := range rm.Goals {
		goals[i] = string(g)
	}
	head := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("AI Implementation Roadmap for "+rm.Business),
		mutedStyle.Render(fmt.Sprintf("%s · %s", rm.Industry, rm.Size)),
		mutedStyle.Render("Goals: "+strings.Join(goals, ", ")),
	)
	blocks := []string{boxStyle.Render(head)}
	for _, ph := range rm.Phases {
		var b strings.Builder
		b.WriteString(phaseStyle.Render(fmt.Sprintf("%s (Days %s)", ph.Title, ph.Days)))
		for _, t := range ph.Tasks {
			b.WriteString("\n  • " + t)
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}
