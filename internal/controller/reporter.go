// Package controller provides output adapters for displaying search results.
package controller

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Bachenbenno/evosuite/internal/domain"
	m "github.com/Bachenbenno/evosuite/internal/model"
)

// Reporter defines the interface for displaying search progress and
// results. Implementations can use different output methods.
type Reporter interface {
	DisplayProgress(ctx context.Context, generation, covered, goals int)
	DisplaySearchReport(ctx context.Context, report *domain.SearchReport, err error) error
	DisplayGoals(ctx context.Context, goals []*m.Goal)
}

// ConsoleReporter implements Reporter using cobra Command's output.
type ConsoleReporter struct {
	cmd *cobra.Command
}

// NewConsoleReporter creates a new ConsoleReporter.
func NewConsoleReporter(cmd *cobra.Command) *ConsoleReporter {
	return &ConsoleReporter{cmd: cmd}
}

// DisplayProgress prints a per-generation status line. On a terminal the
// line is rewritten in place.
func (r *ConsoleReporter) DisplayProgress(ctx context.Context, generation, covered, goals int) {
	if err := ctx.Err(); err != nil {
		return
	}
	if isTerminal() {
		r.printf("\rgeneration %d: %d/%d goals covered", generation, covered, goals)
		return
	}
	r.printf("generation %d: %d/%d goals covered\n", generation, covered, goals)
}

// DisplaySearchReport prints the per-goal summary table or the error.
func (r *ConsoleReporter) DisplaySearchReport(ctx context.Context, report *domain.SearchReport, err error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err != nil {
		r.printf("search error: %v\n", err)
		return err
	}

	r.printf("\n%s", renderReportTable(report))
	r.printf("\nFinished after %d generations\n", report.Generations)

	return nil
}

// DisplayGoals prints the resolved coverage goals and their complexity.
func (r *ConsoleReporter) DisplayGoals(ctx context.Context, goals []*m.Goal) {
	if err := ctx.Err(); err != nil {
		return
	}
	r.printf("\n%s", renderGoalsTable(goals))
}

func renderReportTable(report *domain.SearchReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Function", "Goal", "Complexity", "Covered", "Best Fitness"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	covered := 0

	for _, g := range report.Goals {
		mark := "no"
		if g.Covered {
			mark = "yes"
			covered++
		}
		table.Append([]string{
			g.Function,
			g.Goal,
			fmt.Sprintf("%d", g.Complexity),
			mark,
			fmt.Sprintf("%.2f", g.BestFitness),
		})
	}

	table.SetFooter([]string{
		"Total",
		fmt.Sprintf("%d goals", len(report.Goals)),
		"",
		fmt.Sprintf("%d covered", covered),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

func renderGoalsTable(goals []*m.Goal) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Goal", "Complexity"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, g := range goals {
		table.Append([]string{g.Key(), fmt.Sprintf("%d", g.CyclomaticComplexity())})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Goals %d", len(goals)), ""})
	table.Render()

	return tableBuffer.String()
}

func (r *ConsoleReporter) printf(format string, args ...interface{}) {
	r.cmd.Printf(format, args...)
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
