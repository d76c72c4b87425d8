package cmd

import (
	"github.com/spf13/cobra"

	m "github.com/Bachenbenno/evosuite/internal/model"
)

// goalsCmd represents the goals command.
var goalsCmd = newGoalsCmd()

func newGoalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goals",
		Short: "List the coverage goals of the configured catalog",
		Long: `Resolve the catalog and print each coverage goal together with its
cyclomatic complexity, without running the search.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := loadSession()
			if err != nil {
				return err
			}

			seen := make(map[string]bool)
			var goals []*m.Goal
			for _, f := range session.FitnessFunctions() {
				goal := f.Goal()
				if seen[goal.Key()] {
					continue
				}
				seen[goal.Key()] = true
				goals = append(goals, goal)
			}

			reporter.DisplayGoals(cmd.Context(), goals)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(goalsCmd)
}
