package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Bachenbenno/evosuite/internal/domain"
)

var runParallelFlag int
var runGenerationsFlag int

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the test case search",
		Long: `Run the generational search against the configured catalog and print a
per-goal coverage summary.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configureLogger("", viper.GetBool(logVerboseKey))

			session, err := loadSession()
			if err != nil {
				return err
			}

			args := domain.SearchArgs{
				Population:  viper.GetInt(populationKey),
				Generations: viper.GetInt(generationsKey),
				Elite:       viper.GetInt(eliteKey),
				Threads:     viper.GetInt(runParallelConfigKey),
				TestLength:  viper.GetInt(testLengthKey),
			}
			goals := len(session.FitnessFunctions())

			report, err := session.Run(cmd.Context(), args, func(generation, covered int) {
				reporter.DisplayProgress(cmd.Context(), generation, covered, goals)
			})

			return reporter.DisplaySearchReport(cmd.Context(), report, err)
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&runParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of parallel evaluation workers")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)

	cmd.Flags().IntVarP(&runGenerationsFlag, "generations", "g", viper.GetInt(generationsKey), "maximum number of generations")
	bindFlagToConfig(cmd.Flags().Lookup("generations"), generationsKey)
}
