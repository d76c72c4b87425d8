// Package cmd provides the root command and CLI setup for the test
// generator.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Bachenbenno/evosuite/internal/adapter"
	"github.com/Bachenbenno/evosuite/internal/controller"
	"github.com/Bachenbenno/evosuite/internal/domain"
)

var reporter controller.Reporter

// catalogFileFlag points at the YAML file describing the classes and
// executables of the unit under test.
var catalogFileFlag string

// seedFlag seeds the randomness source for reproducible runs.
var seedFlag int64

// verboseFlag raises the log level to debug.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	reporter = controller.NewConsoleReporter(rootCmd)
}

const rootLongDescription = `Evosuite searches for unit test cases covering the methods of a class
under test. Candidate tests are mutated by inserting, deleting and
replacing statements, scored against per-method coverage goals, and the
best candidates survive into the next generation.

The class under test and its callable surface are described by a catalog
file (see the catalog flag).`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "evosuite",
		Short: "Search-based unit test generator",
		Long:  rootLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&catalogFileFlag, catalogFlagName, "c",
			viper.GetString(catalogConfigKey),
			"catalog file describing the unit under test",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(catalogFlagName), catalogConfigKey)

	cmd.PersistentFlags().Int64Var(&seedFlag, seedFlagName, viper.GetInt64(seedConfigKey), "randomness seed for reproducible runs")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(seedFlagName), seedConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("verbose"), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// sessionConfig assembles the domain configuration from the resolved
// viper values.
func sessionConfig() domain.Config {
	return domain.Config{
		InsertionUUT:            viper.GetFloat64(insertionUUTKey),
		InsertionEnvironment:    viper.GetFloat64(insertionEnvironmentKey),
		InsertionParameter:      viper.GetFloat64(insertionParameterKey),
		SortObjects:             viper.GetBool(sortObjectsKey),
		EnableFailurePenalties:  viper.GetBool(failurePenaltiesKey),
		FailurePenaltyThreshold: viper.GetInt(failurePenaltyThresholdKey),
		MaxRecursionDepth:       viper.GetInt(maxRecursionDepthKey),
		Seed:                    viper.GetInt64(seedConfigKey),
	}
}

// loadSession builds a search session from the configured catalog file.
func loadSession() (*domain.Session, error) {
	catalog, oracle, err := adapter.LoadCatalog(viper.GetString(catalogConfigKey))
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	session, err := domain.NewSession(sessionConfig(), catalog, adapter.NewSimExecutor(), oracle)
	if err != nil {
		return nil, err
	}

	return session, nil
}
