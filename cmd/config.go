package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "evosuite"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	catalogFlagName     = "catalog"
	seedFlagName        = "seed"
	runParallelFlagName = "parallel"

	catalogConfigKey     = "catalog.file"
	seedConfigKey        = "search.seed"
	runParallelConfigKey = "search.parallel"
	populationKey        = "search.population"
	generationsKey       = "search.generations"
	eliteKey             = "search.elite"
	testLengthKey        = "search.test_length"

	insertionUUTKey         = "insertion.uut"
	insertionEnvironmentKey = "insertion.environment"
	insertionParameterKey   = "insertion.parameter"
	sortObjectsKey          = "insertion.sort_objects"
	maxRecursionDepthKey    = "insertion.max_recursion_depth"

	failurePenaltiesKey        = "penalties.enabled"
	failurePenaltyThresholdKey = "penalties.threshold"

	defaultCatalogFile       = "catalog.yaml"
	defaultSeed              = 1
	defaultRunParallel       = 1
	defaultPopulation        = 50
	defaultGenerations       = 100
	defaultElite             = 5
	defaultTestLength        = 10
	defaultInsertionUUT      = 0.5
	defaultInsertionEnv      = 0.0
	defaultInsertionParam    = 0.5
	defaultSortObjects       = true
	defaultMaxRecursionDepth = 10
	defaultPenaltiesEnabled  = true
	defaultPenaltyThreshold  = 0

	envPrefix = "EVOSUITE"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".evosuite.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(catalogConfigKey, defaultCatalogFile)
	viper.SetDefault(seedConfigKey, defaultSeed)
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(populationKey, defaultPopulation)
	viper.SetDefault(generationsKey, defaultGenerations)
	viper.SetDefault(eliteKey, defaultElite)
	viper.SetDefault(testLengthKey, defaultTestLength)

	viper.SetDefault(insertionUUTKey, defaultInsertionUUT)
	viper.SetDefault(insertionEnvironmentKey, defaultInsertionEnv)
	viper.SetDefault(insertionParameterKey, defaultInsertionParam)
	viper.SetDefault(sortObjectsKey, defaultSortObjects)
	viper.SetDefault(maxRecursionDepthKey, defaultMaxRecursionDepth)

	viper.SetDefault(failurePenaltiesKey, defaultPenaltiesEnabled)
	viper.SetDefault(failurePenaltyThresholdKey, defaultPenaltyThreshold)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Warn("failed to read config file", "path", viper.ConfigFileUsed(), "error", err)
		}
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
