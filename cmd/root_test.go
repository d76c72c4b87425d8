package cmd

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionConfigReflectsViperValues(t *testing.T) {
	t.Cleanup(func() { viper.Reset() })

	viper.Set(insertionUUTKey, 0.3)
	viper.Set(insertionEnvironmentKey, 0.2)
	viper.Set(insertionParameterKey, 0.5)
	viper.Set(sortObjectsKey, false)
	viper.Set(failurePenaltiesKey, false)
	viper.Set(failurePenaltyThresholdKey, 3)
	viper.Set(maxRecursionDepthKey, 7)
	viper.Set(seedConfigKey, int64(42))

	cfg := sessionConfig()

	assert.Equal(t, 0.3, cfg.InsertionUUT)
	assert.Equal(t, 0.2, cfg.InsertionEnvironment)
	assert.Equal(t, 0.5, cfg.InsertionParameter)
	assert.False(t, cfg.SortObjects)
	assert.False(t, cfg.EnableFailurePenalties)
	assert.Equal(t, 3, cfg.FailurePenaltyThreshold)
	assert.Equal(t, 7, cfg.MaxRecursionDepth)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.NoError(t, cfg.Validate())
}

func TestSessionConfigDefaultsAreValid(t *testing.T) {
	t.Cleanup(func() { viper.Reset() })
	viper.Reset()

	viper.SetDefault(insertionUUTKey, defaultInsertionUUT)
	viper.SetDefault(insertionEnvironmentKey, defaultInsertionEnv)
	viper.SetDefault(insertionParameterKey, defaultInsertionParam)
	viper.SetDefault(maxRecursionDepthKey, defaultMaxRecursionDepth)
	viper.SetDefault(seedConfigKey, defaultSeed)

	assert.NoError(t, sessionConfig().Validate())
}

func TestLoadSessionFailsWithoutCatalogFile(t *testing.T) {
	t.Cleanup(func() { viper.Reset() })

	viper.Set(catalogConfigKey, filepath.Join(t.TempDir(), "missing.yaml"))

	session, err := loadSession()
	require.Error(t, err)
	assert.Nil(t, session)
	assert.Contains(t, err.Error(), "loading catalog")
}
