package config

import (
	"os"
	"path/filepath"
	"testing"

	"dtarbill/csv-qif/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to dir for the rest of the test so no stray csv-qif.yaml is found.
func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
}

func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CSVQIF_LOG_LEVEL",
		"CSVQIF_LOG_FORMAT",
		"CSVQIF_QIF_MAX_COLUMNS",
		"CSVQIF_QIF_STRICT_AMOUNTS",
		"CSVQIF_QIF_FUND_PREFIX",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("HOME", t.TempDir())
}

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, 20, config.QIF.MaxColumns)
	assert.False(t, config.QIF.StrictAmounts)
	assert.Equal(t, "SF ", config.QIF.FundPrefix)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	t.Setenv("CSVQIF_LOG_LEVEL", "debug")
	t.Setenv("CSVQIF_LOG_FORMAT", "json")
	t.Setenv("CSVQIF_QIF_MAX_COLUMNS", "30")
	t.Setenv("CSVQIF_QIF_STRICT_AMOUNTS", "true")

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, 30, config.QIF.MaxColumns)
	assert.True(t, config.QIF.StrictAmounts)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := t.TempDir()
	chdir(t, tempDir)

	configContent := `
log:
  level: "warn"
qif:
  max_columns: 12
  fund_prefix: "Fund "
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "csv-qif.yaml"), []byte(configContent), 0600))

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, 12, config.QIF.MaxColumns)
	assert.Equal(t, "Fund ", config.QIF.FundPrefix)
}

func TestInitializeConfig_ExplicitFile(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	configFile := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("qif:\n  strict_amounts: true\n"), 0600))

	config, err := InitializeConfig(configFile)
	require.NoError(t, err)
	assert.True(t, config.QIF.StrictAmounts)

	_, err = InitializeConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := t.TempDir()
	chdir(t, tempDir)

	configContent := `
log:
  level: "warn"
qif:
  max_columns: 12
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "csv-qif.yaml"), []byte(configContent), 0600))
	t.Setenv("CSVQIF_LOG_LEVEL", "error")

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)
	assert.Equal(t, 12, config.QIF.MaxColumns)
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "xml" },
			expectError:  "invalid log format",
		},
		{
			name:         "zero max columns",
			modifyConfig: func(c *Config) { c.QIF.MaxColumns = 0 },
			expectError:  "qif.max_columns must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}
			config.Log.Level = "info"
			config.Log.Format = "text"
			config.QIF.MaxColumns = 20

			tt.modifyConfig(config)

			err := validateConfig(config)
			assert.ErrorContains(t, err, tt.expectError)
		})
	}
}

func TestConfigureLogging(t *testing.T) {
	config := &Config{}
	config.Log.Level = "debug"
	config.Log.Format = "JSON"

	logger := ConfigureLogging(config)
	_, ok := logger.(*logging.LogrusAdapter)
	assert.True(t, ok)
}

func TestLoadEnv(t *testing.T) {
	tempDir := t.TempDir()
	chdir(t, tempDir)

	loaded, err := LoadEnv()
	require.NoError(t, err)
	assert.Empty(t, loaded)

	require.NoError(t, os.WriteFile(filepath.Join(tempDir, ".env"), []byte("CSVQIF_TEST_VALUE=from-dotenv\n"), 0600))
	t.Setenv("CSVQIF_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("CSVQIF_TEST_VALUE"))

	loaded, err = LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ".env", loaded)
	assert.Equal(t, "from-dotenv", os.Getenv("CSVQIF_TEST_VALUE"))
}
