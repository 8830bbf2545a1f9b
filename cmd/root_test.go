package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir runs the test from an empty working directory with no user
// config, restoring cfg afterwards.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	oldCfg := cfg
	cfg = nil
	t.Cleanup(func() {
		cfg = oldCfg
		_ = os.Chdir(origDir)
	})
	return dir
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "aoc", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["bench"], "expected subcommand bench")
}

func TestRootCommand_Flags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		def       string
	}{
		{"stdin", "i", "false"},
		{"file", "f", ""},
		{"day", "d", "[]"},
		{"all", "a", "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := rootCmd.PersistentFlags().Lookup(tt.name)
			require.NotNil(t, flag, "root command should have --%s flag", tt.name)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.def, flag.DefValue)
		})
	}

	bench := rootCmd.Flags().Lookup("bench")
	require.NotNil(t, bench)
	assert.Equal(t, "b", bench.Shorthand)

	// Selection flags are shared with the bench subcommand.
	assert.NotNil(t, benchCmd.InheritedFlags().Lookup("day"))
}

func TestRootCmd_PersistentPreRunE_WithValidConfig(t *testing.T) {
	dir := inTempDir(t)
	content := `
year: 2020
report:
  width: 50
log:
  level: info
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aoc.yaml"), []byte(content), 0o644))

	require.NoError(t, rootCmd.PersistentPreRunE(rootCmd, nil))
	require.NotNil(t, cfg)
	assert.Equal(t, 2020, cfg.Year)
	assert.Equal(t, 50, cfg.Report.Width)
}

func TestRootCmd_PersistentPreRunE_NoConfigFile(t *testing.T) {
	inTempDir(t)

	require.NoError(t, rootCmd.PersistentPreRunE(rootCmd, nil))
	require.NotNil(t, cfg)
	assert.Equal(t, 40, cfg.Report.Width)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestRootCmd_PersistentPreRunE_BadLogLevel(t *testing.T) {
	inTempDir(t)
	t.Setenv("AOC_LOG_LEVEL", "shouting")

	err := rootCmd.PersistentPreRunE(rootCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init logger")
}

func TestRootCmd_PersistentPreRunE_InvalidConfig(t *testing.T) {
	inTempDir(t)
	t.Setenv("AOC_REPORT_WIDTH", "-3")

	err := rootCmd.PersistentPreRunE(rootCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate config")
	assert.Nil(t, cfg)
}

func TestRootCmd_PersistentPreRunE_InvalidYAML(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aoc.yaml"), []byte("log: [level"), 0o644))

	err := rootCmd.PersistentPreRunE(rootCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestRootCmd_PersistentPostRun_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		rootCmd.PersistentPostRun(rootCmd, nil)
	})
}
