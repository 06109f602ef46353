package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loader.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`loader {}`), 0644))
	return path
}

func TestParse_Help(t *testing.T) {
	var out bytes.Buffer
	config, exit, err := Parse([]string{"-h"}, &out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, config)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_NoArgsPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	config, exit, err := Parse(nil, &out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, config)
	assert.Contains(t, out.String(), "modloadgo")
}

func TestParse_ConfigPathSources(t *testing.T) {
	path := tempConfig(t)

	testCases := []struct {
		name string
		args []string
	}{
		{"long flag", []string{"-config", path}},
		{"short flag", []string{"-c", path}},
		{"positional", []string{path}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			config, exit, err := Parse(tc.args, &out)
			require.NoError(t, err)
			assert.False(t, exit)
			require.NotNil(t, config)
			assert.Equal(t, path, config.ConfigPath)
		})
	}
}

func TestParse_EntryOverride(t *testing.T) {
	path := tempConfig(t)

	var out bytes.Buffer
	config, _, err := Parse([]string{"-entry", "./main, ./extra,", path}, &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"./main", "./extra"}, config.Entry)
}

func TestParse_InvalidFlags(t *testing.T) {
	path := tempConfig(t)

	testCases := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-bogus", path}},
		{"bad log format", []string{"-log-format", "yaml", path}},
		{"bad log level", []string{"-log-level", "loud", path}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			_, _, err := Parse(tc.args, &out)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}

func TestParse_Defaults(t *testing.T) {
	path := tempConfig(t)

	var out bytes.Buffer
	config, _, err := Parse([]string{path}, &out)
	require.NoError(t, err)
	assert.Equal(t, "json", config.LogFormat)
	assert.Equal(t, "info", config.LogLevel)
	assert.Empty(t, config.Entry)
}
