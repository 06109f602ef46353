package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/modloadgo/internal/globals"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_SingleFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "loader.hcl", `
loader {
  source    = "./modules"
  suffix    = ".js"
  call_name = "require"
  entry     = ["./main"]
}

global "ajax" {
  path = "vendor/ajax"
}

global "settings" {
  value = {
    env     = "test"
    retries = 3
  }
}
`)

	model, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "./modules", model.Source)
	assert.Equal(t, ".js", model.Suffix)
	assert.Equal(t, "require", model.Call)
	assert.Equal(t, []string{"./main"}, model.Entry)

	require.Len(t, model.Globals, 2)
	assert.Equal(t, globals.Path("vendor/ajax"), model.Globals["ajax"])

	settings := model.Globals["settings"]
	assert.Equal(t, globals.KindInline, settings.Kind)
	value, ok := settings.Value.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "test", value["env"])
	assert.EqualValues(t, 3, value["retries"])
}

func TestLoad_DirectoryMerge(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "loader.hcl", `
loader {
  source = "."
}
`)
	writeConfig(t, dir, "globals.hcl", `
global "log" {
  path = "lib/log"
}
`)

	model, err := Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, ".", model.Source)
	assert.Equal(t, globals.Path("lib/log"), model.Globals["log"])
}

func TestLoad_InlineValueKinds(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "values.hcl", `
global "flag" {
  value = true
}

global "pi" {
  value = 3.5
}

global "list" {
  value = ["a", "b"]
}
`)

	model, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, true, model.Globals["flag"].Value)
	assert.Equal(t, 3.5, model.Globals["pi"].Value)
	assert.Equal(t, []any{"a", "b"}, model.Globals["list"].Value)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.hcl"))
		require.Error(t, err)
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := Load(context.Background(), t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no .hcl config files")
	})

	t.Run("duplicate loader block", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "a.hcl", `loader {}`)
		writeConfig(t, dir, "b.hcl", `loader {}`)
		_, err := Load(context.Background(), dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate loader block")
	})

	t.Run("duplicate global name", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "dup.hcl", `
global "x" {
  path = "a"
}

global "x" {
  path = "b"
}
`)
		_, err := Load(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `duplicate global "x"`)
	})

	t.Run("path and value together", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "both.hcl", `
global "x" {
  path  = "a"
  value = 1
}
`)
		_, err := Load(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mutually exclusive")
	})

	t.Run("neither path nor value", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "neither.hcl", `
global "x" {
}
`)
		_, err := Load(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "either path or value")
	})

	t.Run("invalid syntax", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "bad.hcl", `loader { source = `)
		_, err := Load(context.Background(), path)
		require.Error(t, err)
	})
}

func TestModel_Table(t *testing.T) {
	m := &Model{Globals: map[string]globals.Entry{
		"a": globals.Path("lib/a"),
	}}

	entry, err := m.Table().Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, globals.Path("lib/a"), entry)

	_, err = m.Table().Lookup("b")
	require.ErrorIs(t, err, globals.ErrUnknownName)
}
