package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestRunValidate_Defaults(t *testing.T) {
	var buf bytes.Buffer
	err := runValidate("", &buf)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "VALID: 1 sink(s), listening on 0.0.0.0:20777")
	assert.Contains(t, buf.String(), "drop_policy: tail")
}

func TestRunValidate_File(t *testing.T) {
	path := writeConfig(t, `
pitwall:
  listen:
    host: 127.0.0.1
    port: 20778
  sinks:
    - name: console
    - name: stats
`)

	var buf bytes.Buffer
	err := runValidate(path, &buf)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "VALID: 2 sink(s), listening on 127.0.0.1:20778")
	assert.Contains(t, buf.String(), "name: stats")
}

func TestRunValidate_BadConfig(t *testing.T) {
	path := writeConfig(t, `
pitwall:
  pipeline:
    drop_policy: newest
`)

	err := runValidate(path, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "drop_policy")
}

func TestRootCommandWiring(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"listen", "replay", "validate", "version"} {
		assert.True(t, names[want], "expected %s subcommand", want)
	}

	flag := rootCmd.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "c", flag.Shorthand)
}
