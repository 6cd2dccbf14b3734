package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/cyclejournal/internal/security"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommandRunsUserSubcommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "root.db"))
	configPath := filepath.Join(dir, "missing.yaml")

	out, err := executeRoot(t, "--config", configPath, "user", "add", "sam")
	require.NoError(t, err)
	assert.Contains(t, out, "Created user sam")

	out, err = executeRoot(t, "--config", configPath, "user", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "sam")
}

func TestRootCommandRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "root.db"))
	t.Setenv("CYCLE_LENGTH", "99")

	_, err := executeRoot(t, "--config", filepath.Join(dir, "missing.yaml"), "user", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CYCLE_LENGTH")
}

func TestSecretCommandSkipsConfig(t *testing.T) {
	t.Setenv("CYCLE_LENGTH", "99")

	out, err := executeRoot(t, "secret", "--length", "40")
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(out), 40)

	out, err = executeRoot(t, "secret", "--length", "4")
	require.NoError(t, err)
	assert.Len(t, strings.TrimSpace(out), security.MinSecretKeyLength)
}
