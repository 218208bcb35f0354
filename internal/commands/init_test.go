package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/config"
)

func TestRunInit(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, runInit(dir, ":9090"))

	cfg, err := config.Load(filepath.Join(dir, "ledgerline.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"log"}, cfg.Report.Channels)
}

func TestRunInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledgerline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: :1\n"), 0o644))

	err := runInit(dir, ":9090")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	root := NewRootCommand()

	names := make(map[string]bool)
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}
	assert.True(t, names["init"])
	assert.True(t, names["serve"])
}
