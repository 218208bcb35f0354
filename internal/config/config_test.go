package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"log"}, cfg.Report.Channels)
	assert.NotEmpty(t, cfg.Report.Subject)
	assert.Greater(t, cfg.Report.QueueSize, 0)
	assert.Greater(t, cfg.Report.Workers, 0)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledgerline.yaml")

	cfg := Default()
	cfg.Server.Addr = ":9090"
	cfg.Report.Channels = []string{"log", "webhook"}
	cfg.Webhook.URL = "https://example.com/hooks/migrations"
	cfg.Email.To = []string{"ops@example.com"}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
