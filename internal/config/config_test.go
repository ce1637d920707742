package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Nil(t, cfg)

	// No config file path at all falls back to defaults.
	t.Chdir(t.TempDir())
	cfg, err = Load("")
	require.NoError(t, err)

	assert.Equal(t, "0 3 * * *", cfg.Backup.Schedule)
	assert.True(t, cfg.Storage.Local.Enabled)
	assert.False(t, cfg.Storage.S3.Enabled)
	assert.Equal(t, "us-east-1", cfg.Storage.S3.Region)
	assert.Equal(t, "zettelkasten", cfg.Storage.S3.Prefix)
	assert.Equal(t, "whisper-cli", cfg.Transcribe.WhisperBin)
	assert.Positive(t, cfg.Transcribe.Threads)
	assert.False(t, cfg.Notifiers.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
vault:
  dir: /home/me/zettelkasten
backup:
  age_recipient: age1example
  schedule: "30 2 * * *"
storage:
  local:
    dir: /mnt/backups
  s3:
    enabled: true
    bucket: my-backups
    prefix: vault
notifiers:
  enabled: true
  discord:
    enabled: true
    webhook: https://discord.example/hook
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/home/me/zettelkasten", cfg.Vault.Dir)
	assert.Equal(t, "age1example", cfg.Backup.AgeRecipient)
	assert.Equal(t, "30 2 * * *", cfg.Backup.Schedule)
	assert.Equal(t, "/mnt/backups", cfg.Storage.Local.Dir)
	assert.True(t, cfg.Storage.S3.Enabled)
	assert.Equal(t, "my-backups", cfg.Storage.S3.Bucket)
	assert.Equal(t, "vault", cfg.Storage.S3.Prefix)
	assert.True(t, cfg.Notifiers.Enabled)
	assert.True(t, cfg.Notifiers.Discord.Enabled)
	assert.Equal(t, "https://discord.example/hook", cfg.Notifiers.Discord.Webhook)

	// File values merge over defaults.
	assert.Equal(t, "us-east-1", cfg.Storage.S3.Region)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("ZETTELKIT_VAULT_DIR", "/env/vault")
	t.Setenv("ZETTELKIT_STORAGE_S3_BUCKET", "env-bucket")

	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/env/vault", cfg.Vault.Dir)
	assert.Equal(t, "env-bucket", cfg.Storage.S3.Bucket)
}
