package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 45*time.Second, cfg.Round.DefaultDuration)
	assert.False(t, cfg.ReadOnly())
	assert.False(t, cfg.ArchiveEnabled())
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("HTTP_MODE", "RO")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", ":memory:")
	t.Setenv("ROUND_DEFAULT_DURATION", "90s")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.True(t, cfg.ReadOnly())
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, ":memory:", cfg.Store.SQLite.Path)
	assert.Equal(t, 90*time.Second, cfg.Round.DefaultDuration)
}

func TestParseRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Parse()
	assert.Error(t, err)
}

func TestParseArchive(t *testing.T) {
	t.Setenv("S3_CLIENT_TYPE", "mock")
	t.Setenv("MOCK_S3_ENDPOINT", "http://localhost:9090")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.True(t, cfg.ArchiveEnabled())
	assert.Equal(t, "http://localhost:9090", cfg.Archive.Endpoint)
	assert.Equal(t, "jukebox-results", cfg.Archive.Bucket)

	t.Setenv("S3_CLIENT_TYPE", "ftp")
	_, err = Parse()
	assert.Error(t, err)
}

func TestMaskedHidesSecrets(t *testing.T) {
	t.Setenv("AUTH_MODERATOR_CODE", "s3cret")

	cfg, err := Parse()
	require.NoError(t, err)

	m := cfg.masked()
	assert.Equal(t, "***", m.Auth.ModeratorCode)
	assert.Equal(t, "s3cret", cfg.Auth.ModeratorCode)
}
