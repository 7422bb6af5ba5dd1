package postgres

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
host: db.example.org
port: 6432
user: analytics
password: secret
database: scores
sslmode: require
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Host:     "db.example.org",
		Port:     6432,
		User:     "analytics",
		Password: "secret",
		Database: "scores",
		SSLMode:  "require",
	}, cfg)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
host: localhost
user: analytics
database: scores
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "disable", cfg.SSLMode)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := Config{
		Host:     "localhost",
		Port:     5432,
		User:     "analytics",
		Password: "secret",
		Database: "scores",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=analytics password=secret dbname=scores sslmode=disable",
		cfg.DSN())
}
