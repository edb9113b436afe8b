package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileValuesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database:
  driver: sqlite
  sqlite_path: /tmp/repairhub-test.db
telegram:
  enabled: true
  bot_token: "123:abc"
  contractor_channel_id: -1001
`)

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/repairhub-test.db", cfg.Database.GetDSN())
	assert.Equal(t, int64(-1001), cfg.Telegram.ContractorChannelID)
	assert.Equal(t, 256, cfg.Notification.BufferSize)
	assert.Equal(t, 4*time.Hour, cfg.Workflow.StaleRequestAfter())
	assert.Same(t, cfg, Get())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("REPAIRHUB_SERVER_PORT", "7070")

	cfg, err := Load(path, "release")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
}

func TestLoad_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown driver", "database:\n  driver: oracle\n"},
		{"telegram without token", "telegram:\n  enabled: true\n"},
		{"ratelimit without redis", "ratelimit:\n  enabled: true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), "")
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	mysql := DatabaseConfig{Driver: DriverMySQL, Host: "db", Port: 3306, Username: "u", Password: "p", Database: "repairhub"}
	assert.Equal(t, "u:p@tcp(db:3306)/repairhub?charset=utf8mb4&parseTime=True&loc=UTC", mysql.GetDSN())

	pg := DatabaseConfig{Driver: DriverPostgres, Host: "db", Port: 5432, Username: "u", Password: "p", Database: "repairhub"}
	assert.Contains(t, pg.GetDSN(), "dbname=repairhub")
}
