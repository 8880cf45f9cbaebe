package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("DEFAULT_LANGUAGE", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_PASSWORD", "pw")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageBolt, cfg.Storage.Driver)
	assert.False(t, cfg.Storage.Remote())
	assert.Equal(t, "ko", cfg.DefaultLanguage)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 256, cfg.Notifier.History)
	assert.False(t, cfg.S3.Enabled())
	assert.Equal(t, "postgres://planner_user:pw@localhost:5432/planner_db?sslmode=disable", cfg.Database.URL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Redis")
	t.Setenv("DEFAULT_LANGUAGE", "EN")
	t.Setenv("SYNC_INTERVAL_SECONDS", "45")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("S3_BUCKET", "planner")
	t.Setenv("SEED_DEMO_DATA", "false")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_HOST", "127.0.0.1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageRedis, cfg.Storage.Driver)
	assert.True(t, cfg.Storage.Remote())
	assert.Equal(t, "en", cfg.DefaultLanguage)
	assert.Equal(t, 45*time.Second, cfg.Buffer.SyncInterval)
	assert.Equal(t, 90*time.Minute, cfg.JWT.TTL)
	assert.True(t, cfg.S3.Enabled())
	assert.False(t, cfg.SeedDemoData)
	assert.Equal(t, "127.0.0.1:9090", cfg.Address())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
	}{
		{name: "driver", key: "STORAGE_DRIVER", val: "sqlite"},
		{name: "language", key: "DEFAULT_LANGUAGE", val: "fr"},
		{name: "ttl", key: "JWT_TTL", val: "-1s"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
