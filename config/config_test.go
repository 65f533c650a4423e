package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"STORE_DRIVER", "PASSWORD_HASH_ALGORITHM", "PASSWORD_SALT_BYTES", "LOCKOUT_ENABLED", "LOCKOUT_WINDOW", "MAIL_SEND_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "sha256", cfg.PasswordHashAlgorithm)
	assert.Equal(t, 16, cfg.PasswordSaltBytes)
	assert.False(t, cfg.LockoutEnabled)
	assert.Equal(t, 15*time.Minute, cfg.LockoutWindow)
	assert.False(t, cfg.MailSendEnabled)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("PASSWORD_HASH_ALGORITHM", "SHA3-256")
	t.Setenv("PASSWORD_SALT_BYTES", "32")
	t.Setenv("LOCKOUT_ENABLED", "true")
	t.Setenv("LOCKOUT_WINDOW", "1m")
	t.Setenv("DB_MAX_CONNS", "not-a-number")

	cfg := Load()
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, "sha3-256", cfg.PasswordHashAlgorithm)
	assert.Equal(t, 32, cfg.PasswordSaltBytes)
	assert.True(t, cfg.LockoutEnabled)
	assert.Equal(t, time.Minute, cfg.LockoutWindow)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := &Config{StoreDriver: "mysql"}
	assert.ErrorContains(t, cfg.Validate(), "STORE_DRIVER")

	cfg = &Config{StoreDriver: StoreDriverMemory, LockoutEnabled: true}
	assert.ErrorContains(t, cfg.Validate(), "LOCKOUT_WINDOW")
}

func TestPostgresDSNAndCORSOrigins(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5432", DBName: "creds", DBSSLMode: "disable",
		CORSAllowedOrigins: " http://a.test , ,http://b.test"}

	assert.Equal(t, "postgres://u:p@db:5432/creds?sslmode=disable", cfg.PostgresDSN())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
}
