package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoad_Defaults(t *testing.T) {
	t.Setenv("TRADEJOURNAL_ENVIRONMENT", "development")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.HTTPPort)
	assert.Equal(t, "trades", cfg.CollectionBase)
	assert.Equal(t, "journal-db", cfg.FirebaseDatabaseID)
	assert.Equal(t, "demo_token_", cfg.DemoTokenPrefix)
	assert.Equal(t, 100, cfg.DefaultLimit)
	assert.Equal(t, 1000, cfg.MaxLimit)
	assert.Equal(t, DriverMemory, cfg.DBDriver)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000", "http://localhost:8080"}, cfg.AllowedOrigins)
	assert.Equal(t, ":8000", cfg.GetHTTPAddr())
	assert.Equal(t, 5*time.Second, cfg.BootstrapTimeout())
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	t.Setenv("TRADEJOURNAL_HTTP_PORT", "9000")
	t.Setenv("TRADEJOURNAL_MAX_LIMIT", "50")
	t.Setenv("TRADEJOURNAL_DEFAULT_LIMIT", "10")
	t.Setenv("TRADEJOURNAL_ALLOWED_ORIGINS", "https://journal.example")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, 50, cfg.MaxLimit)
	assert.Equal(t, 10, cfg.DefaultLimit)
	assert.Equal(t, []string{"https://journal.example"}, cfg.AllowedOrigins)
}

func TestResolveDefaults(t *testing.T) {
	cases := []struct {
		name    string
		env     Environment
		driver  string
		dsn     string
		want    string
		wantErr bool
	}{
		{name: "development uses memory", env: EnvDevelopment, driver: "auto", want: DriverMemory},
		{name: "testing uses memory", env: EnvTesting, driver: "", want: DriverMemory},
		{name: "production uses firestore", env: EnvProduction, driver: "auto", want: DriverFirestore},
		{name: "explicit sqlite kept", env: EnvProduction, driver: DriverSQLite, want: DriverSQLite},
		{name: "postgres needs dsn", env: EnvDevelopment, driver: DriverPostgres, wantErr: true},
		{name: "postgres with dsn", env: EnvDevelopment, driver: DriverPostgres, dsn: "postgres://x", want: DriverPostgres},
		{name: "unknown driver", env: EnvDevelopment, driver: "mongo", wantErr: true},
		{name: "unknown environment", env: "staging", driver: "auto", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewForTesting()
			cfg.Environment = tc.env
			cfg.DBDriver = tc.driver
			cfg.PostgresDSN = tc.dsn
			err := cfg.ResolveDefaults()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.DBDriver)
		})
	}
}

func TestResolveDefaults_RejectsInvertedLimits(t *testing.T) {
	cfg := NewForTesting()
	cfg.DefaultLimit = 500
	cfg.MaxLimit = 100
	assert.Error(t, cfg.ResolveDefaults())
}

func TestNewForTesting(t *testing.T) {
	cfg := NewForTesting()
	assert.True(t, cfg.IsTesting())
	assert.False(t, cfg.IsProduction())
	require.NoError(t, cfg.ResolveDefaults())
}
