package factory

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradejournal/tradejournal-server/internal/config"
)

func TestNewStore_Memory(t *testing.T) {
	cfg := config.NewForTesting()
	s, closeFn, err := NewStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = closeFn() }()

	n, err := s.Emotions().Count(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestNewStore_SQLite(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.DBDriver = config.DriverSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "journal.db")

	s, closeFn, err := NewStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = closeFn() }()

	n, err := s.Trades().Count(context.Background(), "")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNewStore_UnknownDriver(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.DBDriver = "mongo"
	_, _, err := NewStore(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestNewStore_PostgresNeedsDSN(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.DBDriver = config.DriverPostgres
	_, _, err := NewStore(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

type flakyPinger struct {
	failures int
	calls    int
}

func (f *flakyPinger) HealthPing(context.Context) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("unavailable")
	}
	return nil
}

func TestBootstrapPing_RetriesUntilReady(t *testing.T) {
	cfg := config.NewForTesting()
	p := &flakyPinger{failures: 2}
	require.NoError(t, bootstrapPing(context.Background(), cfg, zerolog.Nop(), p))
	assert.Equal(t, 3, p.calls)
}

func TestBootstrapPing_GivesUpAtTimeout(t *testing.T) {
	cfg := config.NewForTesting()
	cfg.BootstrapTimeoutSeconds = 1
	p := &flakyPinger{failures: 1 << 30}

	start := time.Now()
	assert.Error(t, bootstrapPing(context.Background(), cfg, zerolog.Nop(), p))
	assert.Less(t, time.Since(start), 3*time.Second)
	assert.Greater(t, p.calls, 1)
}
