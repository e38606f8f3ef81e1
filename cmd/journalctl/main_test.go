package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradejournal/tradejournal-server/internal/api"
	"github.com/tradejournal/tradejournal-server/internal/auth"
	"github.com/tradejournal/tradejournal-server/internal/config"
	"github.com/tradejournal/tradejournal-server/internal/model"
	"github.com/tradejournal/tradejournal-server/internal/services"
	"github.com/tradejournal/tradejournal-server/internal/store/memory"
)

func newServer(t *testing.T) string {
	t.Helper()
	cfg := config.NewForTesting()
	svcs := services.New(memory.NewSeeded(), cfg.ExportBatchSize, zerolog.Nop())
	srv := httptest.NewServer(api.NewRouter(svcs, auth.NewDemoVerifier(cfg.DemoTokenPrefix, nil), cfg, nil, zerolog.Nop()))
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, url string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api", url, "--token", "demo_token_cli"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestTradesList(t *testing.T) {
	url := newServer(t)

	out, err := run(t, url, "trades", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "SYMBOL")
	assert.Contains(t, out, "NQ")

	out, err = run(t, url, "trades", "list", "--json", "--limit", "1")
	require.NoError(t, err)
	var trades []model.Trade
	require.NoError(t, json.Unmarshal([]byte(out), &trades))
	assert.Len(t, trades, 1)
}

func TestTradesGetAndDelete(t *testing.T) {
	url := newServer(t)

	out, err := run(t, url, "trades", "get", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `"symbol": "NQ"`)

	_, err = run(t, url, "trades", "delete", "1")
	require.NoError(t, err)

	_, err = run(t, url, "trades", "get", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestStats(t *testing.T) {
	out, err := run(t, newServer(t), "stats")
	require.NoError(t, err)
	var s model.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, 2, s.TotalTrades)
	assert.Equal(t, 46.25, s.TotalPnL)
}

func TestJournalRange(t *testing.T) {
	url := newServer(t)

	out, err := run(t, url, "journal", "range", "--start", "2025-10-01", "--end", "2025-10-10")
	require.NoError(t, err)
	var days []model.DayJournal
	require.NoError(t, json.Unmarshal([]byte(out), &days))
	assert.Len(t, days, 8)

	_, err = run(t, url, "journal", "range", "--start", "10/01/2025", "--end", "2025-10-10")
	assert.Error(t, err)
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	out, err := run(t, newServer(t), "export", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "exported 2 trades and 46 day journals")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var exp model.Export
	require.NoError(t, json.Unmarshal(raw, &exp))
	assert.Len(t, exp.DayJournals, 46)
}

func TestMissingToken(t *testing.T) {
	t.Setenv("TRADEJOURNAL_TOKEN", "")
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--api", newServer(t), "stats"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
