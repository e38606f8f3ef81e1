package client

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

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

type singleUser struct{}

func (singleUser) Verify(_ context.Context, token string) (auth.Identity, error) {
	if token == "trader-token" {
		return auth.Identity{UID: "trader"}, nil
	}
	return auth.Identity{}, auth.ErrInvalidToken
}

func newServer(t *testing.T) string {
	t.Helper()
	cfg := config.NewForTesting()
	svcs := services.New(memory.NewSeeded(), cfg.ExportBatchSize, zerolog.Nop())
	v := auth.NewDemoVerifier(cfg.DemoTokenPrefix, singleUser{})
	srv := httptest.NewServer(api.NewRouter(svcs, v, cfg, nil, zerolog.Nop()))
	t.Cleanup(srv.Close)
	return srv.URL
}

func newClient(t *testing.T, url, token string) *Client {
	t.Helper()
	c, err := New(url, token, WithHTTPTimeout(5*time.Second))
	require.NoError(t, err)
	return c
}

func ptr[T any](v T) *T { return &v }

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New("", "x")
	assert.Error(t, err)
	_, err = New("http://localhost", "x", WithHTTPTimeout(0))
	assert.Error(t, err)
}

func TestTradesRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newClient(t, newServer(t), "trader-token")

	created, err := c.CreateTrade(ctx, TradeInput{
		Symbol: "NQ",
		Side:   model.SideSell,
		Date:   model.NewDate(2025, time.October, 6),
		Rate:   ptr(2.0),
		Result: ptr(120.0),
		Status: ptr(model.StatusTP),
	})
	require.NoError(t, err)
	assert.Equal(t, "trader", created.UserID)

	got, err := c.GetTrade(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-06", got.Date.String())

	updated, err := c.UpdateTrade(ctx, created.ID, TradeUpdate{Notes: ptr("trailing stop")})
	require.NoError(t, err)
	assert.Equal(t, "trailing stop", *updated.Notes)

	list, err := c.ListTrades(ctx, Page{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	sum, err := c.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.TotalTrades)
	assert.Equal(t, 100.0, sum.WinRate)

	deleted, err := c.DeleteTrade(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = c.GetTrade(ctx, created.ID)
	assert.True(t, IsNotFound(err), "got %v", err)
}

func TestValidationError(t *testing.T) {
	c := newClient(t, newServer(t), "trader-token")

	_, err := c.CreateTrade(context.Background(), TradeInput{Side: model.SideBuy, Date: model.NewDate(2025, 1, 2), Rate: ptr(1.0)})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	var ae *APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "symbol", ae.Field)
}

func TestUnauthorized(t *testing.T) {
	c := newClient(t, newServer(t), "wrong")
	_, err := c.ListTrades(context.Background(), Page{})
	assert.True(t, IsUnauthorized(err), "got %v", err)
}

func TestTagsAndJournal(t *testing.T) {
	ctx := context.Background()
	c := newClient(t, newServer(t), "demo_token_cli")

	emotions, err := c.ListTags(ctx, Emotions, Page{})
	require.NoError(t, err)
	assert.Len(t, emotions, 5)

	tag, err := c.CreateTag(ctx, Confirmations, TagInput{Name: "Barrida de liquidez"})
	require.NoError(t, err)
	tag, err = c.UpdateTag(ctx, Confirmations, tag.ID, TagUpdate{Description: ptr("sweep")})
	require.NoError(t, err)
	assert.Equal(t, "sweep", *tag.Description)
	removed, err := c.DeleteTag(ctx, Confirmations, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "Barrida de liquidez", removed.Name)

	days, err := c.DayJournalRange(ctx, model.NewDate(2024, time.October, 1), model.NewDate(2024, time.October, 31))
	require.NoError(t, err)
	assert.Len(t, days, 23)

	dj, err := c.CreateDayJournal(ctx, DayJournalInput{Date: model.NewDate(2025, time.November, 3), BreakTradingPlan: true})
	require.NoError(t, err)
	dj, err = c.UpdateDayJournal(ctx, dj.ID, DayJournalUpdate{BreakTradingPlan: ptr(false)})
	require.NoError(t, err)
	assert.False(t, dj.BreakTradingPlan)
	_, err = c.DeleteDayJournal(ctx, dj.ID)
	require.NoError(t, err)

	export, err := c.ExportAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, export.Metadata.TotalTrades)
	assert.Equal(t, 46, export.Metadata.TotalDayJournals)
}

func TestExchangeToken(t *testing.T) {
	c := newClient(t, newServer(t), "")
	out, err := c.ExchangeToken(context.Background(), "trader-token")
	require.NoError(t, err)
	assert.Equal(t, "bearer", out.TokenType)
	assert.Equal(t, "trader", out.User.UID)

	status, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", status)
}
