package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradejournal/tradejournal-server/internal/model"
	"github.com/tradejournal/tradejournal-server/internal/store"
	"github.com/tradejournal/tradejournal-server/internal/store/memory"
)

// --- Fakes ---

var errBackend = errors.New("backend unavailable")

type brokenCollection struct{}

func (brokenCollection) List(context.Context, store.ListOptions) ([]store.Document, error) {
	return nil, errBackend
}
func (brokenCollection) Get(context.Context, string, string) (store.Document, error) {
	return nil, errBackend
}
func (brokenCollection) Create(context.Context, store.Document) (store.Document, error) {
	return nil, errBackend
}
func (brokenCollection) Update(context.Context, string, store.Document, string) (store.Document, error) {
	return nil, errBackend
}
func (brokenCollection) Delete(context.Context, string, string) error { return errBackend }
func (brokenCollection) Count(context.Context, string) (int, error)   { return 0, errBackend }
func (brokenCollection) ListByDateRange(context.Context, store.DateRange, string) ([]store.Document, error) {
	return nil, errBackend
}

type brokenStore struct{}

func (brokenStore) Trades() store.Collection        { return brokenCollection{} }
func (brokenStore) Emotions() store.Collection      { return brokenCollection{} }
func (brokenStore) Confirmations() store.Collection { return brokenCollection{} }
func (brokenStore) DayJournals() store.Collection   { return brokenCollection{} }

// --- Helpers ---

func ptr[T any](v T) *T { return &v }

func newTradeInput(date model.Date, result float64, status model.Status) model.TradeInput {
	return model.TradeInput{
		Symbol: "NQ",
		Side:   model.SideBuy,
		Date:   date,
		Rate:   ptr(2.0),
		Result: ptr(result),
		Status: ptr(status),
	}
}

func day(d int) model.Date { return model.NewDate(2025, time.October, d) }

// --- Tests ---

func TestTradeCreateStampsOwner(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.New(), 10, zerolog.Nop())

	owned, err := svc.Trades.Create(ctx, newTradeInput(day(1), 10, model.StatusTP), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", owned.UserID)
	assert.NotEmpty(t, owned.ID)
	assert.Equal(t, []string{}, owned.Emotions)

	demo, err := svc.Trades.Create(ctx, newTradeInput(day(2), 10, model.StatusTP), "")
	require.NoError(t, err)
	assert.Empty(t, demo.UserID)

	_, err = svc.Trades.GetByID(ctx, demo.ID, "u-1")
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = svc.Trades.GetByID(ctx, owned.ID, "")
	assert.ErrorIs(t, err, model.ErrNotFound)

	assert.Equal(t, 1, svc.Trades.Count(ctx, "u-1"))
	assert.Equal(t, 1, svc.Trades.Count(ctx, ""))
}

func TestTradeListAllSortsByDateDesc(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.New(), 10, zerolog.Nop())
	for _, d := range []int{3, 9, 1} {
		_, err := svc.Trades.Create(ctx, newTradeInput(day(d), 1, model.StatusBE), "u-1")
		require.NoError(t, err)
	}
	got := svc.Trades.ListAll(ctx, 0, 10, "u-1")
	require.Len(t, got, 3)
	assert.Equal(t, "2025-10-09", got[0].Date.String())
	assert.Equal(t, "2025-10-01", got[2].Date.String())
}

func TestTradeListAllKeepsUnsortableRecords(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	svc := New(st, 10, zerolog.Nop())
	_, err := svc.Trades.Create(ctx, newTradeInput(day(3), 1, model.StatusBE), "u-1")
	require.NoError(t, err)
	_, err = st.Trades().Create(ctx, store.Document{"symbol": "ES", "side": "sell", "date": "someday", "rate": 1.0, "user_id": "u-1"})
	require.NoError(t, err)

	got := svc.Trades.ListAll(ctx, 0, 10, "u-1")
	require.Len(t, got, 2)
	var raw []string
	for _, tr := range got {
		raw = append(raw, tr.Date.String())
	}
	assert.ElementsMatch(t, []string{"2025-10-03", "someday"}, raw)
}

func TestTradeUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.New(), 10, zerolog.Nop())
	created, err := svc.Trades.Create(ctx, newTradeInput(day(1), 10, model.StatusTP), "u-1")
	require.NoError(t, err)

	updated, err := svc.Trades.Update(ctx, created.ID, model.TradeUpdate{Notes: ptr("held too long")}, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "held too long", *updated.Notes)
	assert.Equal(t, "NQ", updated.Symbol)
	assert.Equal(t, "u-1", updated.UserID)

	_, err = svc.Trades.Update(ctx, created.ID, model.TradeUpdate{Notes: ptr("x")}, "u-2")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = svc.Trades.Delete(ctx, created.ID, "u-2")
	assert.ErrorIs(t, err, model.ErrNotFound)

	deleted, err := svc.Trades.Delete(ctx, created.ID, "u-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, "held too long", *deleted.Notes)

	_, err = svc.Trades.Delete(ctx, created.ID, "u-1")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestTradeSummaryUsesFullScopedSet(t *testing.T) {
	ctx := context.Background()
	// Batch of 2 forces the scan to page.
	svc := New(memory.New(), 2, zerolog.Nop())
	in := []model.TradeInput{
		newTradeInput(day(1), 100, model.StatusTP),
		newTradeInput(day(2), -40, model.StatusSL),
		newTradeInput(day(3), 0, model.StatusBE),
	}
	in[0].Risk = ptr(5.0)
	in[1].Risk = ptr(3.0)
	for _, i := range in {
		_, err := svc.Trades.Create(ctx, i, "u-1")
		require.NoError(t, err)
	}
	_, err := svc.Trades.Create(ctx, newTradeInput(day(4), 999, model.StatusTP), "u-2")
	require.NoError(t, err)

	assert.Equal(t, model.Summary{
		TotalTrades: 3, TotalPnL: 60, AvgPnL: 20,
		WinningTrades: 1, LosingTrades: 1, WinRate: 33.33, AvgRisk: 5,
	}, svc.Trades.Summary(ctx, "u-1"))

	assert.Equal(t, model.Summary{}, svc.Trades.Summary(ctx, "u-nobody"))
}

func TestDemoSummaryOverSeed(t *testing.T) {
	svc := New(memory.NewSeeded(), DefaultBatchSize, zerolog.Nop())
	s := svc.Trades.Summary(context.Background(), "")
	assert.Equal(t, 2, s.TotalTrades)
	assert.Equal(t, 46.25, s.TotalPnL)
	assert.Equal(t, 1, s.WinningTrades)
	assert.Equal(t, 1, s.LosingTrades)
	assert.Equal(t, 50.0, s.WinRate)
}

func TestCodecTreatsNonNumericAsAbsent(t *testing.T) {
	tr, err := decode[model.Trade](store.Document{
		"id": "t1", "symbol": "NQ", "side": "buy", "date": "2025-10-28",
		"rate": "2.5", "result": "n/a", "risk": true, "emotions": []any{"Calma"},
		"created_at": time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, 2.5, tr.Rate)
	assert.Nil(t, tr.Result)
	assert.Nil(t, tr.Risk)
	assert.Equal(t, []string{"Calma"}, tr.Emotions)
	assert.Equal(t, "2025-01-02T03:04:05Z", tr.CreatedAt)
	assert.True(t, tr.Date.Valid())
}

func TestTradeSummaryIgnoresNonFiniteStoredResults(t *testing.T) {
	for name, v := range map[string]any{
		"nan string": "NaN",
		"inf string": "Inf",
		"native nan": math.NaN(),
	} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st := memory.New()
			svc := New(st, 10, zerolog.Nop())
			_, err := st.Trades().Create(ctx, store.Document{"symbol": "NQ", "side": "buy", "date": "2025-10-01", "rate": 1.0, "status": "TP", "result": 10.0, "user_id": "u1"})
			require.NoError(t, err)
			_, err = st.Trades().Create(ctx, store.Document{"symbol": "NQ", "side": "sell", "date": "2025-10-02", "rate": 1.0, "status": "SL", "result": v, "risk": v, "user_id": "u1"})
			require.NoError(t, err)

			var got model.Summary
			require.NotPanics(t, func() { got = svc.Trades.Summary(ctx, "u1") })
			assert.Equal(t, 2, got.TotalTrades)
			assert.Equal(t, 10.0, got.TotalPnL)
			assert.Equal(t, 1, got.LosingTrades)

			trades := svc.Trades.ListAll(ctx, 0, 10, "u1")
			require.Len(t, trades, 2)
			assert.Equal(t, "2025-10-02", trades[0].Date.String())
			assert.Nil(t, trades[0].Result)
			assert.Nil(t, trades[0].Risk)
		})
	}
}

func TestTagServices(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.NewSeeded(), 10, zerolog.Nop())

	demo := svc.Emotions.ListAll(ctx, 0, 100, "")
	require.Len(t, demo, 5)
	assert.Equal(t, "Ansiedad", demo[0].Name)
	assert.Empty(t, svc.Emotions.ListAll(ctx, 0, 100, "u-1"))

	created, err := svc.Confirmations.Create(ctx, model.TagInput{Name: "SMT", Description: ptr("divergence")}, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 1, svc.Confirmations.Count(ctx, "u-1"))
	assert.Zero(t, svc.Emotions.Count(ctx, "u-1"))

	updated, err := svc.Confirmations.Update(ctx, created.ID, model.TagUpdate{Name: ptr("SMT div")}, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "SMT div", updated.Name)
	assert.Equal(t, "divergence", *updated.Description)

	deleted, err := svc.Confirmations.Delete(ctx, created.ID, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "SMT div", deleted.Name)
}

func TestDayJournalRange(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	svc := New(st, 10, zerolog.Nop())
	for _, d := range []int{1, 2, 3, 6} {
		_, err := svc.DayJournals.Create(ctx, model.DayJournalInput{Date: model.NewDate(2024, time.October, d)}, "u-1")
		require.NoError(t, err)
	}
	_, err := st.DayJournals().Create(ctx, store.Document{"date": "2024-10-02T", "user_id": "u-1"})
	require.NoError(t, err)

	got, err := svc.DayJournals.ListByDateRange(ctx, model.NewDate(2024, time.October, 2), model.NewDate(2024, time.October, 6), "u-1")
	require.NoError(t, err)
	var dates []string
	for _, j := range got {
		dates = append(dates, j.Date.String())
	}
	assert.ElementsMatch(t, []string{"2024-10-02", "2024-10-03", "2024-10-06"}, dates)

	_, err = svc.DayJournals.ListByDateRange(ctx, model.NewDate(2024, time.October, 6), model.NewDate(2024, time.October, 2), "u-1")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))

	// Listing keeps the unparseable record.
	assert.Len(t, svc.DayJournals.ListAll(ctx, 0, 10, "u-1"), 5)
}

func TestDayJournalUpdateCannotMoveDate(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.New(), 10, zerolog.Nop())
	created, err := svc.DayJournals.Create(ctx, model.DayJournalInput{Date: day(1)}, "u-1")
	require.NoError(t, err)
	assert.False(t, created.BreakTradingPlan)

	updated, err := svc.DayJournals.Update(ctx, created.ID, model.DayJournalUpdate{BreakTradingPlan: ptr(true)}, "u-1")
	require.NoError(t, err)
	assert.True(t, updated.BreakTradingPlan)
	assert.Equal(t, "2025-10-01", updated.Date.String())
}

func TestReadsFailOpenWritesPropagate(t *testing.T) {
	ctx := context.Background()
	svc := New(brokenStore{}, 10, zerolog.Nop())

	assert.Empty(t, svc.Trades.ListAll(ctx, 0, 10, "u-1"))
	assert.Zero(t, svc.Trades.Count(ctx, "u-1"))
	_, err := svc.Trades.GetByID(ctx, "x", "u-1")
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, model.Summary{}, svc.Trades.Summary(ctx, "u-1"))

	got, err := svc.DayJournals.ListByDateRange(ctx, day(1), day(2), "u-1")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = svc.Trades.Create(ctx, newTradeInput(day(1), 1, model.StatusTP), "u-1")
	assert.ErrorIs(t, err, errBackend)
	_, err = svc.Emotions.Update(ctx, "x", model.TagUpdate{Name: ptr("y")}, "u-1")
	assert.ErrorIs(t, err, errBackend)
	_, err = svc.DayJournals.Delete(ctx, "x", "u-1")
	assert.ErrorIs(t, err, errBackend)

	_, err = svc.Export.Export(ctx, "u-1")
	assert.ErrorIs(t, err, errBackend)
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.NewSeeded(), 7, zerolog.Nop())
	svc.Export.now = func() time.Time { return time.Date(2025, 10, 30, 12, 0, 0, 0, time.UTC) }

	out, err := svc.Export.Export(ctx, "")
	require.NoError(t, err)
	assert.Len(t, out.Trades, 2)
	assert.Len(t, out.DayJournals, 46)
	assert.Equal(t, model.ExportMetadata{TotalTrades: 2, TotalDayJournals: 46, ExportDate: "2025-10-30T12:00:00Z"}, out.Metadata)

	mine, err := svc.Export.Export(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, mine.Trades)
	assert.Empty(t, mine.DayJournals)
}
