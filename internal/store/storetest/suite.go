// Package storetest holds the conformance suite every store backend must pass.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradejournal/tradejournal-server/internal/model"
	"github.com/tradejournal/tradejournal-server/internal/store"
)

// Run exercises the store contract against an implementation. Backends that
// share state across runs are fine: every case works under a fresh owner id
// and only asserts on records it created.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	t.Run("CreateAssignsIdentity", func(t *testing.T) {
		owner := newOwner()
		created, err := s.Trades().Create(ctx, trade(owner, "2025-10-28", "NQ"))
		require.NoError(t, err)
		id, _ := created[store.FieldID].(string)
		require.NotEmpty(t, id)
		assert.NotEmpty(t, created[store.FieldCreatedAt])
		assert.Equal(t, owner, created[store.FieldUserID])

		got, err := s.Trades().Get(ctx, id, owner)
		require.NoError(t, err)
		assert.Equal(t, "NQ", got["symbol"])
		assert.Equal(t, "2025-10-28", got["date"])
		assert.Equal(t, "buy", got["side"])
		assert.ElementsMatch(t, []any{"Calma"}, toAny(got["emotions"]))
	})

	t.Run("OwnerIsolation", func(t *testing.T) {
		a, b := newOwner(), newOwner()
		created, err := s.Trades().Create(ctx, trade(a, "2025-10-01", "ES"))
		require.NoError(t, err)
		id := created[store.FieldID].(string)

		_, err = s.Trades().Get(ctx, id, b)
		assert.ErrorIs(t, err, model.ErrNotFound)
		_, err = s.Trades().Get(ctx, id, "")
		assert.ErrorIs(t, err, model.ErrNotFound)
		_, err = s.Trades().Update(ctx, id, store.Document{"symbol": "YM"}, b)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.ErrorIs(t, s.Trades().Delete(ctx, id, b), model.ErrNotFound)

		lst, err := s.Trades().List(ctx, store.ListOptions{Limit: 100, OwnerID: b})
		require.NoError(t, err)
		assert.Empty(t, lst)

		got, err := s.Trades().Get(ctx, id, a)
		require.NoError(t, err)
		assert.Equal(t, "ES", got["symbol"])
	})

	t.Run("DemoPartition", func(t *testing.T) {
		owner := newOwner()
		marker := "demo-" + uuid.NewString()
		created, err := s.Emotions().Create(ctx, store.Document{store.FieldName: marker})
		require.NoError(t, err)
		id := created[store.FieldID].(string)
		_, hasOwner := created[store.FieldUserID]
		assert.False(t, hasOwner)

		_, err = s.Emotions().Get(ctx, id, owner)
		assert.ErrorIs(t, err, model.ErrNotFound)

		got, err := s.Emotions().Get(ctx, id, "")
		require.NoError(t, err)
		assert.Equal(t, marker, got[store.FieldName])

		require.NoError(t, s.Emotions().Delete(ctx, id, ""))
		_, err = s.Emotions().Get(ctx, id, "")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("UpdateMergesAndKeepsOwner", func(t *testing.T) {
		owner := newOwner()
		created, err := s.Trades().Create(ctx, trade(owner, "2025-10-02", "NQ"))
		require.NoError(t, err)
		id := created[store.FieldID].(string)

		updated, err := s.Trades().Update(ctx, id, store.Document{
			"notes":              "trailed stop",
			store.FieldUserID:    "someone-else",
			store.FieldID:        "other-id",
			store.FieldCreatedAt: "1999-01-01T00:00:00Z",
		}, owner)
		require.NoError(t, err)
		assert.Equal(t, "trailed stop", updated["notes"])
		assert.Equal(t, "NQ", updated["symbol"])
		assert.Equal(t, owner, updated[store.FieldUserID])
		assert.Equal(t, id, updated[store.FieldID])
		assert.Equal(t, created[store.FieldCreatedAt], updated[store.FieldCreatedAt])

		got, err := s.Trades().Get(ctx, id, owner)
		require.NoError(t, err)
		assert.Equal(t, "trailed stop", got["notes"])
		assert.Equal(t, owner, got[store.FieldUserID])
	})

	t.Run("DeleteRemoves", func(t *testing.T) {
		owner := newOwner()
		created, err := s.Confirmations().Create(ctx, store.Document{store.FieldName: "FVG", store.FieldUserID: owner})
		require.NoError(t, err)
		id := created[store.FieldID].(string)

		require.NoError(t, s.Confirmations().Delete(ctx, id, owner))
		_, err = s.Confirmations().Get(ctx, id, owner)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.ErrorIs(t, s.Confirmations().Delete(ctx, id, owner), model.ErrNotFound)
		_, err = s.Confirmations().Update(ctx, id, store.Document{"description": "x"}, owner)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("CountAndPaging", func(t *testing.T) {
		owner := newOwner()
		for _, d := range []string{"2025-10-01", "2025-10-02", "2025-10-03"} {
			_, err := s.Trades().Create(ctx, trade(owner, d, "NQ"))
			require.NoError(t, err)
		}
		n, err := s.Trades().Count(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		page, err := s.Trades().List(ctx, store.ListOptions{Limit: 2, OwnerID: owner})
		require.NoError(t, err)
		assert.Len(t, page, 2)
		rest, err := s.Trades().List(ctx, store.ListOptions{Skip: 2, Limit: 2, OwnerID: owner})
		require.NoError(t, err)
		assert.Len(t, rest, 1)
		none, err := s.Trades().List(ctx, store.ListOptions{Skip: 5, Limit: 2, OwnerID: owner})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("TradesOrderedByDateDesc", func(t *testing.T) {
		owner := newOwner()
		for _, d := range []string{"2025-10-02", "2025-10-05", "2025-10-01"} {
			_, err := s.Trades().Create(ctx, trade(owner, d, "NQ"))
			require.NoError(t, err)
		}
		lst, err := s.Trades().List(ctx, store.ListOptions{Limit: 10, OwnerID: owner})
		require.NoError(t, err)
		require.Len(t, lst, 3)
		assert.Equal(t, []any{"2025-10-05", "2025-10-02", "2025-10-01"}, pluck(lst, store.FieldDate))
	})

	t.Run("TagsOrderedByName", func(t *testing.T) {
		owner := newOwner()
		for _, n := range []string{"Calma", "Ansiedad", "Euforia"} {
			_, err := s.Emotions().Create(ctx, store.Document{store.FieldName: n, store.FieldUserID: owner})
			require.NoError(t, err)
		}
		lst, err := s.Emotions().List(ctx, store.ListOptions{Limit: 10, OwnerID: owner})
		require.NoError(t, err)
		assert.Equal(t, []any{"Ansiedad", "Calma", "Euforia"}, pluck(lst, store.FieldName))
	})

	t.Run("DateRangeInclusive", func(t *testing.T) {
		owner := newOwner()
		start := model.NewDate(2024, time.October, 1)
		for i := 0; i < 5; i++ {
			_, err := s.DayJournals().Create(ctx, store.Document{
				store.FieldUserID:    owner,
				store.FieldDate:      start.AddDays(i),
				"break_trading_plan": i%2 == 0,
			})
			require.NoError(t, err)
		}
		lst, err := s.DayJournals().ListByDateRange(ctx, store.DateRange{
			Field: store.FieldDate,
			Start: start.AddDays(1),
			End:   start.AddDays(3),
		}, owner)
		require.NoError(t, err)
		assert.ElementsMatch(t, []any{"2024-10-02", "2024-10-03", "2024-10-04"}, pluck(lst, store.FieldDate))

		other, err := s.DayJournals().ListByDateRange(ctx, store.DateRange{
			Field: store.FieldDate, Start: start, End: start.AddDays(4),
		}, newOwner())
		require.NoError(t, err)
		assert.Empty(t, other)
	})

	t.Run("CollectionsAreDistinct", func(t *testing.T) {
		owner := newOwner()
		_, err := s.Emotions().Create(ctx, store.Document{store.FieldName: "Miedo", store.FieldUserID: owner})
		require.NoError(t, err)
		for _, c := range []store.Collection{s.Trades(), s.Confirmations(), s.DayJournals()} {
			n, err := c.Count(ctx, owner)
			require.NoError(t, err)
			assert.Zero(t, n)
		}
	})
}

func newOwner() string { return "u-" + uuid.NewString() }

func trade(owner, date, symbol string) store.Document {
	return store.Document{
		store.FieldUserID: owner,
		"symbol":          symbol,
		"side":            "buy",
		store.FieldDate:   date,
		"rate":            2.0,
		"result":          10.5,
		"status":          "TP",
		"emotions":        []string{"Calma"},
		"confirmations":   []string{},
	}
}

func pluck(docs []store.Document, key string) []any {
	out := make([]any, 0, len(docs))
	for _, d := range docs {
		out = append(out, d[key])
	}
	return out
}

// toAny flattens list values, which backends may return as []string or []any.
func toAny(v any) []any {
	switch t := v.(type) {
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	case []any:
		return t
	}
	return nil
}
