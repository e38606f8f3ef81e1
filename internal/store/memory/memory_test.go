package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradejournal/tradejournal-server/internal/store"
	"github.com/tradejournal/tradejournal-server/internal/store/storetest"
)

func TestMemoryStoreConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return New() })
}

func TestSeedIsUnownedAndDeterministic(t *testing.T) {
	ctx := context.Background()
	a, b := NewSeeded(), NewSeeded()

	n, err := a.Trades().Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = a.Emotions().Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = a.Confirmations().Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	// October 2024 and 2025 both have 23 weekdays.
	n, err = a.DayJournals().Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 46, n)

	n, err = a.Trades().Count(ctx, "u-1")
	require.NoError(t, err)
	assert.Zero(t, n)

	ja, err := a.DayJournals().List(ctx, store.ListOptions{OwnerID: ""})
	require.NoError(t, err)
	jb, err := b.DayJournals().List(ctx, store.ListOptions{OwnerID: ""})
	require.NoError(t, err)
	assert.Equal(t, ja, jb)
	assert.Equal(t, "2025-10-31", ja[0][store.FieldDate])

	broke := 0
	for _, d := range ja {
		if d["break_trading_plan"] == true {
			broke++
		}
	}
	assert.Greater(t, broke, 0)
	assert.Less(t, broke, len(ja))
}

func TestReturnedDocumentsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	created, err := s.Trades().Create(ctx, store.Document{"symbol": "NQ", "emotions": []string{"Calma"}})
	require.NoError(t, err)
	created["symbol"] = "mutated"
	created["emotions"].([]string)[0] = "mutated"

	got, err := s.Trades().Get(ctx, created[store.FieldID].(string), "")
	require.NoError(t, err)
	assert.Equal(t, "NQ", got["symbol"])
	assert.Equal(t, []string{"Calma"}, got["emotions"])
}

func TestConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Trades().Create(ctx, store.Document{"symbol": "NQ", store.FieldUserID: "u-1"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	n, err := s.Trades().Count(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 50, n)
}
