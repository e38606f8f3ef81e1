package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/tradejournal/tradejournal-server/internal/store"
	"github.com/tradejournal/tradejournal-server/internal/store/memory"
)

// countOnly exposes the collections of a memory store without its pinger.
type countOnly struct {
	mem      *memory.Store
	journals store.Collection
}

func (c countOnly) Trades() store.Collection        { return c.mem.Trades() }
func (c countOnly) Emotions() store.Collection      { return c.mem.Emotions() }
func (c countOnly) Confirmations() store.Collection { return c.mem.Confirmations() }
func (c countOnly) DayJournals() store.Collection {
	if c.journals != nil {
		return c.journals
	}
	return c.mem.DayJournals()
}

type downCollection struct{ store.Collection }

func (downCollection) Count(context.Context, string) (int, error) {
	return 0, errors.New("connection reset")
}

func TestCheckerUsesPinger(t *testing.T) {
	c := store.NewChecker(memory.New(), zerolog.Nop(), 0)
	assert.False(t, c.IsHealthy())
	assert.True(t, c.Check(context.Background()))
	assert.True(t, c.IsHealthy())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, c.Check(ctx))
	assert.False(t, c.IsHealthy())
}

func TestCheckerFallsBackToCounts(t *testing.T) {
	mem := memory.New()
	c := store.NewChecker(countOnly{mem: mem}, zerolog.Nop(), time.Second)
	assert.True(t, c.Check(context.Background()))

	c = store.NewChecker(countOnly{mem: mem, journals: downCollection{mem.DayJournals()}}, zerolog.Nop(), time.Second)
	assert.False(t, c.Check(context.Background()))
	assert.Equal(t, "store", c.Name())
}

func TestCheckerStartStopsWithContext(t *testing.T) {
	c := store.NewChecker(memory.New(), zerolog.Nop(), time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Start(ctx, 10*time.Millisecond)
		close(done)
	}()
	assert.Eventually(t, c.IsHealthy, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("checker did not stop")
	}
}
