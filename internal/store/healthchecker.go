package store

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/tradejournal/tradejournal-server/internal/health"
)

const defaultProbeTimeout = 2 * time.Second

// Checker reports whether the record store answers. Backends that implement
// health.HealthPinger are pinged; others must answer a count on every
// collection.
type Checker struct {
	store   Store
	log     zerolog.Logger
	timeout time.Duration
	up      atomic.Bool
}

// NewChecker returns a checker that starts out down until its first probe.
func NewChecker(s Store, log zerolog.Logger, timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	return &Checker{store: s, log: log.With().Str("checker", "store").Logger(), timeout: timeout}
}

func (c *Checker) Name() string { return "store" }

func (c *Checker) IsHealthy() bool { return c.up.Load() }

// Start probes once immediately, then every interval until ctx ends.
func (c *Checker) Start(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		c.Check(ctx)
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

// Check runs one probe and records its outcome. Only transitions are logged.
func (c *Checker) Check(ctx context.Context) bool {
	pctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.probe(pctx)
	ok := err == nil
	if was := c.up.Swap(ok); was != ok {
		if ok {
			c.log.Info().Msg("record store reachable")
		} else {
			c.log.Error().Stack().Err(err).Msg("record store unreachable")
		}
	}
	return ok
}

func (c *Checker) probe(ctx context.Context) error {
	if p, ok := c.store.(health.HealthPinger); ok {
		return p.HealthPing(ctx)
	}
	for _, k := range Kinds {
		if _, err := c.collection(k).Count(ctx, ""); err != nil {
			return errors.Wrapf(err, "count %s", k)
		}
	}
	return nil
}

func (c *Checker) collection(k Kind) Collection {
	switch k {
	case KindEmotions:
		return c.store.Emotions()
	case KindConfirmations:
		return c.store.Confirmations()
	case KindDayJournals:
		return c.store.DayJournals()
	default:
		return c.store.Trades()
	}
}
