// Package memory is an in-process store used in development and tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tradejournal/tradejournal-server/internal/model"
	"github.com/tradejournal/tradejournal-server/internal/store"
)

// Store keeps every collection in a map guarded by its own lock.
type Store struct {
	trades        *collection
	emotions      *collection
	confirmations *collection
	dayJournals   *collection
}

// New returns an empty store.
func New() *Store {
	return &Store{
		trades:        newCollection(store.KindTrades),
		emotions:      newCollection(store.KindEmotions),
		confirmations: newCollection(store.KindConfirmations),
		dayJournals:   newCollection(store.KindDayJournals),
	}
}

// NewSeeded returns a store preloaded with unowned sample records.
func NewSeeded() *Store {
	s := New()
	Seed(s)
	return s
}

func (s *Store) Trades() store.Collection        { return s.trades }
func (s *Store) Emotions() store.Collection      { return s.emotions }
func (s *Store) Confirmations() store.Collection { return s.confirmations }
func (s *Store) DayJournals() store.Collection   { return s.dayJournals }

// HealthPing implements health.HealthPinger; memory is always reachable.
func (s *Store) HealthPing(ctx context.Context) error { return ctx.Err() }

type collection struct {
	mu    sync.RWMutex
	kind  store.Kind
	order store.Order
	docs  map[string]store.Document
}

func newCollection(k store.Kind) *collection {
	return &collection{kind: k, order: k.Order(), docs: map[string]store.Document{}}
}

// scoped returns clones of every document visible to ownerID, in listing order.
func (c *collection) scoped(ownerID string, keep func(store.Document) bool) []store.Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]store.Document, 0, len(c.docs))
	for _, d := range c.docs {
		if !store.Visible(d, ownerID) {
			continue
		}
		if keep != nil && !keep(d) {
			continue
		}
		out = append(out, store.Clone(d))
	}
	store.Sort(out, c.order)
	return out
}

func (c *collection) List(ctx context.Context, opts store.ListOptions) ([]store.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return store.Page(c.scoped(opts.OwnerID, nil), opts.Skip, opts.Limit), nil
}

func (c *collection) Get(ctx context.Context, id, ownerID string) (store.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.docs[id]
	if !ok || !store.Visible(d, ownerID) {
		return nil, model.ErrNotFound
	}
	return store.Clone(d), nil
}

func (c *collection) Create(ctx context.Context, doc store.Document) (store.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d := store.Normalize(doc)
	d[store.FieldID] = uuid.New().String()
	d[store.FieldCreatedAt] = store.Now()
	if store.OwnerOf(d) == "" {
		delete(d, store.FieldUserID)
	}
	c.put(d)
	return store.Clone(d), nil
}

func (c *collection) put(d store.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[d[store.FieldID].(string)] = d
}

func (c *collection) Update(ctx context.Context, id string, fields store.Document, ownerID string) (store.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	patch := store.Patch(fields)
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.docs[id]
	if !ok || !store.Visible(d, ownerID) {
		return nil, model.ErrNotFound
	}
	next := store.Clone(d)
	for k, v := range patch {
		next[k] = v
	}
	c.docs[id] = next
	return store.Clone(next), nil
}

func (c *collection) Delete(ctx context.Context, id, ownerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.docs[id]
	if !ok || !store.Visible(d, ownerID) {
		return model.ErrNotFound
	}
	delete(c.docs, id)
	return nil
}

func (c *collection) Count(ctx context.Context, ownerID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, d := range c.docs {
		if store.Visible(d, ownerID) {
			n++
		}
	}
	return n, nil
}

func (c *collection) ListByDateRange(ctx context.Context, r store.DateRange, ownerID string) ([]store.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.scoped(ownerID, func(d store.Document) bool { return store.InRange(d, r) }), nil
}
