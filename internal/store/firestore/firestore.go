// Package firestore stores records in Google Cloud Firestore, one collection
// per record type.
package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tradejournal/tradejournal-server/internal/model"
	"github.com/tradejournal/tradejournal-server/internal/store"
)

// Open connects to the given Firestore database. An empty databaseID selects
// the project's default database.
func Open(ctx context.Context, projectID, databaseID string, opts ...option.ClientOption) (*firestore.Client, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}
	c, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "firestore client")
	}
	return c, nil
}

// Store is a store.Store over a Firestore client.
type Store struct {
	client *firestore.Client
	colls  map[store.Kind]*collection
}

// New wires collections named after base onto client.
func New(client *firestore.Client, base string, log zerolog.Logger) *Store {
	s := &Store{client: client, colls: map[store.Kind]*collection{}}
	for _, k := range store.Kinds {
		name := store.CollectionName(base, k)
		s.colls[k] = &collection{
			client: client,
			ref:    client.Collection(name),
			order:  k.Order(),
			log:    log.With().Str("collection", name).Logger(),
		}
	}
	return s
}

func (s *Store) Trades() store.Collection        { return s.colls[store.KindTrades] }
func (s *Store) Emotions() store.Collection      { return s.colls[store.KindEmotions] }
func (s *Store) Confirmations() store.Collection { return s.colls[store.KindConfirmations] }
func (s *Store) DayJournals() store.Collection   { return s.colls[store.KindDayJournals] }

// HealthPing reads at most one document.
func (s *Store) HealthPing(ctx context.Context) error {
	it := s.colls[store.KindEmotions].ref.Limit(1).Documents(ctx)
	defer it.Stop()
	if _, err := it.Next(); err != nil && err != iterator.Done {
		return errors.Wrap(err, "firestore ping")
	}
	return nil
}

func (s *Store) Close() error { return s.client.Close() }

type collection struct {
	client *firestore.Client
	ref    *firestore.CollectionRef
	order  store.Order
	log    zerolog.Logger
}

func (c *collection) orderField() (string, firestore.Direction) {
	if c.order == store.ByNameAsc {
		return store.FieldName, firestore.Asc
	}
	return store.FieldDate, firestore.Desc
}

func toDocument(snap *firestore.DocumentSnapshot) store.Document {
	d := store.Document(snap.Data())
	d[store.FieldID] = snap.Ref.ID
	return d
}

func (c *collection) run(ctx context.Context, q firestore.Query) ([]store.Document, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]store.Document, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, toDocument(s))
	}
	return out, nil
}

// scoped returns every document visible to ownerID, unsorted. Documents
// without an owner cannot be queried for, so the demo scope scans.
func (c *collection) scoped(ctx context.Context, ownerID string) ([]store.Document, error) {
	q := c.ref.Query
	if ownerID != "" {
		q = c.ref.Where(store.FieldUserID, "==", ownerID)
	}
	docs, err := c.run(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "scan collection")
	}
	out := docs[:0]
	for _, d := range docs {
		if store.Visible(d, ownerID) {
			out = append(out, d)
		}
	}
	return out, nil
}

func missingIndex(err error) bool {
	return status.Code(err) == codes.FailedPrecondition
}

func (c *collection) List(ctx context.Context, opts store.ListOptions) ([]store.Document, error) {
	if opts.OwnerID != "" {
		field, dir := c.orderField()
		q := c.ref.Where(store.FieldUserID, "==", opts.OwnerID).
			OrderBy(field, dir).
			OrderBy(firestore.DocumentID, firestore.Asc).
			Offset(max(opts.Skip, 0))
		if opts.Limit > 0 {
			q = q.Limit(opts.Limit)
		}
		docs, err := c.run(ctx, q)
		if err == nil {
			return docs, nil
		}
		if !missingIndex(err) {
			return nil, errors.Wrap(err, "list documents")
		}
		c.log.Warn().Err(err).Msg("composite index missing, ordering in process")
	}
	docs, err := c.scoped(ctx, opts.OwnerID)
	if err != nil {
		return nil, err
	}
	store.Sort(docs, c.order)
	return store.Page(docs, opts.Skip, opts.Limit), nil
}

func (c *collection) Get(ctx context.Context, id, ownerID string) (store.Document, error) {
	snap, err := c.ref.Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get document")
	}
	d := toDocument(snap)
	if !store.Visible(d, ownerID) {
		return nil, model.ErrNotFound
	}
	return d, nil
}

func (c *collection) Create(ctx context.Context, doc store.Document) (store.Document, error) {
	data := store.Normalize(doc)
	delete(data, store.FieldID)
	if store.OwnerOf(data) == "" {
		delete(data, store.FieldUserID)
	}
	data[store.FieldCreatedAt] = store.Now()
	ref := c.ref.NewDoc()
	if _, err := ref.Create(ctx, map[string]any(data)); err != nil {
		return nil, errors.Wrap(err, "create document")
	}
	data[store.FieldID] = ref.ID
	return data, nil
}

func (c *collection) Update(ctx context.Context, id string, fields store.Document, ownerID string) (store.Document, error) {
	patch := store.Patch(fields)
	ref := c.ref.Doc(id)
	var out store.Document
	err := c.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		cur, err := c.lockVisible(tx, ref, ownerID)
		if err != nil {
			return err
		}
		for k, v := range patch {
			cur[k] = v
		}
		delete(cur, store.FieldID)
		if err := tx.Set(ref, map[string]any(cur)); err != nil {
			return err
		}
		cur[store.FieldID] = id
		out = cur
		return nil
	})
	if err != nil {
		if model.IsNotFound(err) {
			return nil, model.ErrNotFound
		}
		return nil, errors.Wrap(err, "update document")
	}
	return out, nil
}

func (c *collection) Delete(ctx context.Context, id, ownerID string) error {
	ref := c.ref.Doc(id)
	err := c.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := c.lockVisible(tx, ref, ownerID); err != nil {
			return err
		}
		return tx.Delete(ref)
	})
	if err != nil {
		if model.IsNotFound(err) {
			return model.ErrNotFound
		}
		return errors.Wrap(err, "delete document")
	}
	return nil
}

// lockVisible reads ref inside tx and checks it is visible to ownerID.
func (c *collection) lockVisible(tx *firestore.Transaction, ref *firestore.DocumentRef, ownerID string) (store.Document, error) {
	snap, err := tx.Get(ref)
	if status.Code(err) == codes.NotFound {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	d := toDocument(snap)
	if !store.Visible(d, ownerID) {
		return nil, model.ErrNotFound
	}
	return d, nil
}

func (c *collection) Count(ctx context.Context, ownerID string) (int, error) {
	if ownerID == "" {
		docs, err := c.scoped(ctx, "")
		if err != nil {
			return 0, err
		}
		return len(docs), nil
	}
	q := c.ref.Where(store.FieldUserID, "==", ownerID)
	res, err := q.NewAggregationQuery().
		WithCount("all").
		Get(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "count documents")
	}
	v, ok := res["all"].(*firestorepb.Value)
	if !ok {
		return 0, errors.New("count aggregation returned no value")
	}
	return int(v.GetIntegerValue()), nil
}

func (c *collection) ListByDateRange(ctx context.Context, r store.DateRange, ownerID string) ([]store.Document, error) {
	if ownerID != "" {
		q := c.ref.Where(store.FieldUserID, "==", ownerID).
			Where(r.Field, ">=", r.Start.String()).
			Where(r.Field, "<=", r.End.String()).
			OrderBy(r.Field, firestore.Desc)
		docs, err := c.run(ctx, q)
		if err == nil {
			return docs, nil
		}
		if !missingIndex(err) {
			return nil, errors.Wrap(err, "range query")
		}
		c.log.Warn().Err(err).Msg("composite index missing, filtering range in process")
	}
	docs, err := c.scoped(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]store.Document, 0, len(docs))
	for _, d := range docs {
		if store.InRange(d, r) {
			out = append(out, d)
		}
	}
	store.Sort(out, c.order)
	return out, nil
}
