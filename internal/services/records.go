package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tradejournal/tradejournal-server/internal/model"
	"github.com/tradejournal/tradejournal-server/internal/store"
)

// DefaultBatchSize bounds each page of a full collection scan.
const DefaultBatchSize = 1000

// records applies the shared service policy over one collection: reads fail
// open (logged, then empty or not found), writes propagate their errors.
type records[T any] struct {
	kind  string
	coll  store.Collection
	log   zerolog.Logger
	fixup func(*T)
}

func newRecords[T any](kind string, c store.Collection, log zerolog.Logger, fixup func(*T)) records[T] {
	return records[T]{kind: kind, coll: c, log: log.With().Str("record", kind).Logger(), fixup: fixup}
}

func (r records[T]) decode(doc store.Document) (T, error) {
	v, err := decode[T](doc)
	if err == nil && r.fixup != nil {
		r.fixup(&v)
	}
	return v, err
}

func (r records[T]) decodeAll(docs []store.Document) []T {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		v, err := r.decode(d)
		if err != nil {
			r.log.Warn().Err(err).Interface("id", d[store.FieldID]).Msg("skipping undecodable record")
			continue
		}
		out = append(out, v)
	}
	return out
}

func (r records[T]) list(ctx context.Context, skip, limit int, owner string) []T {
	docs, err := r.coll.List(ctx, store.ListOptions{Skip: skip, Limit: limit, OwnerID: owner})
	if err != nil {
		r.log.Error().Stack().Err(err).Msg("list failed")
		return []T{}
	}
	return r.decodeAll(docs)
}

func (r records[T]) get(ctx context.Context, id, owner string) (T, error) {
	var zero T
	doc, err := r.coll.Get(ctx, id, owner)
	if err != nil {
		if !model.IsNotFound(err) {
			r.log.Error().Stack().Err(err).Str("id", id).Msg("get failed")
		}
		return zero, model.ErrNotFound
	}
	v, err := r.decode(doc)
	if err != nil {
		r.log.Error().Stack().Err(err).Str("id", id).Msg("decode failed")
		return zero, model.ErrNotFound
	}
	return v, nil
}

// create stamps the caller's owner; demo callers create unowned records.
func (r records[T]) create(ctx context.Context, fields map[string]any, owner string) (T, error) {
	var zero T
	doc := store.Document(fields)
	delete(doc, store.FieldUserID)
	if owner != "" {
		doc[store.FieldUserID] = owner
	}
	created, err := r.coll.Create(ctx, doc)
	if err != nil {
		r.log.Error().Stack().Err(err).Msg("create failed")
		return zero, err
	}
	return r.decode(created)
}

func (r records[T]) update(ctx context.Context, id string, fields map[string]any, owner string) (T, error) {
	var zero T
	updated, err := r.coll.Update(ctx, id, store.Document(fields), owner)
	if err != nil {
		r.logWrite(err, id, "update failed")
		return zero, err
	}
	return r.decode(updated)
}

// delete returns the record it removed. Fetch and delete are separate calls,
// so a concurrent delete of the same id may turn the second into not found.
func (r records[T]) delete(ctx context.Context, id, owner string) (T, error) {
	var zero T
	doc, err := r.coll.Get(ctx, id, owner)
	if err != nil {
		r.logWrite(err, id, "delete lookup failed")
		return zero, err
	}
	if err := r.coll.Delete(ctx, id, owner); err != nil {
		r.logWrite(err, id, "delete failed")
		return zero, err
	}
	return r.decode(doc)
}

// logWrite records backend write failures; absent records are not failures.
func (r records[T]) logWrite(err error, id, msg string) {
	if model.IsNotFound(err) {
		return
	}
	r.log.Error().Stack().Err(err).Str("id", id).Msg(msg)
}

func (r records[T]) count(ctx context.Context, owner string) int {
	n, err := r.coll.Count(ctx, owner)
	if err != nil {
		r.log.Error().Stack().Err(err).Msg("count failed")
		return 0
	}
	return n
}

// all pages through every record visible to owner.
func (r records[T]) all(ctx context.Context, owner string, batch int) ([]T, error) {
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	out := []T{}
	for skip := 0; ; skip += batch {
		docs, err := r.coll.List(ctx, store.ListOptions{Skip: skip, Limit: batch, OwnerID: owner})
		if err != nil {
			return out, err
		}
		out = append(out, r.decodeAll(docs)...)
		if len(docs) < batch {
			return out, nil
		}
	}
}
