package store

import (
	"context"
	"sort"
	"time"

	"github.com/tradejournal/tradejournal-server/internal/model"
)

// Document is the backend-neutral shape of a stored record.
type Document map[string]any

// Reserved document keys managed by the store itself.
const (
	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldCreatedAt = "created_at"
	FieldDate      = "date"
	FieldName      = "name"
)

// ListOptions scopes and pages a listing. An empty OwnerID selects the demo
// partition (records without an owner).
type ListOptions struct {
	Skip    int
	Limit   int
	OwnerID string
}

// DateRange is an inclusive range over an ISO date field.
type DateRange struct {
	Field string
	Start model.Date
	End   model.Date
}

// Collection persists one record type. Records that are absent or not visible
// to ownerID are reported as model.ErrNotFound.
type Collection interface {
	List(ctx context.Context, opts ListOptions) ([]Document, error)
	Get(ctx context.Context, id, ownerID string) (Document, error)
	Create(ctx context.Context, doc Document) (Document, error)
	Update(ctx context.Context, id string, fields Document, ownerID string) (Document, error)
	Delete(ctx context.Context, id, ownerID string) error
	Count(ctx context.Context, ownerID string) (int, error)
	ListByDateRange(ctx context.Context, r DateRange, ownerID string) ([]Document, error)
}

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/.
type Store interface {
	Trades() Collection
	Emotions() Collection
	Confirmations() Collection
	DayJournals() Collection
}

// Kind names a record type.
type Kind string

const (
	KindTrades        Kind = "trades"
	KindEmotions      Kind = "emotions"
	KindConfirmations Kind = "confirmations"
	KindDayJournals   Kind = "day_journal"
)

// Kinds lists every record type in a stable order.
var Kinds = []Kind{KindTrades, KindEmotions, KindConfirmations, KindDayJournals}

// Order is the listing order of a collection.
type Order int

const (
	ByDateDesc Order = iota
	ByNameAsc
)

// Order returns the listing order used for k.
func (k Kind) Order() Order {
	if k == KindEmotions || k == KindConfirmations {
		return ByNameAsc
	}
	return ByDateDesc
}

// CollectionName maps a record type to its physical collection. Trades use
// the base name as is; the others are suffixed.
func CollectionName(base string, k Kind) string {
	if k == KindTrades {
		return base
	}
	return base + "_" + string(k)
}

// Visible reports whether doc belongs to the scope of ownerID: same owner, or
// both unowned.
func Visible(doc Document, ownerID string) bool {
	return OwnerOf(doc) == ownerID
}

// OwnerOf returns the owner recorded on doc, or "" when unowned.
func OwnerOf(doc Document) string {
	s, _ := doc[FieldUserID].(string)
	return s
}

// Normalize prepares doc for persistence: nil values are dropped and dates
// and timestamps become ISO strings. The input is not modified.
func Normalize(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		switch t := v.(type) {
		case nil:
			continue
		case model.Date:
			if t.IsZero() {
				continue
			}
			out[k] = t.String()
		case *model.Date:
			if t == nil || t.IsZero() {
				continue
			}
			out[k] = t.String()
		case time.Time:
			out[k] = t.UTC().Format(time.RFC3339Nano)
		case []string:
			out[k] = append([]string{}, t...)
		default:
			out[k] = v
		}
	}
	return out
}

// Patch normalizes an update and strips the keys a client may never change.
func Patch(fields Document) Document {
	out := Normalize(fields)
	delete(out, FieldID)
	delete(out, FieldUserID)
	delete(out, FieldCreatedAt)
	return out
}

// Clone returns a copy of doc that shares no slices with it.
func Clone(doc Document) Document {
	if doc == nil {
		return nil
	}
	out := make(Document, len(doc))
	for k, v := range doc {
		switch t := v.(type) {
		case []string:
			out[k] = append([]string{}, t...)
		case []any:
			out[k] = append([]any{}, t...)
		default:
			out[k] = v
		}
	}
	return out
}

// Now returns the creation timestamp format shared by all backends.
func Now() string { return time.Now().UTC().Format(time.RFC3339Nano) }

// InRange reports whether doc's r.Field holds an ISO date inside r.
func InRange(doc Document, r DateRange) bool {
	v, ok := doc[r.Field].(string)
	if !ok {
		return false
	}
	return v >= r.Start.String() && v <= r.End.String()
}

// Sort orders docs in place; the id breaks ties so pages are stable.
func Sort(docs []Document, order Order) {
	key := FieldDate
	if order == ByNameAsc {
		key = FieldName
	}
	sort.SliceStable(docs, func(i, j int) bool {
		a, _ := docs[i][key].(string)
		b, _ := docs[j][key].(string)
		if a != b {
			if order == ByNameAsc {
				return a < b
			}
			return a > b
		}
		ai, _ := docs[i][FieldID].(string)
		bi, _ := docs[j][FieldID].(string)
		return ai < bi
	})
}

// Page applies skip and limit to an ordered slice. A non-positive limit
// returns everything after skip.
func Page(docs []Document, skip, limit int) []Document {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(docs) {
		return []Document{}
	}
	docs = docs[skip:]
	if limit > 0 && limit < len(docs) {
		docs = docs[:limit]
	}
	return docs
}
