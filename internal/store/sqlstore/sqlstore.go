// Package sqlstore persists records as JSON documents in SQLite or Postgres
// for self-hosted deployments.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tradejournal/tradejournal-server/internal/model"
	"github.com/tradejournal/tradejournal-server/internal/store"
)

// Store is a store.Store over a single *sql.DB.
type Store struct {
	db      *sql.DB
	dialect Dialect
	colls   map[store.Kind]*collection
}

// New wires a store over db and creates any missing tables. Collection names
// derive from base.
func New(ctx context.Context, db *sql.DB, d Dialect, base string) (*Store, error) {
	s := &Store{db: db, dialect: d, colls: map[store.Kind]*collection{}}
	for _, k := range store.Kinds {
		table := store.CollectionName(base, k)
		if err := ensureSchema(ctx, db, table); err != nil {
			return nil, err
		}
		s.colls[k] = &collection{db: db, d: d, table: table, order: k.Order()}
	}
	return s, nil
}

func (s *Store) Trades() store.Collection        { return s.colls[store.KindTrades] }
func (s *Store) Emotions() store.Collection      { return s.colls[store.KindEmotions] }
func (s *Store) Confirmations() store.Collection { return s.colls[store.KindConfirmations] }
func (s *Store) DayJournals() store.Collection   { return s.colls[store.KindDayJournals] }

// HealthPing implements health.HealthPinger.
func (s *Store) HealthPing(ctx context.Context) error { return s.db.PingContext(ctx) }

// Close releases the underlying connection pool.
func (s *Store) Close() error { return s.db.Close() }

type collection struct {
	db    *sql.DB
	d     Dialect
	table string
	order store.Order
}

func (c *collection) orderBy() string {
	if c.order == store.ByNameAsc {
		return "name ASC, id ASC"
	}
	return "date DESC, id ASC"
}

func (c *collection) List(ctx context.Context, opts store.ListOptions) ([]store.Document, error) {
	limit := c.d.noLimit
	if opts.Limit > 0 {
		limit = fmt.Sprint(opts.Limit)
	}
	skip := opts.Skip
	if skip < 0 {
		skip = 0
	}
	q := fmt.Sprintf(`SELECT body FROM %s WHERE user_id = ? ORDER BY %s LIMIT %s OFFSET %d`,
		c.table, c.orderBy(), limit, skip)
	return c.query(ctx, q, opts.OwnerID)
}

func (c *collection) Get(ctx context.Context, id, ownerID string) (store.Document, error) {
	q := fmt.Sprintf(`SELECT body FROM %s WHERE id = ? AND user_id = ?`, c.table)
	return scanOne(c.db.QueryRowContext(ctx, c.d.rebind(q), id, ownerID))
}

func (c *collection) Create(ctx context.Context, doc store.Document) (store.Document, error) {
	d := store.Normalize(doc)
	owner := store.OwnerOf(d)
	if owner == "" {
		delete(d, store.FieldUserID)
	}
	d[store.FieldID] = uuid.New().String()
	d[store.FieldCreatedAt] = store.Now()
	body, err := json.Marshal(d)
	if err != nil {
		return nil, errors.Wrap(err, "encode document")
	}
	q := fmt.Sprintf(`INSERT INTO %s (id, user_id, date, name, body, created_at) VALUES (?,?,?,?,?,?)`, c.table)
	if _, err := c.db.ExecContext(ctx, c.d.rebind(q),
		d[store.FieldID], owner, str(d, store.FieldDate), str(d, store.FieldName), string(body), d[store.FieldCreatedAt]); err != nil {
		return nil, errors.Wrapf(err, "insert into %s", c.table)
	}
	// Round-trip through JSON so callers see the same shapes Get returns.
	return decode(body)
}

func (c *collection) Update(ctx context.Context, id string, fields store.Document, ownerID string) (store.Document, error) {
	patch := store.Patch(fields)
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "begin update")
	}
	defer func() { _ = tx.Rollback() }()

	sel := fmt.Sprintf(`SELECT body FROM %s WHERE id = ? AND user_id = ?%s`, c.table, c.d.forUpdate)
	cur, err := scanOne(tx.QueryRowContext(ctx, c.d.rebind(sel), id, ownerID))
	if err != nil {
		return nil, err
	}
	for k, v := range patch {
		cur[k] = v
	}
	body, err := json.Marshal(cur)
	if err != nil {
		return nil, errors.Wrap(err, "encode document")
	}
	upd := fmt.Sprintf(`UPDATE %s SET date = ?, name = ?, body = ? WHERE id = ? AND user_id = ?`, c.table)
	if _, err := tx.ExecContext(ctx, c.d.rebind(upd), str(cur, store.FieldDate), str(cur, store.FieldName), string(body), id, ownerID); err != nil {
		return nil, errors.Wrapf(err, "update %s", c.table)
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit update")
	}
	return decode(body)
}

func (c *collection) Delete(ctx context.Context, id, ownerID string) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE id = ? AND user_id = ?`, c.table)
	res, err := c.db.ExecContext(ctx, c.d.rebind(q), id, ownerID)
	if err != nil {
		return errors.Wrapf(err, "delete from %s", c.table)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (c *collection) Count(ctx context.Context, ownerID string) (int, error) {
	q := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE user_id = ?`, c.table)
	var n int
	if err := c.db.QueryRowContext(ctx, c.d.rebind(q), ownerID).Scan(&n); err != nil {
		return 0, errors.Wrapf(err, "count %s", c.table)
	}
	return n, nil
}

func (c *collection) ListByDateRange(ctx context.Context, r store.DateRange, ownerID string) ([]store.Document, error) {
	if r.Field != store.FieldDate {
		return nil, errors.Errorf("range over %q is not indexed", r.Field)
	}
	q := fmt.Sprintf(`SELECT body FROM %s WHERE user_id = ? AND date >= ? AND date <= ? ORDER BY %s`,
		c.table, c.orderBy())
	return c.query(ctx, q, ownerID, r.Start.String(), r.End.String())
}

func (c *collection) query(ctx context.Context, q string, args ...any) ([]store.Document, error) {
	rows, err := c.db.QueryContext(ctx, c.d.rebind(q), args...)
	if err != nil {
		return nil, errors.Wrapf(err, "query %s", c.table)
	}
	defer func() { _ = rows.Close() }()
	out := []store.Document{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, errors.Wrap(err, "scan document")
		}
		d, err := decode([]byte(body))
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, errors.Wrap(rows.Err(), "iterate documents")
}

func scanOne(row *sql.Row) (store.Document, error) {
	var body string
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, errors.Wrap(err, "scan document")
	}
	return decode([]byte(body))
}

func decode(body []byte) (store.Document, error) {
	var d store.Document
	if err := json.Unmarshal(body, &d); err != nil {
		return nil, errors.Wrap(err, "decode document")
	}
	return d, nil
}

func str(d store.Document, key string) string {
	s, _ := d[key].(string)
	return s
}
