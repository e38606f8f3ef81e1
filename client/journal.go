package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tradejournal/tradejournal-server/internal/model"
)

type (
	DayJournal       = model.DayJournal
	DayJournalInput  = model.DayJournalInput
	DayJournalUpdate = model.DayJournalUpdate
	Date             = model.Date
	Export           = model.Export
)

func journalPath(id string) string { return "/day-journal/" + url.PathEscape(id) }

func (c *Client) ListDayJournals(ctx context.Context, p Page) ([]DayJournal, error) {
	var out []DayJournal
	if err := c.do(ctx, http.MethodGet, "/day-journal", nil, &out, p.query()); err != nil {
		return nil, err
	}
	return out, nil
}

// DayJournalRange returns the journals dated within [start, end].
func (c *Client) DayJournalRange(ctx context.Context, start, end Date) ([]DayJournal, error) {
	var out []DayJournal
	q := map[string]string{"start_date": start.String(), "end_date": end.String()}
	if err := c.do(ctx, http.MethodGet, "/day-journal/range", nil, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetDayJournal(ctx context.Context, id string) (*DayJournal, error) {
	var out DayJournal
	if err := c.do(ctx, http.MethodGet, journalPath(id), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateDayJournal(ctx context.Context, in DayJournalInput) (*DayJournal, error) {
	var out DayJournal
	if err := c.do(ctx, http.MethodPost, "/day-journal", in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDayJournal(ctx context.Context, id string, u DayJournalUpdate) (*DayJournal, error) {
	var out DayJournal
	if err := c.do(ctx, http.MethodPut, journalPath(id), u, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteDayJournal(ctx context.Context, id string) (*DayJournal, error) {
	var out struct {
		Deleted DayJournal `json:"deleted_day_journal"`
	}
	if err := c.do(ctx, http.MethodDelete, journalPath(id), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out.Deleted, nil
}

// ExportAll downloads every trade and day journal visible to the caller.
func (c *Client) ExportAll(ctx context.Context) (*Export, error) {
	var out Export
	if err := c.do(ctx, http.MethodGet, "/export/all", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}
