package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tradejournal/tradejournal-server/internal/model"
)

// Types shared with the server so SDK users get the same JSON shapes.
type (
	Trade       = model.Trade
	TradeInput  = model.TradeInput
	TradeUpdate = model.TradeUpdate
	Summary     = model.Summary
)

func tradePath(id string) string { return "/trades/" + url.PathEscape(id) }

func (c *Client) ListTrades(ctx context.Context, p Page) ([]Trade, error) {
	var out []Trade
	if err := c.do(ctx, http.MethodGet, "/trades", nil, &out, p.query()); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTrade(ctx context.Context, id string) (*Trade, error) {
	var out Trade
	if err := c.do(ctx, http.MethodGet, tradePath(id), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTrade(ctx context.Context, in TradeInput) (*Trade, error) {
	var out Trade
	if err := c.do(ctx, http.MethodPost, "/trades", in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTrade(ctx context.Context, id string, u TradeUpdate) (*Trade, error) {
	var out Trade
	if err := c.do(ctx, http.MethodPut, tradePath(id), u, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTrade removes a trade and returns it as it was before deletion.
func (c *Client) DeleteTrade(ctx context.Context, id string) (*Trade, error) {
	var out struct {
		Deleted Trade `json:"deleted_trade"`
	}
	if err := c.do(ctx, http.MethodDelete, tradePath(id), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out.Deleted, nil
}

// Summary returns performance statistics over all of the caller's trades.
func (c *Client) Summary(ctx context.Context) (*Summary, error) {
	var out Summary
	if err := c.do(ctx, http.MethodGet, "/trades/stats/summary", nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}
