package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tradejournal/tradejournal-server/internal/model"
)

type (
	Tag       = model.Tag
	TagInput  = model.TagInput
	TagUpdate = model.TagUpdate
)

// TagKind selects the emotions or confirmations collection.
type TagKind string

const (
	Emotions      TagKind = "emotions"
	Confirmations TagKind = "confirmations"
)

func (k TagKind) path(id string) string {
	if id == "" {
		return "/" + string(k)
	}
	return "/" + string(k) + "/" + url.PathEscape(id)
}

// deletedKey is the response field holding the removed tag.
func (k TagKind) deletedKey() string {
	if k == Confirmations {
		return "deleted_confirmation"
	}
	return "deleted_emotion"
}

func (c *Client) ListTags(ctx context.Context, k TagKind, p Page) ([]Tag, error) {
	var out []Tag
	if err := c.do(ctx, http.MethodGet, k.path(""), nil, &out, p.query()); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTag(ctx context.Context, k TagKind, id string) (*Tag, error) {
	var out Tag
	if err := c.do(ctx, http.MethodGet, k.path(id), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTag(ctx context.Context, k TagKind, in TagInput) (*Tag, error) {
	var out Tag
	if err := c.do(ctx, http.MethodPost, k.path(""), in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTag(ctx context.Context, k TagKind, id string, u TagUpdate) (*Tag, error) {
	var out Tag
	if err := c.do(ctx, http.MethodPut, k.path(id), u, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTag(ctx context.Context, k TagKind, id string) (*Tag, error) {
	var out map[string]json.RawMessage
	if err := c.do(ctx, http.MethodDelete, k.path(id), nil, &out, nil); err != nil {
		return nil, err
	}
	var t Tag
	if err := json.Unmarshal(out[k.deletedKey()], &t); err != nil {
		return nil, fmt.Errorf("decode deleted %s: %w", k, err)
	}
	return &t, nil
}
