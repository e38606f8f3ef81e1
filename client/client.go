// Package client is a typed Go SDK for the journal HTTP API.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client talks to a journal service on behalf of one bearer token.
type Client struct {
	r *resty.Client
}

// New constructs a Client for baseURL. token is sent as a bearer credential
// on every request; a demo token works against non-production servers.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}
	r := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(30 * time.Second).
		SetError(&APIError{})
	if token != "" {
		r.SetAuthToken(token)
	}
	c := &Client{r: r}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Page selects a window of a listing. Zero values use server defaults.
type Page struct {
	Skip  int
	Limit int
}

func (p Page) query() map[string]string {
	q := map[string]string{}
	if p.Skip > 0 {
		q["skip"] = strconv.Itoa(p.Skip)
	}
	if p.Limit > 0 {
		q["limit"] = strconv.Itoa(p.Limit)
	}
	return q
}

// do executes a request and decodes a 2xx body into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any, query map[string]string) error {
	req := c.r.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr, ok := resp.Error().(*APIError)
		if !ok || apiErr == nil {
			apiErr = &APIError{}
		}
		apiErr.Status = resp.StatusCode()
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode())
		}
		return apiErr
	}
	return nil
}

// Health reports the service status string ("healthy" or "unhealthy").
func (c *Client) Health(ctx context.Context) (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out, nil); err != nil {
		return "", err
	}
	return out.Status, nil
}

// TokenExchange is the result of ExchangeToken.
type TokenExchange struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        struct {
		UID   string `json:"uid"`
		Email string `json:"email,omitempty"`
		Name  string `json:"name,omitempty"`
	} `json:"user"`
}

// ExchangeToken verifies an identity provider ID token with the server.
func (c *Client) ExchangeToken(ctx context.Context, idToken string) (*TokenExchange, error) {
	var out TokenExchange
	body := map[string]string{"id_token": idToken}
	if err := c.do(ctx, http.MethodPost, "/auth/firebase", body, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}
