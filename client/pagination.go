package client

import (
	"context"
	"net/url"
	"strconv"
)

// Page is the {count, next, previous, results} envelope every list endpoint
// returns. Next and Previous are cursor URLs to be followed verbatim.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// getPage fetches one page. pathOrURL is either an endpoint path or a cursor
// URL taken from a previous envelope.
func getPage[T any](ctx context.Context, c *Client, pathOrURL string, query url.Values) (*Page[T], error) {
	var page Page[T]
	if err := c.get(ctx, pathOrURL, query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PageNumber infers the 1-based page number encoded in a cursor URL. The
// backend omits the page parameter for the first page, so an absent or
// unparsable parameter means page 1. Best-effort only; cursors stay the
// source of truth for navigation.
func PageNumber(cursor string) int {
	parsed, err := url.Parse(cursor)
	if err != nil {
		return 1
	}
	raw := parsed.Query().Get("page")
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
