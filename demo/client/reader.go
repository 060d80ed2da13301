package client

import (
	"context"
	"net/http"
	"net/url"

	"newsdesk/store"
	"newsdesk/types"
)

// StateResponse is the reply of GET /api/state
type StateResponse struct {
	State   store.State      `json:"state"`
	Logs    []store.LogEntry `json:"logs"`
	Online  bool             `json:"online"`
	Visible bool             `json:"visible"`
}

// GetState fetches the reader state and the recent action log
func (c *Client) GetState(ctx context.Context) (*StateResponse, error) {
	var resp StateResponse
	if err := c.doJSONRequest(ctx, http.MethodGet, "/api/state", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SelectCategory switches the feed and waits for the reload
func (c *Client) SelectCategory(ctx context.Context, category types.Category) error {
	return c.doJSONRequest(ctx, http.MethodPut, "/api/category", map[string]string{"category": string(category)}, nil)
}

// Refresh reloads the selected category
func (c *Client) Refresh(ctx context.Context) error {
	return c.doJSONRequest(ctx, http.MethodPost, "/api/refresh", nil, nil)
}

// Search runs a search on the server, which also makes the results bookmarkable
func (c *Client) Search(ctx context.Context, query string) ([]types.Article, error) {
	var resp struct {
		Results []types.Article `json:"results"`
	}
	path := "/api/search?q=" + url.QueryEscape(query)
	if err := c.doJSONRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// AddBookmark bookmarks a loaded or searched article
func (c *Client) AddBookmark(ctx context.Context, id string) error {
	return c.doJSONRequest(ctx, http.MethodPost, "/api/bookmarks", map[string]string{"id": id}, nil)
}

// RemoveBookmark drops a bookmark
func (c *Client) RemoveBookmark(ctx context.Context, id string) error {
	return c.doJSONRequest(ctx, http.MethodDelete, "/api/bookmarks/"+url.PathEscape(id), nil, nil)
}

// SetPresence reports whether the reader is on screen
func (c *Client) SetPresence(ctx context.Context, visible bool) error {
	return c.doJSONRequest(ctx, http.MethodPut, "/api/presence", map[string]bool{"visible": visible}, nil)
}
