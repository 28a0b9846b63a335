// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package client is a typed HTTP client for the bonfire signup API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/bonfire/models"
)

// APIError is a non-2xx answer from the server
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api returned %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the server at baseURL (e.g. http://localhost:3318).
// A nil httpClient uses one with a 10s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody models.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil {
			apiErr.Message = errBody.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) NeededItems(ctx context.Context) ([]models.NeededItem, error) {
	var resp models.NeededItemsResponse
	if err := c.do(ctx, http.MethodGet, "/api/needed-items", nil, &resp); err != nil {
		return nil, err
	}
	return resp.NeededItems, nil
}

func (c *Client) AddNeededItem(ctx context.Context, req models.CreateNeededItemRequest) error {
	return c.do(ctx, http.MethodPost, "/api/needed-items", req, nil)
}

func (c *Client) UpdateNeededItem(ctx context.Context, req models.UpdateNeededItemRequest) error {
	return c.do(ctx, http.MethodPut, "/api/needed-items", req, nil)
}

func (c *Client) RemoveNeededItem(ctx context.Context, item string) error {
	return c.do(ctx, http.MethodDelete, "/api/needed-items", models.DeleteNeededItemRequest{Item: item}, nil)
}

func (c *Client) Signups(ctx context.Context) ([]models.Signup, error) {
	var resp models.SignupsResponse
	if err := c.do(ctx, http.MethodGet, "/api/signup", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Signups, nil
}

func (c *Client) SignUp(ctx context.Context, req models.CreateSignupRequest) error {
	return c.do(ctx, http.MethodPost, "/api/signup", req, nil)
}

func (c *Client) Roster(ctx context.Context) (models.RosterResponse, error) {
	var resp models.RosterResponse
	err := c.do(ctx, http.MethodGet, "/api/signup/roster", nil, &resp)
	return resp, err
}

// Snapshot is the board and the roster fetched together
type Snapshot struct {
	Items     []models.NeededItem
	Roster    models.RosterResponse
	FetchedAt time.Time
}

// Snapshot fetches the board and the roster concurrently.
// Either failure fails the whole snapshot.
func (c *Client) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := c.NeededItems(ctx)
		snap.Items = items
		return err
	})
	g.Go(func() error {
		r, err := c.Roster(ctx)
		snap.Roster = r
		return err
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	snap.FetchedAt = time.Now()
	return snap, nil
}
