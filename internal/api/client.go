// Package api talks to the big-trip REST backend. It deals exclusively in
// server-shaped records; the rename to client field names happens in the
// store layer.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PointRecord is a point as the server represents it.
type PointRecord struct {
	ID          string   `json:"id,omitempty"`
	Type        string   `json:"type"`
	Destination string   `json:"destination"`
	DateFrom    string   `json:"date_from"`
	DateTo      string   `json:"date_to"`
	BasePrice   int      `json:"base_price"`
	IsFavorite  bool     `json:"is_favorite"`
	Offers      []string `json:"offers"`
}

// DestinationRecord mirrors the server destination shape.
type DestinationRecord struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Pictures    []PictureRecord `json:"pictures"`
}

// PictureRecord is a destination photo.
type PictureRecord struct {
	Src         string `json:"src"`
	Description string `json:"description"`
}

// OfferGroupRecord groups the server's offers by point type.
type OfferGroupRecord struct {
	Type   string        `json:"type"`
	Offers []OfferRecord `json:"offers"`
}

// OfferRecord is one priced add-on.
type OfferRecord struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Price int    `json:"price"`
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Status)
}

// Service is the backend contract the store depends on. Client implements
// it against the real backend; FixtureService implements it in memory.
type Service interface {
	Points(ctx context.Context) ([]PointRecord, error)
	Destinations(ctx context.Context) ([]DestinationRecord, error)
	Offers(ctx context.Context) ([]OfferGroupRecord, error)
	UpdatePoint(ctx context.Context, record PointRecord) (PointRecord, error)
	AddPoint(ctx context.Context, record PointRecord) (PointRecord, error)
	DeletePoint(ctx context.Context, id string) error
}

// Client wraps the big-trip REST API.
type Client struct {
	endpoint      string
	authorization string
	httpClient    *http.Client
}

var _ Service = (*Client)(nil)

// NewClient creates a REST client for the given endpoint. The
// authorization value is sent verbatim in the Authorization header of
// every request.
func NewClient(endpoint, authorization string) *Client {
	return &Client{
		endpoint:      endpoint,
		authorization: authorization,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Points fetches all points.
func (c *Client) Points(ctx context.Context) ([]PointRecord, error) {
	var records []PointRecord
	if err := c.load(ctx, http.MethodGet, "points", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Destinations fetches the destination reference data.
func (c *Client) Destinations(ctx context.Context) ([]DestinationRecord, error) {
	var records []DestinationRecord
	if err := c.load(ctx, http.MethodGet, "destinations", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Offers fetches the offer reference data.
func (c *Client) Offers(ctx context.Context) ([]OfferGroupRecord, error) {
	var records []OfferGroupRecord
	if err := c.load(ctx, http.MethodGet, "offers", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// UpdatePoint replaces the point on the server and returns the updated
// record.
func (c *Client) UpdatePoint(ctx context.Context, record PointRecord) (PointRecord, error) {
	var updated PointRecord
	if err := c.load(ctx, http.MethodPut, "points/"+record.ID, &record, &updated); err != nil {
		return PointRecord{}, err
	}
	return updated, nil
}

// AddPoint creates the point and returns the server record, id assigned.
func (c *Client) AddPoint(ctx context.Context, record PointRecord) (PointRecord, error) {
	record.ID = ""
	var created PointRecord
	if err := c.load(ctx, http.MethodPost, "points", &record, &created); err != nil {
		return PointRecord{}, err
	}
	return created, nil
}

// DeletePoint removes the point on the server.
func (c *Client) DeletePoint(ctx context.Context, id string) error {
	return c.load(ctx, http.MethodDelete, "points/"+id, nil, nil)
}

func (c *Client) load(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+"/"+path, reader)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}

	req.Header.Set("Authorization", c.authorization)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("JSON decode error: %w", err)
	}
	return nil
}
