package armory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"auraforge/internal/record"
)

// ErrUnavailable marks a record that could not be retrieved this run. The id
// stays absent from the cache and is retried on the next run.
var ErrUnavailable = errors.New("record unavailable")

// Fetcher defines the record retrieval operations used by the resolve engine.
type Fetcher interface {
	FetchItem(ctx context.Context, id int64) (record.Item, error)
	FetchSpell(ctx context.Context, id int64) (record.Spell, error)
}

// Client provides access to the armory record service over HTTP. Records are
// fetched as <endpoint>/<id> and decoded from JSON.
type Client struct {
	itemURL    string
	spellURL   string
	apiKey     string
	httpClient *http.Client
}

var _ Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithAPIKey attaches a bearer token to every request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = strings.TrimSpace(key)
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates an armory client for the given item and spell endpoints.
func New(itemURL, spellURL string, opts ...Option) (*Client, error) {
	itemURL = strings.TrimSpace(itemURL)
	if itemURL == "" {
		return nil, errors.New("armory item url required")
	}
	spellURL = strings.TrimSpace(spellURL)
	if spellURL == "" {
		return nil, errors.New("armory spell url required")
	}
	client := &Client{
		itemURL:    strings.TrimRight(itemURL, "/"),
		spellURL:   strings.TrimRight(spellURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// FetchItem retrieves one item record by id.
func (c *Client) FetchItem(ctx context.Context, id int64) (record.Item, error) {
	var item record.Item
	if err := c.fetch(ctx, record.KindItem, c.itemURL, id, &item); err != nil {
		return record.Item{}, err
	}
	if item.ID == 0 {
		item.ID = id
	}
	return item, nil
}

// FetchSpell retrieves one spell record by id.
func (c *Client) FetchSpell(ctx context.Context, id int64) (record.Spell, error) {
	var spell record.Spell
	if err := c.fetch(ctx, record.KindSpell, c.spellURL, id, &spell); err != nil {
		return record.Spell{}, err
	}
	if spell.ID == 0 {
		spell.ID = id
	}
	return spell, nil
}

func (c *Client) fetch(ctx context.Context, kind record.Kind, base string, id int64, target any) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s id must be positive", ErrUnavailable, kind)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%d", base, id), nil)
	if err != nil {
		return fmt.Errorf("%w: build %s request for %d: %w", ErrUnavailable, kind, id, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("%w: fetch %s %d (latency=%v): %w", ErrUnavailable, kind, id, latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: fetch %s %d returned %d (latency=%v)", ErrUnavailable, kind, id, resp.StatusCode, latency)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: decode %s %d: %w", ErrUnavailable, kind, id, err)
	}
	return nil
}
