// Package places reads a business listing and its reviews from the Google
// Places API (v1).
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const detailFields = "displayName,rating,reviews"

// ErrNotConfigured is returned when no API key or place id is set
var ErrNotConfigured = errors.New("places client is not configured")

// StatusError is a non-2xx answer from the API
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("places api returned %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether retrying the request may succeed
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

type LocalizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode"`
}

type AuthorAttribution struct {
	DisplayName string `json:"displayName"`
	URI         string `json:"uri"`
	PhotoURI    string `json:"photoUri"`
}

type Review struct {
	Name                           string            `json:"name"`
	RelativePublishTimeDescription string            `json:"relativePublishTimeDescription"`
	Rating                         int               `json:"rating"`
	Text                           LocalizedText     `json:"text"`
	AuthorAttribution              AuthorAttribution `json:"authorAttribution"`
	PublishTime                    time.Time         `json:"publishTime"`
}

type Place struct {
	DisplayName LocalizedText `json:"displayName"`
	Rating      float64       `json:"rating"`
	Reviews     []Review      `json:"reviews"`
}

// Config holds the API credentials
type Config struct {
	APIKey  string
	PlaceID string
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, httpClient: &http.Client{Timeout: timeout}}
}

// Configured reports whether both the key and the place id are present
func (c *Client) Configured() bool {
	return c.cfg.APIKey != "" && c.cfg.PlaceID != ""
}

// FetchPlace loads the configured place with its reviews
func (c *Client) FetchPlace(ctx context.Context) (*Place, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/places/%s?%s", c.cfg.BaseURL, url.PathEscape(c.cfg.PlaceID), url.Values{
		"fields": {detailFields},
		"key":    {c.cfg.APIKey},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build places request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var place Place
	if err := json.NewDecoder(resp.Body).Decode(&place); err != nil {
		return nil, fmt.Errorf("failed to decode places response: %w", err)
	}
	return &place, nil
}
