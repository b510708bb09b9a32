package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"xmd/config"
	"xmd/content"
)

// ErrNotFound is returned when the status does not exist or has been deleted.
var ErrNotFound = errors.New("status not found")

// statusResponse is the FxTwitter API envelope.
type statusResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Tweet   *content.Tweet `json:"tweet"`
}

// Client fetches statuses and image bytes. It is not safe for concurrent use,
// program is strictly sequential anyway.
type Client struct {
	base      string
	userAgent string
	api       *http.Client
	images    *http.Client
	cache     *Cache
	rpt       *config.Report
	log       *zap.Logger
}

// NewClient builds a client from configuration. Cache and report may be nil.
func NewClient(cfg *config.FetchConfig, cache *Cache, rpt *config.Report, log *zap.Logger) *Client {
	return &Client{
		base:      cfg.APIBase,
		userAgent: cfg.UserAgent,
		api:       &http.Client{Timeout: time.Duration(cfg.TimeoutSec) * time.Second},
		images:    &http.Client{Timeout: time.Duration(cfg.ImageTimeoutSec) * time.Second},
		cache:     cache,
		rpt:       rpt,
		log:       log,
	}
}

// Status fetches a single tweet through the FxTwitter API. Screen name "i"
// works when the author is unknown.
func (c *Client) Status(ctx context.Context, screenName, id string) (*content.Tweet, error) {
	if screenName == "" {
		screenName = "i"
	}

	if data, ok := c.cache.Get(id); ok {
		var tweet content.Tweet
		if err := json.Unmarshal(data, &tweet); err == nil {
			c.log.Debug("Status served from cache", zap.String("id", id))
			return &tweet, nil
		}
		c.log.Warn("Discarding unreadable cache entry", zap.String("id", id))
	}

	url := fmt.Sprintf("%s/%s/status/%s", c.base, screenName, id)
	c.log.Info("Fetching status", zap.String("url", url))

	body, status, err := c.get(ctx, c.api, url, "application/json")
	if err != nil {
		return nil, fmt.Errorf("unable to reach API: %w", err)
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("status %s: %w", id, ErrNotFound)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("API request failed with HTTP %d", status)
	}

	c.rpt.StoreData(fmt.Sprintf("fetch/%s.json", id), body)

	var resp statusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unable to decode API response: %w", err)
	}
	if resp.Code != http.StatusOK {
		if resp.Code == http.StatusNotFound {
			return nil, fmt.Errorf("status %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("API returned error: %s (code %d)", resp.Message, resp.Code)
	}
	if resp.Tweet == nil {
		return nil, fmt.Errorf("API response has no status payload")
	}

	if data, err := json.Marshal(resp.Tweet); err == nil {
		c.cache.Put(id, data)
	}
	return resp.Tweet, nil
}

// DownloadImage fetches raw image bytes. Any failure is returned as an error,
// caller decides whether it is fatal (it never is during rendering).
func (c *Client) DownloadImage(ctx context.Context, url string) ([]byte, error) {
	body, status, err := c.get(ctx, c.images, url, "")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("image request failed with HTTP %d", status)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, hc *http.Client, url, accept string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}
