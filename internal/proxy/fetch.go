package proxy

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const DefaultMaxBytes = 20 << 20

var ErrTooLarge = errors.New("proxy: resposta excede o limite")

// StatusError is a non-2xx answer from upstream (or from the proxy itself).
type StatusError struct {
	Status int
	URL    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d para %s", e.Status, e.URL)
}

// Fetcher downloads assets straight from their origin. Redirects follow the
// http.Client defaults.
type Fetcher struct {
	Client   *http.Client
	MaxBytes int64
}

// NewFetcher with timeout 0 leaves the client without a deadline; the
// request context still applies.
func NewFetcher(timeout time.Duration, maxBytes int64) *Fetcher {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Fetcher{
		Client:   &http.Client{Timeout: timeout},
		MaxBytes: maxBytes,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, target string) (string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "image/*,application/pdf,*/*;q=0.8")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", nil, &StatusError{Status: resp.StatusCode, URL: target}
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return "", nil, err
	}
	if int64(len(data)) > limit {
		return "", nil, ErrTooLarge
	}
	return resp.Header.Get("Content-Type"), data, nil
}

// Client fetches assets through a running proxy endpoint and decodes its
// base64 body.
type Client struct {
	Endpoint string
	HTTP     *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{Endpoint: endpoint, HTTP: &http.Client{Timeout: timeout}}
}

func (c *Client) Fetch(ctx context.Context, target string) (string, []byte, error) {
	endpoint, err := url.Parse(c.Endpoint)
	if err != nil {
		return "", nil, fmt.Errorf("proxy endpoint: %w", err)
	}
	q := endpoint.Query()
	q.Set("url", target)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", nil, err
	}
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", nil, &StatusError{Status: resp.StatusCode, URL: target}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, err
	}
	data, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace(body)))
	if err != nil {
		return "", nil, fmt.Errorf("proxy body: %w", err)
	}
	return resp.Header.Get("Content-Type"), data, nil
}
