// Package network provides the HTTP clients the widgets depend on.
// Currently that is just the URL-shortening endpoint used by the share
// popup.
package network

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Shortener exchanges a long map URL for a short one over HTTP+JSON.
type Shortener struct {
	httpClient *http.Client
	endpoint   string
	timeout    time.Duration
}

// ShortenerOption configures a Shortener.
type ShortenerOption func(*Shortener)

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) ShortenerOption {
	return func(s *Shortener) {
		s.timeout = d
	}
}

// WithEndpoint sets the shortening service URL.
func WithEndpoint(url string) ShortenerOption {
	return func(s *Shortener) {
		s.endpoint = url
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) ShortenerOption {
	return func(s *Shortener) {
		s.httpClient = c
	}
}

// NewShortener creates a shortener client with the given options.
func NewShortener(opts ...ShortenerOption) *Shortener {
	s := &Shortener{
		endpoint: "https://www.googleapis.com/urlshortener/v1/url",
		timeout:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.httpClient == nil {
		s.httpClient = &http.Client{Timeout: s.timeout}
	}
	return s
}

// shortenRequest is the JSON body sent to the service.
type shortenRequest struct {
	LongURL string `json:"longUrl"`
}

// shortenResponse is the JSON body returned by the service.
type shortenResponse struct {
	ID string `json:"id"`
}

// Shorten requests a short URL for longURL.
func (s *Shortener) Shorten(ctx context.Context, longURL string) (string, error) {
	body, err := json.Marshal(shortenRequest{LongURL: longURL})
	if err != nil {
		return "", fmt.Errorf("encode shorten request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build shorten request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("shorten %q: %w", longURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("shorten %q: unexpected status %s", longURL, resp.Status)
	}

	var decoded shortenResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode shorten response: %w", err)
	}
	if decoded.ID == "" {
		return "", fmt.Errorf("shorten %q: empty id in response", longURL)
	}
	return decoded.ID, nil
}
