/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package figma imports into Figma files over the variables REST API.
//
// The Client wraps the two endpoints the importer needs: reading a
// file's local variables and posting a batch of variable changes. The
// Host layers staged-write semantics on top of it.
package figma

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"bennypowers.dev/mishtanim/host"
	"bennypowers.dev/mishtanim/internal/version"
)

const (
	// DefaultBaseURL is the Figma REST API root.
	DefaultBaseURL = "https://api.figma.com"

	// DefaultTimeout is the maximum time to wait for one API call.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxResponseSize is the maximum allowed response size (10 MB).
	DefaultMaxResponseSize int64 = 10 * 1024 * 1024

	// DefaultCacheTTL is how long a fetched file snapshot serves reads
	// before the next read refetches.
	DefaultCacheTTL = 30 * time.Second

	// cacheSize is the number of file snapshots kept warm.
	cacheSize = 16
)

// ClientOptions configures a Client. The zero value of each field
// selects a sensible default; Token is required for real API calls.
type ClientOptions struct {
	// BaseURL overrides the API root, mainly for tests.
	BaseURL string

	// Token is the personal access token sent as X-Figma-Token.
	Token string

	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client

	// MaxResponseSize caps API response bodies.
	MaxResponseSize int64

	// CacheTTL bounds file snapshot reuse.
	CacheTTL time.Duration
}

// Client calls the Figma variables REST API with size limiting and a
// TTL-bounded snapshot cache, so watch and serve loops do not refetch
// the same file on every run.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	maxSize int64
	cache   *expirable.LRU[string, *FileVariables]
}

// NewClient creates a Client.
func NewClient(opts ClientOptions) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	maxSize := opts.MaxResponseSize
	if maxSize <= 0 {
		maxSize = DefaultMaxResponseSize
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Client{
		baseURL: baseURL,
		token:   opts.Token,
		client:  httpClient,
		maxSize: maxSize,
		cache:   expirable.NewLRU[string, *FileVariables](cacheSize, nil, ttl),
	}
}

// LocalVariables fetches the file's local variable state. A fresh
// cached snapshot is served without a network round trip; callers that
// mutate the result must copy it first.
func (c *Client) LocalVariables(ctx context.Context, fileKey string) (*FileVariables, error) {
	if cached, ok := c.cache.Get(fileKey); ok {
		return cached, nil
	}

	body, err := c.do(ctx, http.MethodGet, "/v1/files/"+url.PathEscape(fileKey)+"/variables/local", nil)
	if err != nil {
		return nil, err
	}

	var resp localVariablesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding variables for file %s: %w", fileKey, err)
	}
	if resp.Error {
		return nil, fmt.Errorf("figma api error %d: %s", resp.Status, resp.Message)
	}

	fv := toFileVariables(&resp)
	c.cache.Add(fileKey, fv)
	return fv, nil
}

// PostVariables applies a batch of staged changes to the file and
// returns the mapping from temp IDs to the real IDs the file assigned.
// Any cached snapshot for the file is dropped.
func (c *Client) PostVariables(ctx context.Context, fileKey string, payload *ChangePayload) (map[string]string, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding changes for file %s: %w", fileKey, err)
	}

	body, err := c.do(ctx, http.MethodPost, "/v1/files/"+url.PathEscape(fileKey)+"/variables", bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	c.cache.Remove(fileKey)

	var resp postVariablesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding change response for file %s: %w", fileKey, err)
	}
	if resp.Error {
		return nil, fmt.Errorf("figma api error %d: %s", resp.Status, resp.Message)
	}
	return resp.Meta.TempIDToRealID, nil
}

// Invalidate drops any cached snapshot for the file.
func (c *Client) Invalidate(fileKey string) {
	c.cache.Remove(fileKey)
}

// do performs one API call and returns the response body. Transport
// failures wrap host.ErrUnavailable; API failures carry the error
// envelope's message.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", path, err)
	}
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("X-Figma-Token", c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("timeout calling %s: %w", path, host.ErrUnavailable)
		}
		return nil, fmt.Errorf("calling %s: %v: %w", path, err, host.ErrUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	limitedReader := io.LimitReader(resp.Body, c.maxSize+1)
	content, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", path, err)
	}
	if int64(len(content)) > c.maxSize {
		return nil, fmt.Errorf("response from %s exceeds maximum size of %d bytes", path, c.maxSize)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, content, path)
	}
	return content, nil
}

// apiError shapes a non-200 response into an error, preferring the
// envelope's message over the bare status.
func apiError(status int, body []byte, path string) error {
	var envelope struct {
		Message string `json:"message"`
		Err     string `json:"err"`
	}
	message := ""
	if err := json.Unmarshal(body, &envelope); err == nil {
		message = envelope.Message
		if message == "" {
			message = envelope.Err
		}
	}
	if message == "" {
		message = http.StatusText(status)
	}
	if status >= http.StatusInternalServerError || status == http.StatusTooManyRequests {
		return fmt.Errorf("figma api %d calling %s: %s: %w", status, path, message, host.ErrUnavailable)
	}
	return fmt.Errorf("figma api %d calling %s: %s", status, path, message)
}
