package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"blogia/blog-client/internal/observability"
	"blogia/blog-client/internal/tokenstore"
)

type BodyKind int

const (
	BodyText BodyKind = iota
	BodyJSON
)

// Body is the negotiated payload of a successful response.
type Body struct {
	Kind BodyKind
	JSON json.RawMessage
	Text string
}

type Response struct {
	Status int
	Body   Body
}

// Decode unmarshals a JSON body into dst.
func (r *Response) Decode(dst any) error {
	if r.Body.Kind != BodyJSON {
		return ErrNotJSON
	}
	if err := json.Unmarshal(r.Body.JSON, dst); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

type RequestOptions struct {
	Query    url.Values
	Body     any
	SkipAuth bool
}

// Client talks to the blog backend. The bearer token is held in memory and
// mirrored to a tokenstore.Store by SetToken.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	store      tokenstore.Store
	log        *slog.Logger

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

func New(baseURL string, store tokenstore.Store, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http or https, got %q", baseURL)
	}
	if store == nil {
		store = tokenstore.NewMemoryStore()
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		store:      store,
		log:        observability.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// UseToken replaces the in-memory token without touching the store.
func (c *Client) UseToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// SetToken replaces the in-memory token and persists it. An empty token
// removes the stored one.
func (c *Client) SetToken(ctx context.Context, token string) error {
	c.UseToken(token)
	if err := c.store.Set(ctx, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

// LoadToken reads the stored token into memory and reports whether one was found.
func (c *Client) LoadToken(ctx context.Context) (bool, error) {
	tok, found, err := c.store.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("load token: %w", err)
	}
	c.UseToken(tok)
	return found && tok != "", nil
}

func (c *Client) Do(ctx context.Context, method, path string, opts RequestOptions) (*Response, error) {
	target := c.baseURL + path
	if len(opts.Query) > 0 {
		target += "?" + opts.Query.Encode()
	}

	var body io.Reader
	if opts.Body != nil {
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if !opts.SkipAuth {
		if tok := c.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	return c.send(req)
}

func (c *Client) send(req *http.Request) (*Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("api request failed", "method", req.Method, "path", req.URL.Path, "error", err)
		return nil, &NetworkError{Method: req.Method, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Method: req.Method, URL: req.URL.String(), Err: err}
	}

	c.log.Debug("api request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPStatusError{Code: resp.StatusCode, Message: detailMessage(raw)}
	}

	b, err := negotiate(resp.Header.Get("Content-Type"), raw)
	if err != nil {
		return nil, err
	}
	return &Response{Status: resp.StatusCode, Body: b}, nil
}

func negotiate(contentType string, raw []byte) (Body, error) {
	if strings.Contains(strings.ToLower(contentType), "application/json") && len(bytes.TrimSpace(raw)) > 0 {
		if !json.Valid(raw) {
			return Body{}, ErrInvalidJSON
		}
		return Body{Kind: BodyJSON, JSON: json.RawMessage(raw)}, nil
	}
	return Body{Kind: BodyText, Text: string(raw)}, nil
}

// call issues a request and decodes a JSON body into dst when dst is non-nil.
func (c *Client) call(ctx context.Context, method, path string, opts RequestOptions, dst any) error {
	resp, err := c.Do(ctx, method, path, opts)
	if err != nil {
		return err
	}
	if dst == nil {
		return nil
	}
	return resp.Decode(dst)
}

func pageQuery(skip, limit int) url.Values {
	q := url.Values{}
	q.Set("skip", fmt.Sprint(skip))
	q.Set("limit", fmt.Sprint(limit))
	return q
}

func limitQuery(limit int) url.Values {
	q := url.Values{}
	q.Set("limit", fmt.Sprint(limit))
	return q
}
