package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"blogia/blog-client/internal/audit"
	"blogia/blog-client/internal/observability"
)

var errInvalidBackendJSON = errors.New("backend returned invalid JSON")

// Request headers never relayed upstream.
var strippedRequestHeaders = map[string]struct{}{
	"host":                    {},
	"connection":              {},
	"keep-alive":              {},
	"proxy-connection":        {},
	"proxy-authorization":     {},
	"te":                      {},
	"trailer":                 {},
	"transfer-encoding":       {},
	"upgrade":                 {},
	"content-length":          {},
	"accept-encoding":         {},
	"x-forwarded-for":         {},
	"x-forwarded-proto":       {},
	"x-forwarded-host":        {},
	"x-real-ip":               {},
	"x-vercel-id":             {},
	"x-vercel-forwarded-for":  {},
	"x-vercel-deployment-url": {},
	"x-vercel-proxied-for":    {},
}

var forwardedResponseHeaders = []string{"Content-Type", "Cache-Control", "ETag"}

type Config struct {
	BackendURL string
	Prefix     string
	CORS       bool
	Timeout    time.Duration
}

// Recorder receives one event per proxied request.
type Recorder interface {
	Record(e audit.Event) error
}

// Forwarder relays requests under Prefix to the backend, path and query
// unchanged.
type Forwarder struct {
	backend string
	prefix  string
	cors    bool
	timeout time.Duration
	client  *http.Client
	audit   Recorder
	log     *slog.Logger
}

type Option func(*Forwarder)

func WithHTTPClient(hc *http.Client) Option {
	return func(f *Forwarder) {
		if hc != nil {
			f.client = hc
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(f *Forwarder) {
		f.audit = r
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(f *Forwarder) {
		if log != nil {
			f.log = log
		}
	}
}

func NewForwarder(cfg Config, opts ...Option) (*Forwarder, error) {
	backend := strings.TrimRight(strings.TrimSpace(cfg.BackendURL), "/")
	if backend == "" {
		return nil, fmt.Errorf("backend url is required")
	}
	u, err := url.Parse(backend)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend url must be http or https, got %q", cfg.BackendURL)
	}

	prefix := strings.TrimRight(cfg.Prefix, "/")
	if prefix == "" {
		prefix = "/api"
	}
	if !strings.HasPrefix(prefix, "/") {
		return nil, fmt.Errorf("prefix must start with /")
	}

	f := &Forwarder{
		backend: backend,
		prefix:  prefix,
		cors:    cfg.CORS,
		timeout: cfg.Timeout,
		client: &http.Client{
			// Backend redirects go back to the caller unfollowed.
			CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
		},
		log: observability.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func (f *Forwarder) Prefix() string {
	return f.prefix
}

// Handler serves the catch-all route plus the dedicated login route.
func (f *Forwarder) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(f.prefix+"/auth/login", f.serveLogin)
	mux.Handle(f.prefix+"/", f)
	return mux
}

func (f *Forwarder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.cors {
		setCORSHeaders(w.Header())
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
	}

	start := time.Now()
	target := f.targetURL(r)
	status, err := f.forward(w, r, target)
	if err != nil {
		f.fail(w, r, "proxy", start, "Proxy request failed", err)
		return
	}
	f.record(r, "proxy", status, audit.OutcomeForwarded, start, "")
}

// targetURL maps {prefix}/<path>?<query> to {backend}/<path>?<query>. The
// raw query is passed through untouched so repeated keys keep their order.
func (f *Forwarder) targetURL(r *http.Request) string {
	p := strings.TrimPrefix(r.URL.EscapedPath(), f.prefix)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	target := f.backend + p
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	return target
}

func (f *Forwarder) forward(w http.ResponseWriter, r *http.Request, target string) (int, error) {
	var body io.Reader
	if r.Method != http.MethodGet && r.Method != http.MethodHead && r.Body != nil {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			return 0, fmt.Errorf("read request body: %w", err)
		}
		if len(b) > 0 {
			body = bytes.NewReader(b)
		}
	}

	ctx := r.Context()
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return 0, fmt.Errorf("build backend request: %w", err)
	}
	copyRequestHeaders(req.Header, r.Header)
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read backend response: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if isJSON(contentType) && len(bytes.TrimSpace(raw)) > 0 && !json.Valid(raw) {
		return 0, errInvalidBackendJSON
	}

	for _, h := range forwardedResponseHeaders {
		if v := resp.Header.Get(h); v != "" {
			w.Header().Set(h, v)
		}
	}
	if contentType == "" && len(raw) > 0 {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.WriteHeader(resp.StatusCode)
	if r.Method != http.MethodHead {
		_, _ = w.Write(raw)
	}
	return resp.StatusCode, nil
}

func copyRequestHeaders(dst, src http.Header) {
	// Headers named in Connection are hop-by-hop for this request only.
	dropped := map[string]struct{}{}
	for _, v := range src.Values("Connection") {
		for _, name := range strings.Split(v, ",") {
			if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
				dropped[name] = struct{}{}
			}
		}
	}

	for name, values := range src {
		lower := strings.ToLower(name)
		if _, ok := strippedRequestHeaders[lower]; ok {
			continue
		}
		if _, ok := dropped[lower]; ok {
			continue
		}
		for _, v := range values {
			dst.Add(name, v)
		}
	}
}

func isJSON(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "application/json")
}

func (f *Forwarder) fail(w http.ResponseWriter, r *http.Request, route string, start time.Time, summary string, err error) {
	f.log.Error("proxy request failed",
		"route", route,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", r.Header.Get("X-Request-Id"),
		"error", err,
	)
	f.record(r, route, http.StatusInternalServerError, audit.OutcomeFailed, start, err.Error())
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   summary,
		"message": err.Error(),
	})
}

func (f *Forwarder) record(r *http.Request, route string, status int, outcome string, start time.Time, detail string) {
	if f.audit == nil {
		return
	}
	err := f.audit.Record(audit.Event{
		RequestID:  r.Header.Get("X-Request-Id"),
		Route:      route,
		Method:     r.Method,
		Path:       strings.TrimPrefix(r.URL.Path, f.prefix),
		Status:     status,
		Outcome:    outcome,
		DurationMs: time.Since(start).Milliseconds(),
		Detail:     detail,
	})
	if err != nil {
		f.log.Warn("audit record failed", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
