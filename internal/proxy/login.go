package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"blogia/blog-client/internal/audit"
)

// serveLogin turns a JSON {username, password} body into the form post the
// backend's token endpoint expects. Form bodies are relayed as they are.
func (f *Forwarder) serveLogin(w http.ResponseWriter, r *http.Request) {
	if f.cors {
		setCORSHeaders(w.Header())
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
	}

	start := time.Now()
	if r.Method != http.MethodPost {
		f.record(r, "login", http.StatusMethodNotAllowed, audit.OutcomeRejected, start, "")
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	if isForm(r.Header.Get("Content-Type")) {
		status, err := f.forward(w, r, f.backend+"/auth/login")
		if err != nil {
			f.fail(w, r, "login", start, "Login request failed", err)
			return
		}
		f.record(r, "login", status, audit.OutcomeForwarded, start, "")
		return
	}

	status, err := f.loginWithJSON(w, r)
	if err != nil {
		f.fail(w, r, "login", start, "Login request failed", err)
		return
	}
	f.record(r, "login", status, audit.OutcomeForwarded, start, "")
}

func (f *Forwarder) loginWithJSON(w http.ResponseWriter, r *http.Request) (int, error) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		return 0, fmt.Errorf("decode login body: %w", err)
	}

	form := url.Values{}
	form.Set("username", creds.Username)
	form.Set("password", creds.Password)

	ctx := r.Context()
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.backend+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return 0, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		req.Header.Set("X-Request-Id", rid)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read login response: %w", err)
	}
	if !json.Valid(raw) {
		return 0, errors.New("backend returned a non-JSON login response")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(raw)
	return resp.StatusCode, nil
}

func isForm(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}
