package proxy

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blogia/blog-client/internal/audit"
)

func loginBackend(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected backend path %q", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm() error: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		if r.PostForm.Get("username") != "alice" || r.PostForm.Get("password") != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Incorrect username or password"}`)
			return
		}
		_, _ = io.WriteString(w, `{"access_token":"abc","token_type":"bearer"}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoginConvertsJSONToForm(t *testing.T) {
	f, rec := newForwarder(t, loginBackend(t).URL, false)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"alice","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	f.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %q", rr.Code, rr.Body.String())
	}
	var tok map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &tok); err != nil || tok["access_token"] != "abc" {
		t.Fatalf("unexpected login body %q err=%v", rr.Body.String(), err)
	}
	if e := rec.last(); e.Route != "login" || e.Outcome != audit.OutcomeForwarded {
		t.Fatalf("unexpected audit event %+v", e)
	}
}

func TestLoginRelaysBackendStatus(t *testing.T) {
	f, _ := newForwarder(t, loginBackend(t).URL, false)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"alice","password":"nope"}`))
	rr := httptest.NewRecorder()
	f.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized || !strings.Contains(rr.Body.String(), "Incorrect username or password") {
		t.Fatalf("expected 401 relayed, got %d %q", rr.Code, rr.Body.String())
	}
}

func TestLoginFormBodyPassesThrough(t *testing.T) {
	f, _ := newForwarder(t, loginBackend(t).URL, false)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("username=alice&password=pw&grant_type=password"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	f.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "abc") {
		t.Fatalf("expected form login relayed, got %d %q", rr.Code, rr.Body.String())
	}
}

func TestLoginRejectsOtherMethods(t *testing.T) {
	f, rec := newForwarder(t, "http://localhost:1", false)

	rr := httptest.NewRecorder()
	f.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/auth/login", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rr.Body.Bytes(), &body)
	if body["error"] != "Method not allowed" {
		t.Fatalf("unexpected body %v", body)
	}
	if rec.last().Outcome != audit.OutcomeRejected {
		t.Fatalf("expected rejected audit outcome")
	}
}

func TestLoginMalformedBodyFails(t *testing.T) {
	f, _ := newForwarder(t, loginBackend(t).URL, false)

	rr := httptest.NewRecorder()
	f.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("not json")))

	assertFailureEnvelope(t, rr, "Login request failed")
}
