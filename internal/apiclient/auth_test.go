package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestLoginPostsFormAndPersistsToken(t *testing.T) {
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			t.Errorf("expected form content type, got %q", r.Header.Get("Content-Type"))
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm() error: %v", err)
		}
		if r.PostForm.Get("username") != "alice" || r.PostForm.Get("password") != "s3cret" {
			t.Errorf("unexpected credentials %v", r.PostForm)
		}
		if r.PostForm.Get("grant_type") != "password" {
			t.Errorf("expected password grant, got %q", r.PostForm.Get("grant_type"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"abc123","token_type":"bearer"}`)
	}))

	tok, err := c.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if tok.AccessToken != "abc123" || tok.TokenType != "bearer" {
		t.Fatalf("unexpected token %+v", tok)
	}
	if c.Token() != "abc123" {
		t.Fatalf("expected in-memory token abc123, got %q", c.Token())
	}
	stored, found, _ := store.Get(context.Background())
	if !found || stored != "abc123" {
		t.Fatalf("expected stored token abc123, got %q found=%v", stored, found)
	}
}

func TestLoginFailureCarriesDetail(t *testing.T) {
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Incorrect username or password"}`)
	}))

	_, err := c.Login(context.Background(), "alice", "wrong")
	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *HTTPStatusError, got %T %v", err, err)
	}
	if statusErr.Code != http.StatusUnauthorized || statusErr.Message != "Incorrect username or password" {
		t.Fatalf("unexpected error %+v", statusErr)
	}
	if !IsUnauthorized(err) {
		t.Fatalf("expected IsUnauthorized")
	}
	if _, found, _ := store.Get(context.Background()); found {
		t.Fatalf("expected nothing stored after failed login")
	}
}

func TestRegisterValidatesBeforeRequest(t *testing.T) {
	called := false
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := c.Register(context.Background(), RegisterRequest{
		Username:        "bob",
		Email:           "bob@example.com",
		Password:        "one",
		ConfirmPassword: "two",
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T %v", err, err)
	}
	if vErr.Message != "Passwords do not match" {
		t.Fatalf("unexpected message %q", vErr.Message)
	}
	if called {
		t.Fatalf("expected no request for invalid registration")
	}
}

func TestRegisterSendsJSONWithoutAuth(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("expected no auth header on register")
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if _, leaked := body["ConfirmPassword"]; leaked {
			t.Errorf("confirmation must not be sent")
		}
		if body["username"] != "bob" || body["full_name"] != "Bob B" {
			t.Errorf("unexpected body %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":7,"username":"bob","email":"bob@example.com","is_active":true}`)
	}))
	c.UseToken("stale")

	u, err := c.Register(context.Background(), RegisterRequest{
		Username:        "bob",
		Email:           "bob@example.com",
		FullName:        "Bob B",
		Password:        "pw",
		ConfirmPassword: "pw",
	})
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if u.ID != 7 || u.Username != "bob" || !u.IsActive {
		t.Fatalf("unexpected user %+v", u)
	}
}
