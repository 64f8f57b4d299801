package tokenstore

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestRedisStoreRoundTrip(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL is not set")
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("ParseURL() error: %v", err)
	}
	client := redis.NewClient(opt)
	defer client.Close()

	store, err := NewRedisStore(client, "token-test")
	if err != nil {
		t.Fatalf("NewRedisStore() error: %v", err)
	}
	_ = store.Set(context.Background(), "")

	exerciseStore(t, store)
}

func TestNewRedisStoreValidates(t *testing.T) {
	if _, err := NewRedisStore(nil, "token"); err == nil {
		t.Fatalf("expected error for nil client")
	}
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()
	if _, err := NewRedisStore(client, ""); err != ErrKeyRequired {
		t.Fatalf("expected ErrKeyRequired, got %v", err)
	}
}
