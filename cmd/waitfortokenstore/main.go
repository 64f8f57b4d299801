package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"blogia/blog-client/internal/config"
	"blogia/blog-client/internal/tokenstore"
)

// Blocks until the configured token store (TOKEN_STORE) accepts connections.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(2)
	}

	timeout := 60 * time.Second
	if raw := os.Getenv("WAIT_FOR_TOKEN_STORE_TIMEOUT_SEC"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			fmt.Fprintf(os.Stderr, "invalid WAIT_FOR_TOKEN_STORE_TIMEOUT_SEC: %q\n", raw)
			os.Exit(2)
		}
		timeout = time.Duration(secs) * time.Second
	}

	deadline := time.Now().Add(timeout)
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, closer, err := tokenstore.Open(ctx, cfg.TokenStore)
		cancel()
		if err == nil {
			_ = closer.Close()
			fmt.Printf("%s token store ready\n", cfg.TokenStore.Backend)
			return
		}
		if time.Now().After(deadline) {
			fmt.Fprintf(os.Stderr, "%s token store not ready within %s: %v\n", cfg.TokenStore.Backend, timeout, err)
			os.Exit(1)
		}
		time.Sleep(2 * time.Second)
	}
}
