package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"blogia/blog-client/internal/apiclient"
)

func main() {
	backendURL := os.Getenv("BACKEND_URL")
	if backendURL == "" {
		backendURL = "http://localhost:8000"
	}

	timeout := 60 * time.Second
	if raw := os.Getenv("WAIT_FOR_BACKEND_TIMEOUT_SEC"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			fmt.Fprintf(os.Stderr, "invalid WAIT_FOR_BACKEND_TIMEOUT_SEC: %q\n", raw)
			os.Exit(2)
		}
		timeout = time.Duration(secs) * time.Second
	}

	client, err := apiclient.New(backendURL, nil, apiclient.WithTimeout(2*time.Second))
	if err != nil {
		fmt.Fprintf(os.Stderr, "create client: %v\n", err)
		os.Exit(2)
	}

	deadline := time.Now().Add(timeout)
	for {
		err := client.Health(context.Background())
		if err == nil {
			fmt.Println("backend ready")
			return
		}
		if time.Now().After(deadline) {
			fmt.Fprintf(os.Stderr, "backend not ready within %s: %v\n", timeout, err)
			os.Exit(1)
		}
		time.Sleep(2 * time.Second)
	}
}
