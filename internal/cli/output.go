package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"blogia/blog-client/internal/apiclient"
)

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// describe renders an error the way a page banner would: the backend's
// message first, with the status or failure kind alongside.
func describe(err error) string {
	var statusErr *apiclient.HTTPStatusError
	var netErr *apiclient.NetworkError
	var validationErr *apiclient.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &statusErr):
		return fmt.Sprintf("%s (HTTP %d)", statusErr.Message, statusErr.Code)
	case errors.As(err, &netErr):
		return fmt.Sprintf("network error: %v", netErr.Err)
	default:
		return err.Error()
	}
}

func parseID(kind, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, raw)
	}
	return id, nil
}
