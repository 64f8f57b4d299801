package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	OutcomeForwarded = "forwarded"
	OutcomeFailed    = "failed"
	OutcomeRejected  = "rejected"
)

// Event is one proxied request as written to the audit file.
type Event struct {
	At         string `json:"at"`
	RequestID  string `json:"request_id,omitempty"`
	Route      string `json:"route"`
	Method     string `json:"method"`
	Path       string `json:"path"`
	Status     int    `json:"status"`
	Outcome    string `json:"outcome"`
	DurationMs int64  `json:"duration_ms"`
	Detail     string `json:"detail,omitempty"`
}

// Logger appends events to a JSON-lines file. A nil Logger, or one without
// a path, drops everything.
type Logger struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

func NewLogger(path string) *Logger {
	return &Logger{path: path, now: time.Now}
}

func (l *Logger) Record(e Event) error {
	if l == nil || l.path == "" {
		return nil
	}
	if e.At == "" {
		e.At = l.now().UTC().Format(time.RFC3339)
	}
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("mkdir audit log dir: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("write audit log entry: %w", err)
	}
	return nil
}
