package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event is one line of the append-only action log. Account is the directory
// entry the action touched, which may differ from the actor (admin resets).
type Event struct {
	At      string `json:"at"`
	Actor   string `json:"actor"`
	Action  string `json:"action"`
	Account string `json:"account,omitempty"`
	Outcome string `json:"outcome"`
	Detail  string `json:"detail,omitempty"`
}

type Logger struct {
	path string
	mu   sync.Mutex
}

func NewLogger(path string) *Logger {
	return &Logger{path: path}
}

func (l *Logger) Success(actor, action, account, detail string) error {
	return l.log(actor, action, account, "success", detail)
}

func (l *Logger) Failure(actor, action, account, detail string) error {
	return l.log(actor, action, account, "failure", detail)
}

func (l *Logger) log(actor, action, account, outcome, detail string) error {
	if l == nil || l.path == "" {
		return nil
	}
	e := Event{
		At:      time.Now().UTC().Format(time.RFC3339),
		Actor:   actor,
		Action:  action,
		Account: account,
		Outcome: outcome,
		Detail:  detail,
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
