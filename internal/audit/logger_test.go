package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoggerAppendsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	l := NewLogger(path)

	if err := l.Success("admin", "reset-passkey", "Amith", ""); err != nil {
		t.Fatalf("Success() error: %v", err)
	}
	if err := l.Failure("Amith", "clear-entries", "Amith", "passkey check failed"); err != nil {
		t.Fatalf("Failure() error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open audit log: %v", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("decode audit line: %v", err)
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan audit log: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Action != "reset-passkey" || events[0].Outcome != "success" {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[1].Outcome != "failure" || events[1].Detail == "" {
		t.Fatalf("unexpected second event: %+v", events[1])
	}
}

func TestLoggerWithoutPathIsNoop(t *testing.T) {
	l := NewLogger("")
	if err := l.Success("a", "b", "c", ""); err != nil {
		t.Fatalf("expected nil for pathless logger, got %v", err)
	}
}
