package eventlog

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileLog stores one JSON event per line in a JSONL file.
type FileLog struct {
	path string
	mu   sync.Mutex
}

func NewFileLog(path string) *FileLog {
	return &FileLog{path: path}
}

func (l *FileLog) Append(ctx context.Context, payload json.RawMessage) (time.Time, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	receivedAt := time.Now().UTC()
	line, err := json.Marshal(Event{ReceivedAt: receivedAt, Payload: payload})
	if err != nil {
		return time.Time{}, fmt.Errorf("marshal event: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return time.Time{}, fmt.Errorf("create event log dir: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return time.Time{}, fmt.Errorf("open event log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return time.Time{}, fmt.Errorf("append event: %w", err)
	}
	return receivedAt, nil
}

func (l *FileLog) Replay(ctx context.Context) ([]Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open event log: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev Event
		if err := json.Unmarshal(line, &ev); err != nil {
			slog.Warn("skipping corrupt event log line", "path", l.path, "line", lineNo, "error", err)
			continue
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read event log: %w", err)
	}
	return events, nil
}
