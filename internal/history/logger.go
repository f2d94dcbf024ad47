// Package history records executed pipelines in an append-only JSONL log.
package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger is an append-only history writer.
type Logger struct {
	mu       sync.Mutex
	path     string
	seq      uint64
	maxBytes int64 // 0 disables the size cap
}

// NewLogger opens or creates a history log at the given path. It reads
// the last entry to resume the sequence counter. When maxSizeMB is
// positive, a log that reaches the cap is rotated to path+".1" before
// the next write; one previous generation is kept.
func NewLogger(path string, maxSizeMB int) (*Logger, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	l := &Logger{path: path}
	if maxSizeMB > 0 {
		l.maxBytes = int64(maxSizeMB) * 1024 * 1024
	}

	if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
		lines := splitLines(data)
		if len(lines) > 0 {
			var last Entry
			if err := json.Unmarshal(lines[len(lines)-1], &last); err == nil {
				l.seq = last.Seq
			}
		}
	}

	return l, nil
}

// Log appends an entry for one executed pipeline.
func (l *Logger) Log(command string, exitCode int, errMsg string, duration time.Duration, cwd string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	entry := Entry{
		ID:       uuid.NewString(),
		Seq:      l.seq,
		Time:     time.Now().UTC(),
		Command:  command,
		ExitCode: exitCode,
		Error:    errMsg,
		Duration: float64(duration.Microseconds()) / 1000.0,
		Cwd:      cwd,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}
	data = append(data, '\n')

	if l.maxBytes > 0 {
		if fi, err := os.Stat(l.path); err == nil && fi.Size() >= l.maxBytes {
			if err := os.Rename(l.path, l.path+".1"); err != nil {
				return fmt.Errorf("rotate history log: %w", err)
			}
		}
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("open history log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write history entry: %w", err)
	}
	return nil
}

// Tail returns up to n most recent entries, oldest first. Lines that fail
// to parse are skipped.
func (l *Logger) Tail(n int) ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history log: %w", err)
	}

	var entries []Entry
	for _, line := range splitLines(data) {
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

// Path returns the history log file path.
func (l *Logger) Path() string {
	return l.path
}

func splitLines(data []byte) [][]byte {
	var lines [][]byte
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		if len(line) > 0 {
			lines = append(lines, line)
		}
	}
	return lines
}
