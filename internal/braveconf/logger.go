package braveconf

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// configDirOverride is set by tests to redirect DataDir.
var configDirOverride string

// DataDir returns ~/.local/share/bravesearchd, creating it if needed.
func DataDir() (string, error) {
	if configDirOverride != "" {
		if err := os.MkdirAll(configDirOverride, 0o700); err != nil {
			return "", err
		}
		return configDirOverride, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".local", "share", "bravesearchd")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// Logger writes timestamped log lines to ~/.local/share/bravesearchd/bravesearchd.log.
// Stdout carries MCP protocol traffic, so the server never writes
// diagnostics there; fatal startup errors go to stderr, and everything else
// is recorded only in this file.
type Logger struct {
	mu   sync.Mutex
	file *os.File
}

func logFilePath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "bravesearchd.log"), nil
}

// LogPath returns the log file path, or "" if it could not be resolved.
func LogPath() string {
	p, err := logFilePath()
	if err != nil {
		return ""
	}
	return p
}

// NewLogger creates a logger that appends to the process log file.
func NewLogger() *Logger {
	l := &Logger{}

	p, err := logFilePath()
	if err != nil {
		return l
	}

	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return l
	}

	l.file = f
	return l
}

// Printf writes a timestamped log line.
func (l *Logger) Printf(format string, args ...any) {
	if l.file == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	ts := time.Now().UTC().Format("2006-01-02T15:04:05Z")
	fmt.Fprintf(l.file, ts+" "+format+"\n", args...)
}

// Close closes the log file.
func (l *Logger) Close() {
	if l.file != nil {
		l.file.Close()
	}
}
