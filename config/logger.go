package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// SetupLogger points the standard logger at stderr, or at path when set. The
// returned closer releases the log file.
func SetupLogger(path string) (io.Closer, error) {
	log.SetFlags(log.Ldate | log.Ltime)
	if path == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
