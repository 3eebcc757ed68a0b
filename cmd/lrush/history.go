package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/peterh/liner"
)

// loadHistory reads the history file into the line editor. A missing file
// is not an error.
func loadHistory(state *liner.State, path string) error {
	if path == "" {
		return nil
	}

	f, err := os.Open(path) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	_, err = state.ReadHistory(f)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	return nil
}

// saveHistory replaces the history file atomically, so a crash or a second
// lrush exiting at the same time never leaves a truncated file.
func saveHistory(state *liner.State, path string) error {
	if path == "" {
		return nil
	}

	var buf bytes.Buffer

	_, err := state.WriteHistory(&buf)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	err = os.MkdirAll(filepath.Dir(path), 0o750)
	if err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	err = atomic.WriteFile(path, &buf)
	if err != nil {
		return fmt.Errorf("writing history: %w", err)
	}

	return nil
}
