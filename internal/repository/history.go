package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// historyKeep bounds the history file so it never grows without limit.
const historyKeep = 100

// HistoryEntry is one finished run as recorded in the processing history.
type HistoryEntry struct {
	RunID     string    `json:"run_id"`
	Timeframe string    `json:"timeframe"`
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
	Total     int       `json:"total"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	TimedOut  bool      `json:"timed_out"`
}

// RunHistory appends finished runs to a flat JSON file. The health checker
// reads the same file to judge pipeline staleness.
type RunHistory struct {
	path string
}

func NewRunHistory(path string) *RunHistory {
	return &RunHistory{path: path}
}

// Append records one run, keeping only the most recent entries.
func (h *RunHistory) Append(entry HistoryEntry) error {
	entries, err := h.Load()
	if err != nil {
		// a corrupt history file should not block recording new runs
		entries = nil
	}
	entries = append(entries, entry)
	if len(entries) > historyKeep {
		entries = entries[len(entries)-historyKeep:]
	}

	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	tmp := h.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp, h.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("finalize history: %w", err)
	}
	return nil
}

// Load returns all recorded runs, oldest first. A missing file is an empty
// history.
func (h *RunHistory) Load() ([]HistoryEntry, error) {
	b, err := os.ReadFile(h.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	var entries []HistoryEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	return entries, nil
}

// Last returns the most recent run, if any.
func (h *RunHistory) Last() (*HistoryEntry, int, error) {
	entries, err := h.Load()
	if err != nil || len(entries) == 0 {
		return nil, 0, err
	}
	return &entries[len(entries)-1], len(entries), nil
}
