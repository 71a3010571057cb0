// Package history records rolled expressions to an append-only JSONL log,
// so a REPL session can replay or review what was rolled.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// Record is one logged roll.
type Record struct {
	Timestamp string `json:"timestamp"`
	Expr      string `json:"expr"`
	Result    string `json:"result"`
	Total     float64 `json:"total"`
	Comment   string  `json:"comment,omitempty"`
	Crit      string  `json:"crit,omitempty"`
}

// Store handles append-only storage of a roll log.
type Store struct {
	file *os.File
}

// NewStore opens or creates the file at path for appending lines.
func NewStore(path string) (*Store, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	return &Store{file: file}, nil
}

// Append writes r as one more line of the log.
func (s *Store) Append(r Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if _, err := s.file.Write(append(data, '\n')); err != nil {
		return err
	}
	return s.file.Sync()
}

// Load replays every logged record in file order.
func (s *Store) Load() ([]Record, error) {
	if _, err := s.file.Seek(0, 0); err != nil {
		return nil, err
	}
	var records []Record
	scanner := bufio.NewScanner(s.file)
	for scanner.Scan() {
		var r Record
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			return nil, fmt.Errorf("failed to decode history record: %w", err)
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Close handles safe shutdown.
func (s *Store) Close() error {
	return s.file.Close()
}
