// Package history persists poll results: a JSON document grouped by
// destination plus a plaintext error log.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
)

// Record is one poll result for a destination. Append-only.
type Record struct {
	ID           string          `json:"id"`
	Time         time.Time       `json:"time"`
	Price        decimal.Decimal `json:"price"`
	Carrier      string          `json:"carrier"`
	Origin       string          `json:"origin"`
	Destination  string          `json:"destination"`
	Departure    string          `json:"departure"`
	Arrival      string          `json:"arrival"`
	Duration     string          `json:"duration"`
	Stops        int             `json:"stops"`
	FlightNumber string          `json:"flight_number"`
}

// Store keeps the full history as a single JSON document keyed by
// destination code, insertion order preserved within each key. Every append
// reads, mutates, and rewrites the whole file; not safe for concurrent
// writers.
type Store struct {
	Path string
}

func (s Store) Load() (map[string][]Record, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string][]Record{}, nil
		}
		return nil, err
	}
	data := map[string][]Record{}
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("parse history: %w", err)
	}
	return data, nil
}

func (s Store) Append(dest string, r Record) error {
	data, err := s.Load()
	if err != nil {
		return err
	}
	data[dest] = append(data[dest], r)
	return s.save(data)
}

func (s Store) save(data map[string][]Record) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(s.Path, b, 0o600)
}

// ErrorLog appends one timestamped line per event:
// [RFC3339 timestamp] [SOURCE] message
type ErrorLog struct {
	Path string
}

func (l ErrorLog) Append(source, message string) error {
	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "[%s] [%s] %s\n", time.Now().Format(time.RFC3339), source, message)
	return err
}
