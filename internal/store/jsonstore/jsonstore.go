// Package jsonstore keeps a whole record collection in one JSON array file.
// Every Load reads the full file and every Save rewrites it.
// No locking; fine for a local single-user CLI.
package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	applog "github.com/idilsaglam/expense-tracker/internal/log"
)

// Record is anything the store can persist.
type Record interface {
	RecordID() int
	Validate() error
}

// ParseError reports a file that exists but does not hold valid records.
type ParseError struct {
	Path  string
	Index int // -1 when the array itself could not be decoded
	Err   error
}

func (e *ParseError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("parse %s: record %d: %v", e.Path, e.Index, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type Store[T Record] struct {
	path string
	log  *applog.Logger
}

func New[T Record](path string, logger *applog.Logger) *Store[T] {
	if logger == nil {
		logger = applog.Discard()
	}
	return &Store[T]{
		path: path,
		log:  logger.WithComponent(applog.ComponentStorage).With(applog.FieldPath, path),
	}
}

// Load returns an empty list when the file is missing or blank.
func (s *Store[T]) Load() ([]T, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []T{}, nil
		}
		s.log.Error("read failed", applog.FieldOperation, applog.OpLoad, applog.FieldError, err)
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(b, &records); err != nil {
		perr := &ParseError{Path: s.path, Index: -1, Err: err}
		s.log.Error("decode failed", applog.FieldOperation, applog.OpLoad, applog.FieldError, err)
		return nil, perr
	}
	if records == nil {
		records = []T{}
	}
	seen := make(map[int]int, len(records))
	for i, r := range records {
		if err := r.Validate(); err != nil {
			s.log.Error("invalid record", applog.FieldOperation, applog.OpLoad, "index", i, applog.FieldError, err)
			return nil, &ParseError{Path: s.path, Index: i, Err: err}
		}
		if prev, dup := seen[r.RecordID()]; dup {
			err := fmt.Errorf("duplicate id %d (also record %d)", r.RecordID(), prev)
			s.log.Error("invalid record", applog.FieldOperation, applog.OpLoad, "index", i, applog.FieldError, err)
			return nil, &ParseError{Path: s.path, Index: i, Err: err}
		}
		seen[r.RecordID()] = i
	}
	return records, nil
}

// Save overwrites the file with the full list.
func (s *Store[T]) Save(records []T) error {
	if records == nil {
		records = []T{}
	}
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		s.log.Error("encode failed", applog.FieldOperation, applog.OpSave, applog.FieldError, err)
		return fmt.Errorf("json marshal: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.log.Error("mkdir failed", applog.FieldOperation, applog.OpSave, applog.FieldError, err)
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		s.log.Error("write failed", applog.FieldOperation, applog.OpSave, applog.FieldError, err)
		return fmt.Errorf("write file: %w", err)
	}
	s.log.Debug("saved", applog.FieldOperation, applog.OpSave, applog.FieldCount, len(records))
	return nil
}

// NextID is one past the highest id in records, or 1 when empty.
func NextID[T Record](records []T) int {
	highest := 0
	for _, r := range records {
		if id := r.RecordID(); id > highest {
			highest = id
		}
	}
	return highest + 1
}
