package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cinema-box-office/model"
)

// StorageError marks an I/O or persisted-format failure. Callers treat
// it as fatal to the current transaction: no retry, no state repair.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error at %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// SeatStore persists the full seat-occupancy state as one JSON file.
// Top-level keys are showing keys, values map seat labels to
// availability, so the file stays human-inspectable.
type SeatStore struct {
	path string
}

func NewSeatStore(path string) *SeatStore {
	return &SeatStore{path: path}
}

// Exists reports whether persisted state is present.
func (s *SeatStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the persisted state verbatim.
func (s *SeatStore) Load() (model.SeatState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &StorageError{Path: s.path, Err: err}
	}
	var state model.SeatState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, &StorageError{Path: s.path, Err: err}
	}
	return state, nil
}

// Save overwrites the persisted state with the given snapshot.
func (s *SeatStore) Save(state model.SeatState) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &StorageError{Path: s.path, Err: err}
		}
	}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return &StorageError{Path: s.path, Err: err}
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return &StorageError{Path: s.path, Err: err}
	}
	return nil
}
