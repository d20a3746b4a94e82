package service

import (
	"cinema-box-office/model"
)

// SeatStore is the persistence boundary for seat occupancy.
type SeatStore interface {
	Exists() bool
	Load() (model.SeatState, error)
	Save(state model.SeatState) error
}

// SeatSession owns the one authoritative in-memory seat state for the
// process. Only a committed sale mutates it, and the process is
// single-threaded by construction, so no locking is needed.
type SeatSession struct {
	store   SeatStore
	rows    []string
	cols    int
	catalog *Catalog
	state   model.SeatState
}

func NewSeatSession(store SeatStore, rows []string, cols int, catalog *Catalog) *SeatSession {
	return &SeatSession{store: store, rows: rows, cols: cols, catalog: catalog}
}

// LoadOrInit materializes the seat state. Persisted state is loaded
// verbatim and treated as authoritative even if the catalog has since
// changed; lookups for a showing it lacks fail later with ErrNotFound.
// Without persisted state, a full map is generated from the catalog
// with every seat available and saved immediately, so the file exists
// after first run.
func (s *SeatSession) LoadOrInit() error {
	if s.store.Exists() {
		state, err := s.store.Load()
		if err != nil {
			return err
		}
		s.state = state
		return nil
	}

	state := make(model.SeatState)
	for _, movie := range s.catalog.List() {
		for _, t := range movie.Times {
			state[model.ShowingKey(movie.ID, t)] = model.NewSeatMap(s.rows, s.cols)
		}
	}
	if err := s.store.Save(state); err != nil {
		return err
	}
	s.state = state
	return nil
}

// Get returns the seat map for a showing key.
func (s *SeatSession) Get(key string) (model.SeatMap, error) {
	seats, ok := s.state[key]
	if !ok {
		return nil, ErrNotFound
	}
	return seats, nil
}

// Commit persists the full in-memory state. Whole-state overwrite keeps
// the store simple at the cost of writing every seat per sale.
func (s *SeatSession) Commit() error {
	return s.store.Save(s.state)
}

// State exposes the current snapshot for read-only reporting.
func (s *SeatSession) State() model.SeatState {
	return s.state
}

// Rows returns the configured row letters.
func (s *SeatSession) Rows() []string {
	return s.rows
}

// Cols returns the configured column count.
func (s *SeatSession) Cols() int {
	return s.cols
}
