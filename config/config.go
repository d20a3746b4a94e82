package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"cinema-box-office/model"
	"cinema-box-office/service"
)

// Config carries everything supplied at startup: the movie catalog, the
// pricing table, the hall layout, and the two persisted-file paths.
// Nothing in it is mutated after load.
type Config struct {
	Movies      []model.Movie        `json:"movies"`
	TicketTypes []service.TicketType `json:"ticket_types"`
	Rows        []string             `json:"rows"`
	Cols        int                  `json:"cols"`
	SeatsPath   string               `json:"seats_path"`
	TicketsPath string               `json:"tickets_path"`
}

// Default returns the built-in single-screen setup.
func Default() Config {
	return Config{
		Movies: []model.Movie{
			{ID: 1, Title: "City of Shadows", Times: []string{"14:00", "17:00", "20:00"}},
			{ID: 2, Title: "Journey to the Stars", Times: []string{"13:30", "16:30", "19:30"}},
			{ID: 3, Title: "Comedy Night", Times: []string{"15:00", "18:00", "21:00"}},
		},
		TicketTypes: []service.TicketType{
			{Name: "Adult", Price: 60.0},
			{Name: "Student", Price: 40.0},
			{Name: "Child", Price: 30.0},
		},
		Rows:        []string{"A", "B", "C", "D", "E"},
		Cols:        8,
		SeatsPath:   "seats.json",
		TicketsPath: "tickets.csv",
	}
}

// Load reads a JSON config file, falling back to Default when no path
// is given. Fields left empty in the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the invariants the rest of the system relies on.
func (c Config) Validate() error {
	if len(c.Movies) == 0 {
		return errors.New("config: at least one movie is required")
	}
	seen := map[int]bool{}
	for _, m := range c.Movies {
		if m.ID <= 0 {
			return fmt.Errorf("config: movie %q needs a positive id", m.Title)
		}
		if seen[m.ID] {
			return fmt.Errorf("config: duplicate movie id %d", m.ID)
		}
		seen[m.ID] = true
		if m.Title == "" {
			return fmt.Errorf("config: movie %d needs a title", m.ID)
		}
		if len(m.Times) == 0 {
			return fmt.Errorf("config: movie %d needs at least one showtime", m.ID)
		}
	}
	if len(c.TicketTypes) == 0 {
		return errors.New("config: at least one ticket type is required")
	}
	for _, t := range c.TicketTypes {
		if t.Name == "" {
			return errors.New("config: ticket types need names")
		}
		if t.Price < 0 {
			return fmt.Errorf("config: ticket type %q has a negative price", t.Name)
		}
	}
	if len(c.Rows) == 0 || c.Cols <= 0 {
		return errors.New("config: hall layout needs rows and columns")
	}
	if c.SeatsPath == "" || c.TicketsPath == "" {
		return errors.New("config: seat-state and ticket file paths are required")
	}
	return nil
}
