package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("expected valid default config, got %v", err)
	}
}

func TestLoad_EmptyPathFallsBackToDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(cfg.Movies) == 0 || cfg.SeatsPath == "" {
		t.Fatalf("expected default config, got %+v", cfg)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	payload := `{
  "movies": [{"id": 1, "title": "Test Movie", "times": ["14:00"]}],
  "ticket_types": [{"name": "Adult", "price": 60.0}],
  "rows": ["A", "B"],
  "cols": 2,
  "seats_path": "state/seats.json",
  "tickets_path": "state/tickets.csv"
}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(cfg.Movies) != 1 || cfg.Movies[0].Title != "Test Movie" {
		t.Fatalf("unexpected movies: %+v", cfg.Movies)
	}
	if cfg.Cols != 2 || len(cfg.Rows) != 2 {
		t.Fatalf("unexpected layout: rows=%v cols=%d", cfg.Rows, cfg.Cols)
	}
	if cfg.SeatsPath != "state/seats.json" {
		t.Fatalf("unexpected seats path: %s", cfg.SeatsPath)
	}
}

func TestLoad_RejectsInvalidConfig(t *testing.T) {
	cases := map[string]string{
		"no movies":      `{"movies": [], "ticket_types": [{"name": "Adult", "price": 60}]}`,
		"duplicate ids":  `{"movies": [{"id": 1, "title": "A", "times": ["14:00"]}, {"id": 1, "title": "B", "times": ["15:00"]}]}`,
		"negative price": `{"ticket_types": [{"name": "Adult", "price": -1}]}`,
		"zero cols":      `{"cols": -1}`,
		"malformed":      `{not json`,
	}
	for name, payload := range cases {
		path := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
