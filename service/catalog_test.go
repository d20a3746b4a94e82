package service

import (
	"errors"
	"testing"

	"cinema-box-office/model"
)

func TestCatalog_ListOrderedByID(t *testing.T) {
	catalog := NewCatalog([]model.Movie{
		{ID: 3, Title: "Third", Times: []string{"21:00"}},
		{ID: 1, Title: "First", Times: []string{"14:00"}},
		{ID: 2, Title: "Second", Times: []string{"18:00"}},
	})

	movies := catalog.List()
	if len(movies) != 3 {
		t.Fatalf("expected 3 movies, got %d", len(movies))
	}
	for i, want := range []int{1, 2, 3} {
		if movies[i].ID != want {
			t.Fatalf("expected id %d at position %d, got %d", want, i, movies[i].ID)
		}
	}

	// Repeat calls stay identical.
	again := catalog.List()
	for i := range movies {
		if movies[i].ID != again[i].ID {
			t.Fatal("expected stable listing across calls")
		}
	}
}

func TestCatalog_GetAndHas(t *testing.T) {
	catalog := NewCatalog([]model.Movie{{ID: 1, Title: "Only", Times: []string{"14:00"}}})

	movie, err := catalog.Get(1)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if movie.Title != "Only" {
		t.Fatalf("unexpected movie: %+v", movie)
	}

	if _, err := catalog.Get(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !catalog.Has(1) || catalog.Has(99) {
		t.Fatal("membership test mismatch")
	}
}

func TestPricing_TypesKeepInsertionOrder(t *testing.T) {
	pricing := NewPricing([]TicketType{
		{Name: "Adult", Price: 60},
		{Name: "Student", Price: 40},
		{Name: "Child", Price: 30},
	})

	types := pricing.Types()
	want := []string{"Adult", "Student", "Child"}
	if len(types) != len(want) {
		t.Fatalf("expected %d types, got %d", len(want), len(types))
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("expected %q at position %d, got %q", want[i], i, types[i])
		}
	}
}

func TestPricing_PriceOf(t *testing.T) {
	pricing := NewPricing([]TicketType{{Name: "Adult", Price: 60}})

	price, err := pricing.PriceOf("Adult")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if price != 60 {
		t.Fatalf("expected 60, got %v", price)
	}

	if _, err := pricing.PriceOf("Senior"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
