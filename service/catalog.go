package service

import (
	"sort"

	"cinema-box-office/model"
)

// Catalog is the fixed registry of movies and their showtimes. It is
// built once at startup and offers no mutation.
type Catalog struct {
	movies map[int]model.Movie
	order  []int
}

// NewCatalog indexes the configured movies by id. Input order does not
// matter; listings are always sorted by ascending id.
func NewCatalog(movies []model.Movie) *Catalog {
	c := &Catalog{movies: make(map[int]model.Movie, len(movies))}
	for _, m := range movies {
		if _, dup := c.movies[m.ID]; dup {
			continue
		}
		c.movies[m.ID] = m
		c.order = append(c.order, m.ID)
	}
	sort.Ints(c.order)
	return c
}

// List returns every movie ordered by ascending id. The result is a
// fresh slice each call; the listing is stable and repeatable.
func (c *Catalog) List() []model.Movie {
	out := make([]model.Movie, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.movies[id])
	}
	return out
}

// Get returns the movie with the given id.
func (c *Catalog) Get(id int) (model.Movie, error) {
	m, ok := c.movies[id]
	if !ok {
		return model.Movie{}, ErrNotFound
	}
	return m, nil
}

// Has reports membership without failing.
func (c *Catalog) Has(id int) bool {
	_, ok := c.movies[id]
	return ok
}
