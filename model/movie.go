package model

// Movie is one catalog entry. Movies are constructed once from
// configuration and never mutated afterwards.
type Movie struct {
	ID    int      `json:"id"`
	Title string   `json:"title"`
	Times []string `json:"times"`
}

// HasTime reports whether the showtime label belongs to this movie.
// Labels must match exactly.
func (m Movie) HasTime(label string) bool {
	for _, t := range m.Times {
		if t == label {
			return true
		}
	}
	return false
}
