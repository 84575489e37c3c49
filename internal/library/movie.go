// Package library defines the movie domain types, the in-memory metadata
// store, and the listing filter/sort layer.
package library

// MovieFile is a video file discovered on disk, before enrichment.
// DurationMinutes is the technically extracted duration; 0 when extraction
// failed or the container reported nothing usable.
type MovieFile struct {
	Path            string
	Filename        string
	DurationMinutes int
}

// Movie is an enriched library record: file identity plus whatever metadata
// the external lookup supplied. Records are value types and never mutated
// after construction; a re-index produces new records.
type Movie struct {
	Path            string   `json:"path"`
	Title           string   `json:"title,omitempty"`
	Genres          []string `json:"genres"`
	Plot            string   `json:"plot,omitempty"`
	DurationMinutes int      `json:"duration_minutes"`
}
