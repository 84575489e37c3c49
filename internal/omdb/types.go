// Package omdb provides a client for the OMDb API.
package omdb

import (
	"strconv"
	"strings"
)

// Result is the shaped subset of an OMDb title response used for
// enrichment.
type Result struct {
	Title          string
	Genres         []string
	Plot           string
	RuntimeMinutes int // 0 when OMDb reported no usable runtime
}

// notAvailable is OMDb's placeholder for fields it has no data for.
const notAvailable = "N/A"

// payload mirrors the raw OMDb JSON response.
type payload struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
	Title    string `json:"Title"`
	Genre    string `json:"Genre"`
	Plot     string `json:"Plot"`
	Runtime  string `json:"Runtime"`
}

func (p payload) shape() *Result {
	r := &Result{
		Title:          p.Title,
		Genres:         parseGenres(p.Genre),
		RuntimeMinutes: parseRuntimeMinutes(p.Runtime),
	}
	if p.Plot != notAvailable {
		r.Plot = p.Plot
	}
	return r
}

// parseGenres splits OMDb's comma-separated genre field into a list.
func parseGenres(value string) []string {
	if value == "" || value == notAvailable {
		return nil
	}
	var genres []string
	for _, g := range strings.Split(value, ",") {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

// parseRuntimeMinutes parses the leading integer out of OMDb's free-text
// runtime field (e.g. "127 min"). Returns 0 when the field is a placeholder
// or unparsable.
func parseRuntimeMinutes(value string) int {
	if value == "" || value == notAvailable {
		return 0
	}
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return 0
	}
	minutes, err := strconv.Atoi(fields[0])
	if err != nil || minutes < 0 {
		return 0
	}
	return minutes
}
