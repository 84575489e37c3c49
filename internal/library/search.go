package library

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Search filters movies by keywords and sorts them by the named field.
//
// Keywords match case- and accent-insensitively as substrings of the
// concatenated title, plot, and genre list; a movie matching any keyword is
// kept. No keywords means no filtering. The sort field may carry a leading
// "-" for descending order; an unrecognized field leaves the input order
// untouched rather than failing.
func Search(movies []Movie, keywords []string, sortField string) []Movie {
	results := filterMovies(movies, keywords)
	sortMovies(results, sortField)
	return results
}

func filterMovies(movies []Movie, keywords []string) []Movie {
	normalized := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			normalized = append(normalized, fold(kw))
		}
	}

	if len(normalized) == 0 {
		return append([]Movie(nil), movies...)
	}

	results := []Movie{}
	for _, m := range movies {
		haystack := fold(m.Title + " " + m.Plot + " " + strings.Join(m.Genres, " "))
		for _, kw := range normalized {
			if strings.Contains(haystack, kw) {
				results = append(results, m)
				break
			}
		}
	}
	return results
}

func sortMovies(movies []Movie, sortField string) {
	field := sortField
	desc := false
	if strings.HasPrefix(field, "-") {
		field = field[1:]
		desc = true
	}

	var less func(a, b Movie) bool
	switch field {
	case "duration":
		less = func(a, b Movie) bool { return a.DurationMinutes < b.DurationMinutes }
	case "title":
		less = func(a, b Movie) bool { return fold(a.Title) < fold(b.Title) }
	default:
		// Unknown field: stable no-op, keep input order.
		return
	}

	sort.SliceStable(movies, func(i, j int) bool {
		if desc {
			return less(movies[j], movies[i])
		}
		return less(movies[i], movies[j])
	})
}

// fold lowercases and strips accents so "Léon" matches "leon".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}
