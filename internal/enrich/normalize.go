package enrich

import (
	"path/filepath"
	"regexp"
	"strings"
)

// separatorReplacer flattens the common release-name separators to spaces.
// Hyphens are deliberately absent: compound tokens like "WEBRip-WORLD" must
// be matched as one unit before hyphens are split.
var separatorReplacer = strings.NewReplacer(
	".", " ",
	"_", " ",
	"(", " ",
	")", " ",
	"[", " ",
	"]", " ",
)

// yearPattern matches standalone 4-digit years 1900-2099.
var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// TokenSet holds configured noise tokens: single words matched exactly
// (case-insensitive), and compound tokens (containing a space or hyphen)
// matched as whole word-bounded phrases. Immutable once built.
type TokenSet struct {
	singles   map[string]struct{}
	compounds []*regexp.Regexp
}

// NewTokenSet builds a TokenSet from a list of raw tokens. Entries are
// trimmed and empties discarded; an entry containing a space or hyphen
// becomes a compound phrase.
func NewTokenSet(tokens []string) TokenSet {
	ts := TokenSet{singles: make(map[string]struct{})}
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if strings.ContainsAny(tok, " -") {
			ts.compounds = append(ts.compounds, compoundPattern(tok))
			continue
		}
		ts.singles[strings.ToLower(tok)] = struct{}{}
	}
	return ts
}

func compoundPattern(tok string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(tok) + `\b`)
}

// Normalize converts a raw video file path into a clean search title.
//
// The steps run in a fixed order: strip the extension, flatten separators,
// drop standalone years, delete compound noise phrases (before hyphens are
// split, so "WEBRip-WORLD" goes as one unit), split remaining hyphens, then
// drop single-word noise tokens. Matching is whole-word only; a token never
// disappears as a substring of a real title word. The result may be empty
// when every word was noise.
func Normalize(path string, tokens TokenSet) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	name = separatorReplacer.Replace(name)
	name = yearPattern.ReplaceAllString(name, " ")
	for _, re := range tokens.compounds {
		name = re.ReplaceAllString(name, " ")
	}
	name = strings.ReplaceAll(name, "-", " ")

	words := strings.Fields(name)
	kept := words[:0]
	for _, w := range words {
		if _, noise := tokens.singles[strings.ToLower(w)]; noise {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}
