package exercise

import "strings"

// qualifierPrefixes are leading qualifiers that can be stripped from a
// query without changing which base movement it refers to.
var qualifierPrefixes = []string{
	"barbell",
	"dumbbell",
	"db",
	"bb",
	"cable",
	"machine",
	"seated",
	"standing",
	"incline",
	"decline",
	"close grip",
	"wide grip",
	"romanian",
	"paused",
}

// synonyms maps well-known abbreviations and aliases to canonical terms.
var synonyms = map[string]string{
	"ohp":             "overhead press",
	"military press":  "overhead press",
	"rdl":             "romanian deadlift",
	"sldl":            "romanian deadlift",
	"chinup":          "pull-up",
	"chin-up":         "pull-up",
	"chin up":         "pull-up",
	"pullup":          "pull-up",
	"pull up":         "pull-up",
	"pushup":          "push-up",
	"push up":         "push-up",
	"lat pull":        "lat pulldown",
	"pulldown":        "lat pulldown",
	"bsq":             "squat",
	"back squat":      "squat",
	"tricep pushdown": "triceps pushdown",
}

// minOverlapTokenLength filters noise words like "the" or "up" out of the
// word-overlap stage.
const minOverlapTokenLength = 3

// FindBestMatch resolves a free-text exercise name against the library.
// The resolution pipeline runs fixed stages in order and the first stage
// that produces a candidate wins: exact name equality, containment, word
// overlap, then the same three stages again after stripping qualifier
// prefixes, and finally again after synonym mapping. It returns nil when
// every stage comes up empty.
func FindBestMatch(name string, library []Exercise) *Exercise {
	query := normalize(name)
	if query == "" || len(library) == 0 {
		return nil
	}

	if match := matchStages(query, library); match != nil {
		return match
	}

	if stripped := stripQualifiers(query); stripped != query && stripped != "" {
		if match := matchStages(stripped, library); match != nil {
			return match
		}
	}

	if mapped, ok := synonyms[query]; ok {
		if match := matchStages(mapped, library); match != nil {
			return match
		}
	}

	return nil
}

// matchStages runs the three fuzzy stages in priority order on an already
// normalized query.
func matchStages(query string, library []Exercise) *Exercise {
	if match := matchExact(query, library); match != nil {
		return match
	}
	if match := matchContainment(query, library); match != nil {
		return match
	}
	return matchWordOverlap(query, library)
}

// matchExact finds a case-insensitive exact name match.
func matchExact(query string, library []Exercise) *Exercise {
	for i := range library {
		if normalize(library[i].Name) == query {
			return &library[i]
		}
	}
	return nil
}

// matchContainment finds candidates where either string contains the
// other, preferring the candidate closest in length to the query. The
// closest-length rule picks the most specific match: "bench" resolves to
// "Bench Press" rather than "Incline Bench Press".
func matchContainment(query string, library []Exercise) *Exercise {
	var best *Exercise
	bestGap := -1
	for i := range library {
		candidate := normalize(library[i].Name)
		if !strings.Contains(candidate, query) && !strings.Contains(query, candidate) {
			continue
		}
		gap := len(candidate) - len(query)
		if gap < 0 {
			gap = -gap
		}
		if best == nil || gap < bestGap {
			best = &library[i]
			bestGap = gap
		}
	}
	return best
}

// matchWordOverlap scores candidates by how many meaningful words they
// share with the query. Ties keep the earliest library entry.
func matchWordOverlap(query string, library []Exercise) *Exercise {
	queryTokens := meaningfulTokens(query)
	if len(queryTokens) == 0 {
		return nil
	}

	var best *Exercise
	bestScore := 0
	for i := range library {
		score := 0
		for token := range meaningfulTokens(normalize(library[i].Name)) {
			if queryTokens[token] {
				score++
			}
		}
		if score > bestScore {
			best = &library[i]
			bestScore = score
		}
	}
	return best
}

// stripQualifiers removes leading qualifier prefixes, repeating so that
// compound qualifiers like "seated dumbbell" reduce fully.
func stripQualifiers(query string) string {
	for {
		stripped := query
		for _, prefix := range qualifierPrefixes {
			if rest, ok := strings.CutPrefix(query, prefix+" "); ok {
				stripped = strings.TrimSpace(rest)
				break
			}
		}
		if stripped == query {
			return query
		}
		query = stripped
	}
}

// meaningfulTokens splits a normalized string into tokens long enough to
// carry meaning.
func meaningfulTokens(s string) map[string]bool {
	tokens := make(map[string]bool)
	for _, token := range strings.Fields(s) {
		if len(token) >= minOverlapTokenLength {
			tokens[token] = true
		}
	}
	return tokens
}

// normalize lowercases, trims whitespace, and drops trailing punctuation.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimRight(s, ".,!?;:")
}
