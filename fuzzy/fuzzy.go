// Package fuzzy scores how similar two names are and picks the best
// canonical match for a free-text team name. It backs the link suggestions
// shown when parsed score sheets reference teams by slightly different
// spellings than the registered roster.
package fuzzy

import "strings"

// AcceptThreshold is the similarity a candidate must strictly exceed before
// BestMatch will link it. Anything at or below it is left for a human.
const AcceptThreshold = 0.7

// Candidate is a canonical record a parsed name can be linked against.
type Candidate struct {
	ID   int
	Name string
}

// Similarity returns a normalized edit-distance score in [0, 1].
// Comparison is case-insensitive. Two empty strings score 1.0 by
// convention; otherwise the longer string's length is the denominator.
func Similarity(a, b string) float64 {
	longer, shorter := a, b
	if len(longer) < len(shorter) {
		longer, shorter = shorter, longer
	}
	if len(longer) == 0 {
		return 1.0
	}
	dist := levenshtein(strings.ToLower(longer), strings.ToLower(shorter))
	return float64(len(longer)-dist) / float64(len(longer))
}

// BestMatch returns the id of the candidate most similar to name, or nil
// when no candidate clears AcceptThreshold. Ties keep the first candidate
// encountered, so callers get stable results for a stable candidate order.
func BestMatch(name string, candidates []Candidate) *int {
	id, _ := Best(name, candidates)
	return id
}

// Best is BestMatch plus the winning score, for callers that surface the
// similarity alongside the link. The score reported is the highest seen
// even when nothing clears the threshold and the id is nil.
func Best(name string, candidates []Candidate) (*int, float64) {
	var bestID *int
	highest := 0.0
	for i := range candidates {
		sim := Similarity(name, candidates[i].Name)
		if sim > highest {
			highest = sim
			if sim > AcceptThreshold {
				bestID = &candidates[i].ID
			}
		}
	}
	return bestID, highest
}

// levenshtein computes edit distance with a single rolling cost row.
func levenshtein(s1, s2 string) int {
	costs := make([]int, len(s2)+1)
	for i := 0; i <= len(s1); i++ {
		lastValue := i
		for j := 0; j <= len(s2); j++ {
			if i == 0 {
				costs[j] = j
			} else if j > 0 {
				newValue := costs[j-1]
				if s1[i-1] != s2[j-1] {
					newValue = min(newValue, lastValue, costs[j]) + 1
				}
				costs[j-1] = lastValue
				lastValue = newValue
			}
		}
		if i > 0 {
			costs[len(s2)] = lastValue
		}
	}
	return costs[len(s2)]
}
