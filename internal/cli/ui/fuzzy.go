package ui

import (
	"slices"
	"strings"
)

const (
	// DefaultMaxDistance is the default maximum edit distance to consider for fuzzy matching
	DefaultMaxDistance = 3
	// DefaultMaxSuggestions is the default maximum number of suggestions to return
	DefaultMaxSuggestions = 3
)

// FuzzyMatchOptions configures fuzzy matching behavior
type FuzzyMatchOptions struct {
	MaxDistance    int  // Maximum Levenshtein distance to consider (default: 3)
	MaxSuggestions int  // Maximum number of suggestions to return (default: 3)
	CaseSensitive  bool // Whether matching is case-sensitive (default: false)
}

type suggestion struct {
	value    string
	distance int
}

// FindSimilar finds element names similar to the target. Closer names come
// first; names at equal distance keep their candidate order, so schema
// declaration order breaks ties.
//
// Example:
//
//	FindSimilar("Dgo", []string{"Animal", "Dog", "Person"}, nil)
//	// Returns: ["Dog"]
func FindSimilar(target string, candidates []string, opts *FuzzyMatchOptions) []string {
	o := FuzzyMatchOptions{MaxDistance: DefaultMaxDistance, MaxSuggestions: DefaultMaxSuggestions}
	if opts != nil {
		o = *opts
	}
	if o.MaxDistance == 0 {
		o.MaxDistance = DefaultMaxDistance
	}
	if o.MaxSuggestions == 0 {
		o.MaxSuggestions = DefaultMaxSuggestions
	}

	var suggestions []suggestion
	for _, candidate := range candidates {
		targetCmp, candidateCmp := target, candidate
		if !o.CaseSensitive {
			targetCmp = strings.ToLower(target)
			candidateCmp = strings.ToLower(candidate)
		}

		if dist := LevenshteinDistance(targetCmp, candidateCmp); dist <= o.MaxDistance {
			suggestions = append(suggestions, suggestion{value: candidate, distance: dist})
		}
	}

	slices.SortStableFunc(suggestions, func(a, b suggestion) int {
		return a.distance - b.distance
	})

	result := make([]string, 0, o.MaxSuggestions)
	for i := 0; i < len(suggestions) && i < o.MaxSuggestions; i++ {
		result = append(result, suggestions[i].value)
	}
	return result
}

// LevenshteinDistance calculates the number of single-rune insertions,
// deletions or substitutions turning s1 into s2.
//
// Example:
//
//	LevenshteinDistance("kitten", "sitting") // Returns: 3
func LevenshteinDistance(s1, s2 string) int {
	r1, r2 := []rune(s1), []rune(s2)
	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	// Two rolling rows of the edit matrix
	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}
