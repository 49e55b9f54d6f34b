package domain

import (
	"fmt"
	"strings"
)

const (
	// Suggestion weights
	scoreExactMatch     = 100.0
	scorePrefixMatch    = 75.0
	scoreSubstringMatch = 50.0
	scoreFuzzyMatch     = 25.0
)

// SuggestPreset returns the preset name closest to an unknown name, if any
// is close enough to be worth suggesting.
func SuggestPreset(name string, presets []*Preset) (string, bool) {
	query := Slugify(name)
	if query == "" {
		return "", false
	}

	best, bestScore := "", 0.0
	for _, p := range presets {
		if p == nil {
			continue
		}
		if score := scoreName(query, p.Name); score > bestScore {
			best, bestScore = p.Name, score
		}
	}
	return best, bestScore > 0
}

// PresetNotFound wraps ErrPresetNotFound for name, with the closest of
// known as a hint.
func PresetNotFound(name string, known []*Preset) error {
	if suggestion, ok := SuggestPreset(name, known); ok {
		return fmt.Errorf("%w: %s (did you mean %q?)", ErrPresetNotFound, name, suggestion)
	}
	return fmt.Errorf("%w: %s", ErrPresetNotFound, name)
}

// scoreName scores a query against a preset name
func scoreName(query, name string) float64 {
	if query == "" || name == "" {
		return 0.0
	}

	if query == name {
		return scoreExactMatch
	}
	if strings.HasPrefix(name, query) {
		return scorePrefixMatch
	}
	if i := strings.Index(name, query); i >= 0 {
		// Earlier substring matches get higher score
		return scoreSubstringMatch * (1.0 - float64(i)/float64(len(name)))
	}

	similarity := calculateSimilarity(query, name)
	if similarity > 0.5 {
		return scoreFuzzyMatch * similarity
	}
	return 0.0
}

// calculateSimilarity is the share of runes of s1 found in s2, penalized by
// the length difference of both strings.
func calculateSimilarity(s1, s2 string) float64 {
	if s1 == "" || s2 == "" {
		return 0.0
	}

	matches := 0
	for _, c := range s1 {
		if strings.ContainsRune(s2, c) {
			matches++
		}
	}

	n1, n2 := len([]rune(s1)), len([]rune(s2))
	longest := n1
	if n2 > longest {
		longest = n2
	}
	return float64(matches) / float64(longest)
}
