package match

import (
	"cmp"
	"slices"
	"strings"
)

// DefaultThreshold is the minimum similarity Suggest reports.
const DefaultThreshold = 0.5

// NormalizeIdent folds case and drops '_', '-' and spaces, so that
// "disable_with", "Disable-With" and "DisableWith" compare equal.
func NormalizeIdent(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		if r == '_' || r == '-' || r == ' ' {
			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

type scored struct {
	name  string
	score float64
}

// Suggest returns up to limit candidates similar to name, best first.
// Ties keep the candidates' original order. A limit <= 0 means no limit.
func Suggest(name string, candidates []string, limit int) []string {
	norm := NormalizeIdent(name)

	var ranked []scored
	for _, c := range candidates {
		score := Similarity(norm, NormalizeIdent(c))
		if score >= DefaultThreshold {
			ranked = append(ranked, scored{name: c, score: score})
		}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.name)
	}

	return out
}
