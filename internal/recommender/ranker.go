package recommender

import (
	"cmp"
	"slices"
)

// Rank orders scored attractions by final score, highest first, and keeps the
// first topN. Equal scores keep catalog order. The input slice is not modified.
func Rank(scored []Scored, topN int) []Scored {
	if topN <= 0 || len(scored) == 0 {
		return []Scored{}
	}
	ranked := slices.Clone(scored)
	slices.SortStableFunc(ranked, func(a, b Scored) int {
		if c := cmp.Compare(b.Scores.Final, a.Scores.Final); c != 0 {
			return c
		}
		return cmp.Compare(a.Position, b.Position)
	})
	if topN < len(ranked) {
		ranked = ranked[:topN]
	}
	return ranked
}
