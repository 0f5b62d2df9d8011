package catalogs

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// Suggest returns the closest known id to the given unknown id, or ""
// when nothing is plausibly close. Used to enrich E_VALIDATION reasons.
func Suggest(id string, known []string) string {
	best := ""
	bestDist := levenshteinLimit(len(id)) + 1
	cands := append([]string(nil), known...)
	sort.Strings(cands)
	for _, cand := range cands {
		dist := levenshtein.ComputeDistance(id, cand)
		if dist < bestDist {
			best = cand
			bestDist = dist
		}
	}
	return best
}

// SuggestItem looks across the item palette.
func (c *Catalogs) SuggestItem(id string) string {
	return Suggest(id, c.Items.Palette)
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
