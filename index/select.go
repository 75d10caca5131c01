package index

import "sort"

// SelectTopK filters candidates by minSim, sorts by similarity descending
// with ascending id as the tie-break, and truncates to k. It is shared by
// every implementation so the common contract's ordering rule is applied
// identically regardless of how candidates were gathered.
func SelectTopK(candidates []Scored, k int, minSim float64) []Scored {
	filtered := candidates[:0:0]
	for _, c := range candidates {
		if c.Similarity >= minSim {
			filtered = append(filtered, c)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].Similarity != filtered[j].Similarity {
			return filtered[i].Similarity > filtered[j].Similarity
		}
		return filtered[i].ID < filtered[j].ID
	})
	if k >= 0 && len(filtered) > k {
		filtered = filtered[:k]
	}
	return filtered
}
