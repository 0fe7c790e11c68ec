// Package rerank applies the post-scoring diversity pass that keeps a
// single employer or sector from dominating the shortlist.
package rerank

import (
	"sort"

	"github.com/spigell/intern-recommender/internal/profile"
)

// Penalties applied to repeated employers and sectors. Both are
// independent and additive; the first occurrence of each is free.
const (
	employerPenalty = 0.10
	sectorPenalty   = 0.05
)

// Ranked pairs a listing id with its score.
type Ranked struct {
	ID    string
	Score float64
}

// Diversify walks the score-descending list once, multiplying each
// entry's score by (1 - penalty) when its employer or sector was
// already seen higher up, then stable-sorts by the adjusted scores.
// The id set is preserved exactly; ties keep the original score order.
func Diversify(ranked []Ranked, listings map[string]*profile.Listing) []Ranked {
	seenEmployers := make(map[string]bool)
	seenSectors := make(map[string]bool)

	adjusted := make([]Ranked, len(ranked))
	for i, entry := range ranked {
		employer := ""
		sector := ""
		if listing, ok := listings[entry.ID]; ok {
			employer = listing.Employer
			sector = listing.Industry
		}

		penalty := 0.0
		if seenEmployers[employer] {
			penalty += employerPenalty
		}
		if seenSectors[sector] {
			penalty += sectorPenalty
		}

		adjusted[i] = Ranked{ID: entry.ID, Score: entry.Score * (1.0 - penalty)}

		seenEmployers[employer] = true
		seenSectors[sector] = true
	}

	sort.SliceStable(adjusted, func(i, j int) bool {
		return adjusted[i].Score > adjusted[j].Score
	})

	return adjusted
}
