package recommender

import (
	"fmt"
	"strings"

	"github.com/spigell/intern-recommender/internal/profile"
)

// Explanation pairs one recommended listing with human-readable
// reasons and its overall match score.
type Explanation struct {
	ListingID  string
	Reasons    []string
	MatchScore float64
}

const maxSkillReasons = 3

// Explain produces per-listing reasons for an already-generated
// shortlist. Ids without a matching listing are skipped.
func (r *Recommender) Explain(candidateRaw map[string]any, ids []string, listingsRaw []map[string]any) []Explanation {
	candidate := profile.NormalizeCandidate(candidateRaw)

	byID := make(map[string]*profile.Listing, len(listingsRaw))
	for _, raw := range listingsRaw {
		listing := profile.NormalizeListing(raw)
		byID[listing.ID] = listing
	}

	explanations := make([]Explanation, 0, len(ids))
	for _, id := range ids {
		listing, ok := byID[id]
		if !ok {
			continue
		}

		explanations = append(explanations, Explanation{
			ListingID:  id,
			Reasons:    reasons(candidate, listing),
			MatchScore: r.deps.Engine.Score(candidate, listing),
		})
	}

	return explanations
}

func reasons(c *profile.Candidate, l *profile.Listing) []string {
	var out []string

	var matched []string
	for _, skill := range l.RequiredSkills {
		if c.HasSkill(skill) {
			matched = append(matched, skill)
		}
		if len(matched) == maxSkillReasons {
			break
		}
	}
	if len(matched) > 0 {
		out = append(out, "Your skills match: "+strings.Join(matched, ", "))
	}

	candidateLocation := strings.ToLower(strings.TrimSpace(c.City + " " + c.State))
	listingLocation := l.LocationText()
	switch {
	case candidateLocation != "" && listingLocation != "" && strings.Contains(listingLocation, candidateLocation):
		out = append(out, "Located in your preferred area")
	case l.RemoteAllowed:
		out = append(out, "Offers remote work flexibility")
	}

	industry := strings.ToLower(strings.TrimSpace(l.Industry))
	if industry != "" && industry == strings.ToLower(strings.TrimSpace(c.PreferredIndustry)) {
		out = append(out, fmt.Sprintf("Matches your %s industry preference", industry))
	}

	if c.Tier != "" {
		out = append(out, fmt.Sprintf("Suitable for %s level", c.Tier))
	}

	if len(out) == 0 {
		out = append(out, "Good overall match for your profile")
	}

	return out
}
