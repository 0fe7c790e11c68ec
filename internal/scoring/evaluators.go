package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/spigell/intern-recommender/internal/profile"
)

// Neutral defaults and extension-point constants. The novelty and
// fatigue signals are placeholders until interaction history exists;
// the rotation signal is always 1.0 at scoring time because the actual
// diversity effect is applied by the reranker.
const (
	neutralScore          = 0.5
	noveltyDesireConstant = 0.7
	fatigueScoreConstant  = 0.8
	rotationConstant      = 1.0

	topSkillCount = 3

	commuteNormKm = 100.0
)

var educationLevels = map[string]int{
	"high school":   1,
	"diploma":       2,
	"undergraduate": 3,
	"bachelor":      3,
	"graduate":      4,
	"master":        4,
	"phd":           5,
}

const unknownEducationLevel = 3

// daysSince counts whole days elapsed since t, never negative so a
// future-dated posting cannot push decay signals above 1.
func daysSince(t time.Time) float64 {
	days := math.Floor(time.Since(t).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// skillCoverage is |required ∩ candidate| / |required|. A listing with
// no requirements matches perfectly.
func skillCoverage(c *profile.Candidate, l *profile.Listing) float64 {
	if len(l.RequiredSet) == 0 {
		return 1.0
	}

	matched := 0
	for skill := range l.RequiredSet {
		if _, ok := c.SkillSet[skill]; ok {
			matched++
		}
	}

	return float64(matched) / float64(len(l.RequiredSet))
}

// skillJaccard is |required ∩ candidate| / |required ∪ candidate|,
// zero when both sets are empty.
func skillJaccard(c *profile.Candidate, l *profile.Listing) float64 {
	intersection := 0
	union := len(c.SkillSet)
	for skill := range l.RequiredSet {
		if _, ok := c.SkillSet[skill]; ok {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}

// topKSkillHit is binary: any of the first few required skills present
// in the candidate set.
func topKSkillHit(c *profile.Candidate, l *profile.Listing) float64 {
	top := l.RequiredSkills
	if len(top) > topSkillCount {
		top = top[:topSkillCount]
	}

	for _, skill := range top {
		if _, ok := c.SkillSet[skill]; ok {
			return 1.0
		}
	}

	return 0.0
}

// sectorSimilarity is an exact case-insensitive industry match,
// neutral when either side is missing.
func sectorSimilarity(c *profile.Candidate, l *profile.Listing) float64 {
	preferred := strings.ToLower(strings.TrimSpace(c.PreferredIndustry))
	sector := strings.ToLower(strings.TrimSpace(l.Industry))

	if preferred == "" || sector == "" {
		return neutralScore
	}
	if preferred == sector {
		return 1.0
	}
	return 0.0
}

// educationGap scores the ordinal distance between candidate and
// required education. Slight overqualification costs little,
// underqualification costs double.
func educationGap(c *profile.Candidate, l *profile.Listing) float64 {
	candidateLevel := educationLevel(c.EducationLevel)
	requiredLevel := educationLevel(l.EducationRequirement)

	gap := float64(candidateLevel - requiredLevel)
	if gap >= 0 {
		return math.Max(0, 1.0-gap*0.1)
	}
	return math.Max(0, 1.0+gap*0.2)
}

func educationLevel(name string) int {
	if level, ok := educationLevels[strings.ToLower(strings.TrimSpace(name))]; ok {
		return level
	}
	return unknownEducationLevel
}

// geoDistance decays linearly with the great-circle distance,
// normalized against 100 km, neutral when coordinates are missing.
func geoDistance(c *profile.Candidate, l *profile.Listing) float64 {
	if c.Latitude == 0 || c.Longitude == 0 || l.Latitude == 0 || l.Longitude == 0 {
		return neutralScore
	}

	km := haversineKm(c.Latitude, c.Longitude, l.Latitude, l.Longitude)
	return math.Max(0, 1.0-km/commuteNormKm)
}

// remoteSuitability is a lookup over the remote/office preferences of
// both sides.
func remoteSuitability(c *profile.Candidate, l *profile.Listing) float64 {
	switch {
	case l.RemoteAllowed && c.RemotePreference:
		return 1.0
	case l.RemoteAllowed && !c.RemotePreference:
		return 0.8
	case !l.RemoteAllowed && c.RemotePreference:
		return 0.3
	default:
		return 0.7
	}
}

// freshness decays exponentially with posting age. A listing without a
// posted date was normalized to "now" and scores 1.0.
func freshness(l *profile.Listing) float64 {
	return math.Exp(-daysSince(l.PostedAt) / 10.0)
}

// decayedCTR is the Laplace-smoothed click-through rate with time
// decay, scaled onto [0,1].
func decayedCTR(l *profile.Listing) float64 {
	smoothed := (l.CTR + 0.01) / 1.01
	decayed := smoothed * math.Exp(-daysSince(l.PostedAt)/30.0)
	return math.Min(1.0, decayed*10)
}

// decayedApplyRate mirrors decayedCTR for the apply rate.
func decayedApplyRate(l *profile.Listing) float64 {
	smoothed := (l.ApplyRate + 0.005) / 1.005
	decayed := smoothed * math.Exp(-daysSince(l.PostedAt)/30.0)
	return math.Min(1.0, decayed*20)
}

// selectionRatio is a smoothed selections-per-application quality
// proxy.
func selectionRatio(l *profile.Listing) float64 {
	ratio := float64(l.TotalSelections+1) / float64(l.TotalApplications+10)
	return math.Min(1.0, ratio*5)
}

// titleSimilarity compares the candidate's profile text against the
// listing title, neutral when either side is empty.
func titleSimilarity(c *profile.Candidate, l *profile.Listing) float64 {
	profileText := c.ProfileText()
	title := strings.TrimSpace(l.Title)

	if profileText == "" || title == "" {
		return neutralScore
	}

	return textSimilarity(profileText, title)
}

// descriptionAlignment compares the candidate's skills text against
// the listing description, neutral when either side is empty.
func descriptionAlignment(c *profile.Candidate, l *profile.Listing) float64 {
	skillsText := c.SkillsText()
	description := strings.TrimSpace(l.Description)

	if skillsText == "" || description == "" {
		return neutralScore
	}

	return textSimilarity(skillsText, description)
}

// sectorAffinity checks the listing sector against the candidate's
// comma-split preferred industries.
func sectorAffinity(c *profile.Candidate, l *profile.Listing) float64 {
	sector := strings.ToLower(strings.TrimSpace(l.Industry))
	for _, preferred := range c.PreferredIndustries {
		if preferred == sector {
			return 1.0
		}
	}
	return 0.3
}

// locationAffinity checks the candidate's preferred locations against
// the listing location text. A candidate without stated preferences is
// treated as flexible.
func locationAffinity(c *profile.Candidate, l *profile.Listing) float64 {
	if len(c.PreferredLocations) == 0 {
		return 1.0
	}

	location := l.LocationText()
	for _, preferred := range c.PreferredLocations {
		if strings.Contains(location, preferred) {
			return 1.0
		}
	}
	return 0.3
}

// barrierScore subtracts penalties for participation barriers: entry
// fees, inflexible hours against a candidate needing flexibility, and
// relocation against an unwilling candidate.
func barrierScore(c *profile.Candidate, l *profile.Listing) float64 {
	barriers := 0.0

	if l.RequiresFee {
		barriers += 0.3
	}
	if l.StrictHours && c.FlexibleHoursNeeded {
		barriers += 0.2
	}
	if l.RequiresRelocation && !c.WillingToRelocate {
		barriers += 0.4
	}

	return math.Max(0, 1.0-barriers)
}

// inclusivityScore adds boosts on top of a neutral base when the
// listing's inclusion programs match the candidate.
func inclusivityScore(c *profile.Candidate, l *profile.Listing) float64 {
	boost := 0.0

	if l.PWDFriendly && c.RequiresAccessibility {
		boost += 0.5
	}
	if l.WomenEncouraged && strings.EqualFold(c.Gender, "female") {
		boost += 0.3
	}
	if l.LocalQuota && c.IsLocal {
		boost += 0.2
	}

	return math.Min(1.0, 0.5+boost)
}
