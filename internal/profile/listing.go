package profile

import (
	"strings"
	"time"

	"github.com/spigell/intern-recommender/internal/skills"
)

// Counter priors applied when a listing carries no performance data.
// Small positive values keep the ratio signals away from division
// edges.
const (
	defaultCTR       = 0.05
	defaultApplyRate = 0.02
)

var postedDateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Listing is the normalized, request-scoped view of an internship
// record. It is immutable once built.
type Listing struct {
	ID          string
	Title       string
	Employer    string
	Description string

	City          string
	State         string
	Latitude      float64
	Longitude     float64
	RemoteAllowed bool

	// RequiredSkills keeps declared skills first (in declared order)
	// followed by skills mined from the description; RequiredSet is its
	// lookup form.
	RequiredSkills []string
	RequiredSet    map[string]struct{}
	// MinedSkills is the per-category tagger output for the combined
	// requirements and description text.
	MinedSkills map[skills.Category][]string

	EducationRequirement string
	ExperienceRequired   string

	Duration string
	Stipend  float64
	Type     string
	Industry string

	// PostedAt falls back to the normalization time when the record
	// carries no parseable date, so freshness decays gracefully.
	PostedAt time.Time
	Deadline string

	CTR               float64
	ApplyRate         float64
	TotalApplications int
	TotalSelections   int

	Competitiveness float64
	Popularity      float64

	RequiresFee        bool
	StrictHours        bool
	RequiresRelocation bool
	PWDFriendly        bool
	WomenEncouraged    bool
	LocalQuota         bool
}

// LocationText is the listing side of the location-affinity signal.
func (l *Listing) LocationText() string {
	return strings.ToLower(strings.TrimSpace(l.City + " " + l.State))
}

// NormalizeListing builds a Listing from a raw record. Like candidate
// normalization it never fails; missing fields get documented defaults.
func NormalizeListing(raw map[string]any) *Listing {
	var r RawListing
	_ = decodeRaw(raw, &r)

	l := &Listing{
		ID:          r.InternshipID,
		Title:       r.Title,
		Employer:    r.CompanyName,
		Description: r.Description,

		City:          r.City,
		State:         r.State,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		RemoteAllowed: r.RemoteAllowed,

		EducationRequirement: r.EducationRequirement,
		ExperienceRequired:   r.ExperienceRequired,

		Duration: r.Duration,
		Stipend:  r.Stipend,
		Type:     r.Type,
		Industry: r.Industry,

		PostedAt: parsePostedDate(r.PostedDate),
		Deadline: r.ApplicationDeadline,

		CTR:               defaultCTR,
		ApplyRate:         defaultApplyRate,
		TotalApplications: r.TotalApplications,
		TotalSelections:   r.TotalSelections,

		RequiresFee:        r.RequiresFee,
		StrictHours:        r.StrictHours,
		RequiresRelocation: r.RequiresRelocation,
		PWDFriendly:        r.PWDFriendly,
		WomenEncouraged:    r.WomenEncouraged,
		LocalQuota:         r.LocalQuota,
	}

	if r.ClickThroughRate != nil {
		l.CTR = *r.ClickThroughRate
	}
	if r.ApplyRate != nil {
		l.ApplyRate = *r.ApplyRate
	}

	l.MinedSkills = skills.Extract(r.RequiredSkills + " " + r.Description)

	declared := skills.SplitList(r.RequiredSkills)
	l.RequiredSkills = dedupeNonEmpty(append(declared, skills.Flatten(l.MinedSkills)...))
	l.RequiredSet = toSet(l.RequiredSkills)

	l.Competitiveness = competitiveness(r.TotalApplications, r.TotalSelections)
	l.Popularity = popularity(l.CTR, l.ApplyRate)

	return l
}

// competitiveness maps applications-per-selection onto [0,1], treating
// fewer than one selection as one to avoid the division edge.
func competitiveness(applications, selections int) float64 {
	if applications == 0 {
		return 0
	}
	if selections < 1 {
		selections = 1
	}

	ratio := float64(applications) / float64(selections)
	return min(1, ratio/100)
}

// popularity blends click-through and apply rates, normalized against a
// strong 0.1 combined rate.
func popularity(ctr, applyRate float64) float64 {
	return min(1, (ctr*0.7+applyRate*0.3)/0.1)
}

func parsePostedDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now()
	}

	for _, format := range postedDateFormats {
		if parsed, err := time.Parse(format, value); err == nil {
			return parsed
		}
	}

	return time.Now()
}
