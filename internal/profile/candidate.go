package profile

import (
	"strings"

	"github.com/spigell/intern-recommender/internal/skills"
)

// ExperienceTier classifies a candidate's practical experience.
type ExperienceTier string

const (
	TierBeginner     ExperienceTier = "beginner"
	TierIntermediate ExperienceTier = "intermediate"
	TierExperienced  ExperienceTier = "experienced"
)

// Candidate is the normalized, request-scoped view of a user record.
// It is immutable once built.
type Candidate struct {
	ID    string
	Name  string
	Email string

	City      string
	State     string
	Latitude  float64
	Longitude float64

	EducationLevel string
	Degree         string
	YearOfStudy    string
	GPA            float64

	TechnicalSkills string
	PreferredRole   string

	PreferredIndustry   string
	PreferredIndustries []string
	PreferredLocations  []string
	RemotePreference    bool
	WillingToRelocate   bool

	StipendExpectation float64
	DurationPreference string

	PreviousInternships string
	Projects            string

	Vision VisionData

	// Skills is the ordered union of declared, vision-extracted and
	// project-mined skills; SkillSet is its lookup form. Entries are
	// lowercase, trimmed and deduplicated.
	Skills   []string
	SkillSet map[string]struct{}

	Tier         ExperienceTier
	Completeness float64

	FlexibleHoursNeeded   bool
	RequiresAccessibility bool
	Gender                string
	IsLocal               bool
}

// HasSkill reports whether the candidate's merged skill set contains
// the given term.
func (c *Candidate) HasSkill(skill string) bool {
	_, ok := c.SkillSet[strings.ToLower(strings.TrimSpace(skill))]
	return ok
}

// HasVisionSkills reports whether the document extraction contributed
// any skills or technologies.
func (c *Candidate) HasVisionSkills() bool {
	return len(c.Vision.Skills) > 0 || len(c.Vision.Technologies) > 0
}

// SkillsText joins the merged skill list for text-similarity scoring.
func (c *Candidate) SkillsText() string {
	return strings.Join(c.Skills, " ")
}

// ProfileText is the free-text side of the title-similarity signal.
func (c *Candidate) ProfileText() string {
	return strings.TrimSpace(c.Degree + " " + c.TechnicalSkills + " " + c.PreferredRole)
}

// NormalizeCandidate builds a Candidate from a raw record. It never
// fails: undecodable fields keep their defaults and the caller treats
// the resulting lower-confidence profile as ordinary scoring input.
func NormalizeCandidate(raw map[string]any) *Candidate {
	var r RawCandidate
	// A decode error leaves the already-converted fields in place.
	_ = decodeRaw(raw, &r)

	vision := parseVisionData(r.VisionExtractedData)

	c := &Candidate{
		ID:    r.UserID,
		Name:  r.Name,
		Email: r.Username,

		City:      r.City,
		State:     r.State,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,

		EducationLevel: r.EducationLevel,
		Degree:         r.Degree,
		YearOfStudy:    r.YearOfStudy,
		GPA:            r.GPAPercentage,

		TechnicalSkills: r.TechnicalSkills,
		PreferredRole:   r.PreferredRole,

		PreferredIndustry:   r.PreferredIndustry,
		PreferredIndustries: skills.SplitList(r.PreferredIndustry),
		PreferredLocations:  skills.SplitList(r.PreferredLocations),
		RemotePreference:    wantsRemote(r.InternshipTypePreference),
		WillingToRelocate:   r.WillingToRelocate == nil || *r.WillingToRelocate,

		StipendExpectation: r.StipendExpectation,
		DurationPreference: r.DurationPreference,

		PreviousInternships: r.PreviousInternships,
		Projects:            r.Projects,

		Vision: vision,

		FlexibleHoursNeeded:   r.FlexibleHoursNeeded,
		RequiresAccessibility: r.RequiresAccessibility,
		Gender:                r.Gender,
		IsLocal:               r.IsLocal,
	}

	c.Skills = mergeCandidateSkills(r, vision)
	c.SkillSet = toSet(c.Skills)
	c.Tier = experienceTier(r, vision)
	c.Completeness = completeness(r)

	return c
}

// mergeCandidateSkills unions declared skills, vision-extracted skills
// and technologies, and keywords mined from the project text. Order is
// stable so downstream text joins stay deterministic.
func mergeCandidateSkills(r RawCandidate, vision VisionData) []string {
	var merged []string
	merged = append(merged, skills.SplitList(r.TechnicalSkills)...)
	merged = append(merged, skills.SplitList(r.SoftSkills)...)

	for _, s := range vision.Skills {
		merged = append(merged, strings.ToLower(strings.TrimSpace(s)))
	}
	for _, s := range vision.Technologies {
		merged = append(merged, strings.ToLower(strings.TrimSpace(s)))
	}

	merged = append(merged, skills.Flatten(skills.Extract(r.Projects))...)

	return dedupeNonEmpty(merged)
}

// experienceTier reproduces the heuristic point scheme used by the
// original ranking data: substantial internship and project
// descriptions, late academic years and extracted certificates all add
// points. The thresholds are an empirically tuned policy surface, not a
// principled model.
func experienceTier(r RawCandidate, vision VisionData) ExperienceTier {
	score := 0.0

	switch {
	case len(r.PreviousInternships) > 50:
		score += 2
	case r.PreviousInternships != "":
		score++
	}

	switch {
	case len(r.Projects) > 100:
		score += 2
	case r.Projects != "":
		score++
	}

	year := strings.ToLower(r.YearOfStudy)
	switch {
	case strings.Contains(year, "final") || strings.Contains(year, "4"):
		score++
	case strings.Contains(year, "3"):
		score += 0.5
	}

	certPoints := float64(len(vision.Certificates)) * 0.5
	if certPoints > 2 {
		certPoints = 2
	}
	score += certPoints

	switch {
	case score >= 4:
		return TierExperienced
	case score >= 2:
		return TierIntermediate
	default:
		return TierBeginner
	}
}

// completeness is the ratio of filled important profile fields.
func completeness(r RawCandidate) float64 {
	fields := []string{
		r.TechnicalSkills, r.EducationLevel, r.Degree, r.City,
		r.State, r.PreferredIndustry, r.InternshipTypePreference, r.Projects,
	}

	filled := 0
	for _, field := range fields {
		if strings.TrimSpace(field) != "" {
			filled++
		}
	}

	return float64(filled) / float64(len(fields))
}

func wantsRemote(typePreference string) bool {
	pref := strings.ToLower(typePreference)
	return strings.Contains(pref, "remote") || strings.Contains(pref, "online")
}

func toSet(list []string) map[string]struct{} {
	set := make(map[string]struct{}, len(list))
	for _, item := range list {
		set[item] = struct{}{}
	}
	return set
}

func dedupeNonEmpty(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
