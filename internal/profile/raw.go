// Package profile turns raw candidate and listing records into the
// canonical request-scoped values consumed by the scoring engine.
// Raw records arrive as flat string/number mappings from the storage
// layer; every field has a default and normalization never fails.
package profile

import (
	"github.com/mitchellh/mapstructure"
)

// RawCandidate is the typed view of a raw user record. Missing fields
// keep their zero value; defaulting happens once here instead of at
// every scoring call site.
type RawCandidate struct {
	UserID   string `mapstructure:"user_id"`
	Name     string `mapstructure:"name"`
	Username string `mapstructure:"username"`

	City      string  `mapstructure:"city"`
	State     string  `mapstructure:"state"`
	Pincode   string  `mapstructure:"pincode"`
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`

	EducationLevel string  `mapstructure:"education_level"`
	Degree         string  `mapstructure:"degree"`
	YearOfStudy    string  `mapstructure:"year_of_study"`
	GPAPercentage  float64 `mapstructure:"gpa_percentage"`

	TechnicalSkills          string  `mapstructure:"technical_skills"`
	SoftSkills               string  `mapstructure:"soft_skills"`
	PreferredIndustry        string  `mapstructure:"preferred_industry"`
	PreferredLocations       string  `mapstructure:"preferred_locations"`
	PreferredRole            string  `mapstructure:"preferred_role"`
	InternshipTypePreference string  `mapstructure:"internship_type_preference"`
	DurationPreference       string  `mapstructure:"duration_preference"`
	StipendExpectation       float64 `mapstructure:"stipend_expectation"`

	PreviousInternships string `mapstructure:"previous_internships"`
	Projects            string `mapstructure:"projects"`

	// VisionExtractedData is the already-merged output of the external
	// document extraction service: either a JSON string or a decoded map.
	VisionExtractedData any `mapstructure:"vision_extracted_data"`

	FlexibleHoursNeeded   bool   `mapstructure:"flexible_hours_needed"`
	WillingToRelocate     *bool  `mapstructure:"willing_to_relocate"`
	RequiresAccessibility bool   `mapstructure:"requires_accessibility"`
	Gender                string `mapstructure:"gender"`
	IsLocal               bool   `mapstructure:"is_local"`
}

// RawListing is the typed view of a raw internship record.
type RawListing struct {
	InternshipID string `mapstructure:"internship_id"`
	Title        string `mapstructure:"title"`
	CompanyName  string `mapstructure:"company_name"`
	Description  string `mapstructure:"description"`

	City          string  `mapstructure:"city"`
	State         string  `mapstructure:"state"`
	Latitude      float64 `mapstructure:"latitude"`
	Longitude     float64 `mapstructure:"longitude"`
	RemoteAllowed bool    `mapstructure:"remote_allowed"`

	RequiredSkills       string `mapstructure:"required_skills"`
	EducationRequirement string `mapstructure:"education_requirement"`
	ExperienceRequired   string `mapstructure:"experience_required"`

	Duration string  `mapstructure:"duration"`
	Stipend  float64 `mapstructure:"stipend"`
	Type     string  `mapstructure:"type"`
	Industry string  `mapstructure:"industry"`

	PostedDate          string `mapstructure:"posted_date"`
	ApplicationDeadline string `mapstructure:"application_deadline"`

	ClickThroughRate  *float64 `mapstructure:"click_through_rate"`
	ApplyRate         *float64 `mapstructure:"apply_rate"`
	TotalApplications int      `mapstructure:"total_applications"`
	TotalSelections   int      `mapstructure:"total_selections"`

	RequiresFee        bool `mapstructure:"requires_fee"`
	StrictHours        bool `mapstructure:"strict_hours"`
	RequiresRelocation bool `mapstructure:"requires_relocation"`
	PWDFriendly        bool `mapstructure:"pwd_friendly"`
	WomenEncouraged    bool `mapstructure:"women_encouraged"`
	LocalQuota         bool `mapstructure:"local_quota"`
}

// decodeRaw weakly decodes a flat mapping into out. Number/string
// mismatches are converted instead of rejected; fields that still fail
// to decode keep their zero value, so a partially malformed record
// degrades instead of aborting the request.
func decodeRaw(raw map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(raw)
}
