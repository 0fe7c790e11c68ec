// Package skills tags free text with technology categories using
// whole-word keyword matching. It is stateless and shared by the
// profile normalizer and the scoring engine.
package skills

import (
	"regexp"
	"strings"
)

// Category is a fixed skill category recognized by the extractor.
type Category string

const (
	Programming    Category = "programming"
	WebFrameworks  Category = "web_frameworks"
	Databases      Category = "databases"
	CloudPlatforms Category = "cloud_platforms"
	Tools          Category = "tools"
	DataScience    Category = "data_science"
)

// Categories lists all known categories in a stable order.
func Categories() []Category {
	return []Category{Programming, WebFrameworks, Databases, CloudPlatforms, Tools, DataScience}
}

var patterns = map[Category]*regexp.Regexp{
	Programming: regexp.MustCompile(
		`(?i)\b(?:python|java|javascript|js|typescript|ts|c\+\+|cpp|c#|csharp|php|ruby|go|rust|kotlin|swift|scala|r|matlab|perl)\b`),
	WebFrameworks: regexp.MustCompile(
		`(?i)\b(?:react|angular|vue|django|flask|spring|express|laravel|rails|nextjs|gatsby|svelte)\b`),
	Databases: regexp.MustCompile(
		`(?i)\b(?:mysql|postgresql|postgres|mongodb|sqlite|redis|cassandra|oracle|sql server|dynamodb)\b`),
	CloudPlatforms: regexp.MustCompile(
		`(?i)\b(?:aws|azure|gcp|google cloud|docker|kubernetes|heroku|netlify|vercel)\b`),
	Tools: regexp.MustCompile(
		`(?i)\b(?:git|github|gitlab|jira|slack|trello|figma|photoshop|illustrator|sketch)\b`),
	DataScience: regexp.MustCompile(
		`(?i)\b(?:machine learning|ml|ai|artificial intelligence|tensorflow|pytorch|pandas|numpy|scikit-learn|jupyter|tableau|power bi)\b`),
}

// Extract returns the category terms found in text. Categories without a
// single match are absent from the result, so callers must treat a missing
// key the same as an empty list. When no categories are given, all known
// categories are checked.
func Extract(text string, categories ...Category) map[Category][]string {
	result := make(map[Category][]string)
	if strings.TrimSpace(text) == "" {
		return result
	}

	toCheck := categories
	if len(toCheck) == 0 {
		toCheck = Categories()
	}

	lowered := strings.ToLower(text)
	for _, category := range toCheck {
		re, ok := patterns[category]
		if !ok {
			continue
		}

		matches := re.FindAllString(lowered, -1)
		if len(matches) == 0 {
			continue
		}

		result[category] = dedupe(matches)
	}

	return result
}

// Flatten merges all category matches into one deduplicated list,
// preserving the stable category order.
func Flatten(extracted map[Category][]string) []string {
	var all []string
	for _, category := range Categories() {
		all = append(all, extracted[category]...)
	}
	return dedupe(all)
}

// SplitList turns a comma-separated skill string into cleaned entries:
// trimmed, lowercased, single-character and empty items dropped.
func SplitList(text string) []string {
	if text == "" {
		return nil
	}

	var cleaned []string
	for _, part := range strings.Split(text, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if len(part) > 1 {
			cleaned = append(cleaned, part)
		}
	}
	return cleaned
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(s)
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
