package recommender

import "github.com/spigell/intern-recommender/internal/profile"

// confidence estimates how much to trust a generated shortlist. It
// averages three factors: how complete the profile is, whether
// document extraction contributed skills, and how close the result
// count came to the requested length.
func confidence(c *profile.Candidate, count, topK int) float64 {
	visionFactor := 0.3
	if c.HasVisionSkills() {
		visionFactor = 0.8
	}

	countFactor := 0.1
	switch {
	case count >= topK:
		countFactor = 0.9
	case count > 0:
		countFactor = 0.6
	}

	return (c.Completeness + visionFactor + countFactor) / 3.0
}
