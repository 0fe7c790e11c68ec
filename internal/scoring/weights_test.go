package scoring

import (
	"math"
	"testing"
)

func TestDefaultWeightsMatchPublishedTotal(t *testing.T) {
	weights := DefaultWeights()

	// The published table totals 1.01, and the defaults must pass
	// their own validation so a default-weighted engine can be built.
	if err := weights.Validate(); err != nil {
		t.Fatalf("default weights must validate: %v", err)
	}

	sum := 0.0
	for _, weight := range weights {
		sum += weight
	}
	if math.Abs(sum-publishedWeightSum) > 1e-9 {
		t.Fatalf("expected weights to sum to %v, got %f", publishedWeightSum, sum)
	}
}

func TestWeightsValidateRejectsMissingSignal(t *testing.T) {
	weights := DefaultWeights()
	delete(weights, Freshness)

	if err := weights.Validate(); err == nil {
		t.Fatalf("expected error for missing signal")
	}
}

func TestWeightsValidateRejectsUnknownSignal(t *testing.T) {
	weights := DefaultWeights()
	weights[Signal("made_up")] = 0.0

	if err := weights.Validate(); err == nil {
		t.Fatalf("expected error for unknown signal")
	}
}

func TestWeightsValidateRejectsBadSum(t *testing.T) {
	weights := DefaultWeights()
	weights[SkillCoverage] = 0.5

	if err := weights.Validate(); err == nil {
		t.Fatalf("expected error for drifted sum")
	}
}

func TestWeightsMerge(t *testing.T) {
	base := DefaultWeights()
	merged := base.Merge(map[string]float64{
		"skill_coverage": 0.2,
		"skill_jaccard":  0.07,
	})

	if merged[SkillCoverage] != 0.2 || merged[SkillJaccard] != 0.07 {
		t.Fatalf("overrides not applied: %v", merged)
	}
	if base[SkillCoverage] != 0.15 {
		t.Fatalf("merge must not mutate the receiver, got %f", base[SkillCoverage])
	}
	if err := merged.Validate(); err != nil {
		t.Fatalf("adjusted weights should still validate: %v", err)
	}
}
