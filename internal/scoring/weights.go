// Package scoring computes the weighted multi-signal match score for a
// (candidate, listing) pair. Each signal is an independent pure
// evaluator in [0,1]; a fixed weight vector combines them into one
// overall score. The engine is stateless per call.
package scoring

import (
	"fmt"
	"math"
)

// Signal names one of the twenty sub-scores.
type Signal string

const (
	SkillCoverage        Signal = "skill_coverage"
	SkillJaccard         Signal = "skill_jaccard"
	TopKSkills           Signal = "top_k_skills"
	SectorSimilarity     Signal = "sector_similarity"
	EducationGap         Signal = "education_gap"
	GeoDistance          Signal = "geo_distance"
	RemoteSuitability    Signal = "remote_suitability"
	Freshness            Signal = "freshness"
	DecayedCTR           Signal = "decayed_ctr"
	DecayedApplyRate     Signal = "decayed_apply_rate"
	SelectionRatio       Signal = "selection_ratio"
	TitleSimilarity      Signal = "title_similarity"
	DescriptionAlignment Signal = "description_alignment"
	SectorAffinity       Signal = "sector_affinity"
	LocationAffinity     Signal = "location_affinity"
	NoveltyDesire        Signal = "novelty_desire"
	FatigueScore         Signal = "fatigue_score"
	BarrierScore         Signal = "barrier_score"
	InclusivityFlag      Signal = "inclusivity_flag"
	DiversityRotation    Signal = "diversity_rotation"
)

// Signals lists all signals in their published order.
func Signals() []Signal {
	return []Signal{
		SkillCoverage, SkillJaccard, TopKSkills, SectorSimilarity,
		EducationGap, GeoDistance, RemoteSuitability, Freshness,
		DecayedCTR, DecayedApplyRate, SelectionRatio, TitleSimilarity,
		DescriptionAlignment, SectorAffinity, LocationAffinity,
		NoveltyDesire, FatigueScore, BarrierScore, InclusivityFlag,
		DiversityRotation,
	}
}

// Weights maps every signal to its share of the overall score. It is a
// first-class value injected into the engine, never mutated after
// construction.
type Weights map[Signal]float64

// Vector holds the twenty sub-scores computed for one pair.
type Vector map[Signal]float64

// publishedWeightSum is what the published table's shares actually
// total. The table is carried over verbatim, so the combined score can
// overshoot 1 by up to a hundredth on a perfect vector.
const publishedWeightSum = 1.01

// DefaultWeights returns the published weight table.
func DefaultWeights() Weights {
	return Weights{
		SkillCoverage:        0.15,
		SkillJaccard:         0.12,
		TopKSkills:           0.10,
		SectorSimilarity:     0.08,
		EducationGap:         0.07,
		GeoDistance:          0.06,
		RemoteSuitability:    0.05,
		Freshness:            0.05,
		DecayedCTR:           0.04,
		DecayedApplyRate:     0.04,
		SelectionRatio:       0.04,
		TitleSimilarity:      0.03,
		DescriptionAlignment: 0.03,
		SectorAffinity:       0.03,
		LocationAffinity:     0.03,
		NoveltyDesire:        0.02,
		FatigueScore:         0.02,
		BarrierScore:         0.02,
		InclusivityFlag:      0.02,
		DiversityRotation:    0.01,
	}
}

// Merge returns a copy of w with the provided per-signal overrides
// applied. Unknown signal names are rejected by Validate, not here.
func (w Weights) Merge(overrides map[string]float64) Weights {
	merged := make(Weights, len(w))
	for signal, weight := range w {
		merged[signal] = weight
	}
	for name, weight := range overrides {
		merged[Signal(name)] = weight
	}
	return merged
}

// Validate checks that the weight table covers exactly the known
// signals and sums to the published total within a small tolerance.
func (w Weights) Validate() error {
	known := Signals()
	if len(w) != len(known) {
		return fmt.Errorf("expected %d weights, got %d", len(known), len(w))
	}

	sum := 0.0
	for _, signal := range known {
		weight, ok := w[signal]
		if !ok {
			return fmt.Errorf("missing weight for signal %q", signal)
		}
		if weight < 0 {
			return fmt.Errorf("negative weight %f for signal %q", weight, signal)
		}
		sum += weight
	}

	if math.Abs(sum-publishedWeightSum) > 1e-6 {
		return fmt.Errorf("weights must sum to %v, got %f", publishedWeightSum, sum)
	}

	return nil
}
