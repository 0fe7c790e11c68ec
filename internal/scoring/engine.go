package scoring

import (
	"fmt"

	"github.com/spigell/intern-recommender/internal/profile"
)

// Engine scores (candidate, listing) pairs with an immutable weight
// vector fixed at construction.
type Engine struct {
	weights Weights
}

// New builds an Engine. A nil weight table selects the defaults; any
// provided table must validate.
func New(weights Weights) (*Engine, error) {
	if weights == nil {
		weights = DefaultWeights()
	}
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("scoring weights: %w", err)
	}

	// Private copy so later mutation by the caller cannot leak in.
	owned := make(Weights, len(weights))
	for signal, weight := range weights {
		owned[signal] = weight
	}

	return &Engine{weights: owned}, nil
}

// Weights returns a copy of the engine's weight table.
func (e *Engine) Weights() Weights {
	out := make(Weights, len(e.weights))
	for signal, weight := range e.weights {
		out[signal] = weight
	}
	return out
}

// Vector computes all twenty sub-scores for the pair. Every evaluator
// degrades to its documented neutral default on missing input, so a
// sparse profile narrows the score instead of failing the request.
func (e *Engine) Vector(c *profile.Candidate, l *profile.Listing) Vector {
	return Vector{
		SkillCoverage:        skillCoverage(c, l),
		SkillJaccard:         skillJaccard(c, l),
		TopKSkills:           topKSkillHit(c, l),
		SectorSimilarity:     sectorSimilarity(c, l),
		EducationGap:         educationGap(c, l),
		GeoDistance:          geoDistance(c, l),
		RemoteSuitability:    remoteSuitability(c, l),
		Freshness:            freshness(l),
		DecayedCTR:           decayedCTR(l),
		DecayedApplyRate:     decayedApplyRate(l),
		SelectionRatio:       selectionRatio(l),
		TitleSimilarity:      titleSimilarity(c, l),
		DescriptionAlignment: descriptionAlignment(c, l),
		SectorAffinity:       sectorAffinity(c, l),
		LocationAffinity:     locationAffinity(c, l),
		NoveltyDesire:        noveltyDesireConstant,
		FatigueScore:         fatigueScoreConstant,
		BarrierScore:         barrierScore(c, l),
		InclusivityFlag:      inclusivityScore(c, l),
		DiversityRotation:    rotationConstant,
	}
}

// Score is the weighted sum over the sub-score vector. The published
// weight table totals 1.01, so a perfect vector overshoots 1 by up to
// a hundredth; individual sub-scores stay clamped.
func (e *Engine) Score(c *profile.Candidate, l *profile.Listing) float64 {
	return e.Combine(e.Vector(c, l))
}

// Combine applies the weight table to an already-computed vector.
// Summation follows the fixed signal order so the floating-point
// result is identical across calls.
func (e *Engine) Combine(v Vector) float64 {
	total := 0.0
	for _, signal := range Signals() {
		total += v[signal] * e.weights[signal]
	}
	return total
}
