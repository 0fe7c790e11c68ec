// Package recommender sequences the recommendation pipeline:
// cache probe, profile normalization, scoring, diversification and
// cache write-back. It is the single place failures surface to the
// caller; everything below degrades to neutral defaults instead.
package recommender

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/intern-recommender/internal/cache"
	"github.com/spigell/intern-recommender/internal/logger"
	"github.com/spigell/intern-recommender/internal/profile"
	"github.com/spigell/intern-recommender/internal/rerank"
	"github.com/spigell/intern-recommender/internal/scoring"
)

// Result sources.
const (
	SourceCache     = "cache"
	SourceGenerated = "generated"
	SourceError     = "error"
)

const (
	DefaultTopK        = 6
	DefaultCacheMaxAge = 24 * time.Hour
	DefaultMinScore    = 0.1
)

// Deps carries the collaborators the recommender needs.
type Deps struct {
	Logger *zap.Logger
	Engine *scoring.Engine
	Cache  *cache.Store
}

// Settings are the per-instance pipeline parameters.
type Settings struct {
	// TopK is the default shortlist length.
	TopK int
	// CacheMaxAge bounds how long a cached shortlist stays valid.
	CacheMaxAge time.Duration
	// MinScore drops listings scoring below it before diversification.
	MinScore float64
}

// Options are per-request overrides.
type Options struct {
	// TopK overrides the configured shortlist length when positive.
	TopK int
	// ForceRefresh bypasses the cache probe and regenerates.
	ForceRefresh bool
}

// Result is the outcome of one Recommend call.
type Result struct {
	Recommendations []string
	Source          string
	Error           string

	ProcessingTime    time.Duration
	ProfileCompletion float64
	Confidence        float64
}

// Recommender runs the scoring pipeline for one candidate against a
// listing catalog.
type Recommender struct {
	deps     *Deps
	settings Settings
	metrics  *Metrics
}

// New builds a Recommender. Zero-valued settings fall back to the
// package defaults. The cache may be nil, which disables caching.
func New(deps *Deps, settings Settings) (*Recommender, error) {
	if deps == nil || deps.Logger == nil || deps.Engine == nil {
		return nil, fmt.Errorf("recommender requires a logger and a scoring engine")
	}

	if settings.TopK <= 0 {
		settings.TopK = DefaultTopK
	}
	if settings.CacheMaxAge <= 0 {
		settings.CacheMaxAge = DefaultCacheMaxAge
	}
	if settings.MinScore <= 0 {
		settings.MinScore = DefaultMinScore
	}

	return &Recommender{
		deps:     deps,
		settings: settings,
		metrics:  &Metrics{},
	}, nil
}

// Metrics returns the collector shared by all requests on this instance.
func (r *Recommender) Metrics() *Metrics {
	return r.metrics
}

// Recommend produces an ordered shortlist of listing ids for the given
// raw candidate record. It never returns an error value: any pipeline
// failure is reported inside the Result with Source set to "error".
func (r *Recommender) Recommend(ctx context.Context, candidateRaw map[string]any, listingsRaw []map[string]any, opts Options) (result *Result) {
	start := time.Now()

	topK := opts.TopK
	if topK <= 0 {
		topK = r.settings.TopK
	}

	requestID := uuid.NewString()
	log := logger.WithRequestFields(r.deps.Logger, requestID, "")

	// Registered before any pipeline stage runs, normalization included.
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("recommendation pipeline failed", zap.Any("panic", rec))
			result = &Result{
				Recommendations: []string{},
				Source:          SourceError,
				Error:           fmt.Sprint(rec),
				ProcessingTime:  time.Since(start),
			}
		}
	}()

	candidate := profile.NormalizeCandidate(candidateRaw)
	log = logger.WithRequestFields(r.deps.Logger, requestID, candidate.ID)

	log.Debug("candidate profile normalized",
		zap.String("tier", string(candidate.Tier)),
		zap.Float64("completeness", candidate.Completeness),
		zap.String("skills", logger.TruncateForLog(candidate.SkillsText(), 200)),
	)

	listings := make([]*profile.Listing, 0, len(listingsRaw))
	byID := make(map[string]*profile.Listing, len(listingsRaw))
	for _, raw := range listingsRaw {
		listing := profile.NormalizeListing(raw)
		listings = append(listings, listing)
		byID[listing.ID] = listing
	}

	if !opts.ForceRefresh {
		if ids, ok := r.cachedShortlist(ctx, log, candidate.ID, listings); ok {
			r.metrics.recordCacheHit()
			return &Result{
				Recommendations: ids,
				Source:          SourceCache,
				ProcessingTime:  time.Since(start),
			}
		}
		r.metrics.recordCacheMiss()
	}

	ranked := make([]rerank.Ranked, 0, len(listings))
	for _, listing := range listings {
		score := r.deps.Engine.Score(candidate, listing)
		if score < r.settings.MinScore {
			continue
		}
		ranked = append(ranked, rerank.Ranked{ID: listing.ID, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	ranked = rerank.Diversify(ranked, byID)
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}

	ids := make([]string, 0, len(ranked))
	for _, entry := range ranked {
		ids = append(ids, entry.ID)
	}

	r.storeShortlist(ctx, log, candidate.ID, listings, ids)

	elapsed := time.Since(start)
	r.metrics.recordGenerated(elapsed)

	log.Info("recommendations generated",
		zap.String(logger.FieldSource, SourceGenerated),
		zap.Int("count", len(ids)),
		zap.Int("catalog_size", len(listings)),
		zap.Duration("processing_time", elapsed),
	)

	return &Result{
		Recommendations:   ids,
		Source:            SourceGenerated,
		ProcessingTime:    elapsed,
		ProfileCompletion: candidate.Completeness,
		Confidence:        confidence(candidate, len(ids), topK),
	}
}

// cachedShortlist probes the cache. Read failures degrade to a miss.
func (r *Recommender) cachedShortlist(ctx context.Context, log *zap.Logger, userID string, listings []*profile.Listing) ([]string, bool) {
	if r.deps.Cache == nil {
		return nil, false
	}

	ids, ok, err := r.deps.Cache.Get(ctx, cache.Key(userID, listings), r.settings.CacheMaxAge)
	if err != nil {
		log.Warn("cache read failed, regenerating", zap.Error(err))
		return nil, false
	}
	if !ok || len(ids) == 0 {
		return nil, false
	}

	log.Info("recommendations served from cache",
		zap.String(logger.FieldSource, SourceCache),
		zap.Int("count", len(ids)),
	)

	return ids, true
}

// storeShortlist writes the generated ids back. Failures are logged
// and swallowed so delivery does not depend on cache durability.
func (r *Recommender) storeShortlist(ctx context.Context, log *zap.Logger, userID string, listings []*profile.Listing, ids []string) {
	if r.deps.Cache == nil || len(ids) == 0 {
		return
	}

	if err := r.deps.Cache.Put(ctx, cache.Key(userID, listings), ids); err != nil {
		log.Warn("cache write failed", zap.Error(err))
	}
}
