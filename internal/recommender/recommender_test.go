package recommender

import (
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/intern-recommender/internal/cache"
	"github.com/spigell/intern-recommender/internal/profile"
	"github.com/spigell/intern-recommender/internal/scoring"
)

func testCandidate() map[string]any {
	return map[string]any{
		"user_id":                    "user-1",
		"city":                       "Mumbai",
		"state":                      "Maharashtra",
		"education_level":            "undergraduate",
		"degree":                     "computer science",
		"technical_skills":           "python, sql, docker",
		"preferred_industry":         "software",
		"internship_type_preference": "remote",
		"projects":                   "built a data pipeline with python and airflow over two semesters",
	}
}

func testListings() []map[string]any {
	return []map[string]any{
		{
			"internship_id":   "int-1",
			"title":           "python developer intern",
			"company_name":    "Acme",
			"industry":        "software",
			"required_skills": "python, sql",
			"remote_allowed":  true,
			"posted_date":     time.Now().UTC().Format("2006-01-02"),
		},
		{
			"internship_id":   "int-2",
			"title":           "marketing intern",
			"company_name":    "Globex",
			"industry":        "marketing",
			"required_skills": "seo, copywriting",
			"posted_date":     "2020-01-01",
		},
		{
			"internship_id":   "int-3",
			"title":           "backend intern",
			"company_name":    "Initech",
			"industry":        "software",
			"required_skills": "python, docker",
			"remote_allowed":  true,
			"posted_date":     time.Now().UTC().Format("2006-01-02"),
		},
	}
}

func newTestRecommender(t *testing.T, settings Settings, withCache bool) *Recommender {
	t.Helper()

	engine, err := scoring.New(nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	deps := &Deps{Logger: zap.NewNop(), Engine: engine}

	if withCache {
		store, err := cache.Open(filepath.Join(t.TempDir(), "recommendations.db"))
		if err != nil {
			t.Fatalf("open cache: %v", err)
		}
		t.Cleanup(func() { store.Close() })
		deps.Cache = store
	}

	rec, err := New(deps, settings)
	if err != nil {
		t.Fatalf("new recommender: %v", err)
	}

	return rec
}

func TestRecommendGenerated(t *testing.T) {
	rec := newTestRecommender(t, Settings{}, false)

	result := rec.Recommend(context.Background(), testCandidate(), testListings(), Options{})

	if result.Source != SourceGenerated {
		t.Fatalf("source = %q, want %q", result.Source, SourceGenerated)
	}
	if len(result.Recommendations) == 0 {
		t.Fatal("expected recommendations")
	}
	if result.Recommendations[0] == "int-2" {
		t.Fatal("stale marketing listing must not rank first")
	}
	if result.ProfileCompletion <= 0 {
		t.Fatalf("profile completion = %v, want > 0", result.ProfileCompletion)
	}
	if result.Confidence <= 0 || result.Confidence > 1 {
		t.Fatalf("confidence = %v, want in (0, 1]", result.Confidence)
	}
}

func TestRecommendCacheRoundTrip(t *testing.T) {
	rec := newTestRecommender(t, Settings{}, true)
	ctx := context.Background()

	first := rec.Recommend(ctx, testCandidate(), testListings(), Options{})
	if first.Source != SourceGenerated {
		t.Fatalf("first source = %q, want %q", first.Source, SourceGenerated)
	}

	second := rec.Recommend(ctx, testCandidate(), testListings(), Options{})
	if second.Source != SourceCache {
		t.Fatalf("second source = %q, want %q", second.Source, SourceCache)
	}
	if !reflect.DeepEqual(second.Recommendations, first.Recommendations) {
		t.Fatalf("cached ids %v differ from generated %v", second.Recommendations, first.Recommendations)
	}

	third := rec.Recommend(ctx, testCandidate(), testListings(), Options{ForceRefresh: true})
	if third.Source != SourceGenerated {
		t.Fatalf("forced refresh source = %q, want %q", third.Source, SourceGenerated)
	}
}

func TestRecommendListingChangeInvalidatesCache(t *testing.T) {
	rec := newTestRecommender(t, Settings{}, true)
	ctx := context.Background()

	rec.Recommend(ctx, testCandidate(), testListings(), Options{})

	changed := testListings()
	changed[0]["posted_date"] = "2024-05-01"

	result := rec.Recommend(ctx, testCandidate(), changed, Options{})
	if result.Source != SourceGenerated {
		t.Fatalf("source = %q, want regeneration after catalog change", result.Source)
	}
}

func TestRecommendTopKTruncation(t *testing.T) {
	rec := newTestRecommender(t, Settings{}, false)

	result := rec.Recommend(context.Background(), testCandidate(), testListings(), Options{TopK: 1})

	if len(result.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(result.Recommendations))
	}
}

func TestRecommendMinScoreDropsEverything(t *testing.T) {
	rec := newTestRecommender(t, Settings{MinScore: 0.99}, false)

	result := rec.Recommend(context.Background(), testCandidate(), testListings(), Options{})

	if result.Source != SourceGenerated {
		t.Fatalf("source = %q, want %q", result.Source, SourceGenerated)
	}
	if len(result.Recommendations) != 0 {
		t.Fatalf("got %v, want no listing above threshold", result.Recommendations)
	}
}

func TestRecommendEmptyCatalog(t *testing.T) {
	rec := newTestRecommender(t, Settings{}, false)

	result := rec.Recommend(context.Background(), testCandidate(), nil, Options{})

	if result.Source != SourceGenerated {
		t.Fatalf("source = %q, want %q", result.Source, SourceGenerated)
	}
	if len(result.Recommendations) != 0 {
		t.Fatalf("got %v, want empty shortlist", result.Recommendations)
	}
}

func TestRecommendPanicBecomesErrorResult(t *testing.T) {
	// Bypasses New to plant a nil engine; the first Score call panics
	// and must surface as an error result, not crash the caller.
	rec := &Recommender{
		deps:     &Deps{Logger: zap.NewNop()},
		settings: Settings{TopK: DefaultTopK, CacheMaxAge: DefaultCacheMaxAge, MinScore: DefaultMinScore},
		metrics:  &Metrics{},
	}

	result := rec.Recommend(context.Background(), testCandidate(), testListings(), Options{ForceRefresh: true})

	if result.Source != SourceError {
		t.Fatalf("source = %q, want %q", result.Source, SourceError)
	}
	if len(result.Recommendations) != 0 {
		t.Fatalf("got %v, want empty recommendations on failure", result.Recommendations)
	}
	if result.Error == "" {
		t.Fatal("expected an error message")
	}
}

func TestConfidenceCountTiers(t *testing.T) {
	candidate := profile.NormalizeCandidate(testCandidate())

	met := confidence(candidate, 6, 6)
	partial := confidence(candidate, 3, 6)
	zero := confidence(candidate, 0, 6)

	if met <= partial || partial <= zero {
		t.Fatalf("confidence tiers not ordered: met=%v partial=%v zero=%v", met, partial, zero)
	}

	// Factors differ only in the count term, so the gaps are fixed.
	if diff := met - partial; diff < 0.0999 || diff > 0.1001 {
		t.Fatalf("met-partial gap = %v, want 0.3/3", diff)
	}
	if diff := partial - zero; diff < 0.1666 || diff > 0.1667 {
		t.Fatalf("partial-zero gap = %v, want 0.5/3", diff)
	}
}

func TestMetricsCollection(t *testing.T) {
	rec := newTestRecommender(t, Settings{}, true)
	ctx := context.Background()

	rec.Recommend(ctx, testCandidate(), testListings(), Options{})
	rec.Recommend(ctx, testCandidate(), testListings(), Options{})

	snap := rec.Metrics().Snapshot()
	if snap.Generated != 1 {
		t.Fatalf("generated = %d, want 1", snap.Generated)
	}
	if snap.CacheHits != 1 || snap.CacheMisses != 1 {
		t.Fatalf("hits=%d misses=%d, want 1/1", snap.CacheHits, snap.CacheMisses)
	}
	if snap.HitRate != 0.5 {
		t.Fatalf("hit rate = %v, want 0.5", snap.HitRate)
	}
	if snap.AvgTime <= 0 {
		t.Fatalf("avg time = %v, want > 0", snap.AvgTime)
	}
}

func TestExplainReasons(t *testing.T) {
	rec := newTestRecommender(t, Settings{}, false)

	explanations := rec.Explain(testCandidate(), []string{"int-1", "missing"}, testListings())

	if len(explanations) != 1 {
		t.Fatalf("got %d explanations, want 1 (unknown id skipped)", len(explanations))
	}

	e := explanations[0]
	if e.ListingID != "int-1" {
		t.Fatalf("listing id = %q, want int-1", e.ListingID)
	}
	if e.MatchScore <= 0 || e.MatchScore > 1 {
		t.Fatalf("match score = %v, want in (0, 1]", e.MatchScore)
	}

	joined := strings.Join(e.Reasons, "; ")
	for _, want := range []string{"Your skills match", "software industry preference"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("reasons %q missing %q", joined, want)
		}
	}
}

func TestExplainFallbackReason(t *testing.T) {
	rec := newTestRecommender(t, Settings{}, false)

	listings := []map[string]any{{"internship_id": "int-9"}}
	explanations := rec.Explain(map[string]any{"user_id": "user-2"}, []string{"int-9"}, listings)

	if len(explanations) != 1 {
		t.Fatalf("got %d explanations, want 1", len(explanations))
	}

	reasons := explanations[0].Reasons
	if len(reasons) == 0 {
		t.Fatal("expected a fallback reason")
	}
}
