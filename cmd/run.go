package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spigell/intern-recommender/internal/cache"
	"github.com/spigell/intern-recommender/internal/logger"
	"github.com/spigell/intern-recommender/internal/recommender"
	"github.com/spigell/intern-recommender/internal/scoring"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptExplain       = "Show explanations"
	PromptMetrics       = "Show metrics"
	PromptResultsToFile = "Dump result to file"
	PromptExit          = "Exit"

	defaultCachePath = "cache/recommendations.db"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptExplain, PromptMetrics, PromptResultsToFile, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run <candidate.json> <listings.json>",
	Short: "Rank the listing catalog against the candidate profile",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntP("top-k", "k", 0, "shortlist length, overrides the configured value")
	runCmd.Flags().BoolP("force-refresh", "r", false, "bypass the cache and regenerate")
	runCmd.Flags().BoolP("auto-approve", "y", false, "print the shortlist and exit without a prompt")
	runCmd.Flags().String("cache-path", "", "path to the cache database")

	viper.BindPFlag("recommendation.cache-path", runCmd.Flags().Lookup("cache-path"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the intern-recommender", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	candidateRaw, err := loadCandidate(args[0])
	if err != nil {
		logger.Fatal("loading candidate profile", zap.Error(err), zap.String("path", args[0]))
	}

	listingsRaw, err := loadListings(args[1])
	if err != nil {
		logger.Fatal("loading listing catalog", zap.Error(err), zap.String("path", args[1]))
	}

	logger.Info("loaded listing catalog", zap.Int("count", len(listingsRaw)))

	engine, err := scoring.New(scoring.DefaultWeights().Merge(config.Weights))
	if err != nil {
		logger.Fatal("building the scoring engine", zap.Error(err),
			zap.String("hint", "check the weights section of the configuration file"),
		)
	}

	store, err := openCache(config)
	if err != nil {
		// A broken cache must not block recommendation delivery.
		logger.Warn("cache unavailable, running without it", zap.Error(err))
	} else {
		defer store.Close()
	}

	rec, err := recommender.New(&recommender.Deps{
		Logger: logger,
		Engine: engine,
		Cache:  store,
	}, recommender.Settings{
		TopK:        config.Recommendation.TopK,
		CacheMaxAge: time.Duration(config.Recommendation.CacheMaxAgeHours) * time.Hour,
		MinScore:    config.Recommendation.MinScore,
	})
	if err != nil {
		logger.Fatal("building the recommender", zap.Error(err))
	}

	topK, _ := cmd.Flags().GetInt("top-k")
	forceRefresh, _ := cmd.Flags().GetBool("force-refresh")

	result := rec.Recommend(ctx, candidateRaw, listingsRaw, recommender.Options{
		TopK:         topK,
		ForceRefresh: forceRefresh,
	})

	if result.Source == recommender.SourceError {
		logger.Fatal("recommendation failed", zap.String("error", result.Error))
	}

	logger.Info("shortlist ready",
		zap.Strings("listing_ids", result.Recommendations),
		zap.String("source", result.Source),
		zap.Duration("processing_time", result.ProcessingTime),
		zap.Float64("confidence", result.Confidence),
	)

	if len(result.Recommendations) == 0 {
		logger.Info("exiting", zap.String("reason", "no listings passed scoring"))
		return
	}

	if cmd.Flag("auto-approve").Value.String() == "true" {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, rec, logger, candidateRaw, listingsRaw, result); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, rec *recommender.Recommender, logger *zap.Logger, candidateRaw map[string]any, listingsRaw []map[string]any, result *recommender.Result) error {
	switch action {
	case PromptExplain:
		explanations := rec.Explain(candidateRaw, result.Recommendations, listingsRaw)
		for _, e := range explanations {
			logger.Info("recommendation explained",
				zap.String("listing_id", e.ListingID),
				zap.Float64("match_score", e.MatchScore),
				zap.Strings("reasons", e.Reasons),
			)
		}
		return nil
	case PromptMetrics:
		snap := rec.Metrics().Snapshot()
		pretty, _ := json.MarshalIndent(snap, "", "  ")
		logger.Info(string(pretty))
		return nil
	case PromptResultsToFile:
		filename, err := dumpResultToTmpFile(result)
		if err != nil {
			return fmt.Errorf("dump result to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func openCache(config *Config) (*cache.Store, error) {
	path := viper.GetString("recommendation.cache-path")
	if path == "" {
		path = config.Recommendation.CachePath
	}
	if path == "" {
		path = defaultCachePath
	}

	return cache.Open(path)
}

func loadCandidate(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var candidate map[string]any
	if err := json.Unmarshal(data, &candidate); err != nil {
		return nil, fmt.Errorf("parse candidate record: %w", err)
	}

	return candidate, nil
}

func loadListings(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var listings []map[string]any
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("parse listing catalog: %w", err)
	}

	return listings, nil
}

func dumpResultToTmpFile(result *recommender.Result) (string, error) {
	file, err := os.CreateTemp("", app+"-result-*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}

	if _, err := file.Write(payload); err != nil {
		return "", err
	}

	return file.Name(), nil
}
