package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "intern-recommender"
)

type Config struct {
	Recommendation *RecommendationConfig `mapstructure:"recommendation"`
	// Weights overrides individual signal weights; the merged table
	// must still cover every signal and sum to 1.0.
	Weights map[string]float64 `mapstructure:"weights"`
}

type RecommendationConfig struct {
	TopK             int     `mapstructure:"top-k"`
	CacheMaxAgeHours int     `mapstructure:"cache-max-age-hours"`
	MinScore         float64 `mapstructure:"min-score"`
	CachePath        string  `mapstructure:"cache-path"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "intern-recommender is a cli for ranking internship listings against a candidate profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is intern-recommender.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// Every setting has a default, so only an explicitly requested
	// config file is required to exist and parse.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound && cfgFile == "" {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Recommendation == nil {
		config.Recommendation = &RecommendationConfig{}
	}

	return config, nil
}
