package cmd

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-analyzer/internal/analysis"
	"github.com/spigell/resume-analyzer/internal/keywords"
)

const (
	app = "resume-analyzer"

	formatText = "text"
	formatJSON = "json"
)

type Config struct {
	Role        string              `mapstructure:"role"`
	JD          string              `mapstructure:"jd"`
	TopK        int                 `mapstructure:"top-k" validate:"gte=0"`
	Rewrite     bool                `mapstructure:"rewrite"`
	Out         string              `mapstructure:"out"`
	Format      string              `mapstructure:"format" validate:"oneof=text json"`
	Interactive bool                `mapstructure:"interactive"`
	Analysis    analysis.Options    `mapstructure:"analysis"`
	Roles       map[string][]string `mapstructure:"roles"`
	AI          *AIConfig           `mapstructure:"ai"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider" validate:"omitempty,oneof=gemini"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key" json:"-"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries" validate:"gte=0"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-analyzer scores a resume and explains how to improve it",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	setDefaults()
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-analyzer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults() {
	def := analysis.DefaultOptions()

	viper.SetDefault("top-k", keywords.DefaultTopK)
	viper.SetDefault("format", formatText)
	viper.SetDefault("analysis.max-bullets", def.Scoring.MaxBullets)
	viper.SetDefault("analysis.scored-bullets", def.Scoring.ScoredBullets)
	viper.SetDefault("analysis.specificity-words", def.Scoring.SpecificityWords)
	viper.SetDefault("analysis.missing-ratio", def.MissingRatio)
	viper.SetDefault("analysis.max-features", def.MaxFeatures)
	viper.SetDefault("analysis.max-suggestions", def.MaxSuggestions)
	viper.SetDefault("analysis.max-rewrites", def.MaxRewrites)
	viper.SetDefault("ai.provider", "gemini")
}

func initConfig() {
	// Only the analyze command reads the config.
	if analyzeCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The default config file is optional, an explicit one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		return nil, errors.New("config is empty")
	}

	config.Format = strings.ToLower(strings.TrimSpace(config.Format))
	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	config.Analysis.Roles = roleKeywords(config.Roles)
	return config, nil
}

// roleKeywords turns the configured role table into lookup order. Longer names go first so
// "senior data analyst" is matched before "data analyst".
func roleKeywords(roles map[string][]string) []keywords.RoleKeywords {
	if len(roles) == 0 {
		return nil
	}

	names := make([]string, 0, len(roles))
	for name := range roles {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	slices.SortFunc(names, func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(a, b)
	})

	out := make([]keywords.RoleKeywords, 0, len(names))
	for _, name := range names {
		out = append(out, keywords.RoleKeywords{
			Role:     strings.ToLower(strings.TrimSpace(name)),
			Keywords: roles[name],
		})
	}
	return out
}
