package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/ai"
	"github.com/spigell/resume-analyzer/internal/ai/gemini"
	"github.com/spigell/resume-analyzer/internal/analysis"
	"github.com/spigell/resume-analyzer/internal/logger"
	"github.com/spigell/resume-analyzer/internal/schemas"
	"github.com/spigell/resume-analyzer/internal/secrets"
)

const (
	PromptBreakdown   = "Show score breakdown"
	PromptKeywords    = "Show missing keywords"
	PromptSuggestions = "Show bullet suggestions"
	PromptRewrites    = "Show rewrites"
	PromptSaveReport  = "Save report to file"
	PromptDumpJSON    = "Dump result as JSON to temp file"
	PromptExit        = "Exit"

	geminiAPIKeyEnv = "GEMINI_API_KEY"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptBreakdown, PromptKeywords, PromptSuggestions, PromptRewrites, PromptSaveReport, PromptDumpJSON, PromptExit},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume>",
	Short: "Analyze a resume (PDF, .txt or .md) against a role or a job description",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		analyze(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("role", "", "target role, used for keyword focus when --jd is not provided")
	analyzeCmd.Flags().String("jd", "", "path to a job description text file")
	analyzeCmd.Flags().Int("top-k", 25, "how many top missing keywords to show")
	analyzeCmd.Flags().Bool("rewrite", false, "generate rule-based bullet rewrites (offline)")
	analyzeCmd.Flags().StringP("out", "o", "", "write the report to this file instead of stdout")
	analyzeCmd.Flags().StringP("format", "f", formatText, "output format: text or json")
	analyzeCmd.Flags().BoolP("interactive", "i", false, "open a menu after the analysis")

	for _, name := range []string{"role", "jd", "top-k", "rewrite", "out", "format", "interactive"} {
		viper.BindPFlag(name, analyzeCmd.Flags().Lookup(name))
	}
}

// analyze is the main command for the cli.
func analyze(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating a logger: %s\n", err)
		os.Exit(1)
	}

	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		log.Fatal("resume path is required", zap.String("usage", cmd.UseLine()))
	}
	path := args[0]

	log = logger.WithFields(log, logger.AnalysisFields(uuid.NewString(), path)...)

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	log.Info("starting the resume-analyzer", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	log.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if _, err := os.Stat(path); err != nil {
		log.Fatal("resume not found", zap.Error(err))
	}

	jd, err := readJobDescription(config.JD)
	if err != nil {
		log.Fatal("reading job description", zap.Error(err))
	}

	var deps []analysis.Dependency
	reviewer, err := prepareReviewer(ctx, config.AI, log)
	if err != nil {
		log.Warn("skipping AI review", zap.Error(err))
	}
	if reviewer != nil {
		deps = append(deps, analysis.WithReviewer(reviewer))
	}

	analyzer, err := analysis.New(log, config.Analysis, deps...)
	if err != nil {
		log.Fatal("creating the analyzer", zap.Error(err))
	}

	res := analyzer.AnalyzeDocument(ctx, path, analysis.Input{
		Role:             strings.TrimSpace(config.Role),
		JobDescription:   jd,
		TopKMissing:      config.TopK,
		GenerateRewrites: config.Rewrite,
	})
	if res.Failed() {
		log.Error("analysis failed", zap.String("error", res.Error))
	}

	if err := writeOutput(config, res, log); err != nil {
		log.Fatal("writing the report", zap.Error(err))
	}

	if config.Interactive {
		for {
			_, action, err := prompt.Run()
			if err != nil {
				log.Fatal("exiting", zap.Error(err))
			}

			if err := handleAction(action, res, os.Stdout, log); err != nil {
				if errors.Is(err, errExit) {
					break
				}
				log.Error("action failed", zap.String("action", action), zap.Error(err))
			}
		}
	}

	if res.Failed() {
		os.Exit(1)
	}
}

func readJobDescription(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("job description file: %w", err)
	}
	return strings.ToValidUTF8(string(data), ""), nil
}

func render(format string, res *analysis.Result, log *zap.Logger) ([]byte, error) {
	if format != formatJSON {
		return []byte(res.ReportText), nil
	}

	if err := schemas.ValidateResult(res); err != nil {
		var loadErr *schemas.SchemaLoadError
		if !errors.As(err, &loadErr) {
			return nil, fmt.Errorf("result does not match schema: %w", err)
		}
		log.Warn("skipping result validation", zap.Error(err))
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return append(data, '\n'), nil
}

func writeOutput(config *Config, res *analysis.Result, log *zap.Logger) error {
	data, err := render(config.Format, res, log)
	if err != nil {
		return err
	}

	if config.Out == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(config.Out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", config.Out, err)
	}
	log.Info("saved report", zap.String("filename", config.Out))
	return nil
}

func handleAction(action string, res *analysis.Result, w io.Writer, log *zap.Logger) error {
	switch action {
	case PromptBreakdown:
		_, err := fmt.Fprint(w, analysis.RenderBreakdown(res))
		return err
	case PromptKeywords:
		_, err := fmt.Fprint(w, analysis.RenderKeywords(res))
		return err
	case PromptSuggestions:
		if len(res.BulletSuggestions) == 0 {
			log.Info("no bullet suggestions")
			return nil
		}
		_, err := fmt.Fprint(w, analysis.RenderSuggestions(res))
		return err
	case PromptRewrites:
		if len(res.Rewrites) == 0 {
			log.Info("no rewrites", zap.String("hint", "run with --rewrite"))
			return nil
		}
		_, err := fmt.Fprint(w, analysis.RenderRewrites(res))
		return err
	case PromptSaveReport:
		filename, err := saveReport(res)
		if err != nil {
			return err
		}
		log.Info("saved report", zap.String("filename", filename))
		return nil
	case PromptDumpJSON:
		filename, err := dumpToTmpFile(res)
		if err != nil {
			return fmt.Errorf("dump result to file: %w", err)
		}
		log.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		log.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func saveReport(res *analysis.Result) (string, error) {
	filenamePrompt := promptui.Prompt{
		Label:   "Report file",
		Default: app + "-report.txt",
	}

	filename, err := filenamePrompt.Run()
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(filename, []byte(res.ReportText), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}
	return filename, nil
}

func dumpToTmpFile(res *analysis.Result) (string, error) {
	file, err := os.CreateTemp("", app+"-*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(res); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func prepareReviewer(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Reviewer, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	gcfg := cfg.Gemini
	if gcfg == nil {
		gcfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: gcfg.APIKey,
		Env:   geminiAPIKeyEnv,
		File:  gcfg.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	genLogger := log.With(zap.Int("ai_retry_attempts", gcfg.MaxRetries))

	generator, err := gemini.NewGenerator(ctx, apiKey, gcfg.Model, gcfg.MaxRetries, genLogger)
	if err != nil {
		return nil, fmt.Errorf("building gemini generator: %w", err)
	}

	return gemini.NewReviewer(generator, gcfg.MaxLogLength, log), nil
}
