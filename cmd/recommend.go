package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/climatiq-tools/carbon-adviser/internal/ai"
	"github.com/climatiq-tools/carbon-adviser/internal/ai/gemini"
	"github.com/climatiq-tools/carbon-adviser/internal/benchmark"
	"github.com/climatiq-tools/carbon-adviser/internal/engine"
	"github.com/climatiq-tools/carbon-adviser/internal/filtering"
	"github.com/climatiq-tools/carbon-adviser/internal/logger"
	"github.com/climatiq-tools/carbon-adviser/internal/secrets"
	"github.com/climatiq-tools/carbon-adviser/internal/wizard"
)

const (
	PromptExit           = "Exit"
	PromptReportBySystem = "Report by system"
	PromptDumpToFile     = "Dump recommended actions to file"
	PromptMarkAdopted    = "Mark recommended measures as adopted"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptExit, PromptReportBySystem, PromptDumpToFile, PromptMarkAdopted},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend reduction actions for your industry and goal",
	Run: func(cmd *cobra.Command, _ []string) {
		recommend(cmd)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringP("industry", "i", "", "industry segment, skips the industry question")
	recommendCmd.Flags().BoolP("auto-approve", "y", false, "print the recommendation and exit without the action prompt")
	recommendCmd.Flags().StringP("adopted-file", "e", "", "special file with already adopted measures. Default is unset.")

	viper.BindPFlag("filters.adopted-file", recommendCmd.Flags().Lookup("adopted-file"))
}

// recommend is the main command for the cli.
func recommend(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the carbon-adviser", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	records := fetchRecords(ctx, config, logger)
	if records.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "benchmark dataset is empty"))
		return
	}

	industry := cmd.Flag("industry").Value.String()
	if industry == "" && config != nil && config.Profile != nil {
		industry = config.Profile.Industry
	}

	w := wizard.New(industry, records.Industries())
	outcome, err := w.Run()
	if err != nil {
		logger.Fatal("collecting profile and goal", zap.Error(err))
	}

	filtered, err := filtering.Run(ctx, filterConfig(config), filtering.Deps{Logger: logger}, prepareFilters(), records)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	result := engine.Recommend(filtered.Items, outcome.Industry, outcome.Goal)

	if result.Kind == engine.KindNone {
		logger.Info("no data for this industry/goal combination",
			zap.String("industry", outcome.Industry),
			zap.Float64("target_gap", result.TargetGap),
		)
		return
	}

	renderResult(os.Stdout, result, outcome.Goal)

	adviseOnResult(ctx, config, logger, outcome, result)

	if cmd.Flag("auto-approve").Value.String() == "true" {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, result); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, result *engine.Result) error {
	recommended := &benchmark.Records{Items: result.Items}

	switch action {
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	case PromptReportBySystem:
		pretty, _ := json.MarshalIndent(recommended.ReportBySystem(), "", "  ")
		logger.Info(string(pretty), zap.Int("actions count", recommended.Len()))
		return nil
	case PromptDumpToFile:
		filename, err := recommended.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptMarkAdopted:
		return markAdopted(logger, recommended)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// markAdopted appends the recommended measures to the adopted file so the
// next run excludes them.
func markAdopted(logger *zap.Logger, recommended *benchmark.Records) error {
	path := strings.TrimSpace(viper.GetString("filters.adopted-file"))
	if path == "" {
		return fmt.Errorf("adopted file is not configured, set --adopted-file or filters.adopted-file")
	}

	adopted, err := benchmark.AdoptedFromFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("reading adopted file: %w", err)
		}
		adopted = &benchmark.AdoptedMeasures{}
	}

	adopted.Append(recommended.ToAdopted())

	if err := adopted.ToFile(path); err != nil {
		return fmt.Errorf("writing adopted file: %w", err)
	}

	logger.Info("appended to adopted file",
		zap.String("filename", path),
		zap.Int("measures", recommended.Len()),
	)
	return nil
}

func fetchRecords(ctx context.Context, config *Config, logger *zap.Logger) *benchmark.Records {
	sourceURL := strings.TrimSpace(viper.GetString("source.url"))
	if config != nil && config.Source != nil && config.Source.URL != "" {
		sourceURL = config.Source.URL
	}
	if sourceURL == "" {
		logger.Fatal("benchmark source url is required",
			zap.String("hint", "set source.url in the configuration file or CARBON_ADVISER_SOURCE_URL"),
		)
	}

	token, err := resolveToken(config)
	if err != nil {
		logger.Fatal("loading benchmark source token", zap.Error(err))
	}

	client := benchmark.New(ctx, logger, sourceURL, token)
	if config != nil && config.Source != nil && config.Source.UserAgent != "" {
		client.UserAgent = config.Source.UserAgent
	}

	records, err := client.FetchRecords()
	if err != nil {
		logger.Fatal("fetching benchmark records", zap.Error(err))
	}

	logger.Info("fetched benchmark records",
		zap.Int("count", records.Len()),
		zap.Int("industries", len(records.Industries())),
	)

	return records
}

// resolveToken returns the optional bearer token for protected exports. An
// unconfigured token is not an error; public sheets need none.
func resolveToken(config *Config) (string, error) {
	tokenFile := strings.TrimSpace(viper.GetString("source.token-file"))
	if config != nil && config.Source != nil && config.Source.TokenFile != "" {
		tokenFile = strings.TrimSpace(config.Source.TokenFile)
	}

	if tokenFile == "" {
		return "", nil
	}

	return secrets.Load(secrets.Source{
		Name: "benchmark source token",
		File: tokenFile,
	})
}

func prepareFilters() []filtering.Filter {
	return []filtering.Filter{
		filtering.NewAdoptedMeasures(),
		filtering.NewMaxPayback(),
		filtering.NewSystems(),
	}
}

func filterConfig(config *Config) *filtering.Config {
	cfg := &filtering.Config{
		AdoptedFile: strings.TrimSpace(viper.GetString("filters.adopted-file")),
	}
	if config != nil && config.Filters != nil {
		cfg.AdoptedMeasures = config.Filters.AdoptedMeasures
		cfg.MaxPaybackYears = config.Filters.MaxPaybackYears
		cfg.Systems = config.Filters.Systems
		if cfg.AdoptedFile == "" {
			cfg.AdoptedFile = strings.TrimSpace(config.Filters.AdoptedFile)
		}
	}
	return cfg
}

// adviseOnResult asks the configured AI provider for adoption advice. It is
// best-effort: failures degrade to a warning, never to a lost recommendation.
func adviseOnResult(ctx context.Context, config *Config, logger *zap.Logger, outcome *wizard.Outcome, result *engine.Result) {
	if config == nil || config.AI == nil || !config.AI.Enabled {
		return
	}

	advisor, err := newAIAdvisor(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("skipping AI advice", zap.Error(err))
		return
	}

	advice, err := advisor.Advise(ctx, outcome.Industry, result, outcome.Goal)
	if err != nil {
		logger.Warn("AI advice failed", zap.Error(err))
		return
	}

	renderAdvice(os.Stdout, advice, result)
}

func newAIAdvisor(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Advisor, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai advice is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	advisorLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
	)

	return gemini.NewAdvisor(generator, advisorLogger, cfg.Gemini.MaxRetries, cfg.Gemini.MaxLogLength), nil
}
