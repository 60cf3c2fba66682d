package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "carbon-adviser"
)

type Config struct {
	Source  *SourceConfig `mapstructure:"source"`
	Profile *struct {
		Industry string `mapstructure:"industry"`
	} `mapstructure:"profile"`
	Filters *FiltersConfig `mapstructure:"filters"`
	AI      *AIConfig      `mapstructure:"ai"`
}

type SourceConfig struct {
	URL       string `mapstructure:"url"`
	UserAgent string `mapstructure:"user-agent"`
	TokenFile string `mapstructure:"token-file"`
}

type FiltersConfig struct {
	AdoptedMeasures []string `mapstructure:"adopted-measures"`
	AdoptedFile     string   `mapstructure:"adopted-file"`
	MaxPaybackYears float64  `mapstructure:"max-payback-years"`
	Systems         []string `mapstructure:"systems"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "carbon-adviser recommends energy and carbon reduction actions from industry benchmark data",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("source.url", "CARBON_ADVISER_SOURCE_URL"); err != nil {
		log.Fatalf("binding CARBON_ADVISER_SOURCE_URL environment variable: %v", err)
	}
	if err := viper.BindEnv("source.token-file", "CARBON_ADVISER_TOKEN_FILE"); err != nil {
		log.Fatalf("binding CARBON_ADVISER_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is carbon-adviser.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Only commands that touch the dataset need a config.
	if recommendCmd.CalledAs() == "" && industriesCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// A missing default config is fine; env and flags can carry the
		// source settings. An explicit or unparseable config is not.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
