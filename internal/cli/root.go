package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

const version = "0.1.0"

// envKeyReplacer maps config keys to MEETSUM_SECTION_KEY variable names
var envKeyReplacer = strings.NewReplacer(".", "_")

var (
	cfgFile   string
	verbose   bool
	logLevel  string
	logFormat string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "meetsum",
	Short: "Meetsum - city council meeting headlines, ranked",
	Long: `Meetsum turns segmented city council meetings into ranked news headlines.

For every meeting in a date window it attaches legislation and transcript
passages to agenda segments, writes a headline and summary per segment with a
language model, then ranks all headlines in a pairwise tournament judged by
the model.

Stages can be run one at a time (align, generate, rank, report) or together
with run. Every stage is resumable.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. Interrupts cancel the running stage.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("meetsum v%s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.meetsum/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads .env, the config file and MEETSUM_* variables
func initConfig() {
	// a missing .env is normal
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(filepath.Join(home, ".meetsum"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	if err := registerDefaults(model.DefaultConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering defaults: %v\n", err)
	}

	viper.SetEnvPrefix("MEETSUM")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
	for _, key := range optionalKeys {
		_ = viper.BindEnv(key)
	}

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// optionalKeys are omitted from the marshaled defaults when empty, so they
// are bound to the environment explicitly.
var optionalKeys = []string{
	"llm.api_key",
	"llm.base_url",
	"llm.http_proxy",
	"llm.https_proxy",
	"llm.no_proxy",
	"generation.headline_model",
	"generation.summary_model",
	"tournament.judge_model",
	"metrics.textfile",
	"publish.bucket",
	"publish.prefix",
	"publish.region",
	"publish.profile",
}

// registerDefaults makes every config key known to viper so that
// MEETSUM_SECTION_KEY variables apply even without a config file.
func registerDefaults(cfg *model.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	var sections map[string]any
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return err
	}
	for key, value := range sections {
		viper.SetDefault(key, value)
	}
	return nil
}

// loadConfig resolves the effective configuration
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	if cfg.LLM.APIKey == "" {
		switch strings.ToLower(cfg.LLM.Provider) {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}
	if cfg.LLM.BaseURL == "" && strings.EqualFold(cfg.LLM.Provider, "ollama") {
		cfg.LLM.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}
	return cfg, nil
}
