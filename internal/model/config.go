package model

import (
	"runtime"
	"time"
)

// Config is the complete meetsum configuration
type Config struct {
	Paths       PathsConfig       `mapstructure:"paths" yaml:"paths"`
	LLM         LLMConfig         `mapstructure:"llm" yaml:"llm"`
	Generation  GenerationConfig  `mapstructure:"generation" yaml:"generation"`
	Tournament  TournamentConfig  `mapstructure:"tournament" yaml:"tournament"`
	Concurrency ConcurrencyConfig `mapstructure:"concurrency" yaml:"concurrency"`
	Cache       CacheConfig       `mapstructure:"cache" yaml:"cache"`
	Ledger      LedgerConfig      `mapstructure:"ledger" yaml:"ledger"`
	Metrics     MetricsConfig     `mapstructure:"metrics" yaml:"metrics"`
	Publish     PublishConfig     `mapstructure:"publish" yaml:"publish"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging"`
}

// PathsConfig holds input and output directories
type PathsConfig struct {
	AgendaDir      string `mapstructure:"agenda_dir" yaml:"agenda_dir"`           // agenda_segment CSVs from segmentation
	LegislationDir string `mapstructure:"legislation_dir" yaml:"legislation_dir"` // item,text,link CSVs
	TranscriptDir  string `mapstructure:"transcript_dir" yaml:"transcript_dir"`   // agenda_item,transcript CSVs
	MeetingDir     string `mapstructure:"meeting_dir" yaml:"meeting_dir"`         // per-meeting JSON records
	RankingDir     string `mapstructure:"ranking_dir" yaml:"ranking_dir"`         // per-window ranking + labels
	ReportDir      string `mapstructure:"report_dir" yaml:"report_dir"`           // top-k text reports
}

// LLMConfig selects and configures the language model provider
type LLMConfig struct {
	Provider   string `mapstructure:"provider" yaml:"provider"` // openai, anthropic, ollama
	Model      string `mapstructure:"model" yaml:"model"`
	APIKey     string `mapstructure:"api_key" yaml:"-"`
	BaseURL    string `mapstructure:"base_url" yaml:"base_url,omitempty"`
	Timeout    int    `mapstructure:"timeout" yaml:"timeout"` // seconds
	HTTPProxy  string `mapstructure:"http_proxy" yaml:"http_proxy,omitempty"`
	HTTPSProxy string `mapstructure:"https_proxy" yaml:"https_proxy,omitempty"`
	NoProxy    string `mapstructure:"no_proxy" yaml:"no_proxy,omitempty"`
}

// GenerationConfig controls headline and summary generation
type GenerationConfig struct {
	HeadlineModel     string        `mapstructure:"headline_model" yaml:"headline_model,omitempty"`
	SummaryModel      string        `mapstructure:"summary_model" yaml:"summary_model,omitempty"`
	HeadlineMaxTokens int           `mapstructure:"headline_max_tokens" yaml:"headline_max_tokens"`
	SummaryMaxTokens  int           `mapstructure:"summary_max_tokens" yaml:"summary_max_tokens"`
	Delay             time.Duration `mapstructure:"delay" yaml:"delay"` // pause between generation calls
}

// TournamentConfig controls the pairwise ranking run
type TournamentConfig struct {
	JudgeModel     string        `mapstructure:"judge_model" yaml:"judge_model,omitempty"`
	JudgeMaxTokens int           `mapstructure:"judge_max_tokens" yaml:"judge_max_tokens"`
	Delay          time.Duration `mapstructure:"delay" yaml:"delay"` // fixed pause between judge calls
	Mu             float64       `mapstructure:"mu" yaml:"mu"`
	Sigma          float64       `mapstructure:"sigma" yaml:"sigma"`
	Beta           float64       `mapstructure:"beta" yaml:"beta"`
	Tau            float64       `mapstructure:"tau" yaml:"tau"`
	TieBreak       string        `mapstructure:"tie_break" yaml:"tie_break"` // discovery, deviation
	Seed           int64         `mapstructure:"seed" yaml:"seed"`           // 0 = seed from clock
}

// ConcurrencyConfig controls meeting fan-out during alignment
type ConcurrencyConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// CacheConfig controls the generation response cache
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	Dir       string        `mapstructure:"dir" yaml:"dir"`
	MemoryTTL time.Duration `mapstructure:"memory_ttl" yaml:"memory_ttl"`
	DiskTTL   time.Duration `mapstructure:"disk_ttl" yaml:"disk_ttl"`
}

// LedgerConfig controls the SQLite comparison audit ledger
type LedgerConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// MetricsConfig controls Prometheus textfile export
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile" yaml:"textfile,omitempty"`
}

// PublishConfig controls uploading window artifacts to S3
type PublishConfig struct {
	Bucket       string `mapstructure:"bucket" yaml:"bucket,omitempty"`
	Prefix       string `mapstructure:"prefix" yaml:"prefix,omitempty"`
	Region       string `mapstructure:"region" yaml:"region,omitempty"`
	Profile      string `mapstructure:"profile" yaml:"profile,omitempty"`
	UsePathStyle bool   `mapstructure:"use_path_style" yaml:"use_path_style"`
}

// LoggingConfig controls the slog handler
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // text, json
}

// Default skill-rating parameters (TrueSkill conventions)
const (
	DefaultMu    = 25.0
	DefaultSigma = DefaultMu / 3
	DefaultBeta  = DefaultSigma / 2
	DefaultTau   = DefaultSigma / 100
)

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			AgendaDir:      "agenda_segments",
			LegislationDir: "legislations",
			TranscriptDir:  "transcript_segments",
			MeetingDir:     "meetings",
			RankingDir:     "rankings",
			ReportDir:      "_final_outputs",
		},
		LLM: LLMConfig{
			Provider: "anthropic",
			Model:    "claude-sonnet-4-20250514",
			Timeout:  60,
		},
		Generation: GenerationConfig{
			HeadlineMaxTokens: 64,
			SummaryMaxTokens:  4096,
			Delay:             10 * time.Second,
		},
		Tournament: TournamentConfig{
			JudgeMaxTokens: 64,
			Delay:          5 * time.Second,
			Mu:             DefaultMu,
			Sigma:          DefaultSigma,
			Beta:           DefaultBeta,
			Tau:            DefaultTau,
			TieBreak:       "discovery",
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".meetsum/cache",
			MemoryTTL: time.Hour,
			DiskTTL:   30 * 24 * time.Hour,
		},
		Ledger: LedgerConfig{
			Enabled: true,
			Path:    ".meetsum/ledger.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
