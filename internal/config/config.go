package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment overrides.
const (
	EnvGeminiKeys = "MEETFLOW_GEMINI_API_KEYS"
	EnvLogLevel   = "MEETFLOW_LOG_LEVEL"
)

type Config struct {
	Whisper     WhisperConfig     `yaml:"whisper"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Analysis    AnalysisConfig    `yaml:"analysis"`
	Export      ExportConfig      `yaml:"export"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

type WhisperConfig struct {
	ModelPath   string `yaml:"model_path"`
	BinaryPath  string `yaml:"binary_path"`
	Language    string `yaml:"language"`
	Prompt      string `yaml:"prompt"`
	Threads     int    `yaml:"threads"`
	UseGPU      bool   `yaml:"use_gpu"`
	MaxParallel int    `yaml:"max_parallel"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	SampleRate int    `yaml:"sample_rate"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
	Database string `yaml:"database"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int           `yaml:"max_concurrent"`
	SettleDelay   time.Duration `yaml:"settle_delay"`
}

type GeminiConfig struct {
	Model   string        `yaml:"model"`
	APIKeys []string      `yaml:"api_keys"`
	Timeout time.Duration `yaml:"timeout"`
}

// AnalysisConfig tunes the orchestration around the core analyzers.
// SpeakerNames renames speaker labels in reports, e.g. "Speaker 1": "Alice".
type AnalysisConfig struct {
	MergeGapSeconds float64           `yaml:"merge_gap_seconds"`
	SpeakerPool     int               `yaml:"speaker_pool"`
	TranslateTo     string            `yaml:"translate_to"`
	SpeakerNames    map[string]string `yaml:"speaker_names"`
}

type ExportConfig struct {
	Formats  []string `yaml:"formats"`
	Captions bool     `yaml:"captions"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads a YAML config file, applies environment overrides and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if keys := os.Getenv(EnvGeminiKeys); keys != "" {
		c.Gemini.APIKeys = nil
		for _, k := range strings.Split(keys, ",") {
			if k = strings.TrimSpace(k); k != "" {
				c.Gemini.APIKeys = append(c.Gemini.APIKeys, k)
			}
		}
	}
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		c.Logging.Level = lvl
	}
}

func (c *Config) Validate() error {
	if c.Whisper.BinaryPath != "" && c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required when whisper.binary_path is set")
	}
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Analysis.MergeGapSeconds < 0 {
		return fmt.Errorf("analysis.merge_gap_seconds must not be negative")
	}
	for _, f := range c.Export.Formats {
		switch f {
		case "md", "json", "docx", "email", "agenda", "srt":
		default:
			return fmt.Errorf("export.formats: unknown format %q", f)
		}
	}

	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.Whisper.MaxParallel == 0 {
		c.Whisper.MaxParallel = 1
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Database == "" {
		c.Paths.Database = "data/meetflow.sqlite"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Performance.SettleDelay == 0 {
		c.Performance.SettleDelay = 500 * time.Millisecond
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.Timeout == 0 {
		c.Gemini.Timeout = 60 * time.Second
	}
	if c.Analysis.MergeGapSeconds == 0 {
		c.Analysis.MergeGapSeconds = 2.0
	}
	if c.Analysis.SpeakerPool == 0 {
		c.Analysis.SpeakerPool = 3
	}
	if len(c.Export.Formats) == 0 {
		c.Export.Formats = []string{"md", "json"}
	}

	return nil
}
