package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration, read from an optional YAML
// file with environment-variable overrides on top.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	LogLevel   string `yaml:"log_level"`

	// UploadDir is where raw media lands when no Supabase bucket is
	// configured.
	UploadDir string `yaml:"upload_dir"`

	Pipeline PipelineConfig `yaml:"pipeline"`
	Playback PlaybackConfig `yaml:"playback"`
	Supabase SupabaseConfig `yaml:"supabase"`
}

// PipelineConfig sizes the simulated transcription pipeline.
type PipelineConfig struct {
	Workers      int `yaml:"workers"`
	QueueSize    int `yaml:"queue_size"`
	StageDelayMS int `yaml:"stage_delay_ms"`
}

// PlaybackConfig tunes the software playback clock.
type PlaybackConfig struct {
	TickMS int `yaml:"tick_ms"`
}

// SupabaseConfig enables the hosted store/storage backends when set.
type SupabaseConfig struct {
	URL        string `yaml:"url"`
	ServiceKey string `yaml:"service_key"`
	Bucket     string `yaml:"bucket"`
}

// StageDelay returns the per-stage pipeline delay as a duration.
func (p PipelineConfig) StageDelay() time.Duration {
	return time.Duration(p.StageDelayMS) * time.Millisecond
}

// Tick returns the software clock interval as a duration.
func (p PlaybackConfig) Tick() time.Duration {
	return time.Duration(p.TickMS) * time.Millisecond
}

// Enabled reports whether Supabase credentials were provided.
func (s SupabaseConfig) Enabled() bool {
	return s.URL != "" && s.ServiceKey != ""
}

// Load reads path (ignored when empty or missing) and applies defaults
// and env overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{
		ListenAddr: ":8080",
		LogLevel:   "info",
		UploadDir:  "uploads",
		Pipeline: PipelineConfig{
			Workers:      3,
			QueueSize:    50,
			StageDelayMS: 1000,
		},
		Playback: PlaybackConfig{TickMS: 100},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if url := os.Getenv("SUPABASE_URL"); url != "" {
		cfg.Supabase.URL = url
	}
	if key := os.Getenv("SUPABASE_SERVICE_KEY"); key != "" {
		cfg.Supabase.ServiceKey = key
	}
	if bucket := os.Getenv("SUPABASE_BUCKET"); bucket != "" {
		cfg.Supabase.Bucket = bucket
	}
	return cfg, nil
}
