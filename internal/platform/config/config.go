package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBlockDuration    = 8
	DefaultAutosaveInterval = time.Second
	DefaultAPITimeout       = 30 * time.Second
)

type Config struct {
	StudioPath       string
	DraftPath        string
	DBPath           string
	APIBaseURL       string
	APITimeout       time.Duration
	AutosaveInterval time.Duration
	BlockDuration    int
}

// fileConfig is the optional lyricmotion.yaml at the studio root.
type fileConfig struct {
	APIBaseURL       string `yaml:"api_base_url"`
	APITimeoutSec    int    `yaml:"api_timeout_seconds"`
	AutosaveMillis   int    `yaml:"autosave_interval_ms"`
	BlockDurationSec int    `yaml:"block_duration_seconds"`
}

func New(studioPath string) (Config, error) {
	if studioPath == "" {
		return Config{}, fmt.Errorf("studio path is required")
	}
	cfg := Config{
		StudioPath:       studioPath,
		DraftPath:        filepath.Join(studioPath, ".lyricmotion", "draft.json"),
		DBPath:           filepath.Join(studioPath, ".lyricmotion", "archive.db"),
		APITimeout:       DefaultAPITimeout,
		AutosaveInterval: DefaultAutosaveInterval,
		BlockDuration:    DefaultBlockDuration,
	}

	raw, err := os.ReadFile(filepath.Join(studioPath, "lyricmotion.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	fc := fileConfig{}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.APITimeoutSec > 0 {
		cfg.APITimeout = time.Duration(fc.APITimeoutSec) * time.Second
	}
	if fc.AutosaveMillis > 0 {
		cfg.AutosaveInterval = time.Duration(fc.AutosaveMillis) * time.Millisecond
	}
	if fc.BlockDurationSec > 0 {
		cfg.BlockDuration = fc.BlockDurationSec
	}
	return cfg, nil
}
