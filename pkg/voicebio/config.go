package voicebio

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/Thepluscode/medimind-voice/pkg/audio/acoustic"
)

// Config configures an Engine.
type Config struct {
	// Acoustic holds the feature-extraction parameters. The sample
	// rate inside it is the engine rate: inputs at other rates are
	// resampled to it during ingest.
	Acoustic acoustic.Config `yaml:"acoustic"`

	// WeightsPath optionally names the weights artifact to load.
	WeightsPath string `yaml:"weights_path"`
}

// DefaultConfig returns the standard 16 kHz engine configuration.
func DefaultConfig() Config {
	return Config{Acoustic: acoustic.DefaultConfig()}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("voicebio: read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("voicebio: parse config %s: %w", path, err)
	}
	return &cfg, nil
}
