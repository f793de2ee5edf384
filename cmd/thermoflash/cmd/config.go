package cmd

import (
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML shape accepted by --config, letting a caller
// pin a flash request in a file instead of repeating flags.
type fileConfig struct {
	Substance string             `yaml:"substance"`
	Unit      string             `yaml:"unit"`
	Spec1     propertySpecConfig `yaml:"spec1"`
	Spec2     propertySpecConfig `yaml:"spec2"`
}

type propertySpecConfig struct {
	Property string  `yaml:"property"`
	Value    float64 `yaml:"value"`
}

func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
