package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"vsearch/internal/search"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// LoadModel reads parameter overrides from a yaml file on top of the model
// defaults; fields absent from the file keep their default values.
func LoadModel(path string) (search.Params, error) {
	p := search.DefaultParams()
	if err := loadYAML(path, &p); err != nil {
		return search.Params{}, fmt.Errorf("loading model config: %w", err)
	}
	return p.Normalize(), nil
}

// LoadTrial reads one trial specification.
func LoadTrial(path string) (*TrialConfig, error) {
	var tc TrialConfig
	if err := loadYAML(path, &tc); err != nil {
		return nil, fmt.Errorf("loading trial config: %w", err)
	}
	if tc.Target.Color == "" || tc.Target.Shape == "" {
		return nil, fmt.Errorf("trial config %s: target color and shape are required", path)
	}
	return &tc, nil
}
