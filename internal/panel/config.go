package panel

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the panel configuration for a pipeline run. The zero
// value is not useful; start from DefaultConfig.
type Config struct {
	Loci        []string            `yaml:"loci"`
	Drugs       []string            `yaml:"drugs"`
	DrugLoci    map[string][]string `yaml:"drug_loci"`
	TopFraction float64             `yaml:"top_fraction"`
}

// DefaultConfig returns the reference MD-CNN panel: 18 loci, 13 drugs,
// top 1% extraction.
func DefaultConfig() Config {
	return Config{
		Loci:        append([]string(nil), DefaultLoci...),
		Drugs:       append([]string(nil), DefaultDrugs...),
		DrugLoci:    DefaultDrugLoci,
		TopFraction: 0.01,
	}
}

// LoadConfig reads a YAML panel file. Fields left empty in the file
// keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if len(c.Loci) == 0 {
		return fmt.Errorf("no loci configured")
	}
	if len(c.Drugs) == 0 {
		return fmt.Errorf("no drugs configured")
	}
	if c.TopFraction <= 0 || c.TopFraction > 1 {
		return fmt.Errorf("top_fraction %v outside (0, 1]", c.TopFraction)
	}
	seen := make(map[string]bool, len(c.Loci))
	for _, name := range c.Loci {
		if seen[name] {
			return fmt.Errorf("duplicate locus %q", name)
		}
		seen[name] = true
	}
	for drug, loci := range c.DrugLoci {
		for _, name := range loci {
			if !seen[name] {
				return fmt.Errorf("drug %s: %w: %q", drug, ErrUnknownLocus, name)
			}
		}
	}
	return nil
}
