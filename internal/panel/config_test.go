package panel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 18, len(cfg.Loci))
	assert.Equal(t, 13, len(cfg.Drugs))
	assert.Equal(t, 0.01, cfg.TopFraction)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.yaml")
	content := `loci: [gyrBA, rpoBC]
drugs: [RIFAMPICIN, MOXIFLOXACIN]
drug_loci:
  RIFAMPICIN: [rpoBC]
  MOXIFLOXACIN: [gyrBA]
top_fraction: 0.05
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"gyrBA", "rpoBC"}, cfg.Loci)
	assert.Equal(t, []string{"RIFAMPICIN", "MOXIFLOXACIN"}, cfg.Drugs)
	assert.Equal(t, 0.05, cfg.TopFraction)
}

func TestLoadConfig_KeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("top_fraction: 0.1\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0.1, cfg.TopFraction)
	assert.Equal(t, DefaultLoci, cfg.Loci)
	assert.Equal(t, DefaultDrugs, cfg.Drugs)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"no loci", func(c *Config) { c.Loci = nil }, true},
		{"no drugs", func(c *Config) { c.Drugs = nil }, true},
		{"zero fraction", func(c *Config) { c.TopFraction = 0 }, true},
		{"fraction above one", func(c *Config) { c.TopFraction = 1.5 }, true},
		{"fraction of one", func(c *Config) { c.TopFraction = 1 }, false},
		{"duplicate locus", func(c *Config) { c.Loci = append(c.Loci, c.Loci[0]) }, true},
		{"unknown drug locus", func(c *Config) {
			c.DrugLoci = map[string][]string{"RIFAMPICIN": {"notagene"}}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
