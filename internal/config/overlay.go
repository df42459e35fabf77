// config/overlay.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type SourcesFile struct {
	Sources []Source `yaml:"sources"`
}

// OverlaySources replaces cfg.Sources with the list from sourcesPath when
// that file exists and is non-empty.
func OverlaySources(cfg *Config, sourcesPath string) error {
	b, err := os.ReadFile(sourcesPath)
	if err != nil {
		// Missing sources file should not kill startup
		return nil
	}

	var sf SourcesFile
	if err := yaml.Unmarshal(b, &sf); err != nil {
		return err
	}

	if len(sf.Sources) > 0 {
		cfg.Sources = sf.Sources
	}
	return nil
}
