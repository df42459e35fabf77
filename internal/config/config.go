// engine/internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Rule maps a tag (category, country) to the keywords that select it.
type Rule struct {
	Tag string   `yaml:"tag"`
	Any []string `yaml:"any"`
}

type Source struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`
	Disabled    bool   `yaml:"disabled,omitempty"`
}

type Aggregator struct {
	Domain string `yaml:"domain"`
	Name   string `yaml:"name"`
}

// Empty lists below mean "use the built-in defaults" of the owning package.
type Config struct {
	App struct {
		DataDir       string `yaml:"data_dir"`
		DBFile        string `yaml:"db_file"`
		RetentionDays int    `yaml:"retention_days"` // 0 keeps everything
	} `yaml:"app"`

	Fetch struct {
		TimeoutSeconds    int     `yaml:"timeout_seconds"`
		UserAgent         string  `yaml:"user_agent"`
		MaxBytes          int64   `yaml:"max_bytes"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
		Workers           int     `yaml:"workers"`
	} `yaml:"fetch"`

	Sources []Source `yaml:"sources"`

	Parser struct {
		FillerTokens     []string `yaml:"filler_tokens"`
		KeepYears        bool     `yaml:"keep_years"`
		InactiveMarker   string   `yaml:"inactive_marker"`
		MaxCategoryWords int      `yaml:"max_category_words"`
	} `yaml:"parser"`

	Extract struct {
		Aliases struct {
			Company  []string `yaml:"company"`
			Role     []string `yaml:"role"`
			Location []string `yaml:"location"`
			Link     []string `yaml:"link"`
			Date     []string `yaml:"date"`
			Notes    []string `yaml:"notes"`
		} `yaml:"aliases"`
		DittoMarkers   []string `yaml:"ditto_markers"`
		FAANG          []string `yaml:"faang"`
		DefaultCountry string   `yaml:"default_country"`
		CountryRules   []Rule   `yaml:"country_rules"`
	} `yaml:"extract"`

	Links struct {
		Aggregators     []Aggregator `yaml:"aggregators"`
		HomepagePaths   []string     `yaml:"homepage_paths"`
		JobPathSegments []string     `yaml:"job_path_segments"`
		JobQueryParams  []string     `yaml:"job_query_params"`
	} `yaml:"links"`

	Harmonize struct {
		MinConfidence     float64  `yaml:"min_confidence"`
		TimeoutSeconds    int      `yaml:"timeout_seconds"`
		CategoryRules     []Rule   `yaml:"category_rules"`
		GenericCategories []string `yaml:"generic_categories"`
		GenericPatterns   []string `yaml:"generic_patterns"`
		Seasons           []string `yaml:"seasons"`
	} `yaml:"harmonize"`

	Classifier struct {
		Enabled   bool   `yaml:"enabled"`
		BaseURL   string `yaml:"base_url"`
		Model     string `yaml:"model"`
		APIKeyEnv string `yaml:"api_key_env"`
	} `yaml:"classifier"`
}

// Default is the config written on first run.
func Default() Config {
	var cfg Config
	cfg.App.DBFile = "jobs.db"
	cfg.App.RetentionDays = 90
	cfg.Fetch.TimeoutSeconds = 20
	cfg.Fetch.UserAgent = "JobHunt-README/1.0 (+local)"
	cfg.Fetch.MaxBytes = 8 << 20
	cfg.Fetch.RequestsPerSecond = 2
	cfg.Fetch.Burst = 1
	cfg.Fetch.Workers = 4
	cfg.Sources = []Source{
		{Name: "simplify-newgrad", URL: "https://github.com/SimplifyJobs/New-Grad-Positions"},
		{Name: "simplify-internships", URL: "https://github.com/SimplifyJobs/Summer2025-Internships"},
	}
	cfg.Parser.InactiveMarker = "inactive"
	cfg.Parser.MaxCategoryWords = 3
	cfg.Extract.DefaultCountry = "USA"
	cfg.Harmonize.MinConfidence = 0.5
	cfg.Harmonize.TimeoutSeconds = 10
	cfg.Classifier.Model = "gpt-4o-mini"
	cfg.Classifier.APIKeyEnv = "OPENAI_API_KEY"
	return cfg
}

func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// DBPath resolves the sqlite file against the data dir.
func (c Config) DBPath() string {
	if filepath.IsAbs(c.App.DBFile) || c.App.DataDir == "" {
		return c.App.DBFile
	}
	return filepath.Join(c.App.DataDir, c.App.DBFile)
}

// APIKey reads the classifier key from the configured env var.
func (c Config) APIKey() string {
	if c.Classifier.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Classifier.APIKeyEnv)
}
