// Package config loads and validates the helpdocs YAML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "git.home.luguber.info/inful/helpdocs/internal/errors"
)

// Config represents the application configuration.
type Config struct {
	Module ModuleConfig `yaml:"module"`
	Output OutputConfig `yaml:"output"`
	Help   HelpConfig   `yaml:"help"`
	Docs   DocsConfig   `yaml:"docs"`
	Cache  CacheConfig  `yaml:"cache"`
	Watch  WatchConfig  `yaml:"watch"`
}

// ModuleConfig describes the script module to bundle and document.
type ModuleConfig struct {
	Name       string `yaml:"name"`
	SourceDir  string `yaml:"source_dir"`
	ScriptExt  string `yaml:"script_ext,omitempty"`  // extension of loose script files
	BundleExt  string `yaml:"bundle_ext,omitempty"`  // extension of the bundled module file
	Exclude    string `yaml:"exclude,omitempty"`     // glob matched against file names
	Repository string `yaml:"repository,omitempty"`  // optional git URL to fetch sources from
}

// OutputConfig describes where generated artifacts land.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	PagesDir  string `yaml:"pages_dir,omitempty"` // command pages live under <Directory>/<PagesDir>
	BaseURL   string `yaml:"base_url,omitempty"`  // absolute link base for the Markdown summary
}

// HelpConfig describes the host shell that produces help text.
type HelpConfig struct {
	Shell string `yaml:"shell,omitempty"`
	Width int    `yaml:"width,omitempty"` // fixed help rendering width the extractor assumes
}

// DocsConfig describes page chrome and per-command flags.
type DocsConfig struct {
	HeaderFile      string   `yaml:"header_file,omitempty"`
	FooterFile      string   `yaml:"footer_file,omitempty"`
	ExcludeCommands []string `yaml:"exclude_commands,omitempty"`
	InProgress      []string `yaml:"in_progress,omitempty"`
}

// CacheConfig configures the optional sqlite hash cache.
type CacheConfig struct {
	Path string `yaml:"path,omitempty"` // empty disables the cache
}

// WatchConfig configures watch mode. Durations are strings ("2s", "5m")
// parsed on access so the YAML stays plain.
type WatchConfig struct {
	Debounce        string `yaml:"debounce,omitempty"`
	RebuildInterval string `yaml:"rebuild_interval,omitempty"`
	MetricsListen   string `yaml:"metrics_listen,omitempty"`
	NATSURL         string `yaml:"nats_url,omitempty"`
	NATSSubject     string `yaml:"nats_subject,omitempty"`
}

// DebounceDuration returns the parsed debounce interval.
func (w WatchConfig) DebounceDuration() time.Duration {
	return parseDurationOr(w.Debounce, 2*time.Second)
}

// RebuildIntervalDuration returns the parsed periodic rebuild interval.
// Zero disables periodic rebuilds.
func (w WatchConfig) RebuildIntervalDuration() time.Duration {
	return parseDurationOr(w.RebuildInterval, 0)
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

// Load loads configuration from the specified file. Environment variables
// referenced in the YAML are expanded; a .env file, if present, is loaded
// first without overriding the process environment.
func Load(configPath string) (*Config, error) {
	// Best effort: absence of a .env file is the normal case.
	_ = godotenv.Load()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, apperrors.NotFound(apperrors.CategoryConfig, "configuration file", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Module.ScriptExt == "" {
		c.Module.ScriptExt = "ps1"
	}
	if c.Module.BundleExt == "" {
		c.Module.BundleExt = "psm1"
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "./site"
	}
	if c.Output.PagesDir == "" {
		c.Output.PagesDir = "cmdlets"
	}
	if c.Help.Shell == "" {
		c.Help.Shell = "pwsh"
	}
	if c.Help.Width <= 0 {
		c.Help.Width = 500
	}
	if c.Watch.NATSSubject == "" {
		c.Watch.NATSSubject = "helpdocs.rebuild"
	}
}

func (c *Config) validate() error {
	if c.Module.Name == "" {
		return apperrors.New(apperrors.CategoryConfig, "module.name is required")
	}
	if c.Module.SourceDir == "" {
		return apperrors.New(apperrors.CategoryConfig, "module.source_dir is required")
	}
	return nil
}

const exampleConfig = `# helpdocs configuration
module:
  name: MyModule
  source_dir: ./src
  script_ext: ps1
  bundle_ext: psm1
  exclude: "*.Tests.ps1"
  # repository: https://example.com/team/mymodule.git

output:
  directory: ./site
  pages_dir: cmdlets
  base_url: https://example.com/docs

help:
  shell: pwsh
  width: 500

docs:
  header_file: ./templates/header.html
  footer_file: ./templates/footer.html
  exclude_commands: []
  in_progress: []

cache:
  path: ./helpdocs.db

watch:
  debounce: 2s
  rebuild_interval: 0s
  metrics_listen: ""
  nats_url: ""
  nats_subject: helpdocs.rebuild
`

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}
	return os.WriteFile(configPath, []byte(exampleConfig), 0o644)
}
