package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the workspace configuration file at the repo root.
const FileName = "agilidash.yaml"

// Store drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Config represents the top-level agilidash.yaml configuration.
type Config struct {
	Workspace WorkspaceConfig `yaml:"workspace"`
	Store     StoreConfig     `yaml:"store"`
	Import    ImportConfig    `yaml:"import"`
	Rules     RulesConfig     `yaml:"rules"`
	Log       LogConfig       `yaml:"log"`
	Git       GitConfig       `yaml:"git"`
}

// WorkspaceConfig identifies the accounting office owning the workspace.
type WorkspaceConfig struct {
	Name string `yaml:"name"`
}

// StoreConfig selects where consolidated state is kept. Path is relative
// to the workspace root.
type StoreConfig struct {
	Driver string `yaml:"driver"` // "file" or "sqlite"
	Path   string `yaml:"path"`
}

// ImportConfig tunes decoding and merging of exports.
type ImportConfig struct {
	Encoding        string `yaml:"encoding"` // "auto", "utf-8", "windows-1252", "iso-8859-1"
	BalanceteWindow int    `yaml:"balancete_window"`
}

// RulesConfig points at the extra acumulador categorization rules.
type RulesConfig struct {
	Path string `yaml:"path"`
}

// LogConfig sets the zap level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads an agilidash.yaml file from disk. Unset fields keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDir reads the configuration of the workspace rooted at dir.
func LoadDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, FileName))
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default(name string) *Config {
	return &Config{
		Workspace: WorkspaceConfig{Name: name},
		Store: StoreConfig{
			Driver: DriverFile,
			Path:   "state",
		},
		Import: ImportConfig{
			Encoding:        "auto",
			BalanceteWindow: 12,
		},
		Rules: RulesConfig{
			Path: "rules/categorization-rules.yaml",
		},
		Log: LogConfig{
			Level: "info",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "AgiliDash",
			AuthorEmail: "import@agilidash.local",
		},
	}
}

// Validate checks the values Load cannot type-check.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverFile, DriverSQLite:
	default:
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}
	if c.Store.Path == "" {
		return fmt.Errorf("config: store path is empty")
	}
	if c.Import.BalanceteWindow < 0 {
		return fmt.Errorf("config: negative balancete_window %d", c.Import.BalanceteWindow)
	}
	return nil
}

// Resolve returns p relative to the workspace root, leaving absolute
// paths alone.
func Resolve(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
