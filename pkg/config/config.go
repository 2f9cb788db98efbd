// Package config loads boo settings from an optional TOML or YAML file and
// BOO_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultFiles are looked up in the working directory when no file is named.
var DefaultFiles = []string{".boo.toml", ".boo.yaml", ".boo.yml"}

// Config holds the settings shared by the CLI commands. Flags given on the
// command line take precedence over it.
type Config struct {
	// MainFiles is the priority list of plugin main-file names.
	MainFiles []string `toml:"main_files" yaml:"main_files"`
	// Style is the table border style.
	Style string `toml:"style" yaml:"style"`
	// Output is the output format: table, json or yaml.
	Output string `toml:"output" yaml:"output"`
	// ZipDir, when set, packages updated plugins into that directory.
	ZipDir string `toml:"zip_dir" yaml:"zip_dir"`
	// Commit commits updated plugins with git.
	Commit bool `toml:"commit" yaml:"commit"`
	// UpgradeRepo is the checkout updated by self-upgrade.
	UpgradeRepo string `toml:"upgrade_repo" yaml:"upgrade_repo"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		MainFiles:   []string{"init.php", "index.php"},
		Style:       "outline",
		Output:      "table",
		UpgradeRepo: "/opt/boo",
	}
}

// Load reads the configuration. With an empty path the DefaultFiles are
// tried and a missing file yields the defaults; a named file must exist.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		for _, name := range DefaultFiles {
			if _, err := os.Stat(name); err == nil {
				path = name
				break
			}
		}
	}

	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	switch ext := filepath.Ext(path); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("decode TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode YAML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("BOO_MAIN_FILES"); ok {
		cfg.MainFiles = splitList(v)
	}
	if v, ok := os.LookupEnv("BOO_STYLE"); ok {
		cfg.Style = v
	}
	if v, ok := os.LookupEnv("BOO_OUTPUT"); ok {
		cfg.Output = v
	}
	if v, ok := os.LookupEnv("BOO_ZIP_DIR"); ok {
		cfg.ZipDir = v
	}
	if v, ok := os.LookupEnv("BOO_UPGRADE_REPO"); ok {
		cfg.UpgradeRepo = v
	}
	if v, ok := os.LookupEnv("BOO_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("BOO_COMMIT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid BOO_COMMIT value %q: %w", v, err)
		}
		cfg.Commit = b
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks the settings that have a closed set of values.
func (c *Config) Validate() error {
	if len(c.MainFiles) == 0 {
		return fmt.Errorf("main_files must not be empty")
	}
	switch c.Output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output %q (supported values: table, json, yaml)", c.Output)
	}
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log_level %q (supported values: debug, info, warn, error)", c.LogLevel)
	}
	return nil
}
