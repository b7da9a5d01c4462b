// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/confwiz/internal/template"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Config holds all configuration values for confwiz.
type Config struct {
	Definition string `mapstructure:"definition" yaml:"definition"`
	OutputDir  string `mapstructure:"output_dir" yaml:"output_dir"`
	OutputName string `mapstructure:"output_name" yaml:"output_name"`
	Format     string `mapstructure:"format" yaml:"format"`
	DataDir    string `mapstructure:"data_dir" yaml:"data_dir"`
	History    bool   `mapstructure:"history" yaml:"history"`
	LogLevel   string `mapstructure:"log_level" yaml:"log_level"`
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	HooksFile  string `mapstructure:"hooks_file" yaml:"hooks_file"`
}

// envKeys lists every key bound to a CONFWIZ_ environment variable.
var envKeys = []string{
	"definition",
	"output_dir",
	"output_name",
	"format",
	"data_dir",
	"history",
	"log_level",
	"log_file",
	"hooks_file",
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() *Config {
	return &Config{
		Definition: "",
		OutputDir:  ".",
		OutputName: template.DefaultOutputName,
		Format:     FormatYAML,
		DataDir:    ".confwiz",
		History:    true,
		LogLevel:   "info",
		LogFile:    "",
		HooksFile:  ".confwiz.hooks.yml",
	}
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	return load(viper.New())
}

// LoadWithFlags is Load with command-line flags bound on top. Only flags whose
// name matches a config key are bound, and only when they were set.
func LoadWithFlags(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for _, key := range envKeys {
		f := flags.Lookup(strings.ReplaceAll(key, "_", "-"))
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("binding %s flag: %w", key, err)
		}
	}
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigType("yaml")
	v.SetConfigName("confwiz")

	d := Defaults()
	v.SetDefault("definition", d.Definition)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("output_name", d.OutputName)
	v.SetDefault("format", d.Format)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("history", d.History)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("hooks_file", d.HooksFile)

	v.SetEnvPrefix("CONFWIZ")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit bindings so bools parse from env.
	for _, key := range envKeys {
		if err := v.BindEnv(key, "CONFWIZ_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.Format = strings.ToLower(cfg.Format)

	return &cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatYAML, FormatTOML:
	default:
		return fmt.Errorf("format must be %q or %q, got %q", FormatYAML, FormatTOML, c.Format)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if _, err := template.FileName(c.OutputName, template.Variables{Profile: "sample", Format: c.Format, Ext: "." + c.Format}); err != nil {
		return err
	}
	if c.History && c.DataDir == "" {
		return fmt.Errorf("data_dir is required when history is enabled")
	}
	return nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/confwiz/confwiz.yml or $XDG_CONFIG_HOME/confwiz/confwiz.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "confwiz", "confwiz.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "confwiz", "confwiz.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "confwiz.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
