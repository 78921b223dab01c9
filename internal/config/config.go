// Package config manages prompt module configuration using Viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/cc-prompt/internal/detect"
	"github.com/Veraticus/cc-prompt/internal/formatter"
)

// Config represents the application configuration.
type Config struct {
	C CConfig `mapstructure:"c" yaml:"c"`
}

// CConfig configures the C toolchain module.
type CConfig struct {
	Format           string        `mapstructure:"format"            yaml:"format"`
	VersionFormat    string        `mapstructure:"version_format"    yaml:"version_format"`
	Symbol           string        `mapstructure:"symbol"            yaml:"symbol"`
	Style            string        `mapstructure:"style"             yaml:"style"`
	Disabled         bool          `mapstructure:"disabled"          yaml:"disabled"`
	DetectExtensions []string      `mapstructure:"detect_extensions" yaml:"detect_extensions"`
	DetectFiles      []string      `mapstructure:"detect_files"      yaml:"detect_files"`
	DetectFolders    []string      `mapstructure:"detect_folders"    yaml:"detect_folders"`
	CompilerCommand  string        `mapstructure:"compiler_command"  yaml:"compiler_command"`
	CommandTimeout   time.Duration `mapstructure:"command_timeout"   yaml:"command_timeout"`
}

// DetectionSpec returns the detection signals of the module.
func (c CConfig) DetectionSpec() detect.DetectionSpec {
	return detect.DetectionSpec{
		Extensions: c.DetectExtensions,
		Files:      c.DetectFiles,
		Folders:    c.DetectFolders,
	}
}

// VersionSpec returns the configured version format.
func (c CConfig) VersionSpec() formatter.VersionSpec {
	return formatter.VersionSpec(c.VersionFormat)
}

// Default values for the C module.
const (
	DefaultCFormat          = "via [$symbol($compiler_version(-$compiler_name) )]($style)"
	DefaultCSymbol          = "C "
	DefaultCStyle           = "149 bold"
	DefaultCompilerCommand  = "cc"
	defaultCommandTimeoutMS = 500
)

// DefaultCConfig returns the built-in C module configuration.
func DefaultCConfig() CConfig {
	return CConfig{
		Format:           DefaultCFormat,
		VersionFormat:    string(formatter.DefaultVersionSpec),
		Symbol:           DefaultCSymbol,
		Style:            DefaultCStyle,
		DetectExtensions: []string{"c", "h"},
		DetectFiles:      []string{},
		DetectFolders:    []string{},
		CompilerCommand:  DefaultCompilerCommand,
		CommandTimeout:   defaultCommandTimeoutMS * time.Millisecond,
	}
}

// setDefaults registers defaults so that every key is known to Viper,
// which also lets environment variables override them.
func setDefaults(v *viper.Viper) {
	d := DefaultCConfig()
	v.SetDefault("c.format", d.Format)
	v.SetDefault("c.version_format", d.VersionFormat)
	v.SetDefault("c.symbol", d.Symbol)
	v.SetDefault("c.style", d.Style)
	v.SetDefault("c.disabled", d.Disabled)
	v.SetDefault("c.detect_extensions", d.DetectExtensions)
	v.SetDefault("c.detect_files", d.DetectFiles)
	v.SetDefault("c.detect_folders", d.DetectFolders)
	v.SetDefault("c.compiler_command", d.CompilerCommand)
	v.SetDefault("c.command_timeout", d.CommandTimeout)
}

// Load loads configuration from files and environment variables.
// It searches for config files in the following order:
// 1. /etc/cc-prompt/config.{toml,yaml,yml}
// 2. $XDG_CONFIG_HOME/cc-prompt/config.{toml,yaml,yml} (or ~/.config/cc-prompt/)
// 3. ./config.{toml,yaml,yml}
//
// Environment variables override file settings using the prefix CC_PROMPT_
// For example: CC_PROMPT_C_SYMBOL
func Load() (*Config, error) {
	v, err := readSearchPaths()
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// Locate returns the config file Load would read, or "" when there is none.
func Locate() (string, error) {
	v, err := readSearchPaths()
	if err != nil {
		return "", err
	}
	return v.ConfigFileUsed(), nil
}

func readSearchPaths() (*viper.Viper, error) {
	v := New()
	v.SetConfigName("config")
	for _, path := range SearchPaths() {
		v.AddConfigPath(path)
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; defaults and env vars still apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	return v, nil
}

// LoadFile loads configuration from an explicit file path.
func LoadFile(path string) (*Config, error) {
	v := New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	return LoadWithViper(v)
}

// New returns a Viper instance with defaults and environment overrides set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("CC_PROMPT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// LoadWithViper loads configuration using a provided Viper instance.
// Defaults are filled in for keys the instance does not set.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// getXDGConfigPath returns the XDG config directory for cc-prompt.
func getXDGConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "cc-prompt")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(homeDir, ".config", "cc-prompt")
}

// SearchPaths returns the directories Load looks in, in order.
func SearchPaths() []string {
	return []string{"/etc/cc-prompt/", getXDGConfigPath(), "."}
}
