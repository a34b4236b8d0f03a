// Package config holds the settings that control how modules are loaded:
// the source root, the analyzer's parser mode and the analyzer executable.
// Settings come from an optional YAML or TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/agentflare-ai/coffee-docmd/internal/loader"
)

// Config is the build configuration.
type Config struct {
	// SrcDir is the directory module names are relative to.
	SrcDir string `yaml:"coffee_src_dir" toml:"coffee_src_dir"`
	// Parser is the analyzer parser mode. Nil selects loader.DefaultParser.
	Parser *string `yaml:"coffee_src_parser" toml:"coffee_src_parser"`
	// Analyzer is the analyzer executable.
	Analyzer string `yaml:"coffee_analyzer" toml:"coffee_analyzer"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{SrcDir: ".", Analyzer: loader.DefaultAnalyzer}
}

// Load reads path on top of the defaults. The format is picked from the
// extension: .yaml/.yml or .toml.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("unsupported config format %q for %s", filepath.Ext(path), path)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.SrcDir == "" {
		cfg.SrcDir = "."
	}
	if !filepath.IsAbs(cfg.SrcDir) {
		cfg.SrcDir = filepath.Join(filepath.Dir(path), cfg.SrcDir)
	}
	return cfg, nil
}

// ParserMode returns the parser mode, falling back to the default.
func (c Config) ParserMode() string {
	if c.Parser == nil || *c.Parser == "" {
		return loader.DefaultParser
	}
	return *c.Parser
}

// LoaderOptions converts c into options for a new loader.
func (c Config) LoaderOptions() loader.Options {
	return loader.Options{
		SrcDir:   filepath.Clean(c.SrcDir),
		Parser:   c.ParserMode(),
		Analyzer: c.Analyzer,
	}
}
