// Package config loads the seqdiff configuration file.
//
// Values from the file are defaults for command line flags: a flag given on the command line
// always wins over the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory if no file is given explicitly.
const DefaultFile = ".seqdiff.yaml"

// Config mirrors the flags of the seqdiff commands.
type Config struct {
	Input   string `yaml:"input"`
	Key     string `yaml:"key"`
	Content string `yaml:"content"`
	Format  string `yaml:"format"`
	Color   string `yaml:"color"`
	Engine  string `yaml:"engine"`
	Addr    string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Format: "text",
		Color:  "auto",
		Engine: "exact",
		Addr:   "localhost:8080",
	}
}

// Load reads the configuration at path on top of [Default]. An empty path loads [DefaultFile],
// which may be missing. An explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		return cfg, nil
	case err != nil:
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Apply sets every flag in flags that wasn't given on the command line to the corresponding,
// non-empty, configuration value. Flags that don't exist in flags are skipped.
func (cfg Config) Apply(flags *pflag.FlagSet) error {
	for _, kv := range []struct{ name, value string }{
		{"input", cfg.Input},
		{"key", cfg.Key},
		{"content", cfg.Content},
		{"format", cfg.Format},
		{"color", cfg.Color},
		{"engine", cfg.Engine},
		{"addr", cfg.Addr},
	} {
		f := flags.Lookup(kv.name)
		if f == nil || f.Changed || kv.value == "" {
			continue
		}
		if err := f.Value.Set(kv.value); err != nil {
			return fmt.Errorf("config value %s=%q: %v", kv.name, kv.value, err)
		}
	}
	return nil
}
