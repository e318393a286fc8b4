// Package config loads evgen.toml, the settings shared by every schema file
// compiled into one output.
package config

import (
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/creasty/defaults"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap/zapcore"

	"github.com/alexhholmes/evgen/ev"
)

// DefaultFile is the configuration file looked up when none is named
const DefaultFile = "evgen.toml"

// Config is the contents of evgen.toml
type Config struct {
	Package  string   `toml:"package" mapstructure:"package" default:"wire"`
	Endian   string   `toml:"endian" mapstructure:"endian" default:"little"`
	Runtime  string   `toml:"runtime" mapstructure:"runtime" default:"github.com/alexhholmes/evgen/ev"`
	Output   string   `toml:"output" mapstructure:"output" default:"ev_gen.go"`
	Header   string   `toml:"header" mapstructure:"header" default:"Code generated by evgen. DO NOT EDIT."`
	Gofmt    bool     `toml:"gofmt" mapstructure:"gofmt" default:"true"`
	Imports  []string `toml:"imports" mapstructure:"imports"`
	LogLevel string   `toml:"log_level" mapstructure:"log_level" default:"info"`
	Schemas  []string `toml:"schemas" mapstructure:"schemas"` // schema files, relative to the config file

	dir string
}

// Default returns a configuration with every default applied
func Default() (*Config, error) {
	c := &Config{}
	if err := defaults.Set(c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	return c, nil
}

// Load reads a configuration file over the defaults. Keys absent from the
// file keep their defaults; unknown keys are an error.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("load %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	c.dir = filepath.Dir(path)
	return c, nil
}

// LoadOrDefault loads path, falling back to the defaults when path is the
// default file name and it does not exist
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}
	if _, err := os.Stat(path); os.IsNotExist(err) && path == DefaultFile {
		return Default()
	}
	return Load(path)
}

// Set applies key=value overrides, decoded weakly so "gofmt=false" and
// "imports=fmt" convert to the field types. An override replaces the file
// value; repeating a list key collects every value.
func (c *Config) Set(overrides []string) error {
	values := make(map[string]any, len(overrides))
	for _, o := range overrides {
		key, value, ok := strings.Cut(o, "=")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if !ok || key == "" {
			return fmt.Errorf("invalid override %q (expected key=value)", o)
		}

		switch prev := values[key].(type) {
		case nil:
			values[key] = value
		case string:
			values[key] = []string{prev, value}
		case []string:
			values[key] = append(prev, value)
		}
	}

	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         &md,
		Result:           c,
		WeaklyTypedInput: true,
		ZeroFields:       true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(values); err != nil {
		return fmt.Errorf("apply overrides: %w", err)
	}
	if len(md.Unused) > 0 {
		return fmt.Errorf("apply overrides: unknown keys: %s", strings.Join(md.Unused, ", "))
	}
	return nil
}

// Validate checks the values that cannot be fixed up later
func (c *Config) Validate() error {
	if !token.IsIdentifier(c.Package) {
		return fmt.Errorf("package %q is not a Go identifier", c.Package)
	}
	if _, err := ev.ParseOrder(c.Endian); err != nil {
		return err
	}
	if c.Runtime == "" {
		return fmt.Errorf("runtime import path must be set")
	}
	if c.Output == "" {
		return fmt.Errorf("output file must be set")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Level returns the configured log level, info when unparsable
func (c *Config) Level() zapcore.Level {
	l, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// SchemaFiles returns the configured schema files resolved against the
// directory of the configuration file
func (c *Config) SchemaFiles() []string {
	files := make([]string, len(c.Schemas))
	for i, f := range c.Schemas {
		if filepath.IsAbs(f) || c.dir == "" {
			files[i] = f
		} else {
			files[i] = filepath.Join(c.dir, f)
		}
	}
	return files
}

// OutputPath returns the output file resolved like SchemaFiles
func (c *Config) OutputPath() string {
	if filepath.IsAbs(c.Output) || c.dir == "" {
		return c.Output
	}
	return filepath.Join(c.dir, c.Output)
}
