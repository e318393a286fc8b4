package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "wire", c.Package)
	assert.Equal(t, "little", c.Endian)
	assert.Equal(t, "github.com/alexhholmes/evgen/ev", c.Runtime)
	assert.Equal(t, "ev_gen.go", c.Output)
	assert.Equal(t, "Code generated by evgen. DO NOT EDIT.", c.Header)
	assert.True(t, c.Gofmt)
	assert.Equal(t, "info", c.LogLevel)
	assert.Empty(t, c.Imports)
	assert.NoError(t, c.Validate())
}

func TestLoad(t *testing.T) {
	c, err := Load("testdata/evgen.toml")
	require.NoError(t, err)

	assert.Equal(t, "proto", c.Package)
	assert.Equal(t, "big", c.Endian)
	assert.False(t, c.Gofmt, "explicit false must survive the defaults")
	assert.Equal(t, []string{"fmt"}, c.Imports)

	// Untouched keys keep their defaults
	assert.Equal(t, "ev_gen.go", c.Output)
	assert.Equal(t, "info", c.LogLevel)

	assert.Equal(t, []string{filepath.Join("testdata", "wire.yaml"), "/abs/extra.yaml"}, c.SchemaFiles())
	assert.Equal(t, filepath.Join("testdata", "ev_gen.go"), c.OutputPath())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("testdata/unknown.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "indent")

	_, err = Load("testdata/missing.toml")
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	c, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "wire", c.Package)

	_, err = LoadOrDefault("other.toml")
	assert.Error(t, err, "a named config file must exist")
}

func TestSet(t *testing.T) {
	c, err := Load("testdata/evgen.toml")
	require.NoError(t, err)

	require.NoError(t, c.Set([]string{
		"gofmt=true",
		"endian=native",
		"imports=strings",
		"imports=math",
		"log_level = debug",
	}))

	assert.True(t, c.Gofmt)
	assert.Equal(t, "native", c.Endian)
	assert.Equal(t, []string{"strings", "math"}, c.Imports)
	assert.Equal(t, zapcore.DebugLevel, c.Level())
	assert.Equal(t, "proto", c.Package)

	require.NoError(t, c.Set([]string{"imports=fmt"}))
	assert.Equal(t, []string{"fmt"}, c.Imports)
}

func TestSet_Errors(t *testing.T) {
	tests := []struct {
		name      string
		overrides []string
	}{
		{"missing value separator", []string{"gofmt"}},
		{"empty key", []string{"=x"}},
		{"unknown key", []string{"indent=4"}},
		{"bad bool", []string{"gofmt=maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Default()
			require.NoError(t, err)
			assert.Error(t, c.Set(tt.overrides))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad package", func(c *Config) { c.Package = "my-pkg" }},
		{"keyword package", func(c *Config) { c.Package = "type" }},
		{"bad endian", func(c *Config) { c.Endian = "middle" }},
		{"no runtime", func(c *Config) { c.Runtime = "" }},
		{"no output", func(c *Config) { c.Output = "" }},
		{"bad log level", func(c *Config) { c.LogLevel = "chatty" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Default()
			require.NoError(t, err)
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
