package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "asyncapi-gen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadWithEnvironment("", map[string]string{})

		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
searchDirs: [./api]
versions: [2, 3]
outputTypes: [json]
exampleSeed: 42
servers:
  - name: production
    host: broker.example.com:1883
    protocol: mqtt
    security: [user]
    bindings:
      mqtt:
        cleanSession: true
securitySchemes:
  - name: user
    type: userPassword
`)

		cfg, err := LoadWithEnvironment(path, map[string]string{})

		require.NoError(t, err)
		assert.Equal(t, []string{"./api"}, cfg.SearchDirs)
		assert.Equal(t, []int{2, 3}, cfg.Versions)
		assert.Equal(t, []string{OutputJSON}, cfg.OutputTypes)
		assert.Equal(t, int64(42), cfg.ExampleSeed)
		assert.Equal(t, "./docs", cfg.OutputDir)
		require.Len(t, cfg.Servers, 1)
		assert.Equal(t, true, cfg.Servers[0].Bindings["mqtt"]["cleanSession"])
		require.Len(t, cfg.SecuritySchemes, 1)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeConfig(t, "outputDir: ./from-file\nversions: [2]\n")

		cfg, err := LoadWithEnvironment(path, map[string]string{
			"ASYNCAPI_GEN_OUTPUT_DIR":       "./from-env",
			"ASYNCAPI_GEN_TYPES":            "StreetlightsAPI,batch.SensorAPI",
			"ASYNCAPI_GEN_DISABLE_EXAMPLES": "true",
		})

		require.NoError(t, err)
		assert.Equal(t, "./from-env", cfg.OutputDir)
		assert.Equal(t, []int{2}, cfg.Versions)
		assert.Equal(t, []string{"StreetlightsAPI", "batch.SensorAPI"}, cfg.Types)
		assert.True(t, cfg.DisableExamples)
	})

	t.Run("unknown keys are rejected", func(t *testing.T) {
		_, err := LoadWithEnvironment(writeConfig(t, "outptDir: x\n"), map[string]string{})
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadWithEnvironment(filepath.Join(t.TempDir(), "missing.yaml"), map[string]string{})
		assert.Error(t, err)
	})

	t.Run("malformed environment", func(t *testing.T) {
		_, err := LoadWithEnvironment("", map[string]string{"ASYNCAPI_GEN_EXAMPLE_SEED": "abc"})
		assert.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no search dirs", func(c *Config) { c.SearchDirs = nil }},
		{"no versions", func(c *Config) { c.Versions = nil }},
		{"unsupported version", func(c *Config) { c.Versions = []int{1} }},
		{"unsupported output", func(c *Config) { c.OutputTypes = []string{"toml"} }},
		{"unknown strategy", func(c *Config) { c.PropertyStrategy = "kebab" }},
		{"negative depth", func(c *Config) { c.ParseDepth = -1 }},
		{"incomplete server", func(c *Config) { c.Servers = []ServerConfig{{Name: "a"}} }},
		{"duplicate server", func(c *Config) {
			s := ServerConfig{Name: "a", Host: "h", Protocol: "mqtt"}
			c.Servers = []ServerConfig{s, s}
		}},
		{"unknown scheme type", func(c *Config) { c.SecuritySchemes = []SecuritySchemeConfig{{Name: "x", Type: "basic"}} }},
		{"unknown oauth flow", func(c *Config) {
			c.SecuritySchemes = []SecuritySchemeConfig{{Name: "x", Type: "oauth2", Flow: "device"}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), asyncapi.ErrConfiguration)
		})
	}
}
