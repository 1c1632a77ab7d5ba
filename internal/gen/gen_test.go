package gen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/neuroglia-io/asyncapi-sub001/internal/config"
	"github.com/neuroglia-io/asyncapi-sub001/pkg/asyncapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

const (
	streetlightsDir = "../../testdata/streetlights"
	batchDir        = "../../testdata/batch"
)

type discard struct{}

func (discard) Printf(string, ...interface{}) {}

func newConfig(t *testing.T, searchDir string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.SearchDirs = []string{searchDir}
	cfg.OutputDir = t.TempDir()
	cfg.Versions = []int{2, 3}
	cfg.ExampleSeed = 42
	return cfg
}

func newGen() *Gen {
	g := New()
	g.SetDebugger(discard{})
	return g
}

func TestGen_Build(t *testing.T) {
	cfg := newConfig(t, streetlightsDir)

	require.NoError(t, newGen().Build(context.Background(), cfg))

	for _, name := range []string{
		"StreetlightsAPI.asyncapi.v2.json",
		"StreetlightsAPI.asyncapi.v2.yaml",
		"StreetlightsAPI.asyncapi.v3.json",
		"StreetlightsAPI.asyncapi.v3.yaml",
	} {
		_, err := os.Stat(filepath.Join(cfg.OutputDir, name))
		assert.NoError(t, err, name)
	}

	t.Run("json is indented with four spaces", func(t *testing.T) {
		b, err := os.ReadFile(filepath.Join(cfg.OutputDir, "StreetlightsAPI.asyncapi.v3.json"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(b), "{\n    \"asyncapi\": \"3.0.0\""), string(b[:40]))
	})

	t.Run("yaml holds the same document", func(t *testing.T) {
		b, err := os.ReadFile(filepath.Join(cfg.OutputDir, "StreetlightsAPI.asyncapi.v2.yaml"))
		require.NoError(t, err)

		var doc map[string]interface{}
		require.NoError(t, yaml.Unmarshal(b, &doc))
		assert.Equal(t, asyncapi.Version2, doc["asyncapi"])
		channels, ok := doc["channels"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, channels, "light/measured")
	})
}

func TestGen_SpecificOutputTypes(t *testing.T) {
	cfg := newConfig(t, batchDir)
	cfg.Types = []string{"SensorAPI"}
	cfg.Versions = []int{3}
	cfg.OutputTypes = []string{config.OutputJSON}

	require.NoError(t, newGen().Build(context.Background(), cfg))

	tt := []struct {
		expectedFile string
		shouldExist  bool
	}{
		{filepath.Join(cfg.OutputDir, "SensorAPI.asyncapi.v3.json"), true},
		{filepath.Join(cfg.OutputDir, "SensorAPI.asyncapi.v3.yaml"), false},
		{filepath.Join(cfg.OutputDir, "SensorAPI.asyncapi.v2.json"), false},
	}
	for _, tc := range tt {
		_, err := os.Stat(tc.expectedFile)
		if tc.shouldExist {
			assert.NoError(t, err, tc.expectedFile)
		} else {
			assert.True(t, os.IsNotExist(err), tc.expectedFile)
		}
	}
}

func TestGen_BatchIsolation(t *testing.T) {
	cfg := newConfig(t, batchDir)

	err := newGen().Build(context.Background(), cfg)

	assert.ErrorIs(t, err, asyncapi.ErrConfiguration)
	assert.Contains(t, err.Error(), "BrokenAPI")
	for _, name := range []string{"SensorAPI.asyncapi.v2.json", "SensorAPI.asyncapi.v3.yaml"} {
		_, statErr := os.Stat(filepath.Join(cfg.OutputDir, name))
		assert.NoError(t, statErr, name)
	}
	_, statErr := os.Stat(filepath.Join(cfg.OutputDir, "BrokenAPI.asyncapi.v3.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGen_Deterministic(t *testing.T) {
	read := func() string {
		cfg := newConfig(t, batchDir)
		cfg.Types = []string{"SensorAPI"}
		require.NoError(t, newGen().Build(context.Background(), cfg))
		b, err := os.ReadFile(filepath.Join(cfg.OutputDir, "SensorAPI.asyncapi.v3.json"))
		require.NoError(t, err)
		return string(b)
	}

	assert.Equal(t, read(), read())
}

func TestGen_BuildErrors(t *testing.T) {
	t.Run("invalid configuration", func(t *testing.T) {
		cfg := newConfig(t, batchDir)
		cfg.Versions = []int{4}

		assert.ErrorIs(t, newGen().Build(context.Background(), cfg), asyncapi.ErrConfiguration)
	})

	t.Run("missing search dir", func(t *testing.T) {
		cfg := newConfig(t, "../../testdata/missing")

		assert.Error(t, newGen().Build(context.Background(), cfg))
	})

	t.Run("json marshal failure", func(t *testing.T) {
		cfg := newConfig(t, batchDir)
		cfg.Types = []string{"SensorAPI"}
		g := newGen()
		g.jsonIndent = func(interface{}) ([]byte, error) {
			return nil, errors.New("json error")
		}

		assert.EqualError(t, g.Build(context.Background(), cfg), "json error")
	})

	t.Run("yaml conversion failure", func(t *testing.T) {
		cfg := newConfig(t, batchDir)
		cfg.Types = []string{"SensorAPI"}
		g := newGen()
		g.jsonToYAML = func([]byte) ([]byte, error) {
			return nil, errors.New("yaml error")
		}

		assert.ErrorContains(t, g.Build(context.Background(), cfg), "yaml error")
	})

	t.Run("canceled context", func(t *testing.T) {
		cfg := newConfig(t, batchDir)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, newGen().Build(ctx, cfg), context.Canceled)
	})
}

func TestParseExcludes(t *testing.T) {
	excludes, err := parseExcludes([]string{"a", " ", "b/c"})
	require.NoError(t, err)

	abs, err := filepath.Abs("b/c")
	require.NoError(t, err)
	assert.Len(t, excludes, 2)
	assert.Contains(t, excludes, abs)
}
