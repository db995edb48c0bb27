package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom(t *testing.T) {
	opts, err := LoadFrom("testdata/config.yaml")
	require.NoError(t, err)

	assert.True(t, opts.Watch)
	assert.Equal(t, "debug", opts.Logging.Level)
	assert.Equal(t, "json", opts.Logging.Handler)
	assert.Equal(t, "cloudflare", opts.Resolver.Provider)
	assert.Equal(t, "verbatim", opts.Resolver.Order)
	assert.Equal(t, 30*time.Minute, opts.Resolver.TTL)
	assert.Equal(t, 50, opts.Resolver.Capacity)
	assert.Equal(t, 3*time.Second, opts.Resolver.Timeout)
	assert.True(t, opts.Resolver.SkipProbe)
	assert.True(t, opts.Metrics.Enabled)
	assert.Equal(t, ":9309", opts.Metrics.Bind)
}

func TestLoadFromKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resolver:\n  provider: google\n"), 0600))

	opts, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "google", opts.Resolver.Provider)
	assert.Equal(t, time.Hour, opts.Resolver.TTL)
	assert.Equal(t, 100, opts.Resolver.Capacity)
	assert.Equal(t, "info", opts.Logging.Level)
}

func TestLoadFromMissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resolver: [broken"), 0600))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}
