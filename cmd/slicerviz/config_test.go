package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	root := t.TempDir()

	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(root, "absent.yaml"))
		require.NoError(t, err)
		require.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("file layers over defaults", func(t *testing.T) {
		path := filepath.Join(root, "partial.yaml")
		require.NoError(t, os.WriteFile(path, []byte("port: 9000\ndatasetRoot: /data\n"), 0644))
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, 9000, cfg.Port)
		require.Equal(t, "/data", cfg.DatasetRoot)
		require.Equal(t, DefaultConfig().WindowSize, cfg.WindowSize)
		require.Equal(t, DefaultConfig().CacheSize, cfg.CacheSize)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := filepath.Join(root, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("cacheSize: 0\n"), 0644))
		_, err := LoadConfig(path)
		require.Error(t, err)
	})

	t.Run("malformed yaml is rejected", func(t *testing.T) {
		path := filepath.Join(root, "mangled.yaml")
		require.NoError(t, os.WriteFile(path, []byte("port: [\n"), 0644))
		_, err := LoadConfig(path)
		require.Error(t, err)
	})
}
