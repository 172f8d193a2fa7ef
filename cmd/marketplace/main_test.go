package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is silent", func(t *testing.T) {
		var out bytes.Buffer
		loadDotEnv(&out, filepath.Join(t.TempDir(), ".env"))
		assert.Empty(t, out.String())
	})

	t.Run("valid file sets variables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("MARKETPLACE_TEST_DOTENV=loaded\n"), 0o644))
		t.Setenv("MARKETPLACE_TEST_DOTENV", "")
		require.NoError(t, os.Unsetenv("MARKETPLACE_TEST_DOTENV"))

		var out bytes.Buffer
		loadDotEnv(&out, path)
		assert.Empty(t, out.String())
		assert.Equal(t, "loaded", os.Getenv("MARKETPLACE_TEST_DOTENV"))
	})

	t.Run("unreadable file is reported", func(t *testing.T) {
		// A directory exists but cannot be parsed as a .env file.
		path := t.TempDir()

		var out bytes.Buffer
		loadDotEnv(&out, path)
		assert.Contains(t, out.String(), "warning: loading "+path)
	})
}
