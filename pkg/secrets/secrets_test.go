package secrets_test

import (
	"os"
	"path/filepath"
	"testing"

	"go-screening-backend/pkg/secrets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSecretsFile(t *testing.T, key string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secrets.toml")
	content := secrets.APIKeyName + ` = "` + key + `"` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestResolveAPIKey(t *testing.T) {
	t.Run("Should prefer the explicit value over everything", func(t *testing.T) {
		t.Setenv(secrets.APIKeyName, "from-env")
		file := writeSecretsFile(t, "from-file")

		assert.Equal(t, "explicit", secrets.ResolveAPIKey("explicit", file))
	})

	t.Run("Should prefer the secrets file over the environment", func(t *testing.T) {
		t.Setenv(secrets.APIKeyName, "from-env")
		file := writeSecretsFile(t, "from-file")

		assert.Equal(t, "from-file", secrets.ResolveAPIKey("", file))
	})

	t.Run("Should fall through to the environment", func(t *testing.T) {
		t.Setenv(secrets.APIKeyName, "from-env")
		missing := filepath.Join(t.TempDir(), "secrets.toml")

		assert.Equal(t, "from-env", secrets.ResolveAPIKey("", missing))
	})

	t.Run("Should resolve empty when nothing is configured", func(t *testing.T) {
		t.Setenv(secrets.APIKeyName, "")
		missing := filepath.Join(t.TempDir(), "secrets.toml")

		assert.Empty(t, secrets.ResolveAPIKey("", missing))
	})

	t.Run("Should trim whitespace from every source", func(t *testing.T) {
		t.Setenv(secrets.APIKeyName, "  padded  ")
		missing := filepath.Join(t.TempDir(), "secrets.toml")

		assert.Equal(t, "padded", secrets.ResolveAPIKey("", missing))
		assert.Equal(t, "padded", secrets.ResolveAPIKey("  padded  ", missing))
	})
}
