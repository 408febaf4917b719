package secrets

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// APIKeyName is the key looked up in both the secrets file and the
// environment.
const APIKeyName = "OPENAI_API_KEY"

// DefaultFile is where the secrets store lives unless SECRETS_FILE points
// elsewhere.
const DefaultFile = "secrets.toml"

// ResolveAPIKey returns the OpenAI credential using the priority order
// explicit value, secrets file, environment variable. An empty result is not
// an error: it selects fallback-only question sourcing.
func ResolveAPIKey(explicit, file string) string {
	if key := strings.TrimSpace(explicit); key != "" {
		return key
	}
	if key := fromFile(file); key != "" {
		return key
	}
	return strings.TrimSpace(os.Getenv(APIKeyName))
}

func fromFile(path string) string {
	if strings.TrimSpace(path) == "" {
		path = DefaultFile
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		// A missing or unreadable store is the same as an empty one.
		return ""
	}
	return strings.TrimSpace(v.GetString(APIKeyName))
}
