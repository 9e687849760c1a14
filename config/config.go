package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/subosito/gotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	Addr              string
	Provider          string
	OpenAIKey         string
	OpenAIModel       string
	GeminiModel       string
	DBPath            string
	PersonalitiesPath string
	AllowOrigins      []string
}

// Load reads .env (when present) and the environment. The model API key is
// the one hard requirement; everything else has a default.
func Load() (Config, error) {
	gotenv.Load()

	cfg := Config{
		Addr:              getenvDefault("ADDR", ":8000"),
		Provider:          getenvDefault("LLM_PROVIDER", ProviderOpenAI),
		OpenAIModel:       getenvDefault("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiModel:       getenvDefault("GEMINI_MODEL", "gemini-2.0-flash-001"),
		DBPath:            getenvDefault("DB_PATH", "chat.db"),
		PersonalitiesPath: getenvDefault("PERSONALITIES_PATH", "data/personalities.json"),
		AllowOrigins:      splitOrigins(getenvDefault("ALLOW_ORIGINS", "http://localhost:3000")),
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		cfg.OpenAIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.OpenAIKey == "" {
			return cfg, errors.New("OPENAI_API_KEY environment variable is not set")
		}
	case ProviderGemini:
		// The genai client resolves its own credentials from the
		// environment; nothing to check here.
	default:
		return cfg, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.Provider)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
