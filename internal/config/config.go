// README: Config loader with env defaults for HTTP, auth, LLM, and Maps settings.
package config

import (
	"os"
	"strconv"
	"time"
)

type AuthConfig struct {
	Username   string
	Password   string
	RateLimit  int
	RateWindow time.Duration
}

type LLMConfig struct {
	Provider    string // "openai" | "gemini"
	UseLocal    bool
	LocalURL    string
	CloudAPIKey string
	LocalModel  string
	CloudModel  string
	GeminiKey   string
	GeminiModel string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

type MapsConfig struct {
	ServerKey string
	EmbedKey  string
	Timeout   time.Duration
}

type Config struct {
	HTTP struct {
		Addr           string
		FrontendOrigin string
	}
	Auth AuthConfig
	LLM  LLMConfig
	Maps MapsConfig
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("WAYPOINT_HTTP_ADDR", ":8080")
	cfg.HTTP.FrontendOrigin = envOrDefault("WAYPOINT_FRONTEND_ORIGIN", "http://localhost:5173")

	cfg.Auth.Username = envOrDefault("WAYPOINT_AUTH_USERNAME", "demo")
	cfg.Auth.Password = envOrDefault("WAYPOINT_AUTH_PASSWORD", "change_me_strong_password")
	cfg.Auth.RateLimit = envOrDefaultInt("WAYPOINT_RATE_LIMIT", 10)
	cfg.Auth.RateWindow = time.Duration(envOrDefaultInt("WAYPOINT_RATE_WINDOW_MIN", 30)) * time.Minute

	cfg.LLM.Provider = envOrDefault("WAYPOINT_LLM_PROVIDER", "openai")
	cfg.LLM.UseLocal = envOrDefaultBool("WAYPOINT_LLM_USE_LOCAL", false)
	cfg.LLM.LocalURL = envOrDefault("WAYPOINT_LOCAL_LLM_URL", "http://localhost:11434/v1")
	cfg.LLM.CloudAPIKey = os.Getenv("WAYPOINT_CLOUD_LLM_API_KEY")
	cfg.LLM.LocalModel = envOrDefault("WAYPOINT_LOCAL_MODEL", "phi3:3.8b")
	cfg.LLM.CloudModel = envOrDefault("WAYPOINT_CLOUD_MODEL", "gpt-3.5-turbo")
	cfg.LLM.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.LLM.GeminiModel = envOrDefault("GEMINI_MODEL_NAME", "gemini-2.0-flash")
	cfg.LLM.Temperature = float32(envOrDefaultFloat("WAYPOINT_LLM_TEMPERATURE", 0.7))
	cfg.LLM.MaxTokens = envOrDefaultInt("WAYPOINT_LLM_MAX_TOKENS", 2048)
	cfg.LLM.Timeout = time.Duration(envOrDefaultInt("WAYPOINT_LLM_TIMEOUT_SEC", 30)) * time.Second

	cfg.Maps.ServerKey = os.Getenv("GMAPS_SERVER_KEY")
	cfg.Maps.EmbedKey = os.Getenv("GMAPS_EMBED_KEY")
	cfg.Maps.Timeout = time.Duration(envOrDefaultInt("WAYPOINT_MAPS_TIMEOUT_SEC", 10)) * time.Second

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
