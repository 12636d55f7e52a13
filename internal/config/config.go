package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	CORSOrigins string

	JWTSecret      string
	JWTExpiryHours int

	// AI agent ayarları
	AIBaseURL   string
	AIModelName string
	AIAPIKey    string

	// MCP tarzı uzak araç servisi
	MCPAuthToken    string
	MCPWebSearchURL string
	MCPImageURL     string
}

func Load() *Config {
	// .env varsa yükle, yoksa sessizce devam et
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=hris port=5432 sslmode=disable"),
		CORSOrigins:    getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),

		AIBaseURL:   getEnv("AI_BASE_URL", "https://litellm-docker-545630944929.us-central1.run.app"),
		AIModelName: getEnv("AI_MODEL_NAME", "gemini-2.5-pro"),
		AIAPIKey:    getEnv("AI_API_KEY", "dummy-key"),

		MCPAuthToken:    getEnv("MCP_AUTH_TOKEN", ""),
		MCPWebSearchURL: getEnv("MCP_WEB_SEARCH_URL", "https://mcp.codexhub.ai/web/mcp"),
		MCPImageURL:     getEnv("MCP_IMAGE_URL", "https://mcp.codexhub.ai/image/mcp"),
	}

	// Production güvenlik kontrolleri
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET environment değişkeni tanımlanmamış! Production için zorunludur.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET en az 32 karakter olmalıdır! Güvenlik riski.")
	}
	if cfg.MCPAuthToken == "" {
		log.Println("[WARN] MCP_AUTH_TOKEN tanımlı değil, agent'lar araçsız (tool-less) modda çalışacak.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
