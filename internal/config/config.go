package config

import (
	"os"
	"strconv"
)

// Config holds everything the server reads from the environment.
// Load it once in main and pass it down; nothing else touches os.Getenv.
type Config struct {
	DatabaseDSN string
	JWTSecret   string
	BaseURL     string
	ListenAddr  string

	// AMQPURL is optional. When empty, events only go to the log.
	AMQPURL string

	// GeminiAPIKey is optional. When empty, the /api/ask assistant is disabled.
	GeminiAPIKey string

	// AllowRegistration opens the /register route. Keep it off in production.
	AllowRegistration bool

	// AllowRecipelessSales lets an order go ready even when a menu item has no
	// recipe, selling it at zero cost of goods. Matches the historical behavior;
	// turn it off to reject such items instead.
	AllowRecipelessSales bool
}

func Load() Config {
	return Config{
		DatabaseDSN:          os.Getenv("DB_DSN"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		BaseURL:              getDefault("BASE_URL", "http://localhost:8080"),
		ListenAddr:           getDefault("LISTEN_ADDR", ":8080"),
		AMQPURL:              os.Getenv("AMQP_URL"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		AllowRegistration:    getBool("ALLOW_REGISTRATION", false),
		AllowRecipelessSales: getBool("ALLOW_RECIPELESS_SALES", true),
	}
}

func getDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
