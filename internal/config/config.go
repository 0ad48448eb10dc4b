package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppEnv   string
	HTTPPort string

	// Required secrets. main refuses to start without them.
	DiscordToken string
	DiscordAppID string

	// Store backend: "memory" (default), "redis" or "dynamo".
	StoreBackend string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	RobloxBaseURL  string
	RequestTimeout time.Duration // bound on outbound Roblox calls

	PhrasePrefix     string
	VerifiedRoleName string

	AllowedOrigins []string // CORS allowed origins for the ops endpoints
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Sessions string
	Guilds   string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		HTTPPort: getEnv("APP_PORT", "3000"),

		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		DiscordAppID: os.Getenv("DISCORD_APP_ID"),

		StoreBackend: getEnv("STORE_BACKEND", "memory"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Sessions: getEnv("DYNAMO_TABLE_VERIFICATION_SESSIONS", "verification_sessions"),
			Guilds:   getEnv("DYNAMO_TABLE_GUILD_CONFIGS", "guild_configs"),
		},

		RobloxBaseURL:  getEnv("ROBLOX_BASE_URL", "https://users.roblox.com"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 10)) * time.Second,

		PhrasePrefix:     getEnv("PHRASE_PREFIX", "Robuddie"),
		VerifiedRoleName: getEnv("VERIFIED_ROLE_NAME", "Verified"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
