package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken         string
	BotUsername      string
	ForceJoinChannel string
	SupportHandle    string
	AdminUserID      int64

	AadhaarAPIBaseURL string
	VehicleAPIBaseURL string
	PhoneAPIBaseURL   string

	PostgresDSN   string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	SweepInterval time.Duration
	AwaitTTL      time.Duration
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		BotToken:         getEnv("BOT_TOKEN", ""),
		BotUsername:      getEnv("BOT_USERNAME", "OsintLookupBot"),
		ForceJoinChannel: getEnv("FORCE_JOIN_CHANNEL", "@ronjumodz"),
		SupportHandle:    getEnv("SUPPORT_HANDLE", "@Ronju360"),
		AdminUserID:      getEnvInt64("ADMIN_USER_ID", 0),

		AadhaarAPIBaseURL: getEnv("AADHAAR_API_BASE_URL", "https://happy-ration-info.vercel.app/fetch?key=paidchx&aadhaar="),
		VehicleAPIBaseURL: getEnv("VEHICLE_API_BASE_URL", "https://vehicle-info.itxkaal.workers.dev/?num="),
		PhoneAPIBaseURL:   getEnv("PAKISTAN_PHONE_API_BASE_URL", "https://kami-database.vercel.app/api/search?phone="),

		PostgresDSN:   getEnv("POSTGRES_DSN", ""),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       int(getEnvInt64("REDIS_DB", 0)),

		SweepInterval: getEnvDuration("SWEEP_INTERVAL", time.Hour),
		AwaitTTL:      getEnvDuration("AWAIT_TTL", 30*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("Invalid %s value %q, using default", key, value)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s value %q, using default", key, value)
		return fallback
	}
	return d
}
