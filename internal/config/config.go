package config

import (
	"os"
	"strconv"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Telegram TelegramConfig
	Redis    RedisConfig
	Store    StoreConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
	// BaseURL is the public origin prepended to generated share links
	BaseURL string
}

// TelegramConfig holds the bot credential and outward-facing chat settings
type TelegramConfig struct {
	BotToken string
	// CreateLogChatID and OpenLogChatID are the audit channels; zero disables
	CreateLogChatID int64
	OpenLogChatID   int64
	// CommunityURL and ChannelURL appear as static menu buttons when set
	CommunityURL string
	ChannelURL   string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// StoreConfig selects the repository backend
type StoreConfig struct {
	// Backend is either "memory" or "redis"
	Backend string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    getEnv("SERVER_PORT", "8080"),
			Env:     getEnv("SERVER_ENV", "development"),
			BaseURL: getEnv("BASE_URL", "http://localhost:8080"),
		},
		Telegram: TelegramConfig{
			BotToken:        getEnv("BOT_TOKEN", ""),
			CreateLogChatID: getEnvAsInt64("CREATE_LOG_CHAT_ID", 0),
			OpenLogChatID:   getEnvAsInt64("OPEN_LOG_CHAT_ID", 0),
			CommunityURL:    getEnv("COMMUNITY_URL", ""),
			ChannelURL:      getEnv("CHANNEL_URL", ""),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Store: StoreConfig{
			Backend: getEnv("STORE_BACKEND", "memory"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}
