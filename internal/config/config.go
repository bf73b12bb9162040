package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string

	TelegramBotToken string

	// Booking slot rules
	SlotSizeMinutes    int
	MinSlotsPerBooking int
	MaxSlotsPerBooking int
	MinGapSlots        int
	AdvanceBookingDays int
}

func Load() *Config {
	// Missing .env is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "mysql"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "orgspace"),
		DBPassword: getEnv("DB_PASSWORD", "orgspace"),
		DBName:     getEnv("DB_NAME", "orgspace"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),

		SlotSizeMinutes:    getEnvInt("SLOT_SIZE_MINUTES", 30),
		MinSlotsPerBooking: getEnvInt("MIN_SLOTS_PER_BOOKING", 1),
		MaxSlotsPerBooking: getEnvInt("MAX_SLOTS_PER_BOOKING", 4),
		MinGapSlots:        getEnvInt("MIN_GAP_SLOTS", 1),
		AdvanceBookingDays: getEnvInt("ADVANCE_BOOKING_DAYS", 14),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
