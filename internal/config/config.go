package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	DataDir        string
	DBPath         string
	CountryCode    string
	ResetKeyword   string
	MaxAttendees   int
	BroadcastDelay time.Duration
	SendTimeout    time.Duration
	EventDate      string
	EventLocation  string
	WazeLink       string
	InviteImage    string
}

// Load loads configuration from a .env file (if present) and
// environment variables, falling back to defaults.
func Load() *Config {
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "data")

	return &Config{
		DataDir:        dataDir,
		DBPath:         getEnv("DB_PATH", fmt.Sprintf("%s/rsvp.db", dataDir)),
		CountryCode:    getEnv("COUNTRY_CODE", "972"),
		ResetKeyword:   getEnv("RESET_KEYWORD", "start"),
		MaxAttendees:   getEnvInt("MAX_ATTENDEES", 5),
		BroadcastDelay: getEnvDuration("BROADCAST_DELAY_MS", 3000*time.Millisecond),
		SendTimeout:    getEnvDuration("SEND_TIMEOUT_MS", 30000*time.Millisecond),
		EventDate:      getEnv("EVENT_DATE", "TBD"),
		EventLocation:  getEnv("EVENT_LOCATION", "Venue TBD"),
		WazeLink:       getEnv("WAZE_LINK", ""),
		InviteImage:    getEnv("INVITE_IMAGE", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if ms, err := strconv.Atoi(value); err == nil && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return defaultValue
}
