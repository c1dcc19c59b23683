package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultMaxListings stands in for "no limit" on listings per term.
const DefaultMaxListings = 1000000

// Config holds all application configuration loaded from environment variables.
type Config struct {
	MapsURL     string
	InputFile   string
	OutputDir   string
	MaxListings int
	Sinks       []string

	Headless  bool
	ChromeBin string
	UserAgent string

	PageTimeout    time.Duration
	SearchSettle   time.Duration
	ScrollStep     int
	ScrollSettle   time.Duration
	PollInterval   time.Duration
	StallThreshold int
	ClickTimeout   time.Duration
	DetailSettle   time.Duration

	RateLimitMs int
	MaxRetries  int
	LogLevel    string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	SQLitePath string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		MapsURL:     getEnv("MAPS_URL", "https://www.google.com/maps"),
		InputFile:   getEnv("INPUT_FILE", "input.txt"),
		OutputDir:   getEnv("OUTPUT_DIR", "output"),
		MaxListings: getEnvInt("MAX_LISTINGS", DefaultMaxListings),
		Sinks:       getEnvList("SINKS", []string{"xlsx", "csv"}),

		Headless:  getEnvBool("HEADLESS", true),
		ChromeBin: getEnv("CHROME_BIN", ""),
		UserAgent: getEnv("USER_AGENT", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),

		PageTimeout:    getEnvMs("PAGE_TIMEOUT_MS", 60000),
		SearchSettle:   getEnvMs("SEARCH_SETTLE_MS", 5000),
		ScrollStep:     getEnvInt("SCROLL_STEP", 1000),
		ScrollSettle:   getEnvMs("SCROLL_SETTLE_MS", 1500),
		PollInterval:   getEnvMs("POLL_INTERVAL_MS", 250),
		StallThreshold: getEnvInt("STALL_THRESHOLD", 10),
		ClickTimeout:   getEnvMs("CLICK_TIMEOUT_MS", 10000),
		DetailSettle:   getEnvMs("DETAIL_SETTLE_MS", 7000),

		RateLimitMs: getEnvInt("RATE_LIMIT_MS", 0),
		MaxRetries:  getEnvInt("MAX_RETRIES", 3),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "gmaps_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		SQLitePath: getEnv("SQLITE_PATH", "output/google_maps.sqlite"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// SinkEnabled reports whether the named output sink is configured.
func (c *Config) SinkEnabled(name string) bool {
	for _, s := range c.Sinks {
		if s == name {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvMs(key string, fallbackMs int) time.Duration {
	ms := getEnvInt(key, fallbackMs)
	if ms < 0 {
		ms = fallbackMs
	}
	return time.Duration(ms) * time.Millisecond
}

// getEnvList parses a comma-separated list, lower-cased, blanks dropped.
func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
