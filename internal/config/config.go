package config

import (
	"os"      // For environment variables
	"strconv" // For string to number conversion
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Session store kinds
const (
	StoreRedis = "redis" // Sessions in Redis, expiring on their own
	StoreMySQL = "mysql" // Sessions in the sessions table
)

// Config holds the application configuration
type Config struct {
	AppPort         string        // Application port
	BackendURL      string        // Store backend base URL, e.g. https://host/api
	BackendTimeout  time.Duration // Per-call backend timeout, 0 waits indefinitely
	SessionStore    string        // redis or mysql
	SessionTTL      time.Duration // Upper bound on a session's life
	CacheTTL        time.Duration // Lifetime of a cached view section
	CookieName      string        // Session cookie name
	MaxReceiptBytes int64         // Upload limit for receipt images
	DBUser          string        // Database user
	DBPassword      string        // Database password
	DBHost          string        // Database host
	DBPort          string        // Database port
	DBName          string        // Database name
	RedisAddr       string        // Redis server address
	RedisPass       string        // Redis password
	RedisDB         int           // Redis database number
	IsProd          bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:         getEnv("APP_PORT", "3000"),
		BackendURL:      getEnv("BACKEND_URL", "http://localhost:8001/api"),
		BackendTimeout:  getDuration("BACKEND_TIMEOUT", 15*time.Second),
		SessionStore:    getEnv("SESSION_STORE", StoreRedis),
		SessionTTL:      getDuration("SESSION_TTL", 24*time.Hour),
		CacheTTL:        getDuration("CACHE_TTL", 60*time.Second),
		CookieName:      getEnv("COOKIE_NAME", "storefront_session"),
		MaxReceiptBytes: int64(getInt("MAX_RECEIPT_BYTES", 5<<20)),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBHost:          getEnv("DB_HOST", "127.0.0.1"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBName:          os.Getenv("DB_NAME"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:       os.Getenv("REDIS_PASS"),
		RedisDB:         getInt("REDIS_DB", 0),
		IsProd:          os.Getenv("IS_PROD") == "true",
	}
}

// DSN is the MySQL data source name for the session store
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// getEnv returns the variable or def when unset or empty
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getInt returns the variable as an int, or def when unset or malformed
func getInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

// getDuration accepts Go durations ("15s") or plain seconds ("15")
func getDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}
