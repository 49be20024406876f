package config

import (
	"fmt"     // For DSN formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For list parsing

	"github.com/joho/godotenv" // For loading .env files
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the application configuration
type Config struct {
	AppPort        string   // Application port
	DBDriver       string   // Database driver: mysql, postgres or sqlite
	DBUser         string   // Database user
	DBPassword     string   // Database password
	DBHost         string   // Database host
	DBPort         string   // Database port
	DBName         string   // Database name
	DBPath         string   // SQLite database file
	JWTSecret      string   // Session signing secret
	RedisAddr      string   // Redis server address, empty disables caching
	RedisPass      string   // Redis password
	RedisDB        int      // Redis database number
	IsProd         bool     // Is production environment
	CORSOrigins    []string // Allowed CORS origins, empty disables CORS
	LoginRateLimit uint     // Login attempts per minute per client IP
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	rateLimit, err := strconv.ParseUint(os.Getenv("LOGIN_RATE_LIMIT"), 10, 32)
	if err != nil || rateLimit == 0 {
		rateLimit = 10 // Default login attempts per minute
	}
	return &Config{
		AppPort:        getEnv("APP_PORT", "3000"),                        // Application port
		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", DriverMySQL)), // Database driver
		DBUser:         os.Getenv("DB_USER"),                              // Database user
		DBPassword:     os.Getenv("DB_PASSWORD"),                          // Database password
		DBHost:         getEnv("DB_HOST", "localhost"),                    // Database host
		DBPort:         os.Getenv("DB_PORT"),                              // Database port
		DBName:         os.Getenv("DB_NAME"),                              // Database name
		DBPath:         getEnv("DB_PATH", "time_manager.db"),              // SQLite database file
		JWTSecret:      os.Getenv("JWT_SECRET"),                           // Session signing secret
		RedisAddr:      os.Getenv("REDIS_ADDR"),                           // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),                           // Redis password
		RedisDB:        redisDB,                                           // Redis database number
		IsProd:         os.Getenv("IS_PROD") == "true",                    // Is production environment
		CORSOrigins:    splitList(os.Getenv("CORS_ORIGINS")),              // Allowed CORS origins
		LoginRateLimit: uint(rateLimit),                                   // Login attempts per minute
	}
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverPostgres:
		port := c.DBPort
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, port)
	case DriverSQLite:
		return c.DBPath + "?_foreign_keys=on"
	default:
		port := c.DBPort
		if port == "" {
			port = "3306"
		}
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + port + ")/" + c.DBName + "?parseTime=true&charset=utf8mb4"
	}
}

// Validate reports settings the server cannot start without
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres:
		if c.DBName == "" {
			return fmt.Errorf("DB_NAME is required for driver %q", c.DBDriver)
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

// getEnv returns the variable or a fallback when unset
func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// splitList parses a comma separated list, dropping blanks
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
