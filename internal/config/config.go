// Package config loads application configuration from environment
// variables. A .env file, when present, is loaded by main before
// Load runs.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values. Each field
// corresponds to an environment variable: strings for identifiers
// and secrets, ints for durations and counts.
type Config struct {
	Env              string        // application environment (e.g. "dev", "prod")
	Port             string        // HTTP port to listen on
	DBUser           string        // database username
	DBPass           string        // database password (optional)
	DBHost           string        // database host address
	DBPort           string        // database port number
	DBName           string        // database name
	JWTSecret        string        // secret used to sign JWTs
	AccessTTLMin     int           // access token time-to-live in minutes
	RefreshTTLDays   int           // refresh token time-to-live in days
	OAuthIssuerURL   string        // token verification endpoint of the identity provider
	MeetAPIURL       string        // base URL of the conferencing API
	MeetAPIKey       string        // bearer key for the conferencing API
	MeetFallbackHost string        // host used in generated fallback join links
	MeetTimeout      time.Duration // deadline for each provisioning call
}

// Load reads configuration values from environment variables.
// Required variables are enforced by must(); missing values cause
// the program to exit with a fatal log message. Meeting settings
// have usable defaults so local development does not need the real
// conferencing API configured.
func Load() Config {
	return Config{
		Env:              must("APP_ENV"),
		Port:             must("APP_PORT"),
		DBUser:           must("DB_USER"),
		DBPass:           os.Getenv("DB_PASS"),
		DBHost:           must("DB_HOST"),
		DBPort:           must("DB_PORT"),
		DBName:           must("DB_NAME"),
		JWTSecret:        must("JWT_SECRET"),
		AccessTTLMin:     mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays:   mustInt("REFRESH_TOKEN_TTL_DAYS"),
		OAuthIssuerURL:   getenv("OAUTH_TOKENINFO_URL", "https://oauth2.googleapis.com/tokeninfo"),
		MeetAPIURL:       getenv("MEET_API_URL", "http://localhost:8090"),
		MeetAPIKey:       os.Getenv("MEET_API_KEY"),
		MeetFallbackHost: getenv("MEET_FALLBACK_HOST", "meet.google.com"),
		MeetTimeout:      parseDur(getenv("MEET_TIMEOUT", "5s")),
	}
}

// must retrieves the value of a required environment variable. If
// the variable is unset or empty, the application logs a fatal error
// and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an
// integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 5 * time.Second
	}
	return d
}
