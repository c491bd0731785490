package config

import "time"

// CacheConfig defines settings for the response cache middleware
// applied to GET browse endpoints (faculty and availability
// listings). When Enabled is false or no Redis client is available,
// caching is a no-op.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads cache settings from the environment.
// Defaults keep entries short-lived so availability listings do not
// go visibly stale.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: getenv("CACHE_ENABLED", "true") == "true",
		TTL:     parseDur(getenv("CACHE_TTL", "30s")),
		Prefix:  getenv("CACHE_PREFIX", "cache"),
	}
}
