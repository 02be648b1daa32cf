package cache

// Config holds configuration for the response cache.
type Config struct {
	// Enabled toggles the cache middleware.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Addr is the redis address backing the cache.
	Addr string `mapstructure:"addr" default:"localhost:6379"`
	// Password is the redis password.
	Password string `mapstructure:"password" default:""`
	// DB is the redis database number.
	DB int `mapstructure:"db" default:"0"`
	// TTLSeconds is how long a cached response lives before eviction.
	TTLSeconds int `mapstructure:"ttl_seconds" default:"60"`
}
