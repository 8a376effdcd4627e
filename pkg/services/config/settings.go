package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings is the environment-driven service configuration. Every key can be
// set as BILLING_<KEY>, e.g. BILLING_ADDR or BILLING_ALLOWED_ORIGINS.
type Settings struct {
	Addr            string
	APIBasePath     string
	AllowedOrigins  []string
	DefaultRegion   string
	ShutdownTimeout time.Duration

	// Declared for deployment parity; the cost-data path performs no caching.
	RedisURL string
	CacheTTL time.Duration
}

func Load() (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("BILLING")
	v.AutomaticEnv()

	v.SetDefault("addr", ":8000")
	v.SetDefault("api_base_path", "")
	v.SetDefault("allowed_origins", "http://localhost:3000,http://0.0.0.0:3000")
	v.SetDefault("default_region", "us-east-1")
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("redis_url", "redis://localhost:6379")
	v.SetDefault("cache_ttl", time.Hour)

	return &Settings{
		Addr:            v.GetString("addr"),
		APIBasePath:     strings.TrimRight(v.GetString("api_base_path"), "/"),
		AllowedOrigins:  splitOrigins(v.GetString("allowed_origins")),
		DefaultRegion:   v.GetString("default_region"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
		RedisURL:        v.GetString("redis_url"),
		CacheTTL:        v.GetDuration("cache_ttl"),
	}, nil
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
