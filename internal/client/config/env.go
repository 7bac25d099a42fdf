package config

import (
	"github.com/spf13/viper"
)

// EnvPrefix namespaces the environment variables read by parseEnv,
// e.g. GOPHSESSION_REDIS_ADDR.
const EnvPrefix = "GOPHSESSION"

// parseEnv overlays Config with GOPHSESSION_* environment variables.
// Only variables that are actually set are applied.
func parseEnv(cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if v.IsSet("server_addr") {
		cfg.ServerEndpointAddr = v.GetString("server_addr")
	}
	if v.IsSet("online_check_interval") {
		cfg.OnlineCheckInterval = v.GetDuration("online_check_interval")
	}
	if v.IsSet("database_path") {
		cfg.DatabasePath = v.GetString("database_path")
	}
	if v.IsSet("redis_addr") {
		cfg.RedisAddr = v.GetString("redis_addr")
	}
	if v.IsSet("cookie_key_prefix") {
		cfg.CookieKeyPrefix = v.GetString("cookie_key_prefix")
	}
	if v.IsSet("production") {
		cfg.Production = v.GetBool("production")
	}
	if v.IsSet("token_ttl_days") {
		cfg.TokenTTLDays = v.GetInt("token_ttl_days")
	}
}
