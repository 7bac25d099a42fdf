package config

import (
	"time"

	"github.com/dmitrijs2005/gophsession/internal/common"
)

// Config holds runtime settings for the gophsession client.
//
// Fields:
//   - ServerEndpointAddr: host:port of the account service gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - DatabasePath: SQLite file backing the durable store.
//   - RedisAddr: Redis host:port for the cookie channel; empty keeps cookies in memory.
//   - CookieKeyPrefix: Redis key prefix, one per client installation.
//   - Production: marks settings cookies Secure.
//   - TokenTTLDays: max-age of the authToken cookie, in days.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	DatabasePath        string
	RedisAddr           string
	CookieKeyPrefix     string
	Production          bool
	TokenTTLDays        int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DatabasePath = "session.db"
	c.RedisAddr = ""
	c.CookieKeyPrefix = "gophsession"
	c.Production = false
	c.TokenTTLDays = common.DefaultTokenTTLDays
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
