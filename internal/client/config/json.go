package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophsession/internal/flagx"
	"github.com/dmitrijs2005/gophsession/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from zero values so a partial file only
// overrides what it names.
type JsonConfig struct {
	ServerEndpointAddr  *string         `json:"server_endpoint_addr"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	DatabasePath        *string         `json:"database_path"`
	RedisAddr           *string         `json:"redis_addr"`
	CookieKeyPrefix     *string         `json:"cookie_key_prefix"`
	Production          *bool           `json:"production"`
	TokenTTLDays        *int            `json:"token_ttl_days"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c / -config. Without the flag nothing happens. Read or unmarshal errors
// panic; the CLI cannot start with a broken config file.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != nil {
		cfg.ServerEndpointAddr = *jc.ServerEndpointAddr
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.RedisAddr != nil {
		cfg.RedisAddr = *jc.RedisAddr
	}
	if jc.CookieKeyPrefix != nil {
		cfg.CookieKeyPrefix = *jc.CookieKeyPrefix
	}
	if jc.Production != nil {
		cfg.Production = *jc.Production
	}
	if jc.TokenTTLDays != nil {
		cfg.TokenTTLDays = *jc.TokenTTLDays
	}
}
