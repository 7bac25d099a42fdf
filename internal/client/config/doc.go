// Package config loads runtime configuration for the gophsession CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables with the GOPHSESSION_ prefix (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the account service
//	-i int      online status check interval (seconds)
//	-d string   SQLite database path
//	-r string   Redis address for the cookie channel
//	-t int      session token lifetime (days)
//	-prod       production mode (Secure cookies)
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "database_path": "session.db",
//	  "redis_addr": "127.0.0.1:6379",
//	  "cookie_key_prefix": "gophsession",
//	  "production": false,
//	  "token_ttl_days": 7
//	}
package config
