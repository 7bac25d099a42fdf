// Package config handles configuration for the account server: defaults and
// an optional JSON overlay. Command-line flags are bound by cmd/server.
package config

import "time"

// Config holds runtime settings for the account server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the gRPC endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps accounts in memory.
//   - S3*: object storage for avatars. An empty S3Bucket keeps avatars in memory.
//   - AvatarBaseURL: public prefix for uploaded avatar URLs.
//   - DemoEmail / DemoPassword: credentials of the seeded demo account.
type Config struct {
	EndpointAddrGRPC string
	DatabaseDSN      string
	S3RootUser       string
	S3RootPassword   string
	S3Bucket         string
	S3Region         string
	S3BaseEndpoint   string
	AvatarBaseURL    string
	DemoEmail        string
	DemoPassword     string
	ShutdownTimeout  time.Duration
	LogJSON          bool
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.AvatarBaseURL = ""
	c.DemoEmail = "demo@example.com"
	c.DemoPassword = "password123"
	c.ShutdownTimeout = 5 * time.Second
	c.LogJSON = true
}

// LoadConfig applies defaults and then the JSON file at path, if any.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}
