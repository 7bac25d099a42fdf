package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/gophsession/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration. Durations
// accept both "5s" strings and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC string          `json:"endpoint_addr_grpc"`
	DatabaseDSN      string          `json:"database_dsn"`
	S3RootUser       string          `json:"s3_root_user"`
	S3RootPassword   string          `json:"s3_root_password"`
	S3Bucket         string          `json:"s3_bucket"`
	S3Region         string          `json:"s3_region"`
	S3BaseEndpoint   string          `json:"s3_base_endpoint"`
	AvatarBaseURL    string          `json:"avatar_base_url"`
	DemoEmail        string          `json:"demo_email"`
	DemoPassword     string          `json:"demo_password"`
	ShutdownTimeout  *timex.Duration `json:"shutdown_timeout"`
	LogJSON          *bool           `json:"log_json"`
}

// parseJson overlays the values present in the file at path onto config.
// Missing or empty fields keep their current value; an empty path is a no-op.
func parseJson(config *Config, path string) error {
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	overlay(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.S3RootUser, c.S3RootUser)
	overlay(&config.S3RootPassword, c.S3RootPassword)
	overlay(&config.S3Bucket, c.S3Bucket)
	overlay(&config.S3Region, c.S3Region)
	overlay(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	overlay(&config.AvatarBaseURL, c.AvatarBaseURL)
	overlay(&config.DemoEmail, c.DemoEmail)
	overlay(&config.DemoPassword, c.DemoPassword)

	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = time.Duration(c.ShutdownTimeout.Duration)
	}
	if c.LogJSON != nil {
		config.LogJSON = *c.LogJSON
	}
	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
