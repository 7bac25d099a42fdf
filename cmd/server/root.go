package main

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophsession/internal/server/config"
	"github.com/spf13/cobra"
)

type runFunc func(ctx context.Context, cfg *config.Config) error

// newRootCmd builds the server command. Flags override values from the
// JSON file given with --config, which override the defaults.
func newRootCmd(run runFunc) *cobra.Command {
	var (
		configPath string
		v          config.Config
		logText    bool
	)

	cmd := &cobra.Command{
		Use:           "gophsession-server",
		Short:         "Account service for gophsession clients",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			stringFlags := map[string]*string{
				"addr":            &cfg.EndpointAddrGRPC,
				"dsn":             &cfg.DatabaseDSN,
				"s3-user":         &cfg.S3RootUser,
				"s3-password":     &cfg.S3RootPassword,
				"s3-bucket":       &cfg.S3Bucket,
				"s3-region":       &cfg.S3Region,
				"s3-endpoint":     &cfg.S3BaseEndpoint,
				"avatar-base-url": &cfg.AvatarBaseURL,
				"demo-email":      &cfg.DemoEmail,
				"demo-password":   &cfg.DemoPassword,
			}
			for name, dst := range stringFlags {
				if flags.Changed(name) {
					*dst, _ = flags.GetString(name)
				}
			}
			if flags.Changed("shutdown-timeout") {
				cfg.ShutdownTimeout = v.ShutdownTimeout
			}
			if flags.Changed("log-text") {
				cfg.LogJSON = !logText
			}

			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "path to JSON config file")
	f.StringVarP(&v.EndpointAddrGRPC, "addr", "a", "", "gRPC bind address (e.g. \":50051\")")
	f.StringVarP(&v.DatabaseDSN, "dsn", "d", "", "PostgreSQL DSN; empty keeps accounts in memory")
	f.StringVarP(&v.S3RootUser, "s3-user", "u", "", "S3 access key")
	f.StringVarP(&v.S3RootPassword, "s3-password", "p", "", "S3 secret key")
	f.StringVarP(&v.S3Bucket, "s3-bucket", "b", "", "S3 bucket for avatars; empty keeps avatars in memory")
	f.StringVarP(&v.S3Region, "s3-region", "g", "", "S3 region")
	f.StringVarP(&v.S3BaseEndpoint, "s3-endpoint", "e", "", "S3 base endpoint (e.g. \"http://127.0.0.1:9000/\")")
	f.StringVar(&v.AvatarBaseURL, "avatar-base-url", "", "public URL prefix of uploaded avatars")
	f.StringVar(&v.DemoEmail, "demo-email", "", "email of the demo account")
	f.StringVar(&v.DemoPassword, "demo-password", "", "password of the demo account")
	f.DurationVar(&v.ShutdownTimeout, "shutdown-timeout", 5*time.Second, "graceful shutdown timeout")
	f.BoolVar(&logText, "log-text", false, "log as text instead of JSON")

	return cmd
}
