package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophsession/internal/server"
	"github.com/dmitrijs2005/gophsession/internal/server/config"
)

func run(ctx context.Context, cfg *config.Config) error {
	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}

func main() {
	if err := newRootCmd(run).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
