package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/parsepush/internal/buildinfo"
	"github.com/dmitrijs2005/parsepush/internal/cli"
	"github.com/dmitrijs2005/parsepush/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
