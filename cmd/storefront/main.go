package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "storefront",
		Usage: "e-commerce backend with an admin dashboard",
		Commands: []*cli.Command{
			{
				Name:   "service",
				Usage:  "run the HTTP API",
				Action: runService,
			},
			{
				Name:   "migrate",
				Usage:  "apply MySQL schema migrations",
				Action: runMigrate,
			},
		},
		DefaultCommand: "service",
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("storefront failed")
	}
}
