package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

const (
	serviceName = "sagra-admin"
	version     = "0.1.0"
)

func main() {
	app := &cli.App{
		Name:    serviceName,
		Usage:   "Sagra admin panel backend",
		Version: version,
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
