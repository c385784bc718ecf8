package main

import (
	"github.com/urfave/cli/v2"

	"github.com/rryowa/sagra_admin/internal/migrations"
	"github.com/rryowa/sagra_admin/internal/util"
)

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the postgres session store schema",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: func(_ *cli.Context) error {
					logger := util.NewZapLogger()
					db, cleanup, err := util.NewDBConnection(logger, util.NewDBConfig())
					if err != nil {
						return err
					}
					defer cleanup()
					return migrations.RunMigrations(db, logger)
				},
			},
			{
				Name:  "down",
				Usage: "Roll back the last migration",
				Action: func(_ *cli.Context) error {
					logger := util.NewZapLogger()
					db, cleanup, err := util.NewDBConnection(logger, util.NewDBConfig())
					if err != nil {
						return err
					}
					defer cleanup()
					return migrations.RollbackMigration(db, logger)
				},
			},
		},
	}
}
