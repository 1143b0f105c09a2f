package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "txadmin",
		Usage: "Operational tooling for the collection transactions service",
		Description: `Maintenance commands that run against the service's SQLite database
directly: schema migration, CSV export/import and quick aggregate checks.

Stop the server (or work on a copy of the database file) before importing.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Usage:   "path to the SQLite database file",
				Value:   "./transactions.db",
				EnvVars: []string{"DATABASE_PATH"},
			},
		},
		Commands: []*cli.Command{
			migrateCommand(),
			exportCommand(),
			importCommand(),
			statsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
