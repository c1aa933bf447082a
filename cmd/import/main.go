package main

import (
	"os"

	"github.com/robinjoseph08/golib/logger"
	"github.com/urfave/cli/v2"

	"github.com/critiqhq/critiq/pkg/config"
	"github.com/critiqhq/critiq/pkg/database"
	"github.com/critiqhq/critiq/pkg/importer"
	"github.com/critiqhq/critiq/pkg/migrations"
)

func main() {
	log := logger.New()

	app := &cli.App{
		Name:      "import",
		Usage:     "seed the database from a directory of CSV files",
		ArgsUsage: "DATA_DIR",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected exactly one argument: DATA_DIR", 1)
			}
			dataDir := c.Args().First()

			cfg, err := config.New()
			if err != nil {
				return err
			}

			db, err := database.New(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if _, err := migrations.BringUpToDate(c.Context, db); err != nil {
				return err
			}

			results := importer.New(db).Run(c.Context, dataDir)

			failed := false
			for _, result := range results {
				data := logger.Data{"entity": result.Entity, "rows": result.Rows}
				switch result.Status {
				case importer.StatusSuccess:
					log.Info("populated entity", data)
				case importer.StatusWarning:
					data["error"] = result.Err.Error()
					log.Warn("could not find entity file", data)
				case importer.StatusError:
					log.Err(result.Err).Error("could not populate entity", data)
					failed = true
				}
			}
			if failed {
				return cli.Exit("import finished with errors", 1)
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Err(err).Fatal("app run error")
	}
}
