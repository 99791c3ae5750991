package main

import (
	"context"
	"fmt"
	"os"

	"github.com/andresuchdata/popar-tracker/internal/config"
	"github.com/andresuchdata/popar-tracker/internal/repository/postgres"
	"github.com/andresuchdata/popar-tracker/pkg/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/urfave/cli/v2"
)

type dbKey struct{}

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newLookbackFlag(cfg *config.Config) *cli.IntFlag {
	return &cli.IntFlag{
		Name:    "lookback",
		Usage:   "Months of history to load",
		Value:   cfg.Forecast.LookbackMonths,
		EnvVars: []string{"FORECAST_LOOKBACK_MONTHS"},
	}
}

func newStyleFlag(cfg *config.Config) *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "style",
		Usage: "Words style: upper or title",
		Value: cfg.Forecast.WordsStyle,
	}
}

func initDB(c *cli.Context) error {
	db, err := sqlx.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.PingContext(c.Context); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey{}, postgres.Wrap(db))
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey{}).(*postgres.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFrom(c *cli.Context) (*postgres.DB, error) {
	db, ok := c.Context.Value(dbKey{}).(*postgres.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	return db, nil
}

func main() {
	cfg := config.Load()
	logger.SetLevel(cfg.Server.Mode)

	app := &cli.App{
		Name:  "forecast",
		Usage: "PO/PAR forecasting, reports and amount tools",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Print the yearly forecast as JSON",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newLookbackFlag(cfg),
					&cli.BoolFlag{
						Name:  "include-historical",
						Usage: "Include the historical series in the output",
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					return runForecast(c, cfg)
				},
			},
			{
				Name:  "export",
				Usage: "Write the forecast report as csv or xlsx, optionally uploading it",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newLookbackFlag(cfg),
					&cli.StringFlag{
						Name:  "format",
						Usage: "Report format: csv or xlsx",
						Value: "csv",
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "Output file path (defaults to forecast-YYYYMM.<format>)",
					},
					&cli.BoolFlag{
						Name:  "upload",
						Usage: "Upload the report to object storage",
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					return exportForecast(c, cfg)
				},
			},
			{
				Name:  "reports",
				Usage: "Browse forecast reports uploaded to object storage",
				Subcommands: []*cli.Command{
					{
						Name:  "list",
						Usage: "List uploaded reports, newest first",
						Action: func(c *cli.Context) error {
							return listReports(c, cfg)
						},
					},
					{
						Name:      "get",
						Usage:     "Download an uploaded report",
						ArgsUsage: "<forecast-YYYYMM.ext>",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "dir",
								Usage: "Destination directory",
								Value: ".",
							},
						},
						Action: func(c *cli.Context) error {
							return getReport(c, cfg)
						},
					},
				},
			},
			{
				Name:      "words",
				Usage:     "Spell out an amount as printed on documents",
				ArgsUsage: "<amount>",
				Flags:     []cli.Flag{newStyleFlag(cfg)},
				Action:    amountInWords,
			},
			{
				Name:      "total",
				Usage:     "Total a JSON array of line items",
				ArgsUsage: "[items.json]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "glyph",
						Usage: "Currency glyph for the display total",
						Value: cfg.Forecast.CurrencyGlyph,
					},
				},
				Action: totalItems,
			},
			{
				Name:  "import",
				Usage: "Import purchase orders or property receipts from CSV or XLSX",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:     "kind",
						Usage:    "Document kind: po or par",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "file",
						Usage:    "CSV or XLSX file with one line item per row",
						Required: true,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: func(c *cli.Context) error {
					return importDocuments(c, cfg)
				},
			},
			{
				Name:  "migrate",
				Usage: "Apply the SQL migrations in a directory",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "dir",
						Usage:   "Directory containing migration files",
						Value:   "./scripts/migrations",
						EnvVars: []string{"MIGRATIONS_DIR"},
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: migrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("forecast command failed")
	}
}
