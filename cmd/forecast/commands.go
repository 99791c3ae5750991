package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/andresuchdata/popar-tracker/internal/config"
	"github.com/andresuchdata/popar-tracker/internal/domain"
	"github.com/andresuchdata/popar-tracker/internal/history"
	"github.com/andresuchdata/popar-tracker/internal/items"
	"github.com/andresuchdata/popar-tracker/internal/money"
	"github.com/andresuchdata/popar-tracker/internal/report"
	"github.com/andresuchdata/popar-tracker/internal/repository/postgres"
	"github.com/andresuchdata/popar-tracker/internal/service"
	"github.com/andresuchdata/popar-tracker/internal/storage"
	"github.com/andresuchdata/popar-tracker/pkg/logger"
	"github.com/urfave/cli/v2"
)

func newForecastService(db *postgres.DB, cfg *config.Config) *service.ForecastService {
	loader := history.NewLoader(
		postgres.NewHistoryRepository(db),
		history.WithZeroFill(cfg.Forecast.ZeroFill),
	)
	// one-shot commands never reuse a response, so no cache
	return service.NewForecastService(loader, nil, cfg.Forecast.LookbackMonths)
}

func loadForecast(c *cli.Context, cfg *config.Config, includeHistorical bool) (*domain.ForecastResponse, error) {
	db, err := dbFrom(c)
	if err != nil {
		return nil, err
	}

	resp := newForecastService(db, cfg).Forecast(c.Context, domain.ForecastRequest{
		LookbackMonths:    c.Int("lookback"),
		IncludeHistorical: includeHistorical,
	})
	if !resp.Success {
		return nil, fmt.Errorf("forecast failed: %s", resp.Error)
	}
	return resp, nil
}

func runForecast(c *cli.Context, cfg *config.Config) error {
	resp, err := loadForecast(c, cfg, c.Bool("include-historical"))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func exportForecast(c *cli.Context, cfg *config.Config) error {
	format := strings.ToLower(c.String("format"))
	if format != "csv" && format != "xlsx" {
		return fmt.Errorf("unsupported format %q, want csv or xlsx", format)
	}

	resp, err := loadForecast(c, cfg, true)
	if err != nil {
		return err
	}

	var (
		buf         bytes.Buffer
		contentType = "text/csv"
	)
	if format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = report.WriteForecastXLSX(&buf, resp)
	} else {
		err = report.WriteForecastCSV(&buf, resp)
	}
	if err != nil {
		return fmt.Errorf("failed to render %s report: %w", format, err)
	}

	now := time.Now()
	out := c.String("out")
	if out == "" {
		out = fmt.Sprintf("forecast-%s.%s", now.Format("200601"), format)
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed writing %s: %w", out, err)
	}
	logger.Log.Info().Str("path", out).Int("bytes", buf.Len()).Msg("export: report written")

	if !c.Bool("upload") {
		return nil
	}

	client, err := newReportStore(cfg)
	if err != nil {
		return err
	}
	if err := client.EnsureBucket(c.Context); err != nil {
		return err
	}

	key := storage.ReportKey(cfg.Storage.Prefix, now, format)
	return client.UploadObject(c.Context, key, buf.Bytes(), contentType)
}

func newReportStore(cfg *config.Config) (*storage.MinioClient, error) {
	return storage.NewMinioClient(storage.MinioConfig{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	})
}

func listReports(c *cli.Context, cfg *config.Config) error {
	client, err := newReportStore(cfg)
	if err != nil {
		return err
	}

	reports, err := storage.ListReports(c.Context, client, cfg.Storage.Prefix)
	if err != nil {
		return err
	}
	for _, r := range reports {
		if _, err := fmt.Fprintf(c.App.Writer, "%s\t%d\n", r.Key, r.Size); err != nil {
			return err
		}
	}
	return nil
}

func getReport(c *cli.Context, cfg *config.Config) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one report name, e.g. forecast-202406.csv")
	}

	client, err := newReportStore(cfg)
	if err != nil {
		return err
	}

	dest, err := storage.FetchReport(c.Context, client, cfg.Storage.Prefix, c.Args().First(), c.String("dir"))
	if err != nil {
		return err
	}
	logger.Log.Info().Str("path", dest).Msg("reports: downloaded")
	return nil
}

func amountInWords(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one amount argument")
	}

	words, err := money.WordsForString(c.Args().First(), money.ParseStyle(c.String("style")))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.App.Writer, words)
	return err
}

func totalItems(c *cli.Context) error {
	var (
		in  io.Reader = os.Stdin
		src           = "stdin"
	)
	if path := c.Args().First(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		in, src = f, path
	}

	var lines []domain.LineItem
	if err := json.NewDecoder(in).Decode(&lines); err != nil {
		return fmt.Errorf("failed to decode items from %s: %w", src, err)
	}

	summary := items.Aggregate(lines)
	formatter := money.NewFormatter(c.String("glyph"))

	_, err := fmt.Fprintf(c.App.Writer, "%s (%d included, %d excluded, %d defaulted)\n",
		formatter.Format(summary.Total), len(summary.Included), summary.Excluded, summary.Defaulted)
	return err
}
