package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/andresuchdata/popar-tracker/internal/cache"
	"github.com/andresuchdata/popar-tracker/internal/config"
	"github.com/andresuchdata/popar-tracker/internal/domain"
	"github.com/andresuchdata/popar-tracker/internal/importer"
	"github.com/andresuchdata/popar-tracker/internal/money"
	"github.com/andresuchdata/popar-tracker/internal/repository/postgres"
	"github.com/andresuchdata/popar-tracker/internal/service"
	"github.com/andresuchdata/popar-tracker/pkg/logger"
	"github.com/urfave/cli/v2"
)

func importDocuments(c *cli.Context, cfg *config.Config) error {
	kind := domain.DocumentKind(strings.ToLower(c.String("kind")))
	if kind != domain.KindPO && kind != domain.KindPAR {
		return fmt.Errorf("unknown document kind %q, want po or par", kind)
	}

	db, err := dbFrom(c)
	if err != nil {
		return err
	}

	file, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", c.String("file"), err)
	}
	defer file.Close()

	var docs []*importer.Document
	if strings.EqualFold(filepath.Ext(file.Name()), ".xlsx") {
		docs, err = importer.ReadXLSX(file, kind)
	} else {
		docs, err = importer.ReadCSV(file, kind)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file.Name(), err)
	}

	forecastCache, err := cache.NewForecastCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("import: forecast cache unavailable, skipping invalidation")
		forecastCache = cache.NewNoopForecastCache()
	}

	svc := service.NewDocumentService(
		postgres.NewDocumentRepository(db),
		forecastCache,
		money.NewFormatter(cfg.Forecast.CurrencyGlyph),
		money.ParseStyle(cfg.Forecast.WordsStyle),
	)

	// one transaction per file
	switch kind {
	case domain.KindPO:
		in := make([]domain.NewPurchaseOrder, 0, len(docs))
		for _, doc := range docs {
			in = append(in, domain.NewPurchaseOrder{
				PONumber: doc.Number,
				Supplier: doc.Party,
				PODate:   doc.Date,
				Items:    doc.Items,
			})
		}
		pos, err := svc.ImportPurchaseOrders(c.Context, in)
		if err != nil {
			return fmt.Errorf("import of %s aborted, nothing stored: %w", file.Name(), err)
		}
		for _, po := range pos {
			logStored(kind, po.PONumber, len(po.Items), svc.Formatter().Format(po.TotalAmount))
		}
	case domain.KindPAR:
		in := make([]domain.NewPropertyReceipt, 0, len(docs))
		for _, doc := range docs {
			in = append(in, domain.NewPropertyReceipt{
				PARNumber: doc.Number,
				Recipient: doc.Party,
				PARDate:   doc.Date,
				Items:     doc.Items,
			})
		}
		pars, err := svc.ImportPropertyReceipts(c.Context, in)
		if err != nil {
			return fmt.Errorf("import of %s aborted, nothing stored: %w", file.Name(), err)
		}
		for _, par := range pars {
			logStored(kind, par.PARNumber, len(par.Items), svc.Formatter().Format(par.TotalAmount))
		}
	}

	logger.Log.Info().Int("documents", len(docs)).Msg("import: completed")
	return nil
}

func logStored(kind domain.DocumentKind, number string, items int, total string) {
	logger.Log.Info().
		Str("kind", string(kind)).
		Str("number", number).
		Int("items", items).
		Str("total", total).
		Msg("import: document stored")
}
