package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hz-bin/AirTicket/internal/domain/entity"
	"github.com/hz-bin/AirTicket/internal/domain/repository"
	"github.com/hz-bin/AirTicket/pkg/logger"
	"github.com/hz-bin/AirTicket/pkg/metrics"
	"github.com/hz-bin/AirTicket/pkg/utils"
	"github.com/hz-bin/AirTicket/templates"
)

// QueryRunner executes one full scrape run: fetch, extract, display, dump the
// per-run JSON and append the records to the history store
type QueryRunner struct {
	scraper     *FlightScraper
	historyRepo repository.HistoryRepository
	metrics     *metrics.Metrics // nil for the CLI tools
	outputDir   string
	logger      logger.Logger
}

// NewQueryRunner creates a new query runner
func NewQueryRunner(
	scraper *FlightScraper,
	historyRepo repository.HistoryRepository,
	metrics *metrics.Metrics,
	outputDir string,
	logger logger.Logger,
) *QueryRunner {
	return &QueryRunner{
		scraper:     scraper,
		historyRepo: historyRepo,
		metrics:     metrics,
		outputDir:   outputDir,
		logger:      logger,
	}
}

// Run executes the query end to end. A run that finds no flights is not an
// error; nothing is saved and a hint is logged.
func (qr *QueryRunner) Run(ctx context.Context, query entity.RouteQuery, opts utils.ParseOptions) error {
	qr.logger.Info("Running route query",
		"from", query.FromLabel(), "to", query.ToLabel(), "date", query.DepartDate)

	start := time.Now()
	flights, err := qr.scraper.ScrapeFlights(ctx, query, opts)
	if qr.metrics != nil {
		qr.metrics.QueriesRun.Inc()
		qr.metrics.ScrapeTime.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if qr.metrics != nil {
			qr.metrics.ErrorsCount.WithLabelValues("scrape").Inc()
		}
		return fmt.Errorf("scrape %s-%s: %w", query.FromCode, query.ToCode, err)
	}
	if qr.metrics != nil {
		qr.metrics.FlightsScraped.Add(float64(len(flights)))
	}

	fmt.Print(templates.FormatFlightTable(flights, query))

	if len(flights) == 0 {
		qr.logger.Warn("No flights saved; check the debug page if the site structure changed")
		return nil
	}

	if err := qr.saveJSON(flights, query); err != nil {
		if qr.metrics != nil {
			qr.metrics.ErrorsCount.WithLabelValues("save_json").Inc()
		}
		return err
	}

	written, err := qr.historyRepo.Append(ctx, flights, query)
	if err != nil {
		if qr.metrics != nil {
			qr.metrics.ErrorsCount.WithLabelValues("append_history").Inc()
		}
		return fmt.Errorf("append history: %w", err)
	}
	if qr.metrics != nil {
		qr.metrics.RowsAppended.Add(float64(written))
	}
	qr.logger.Info("Appended flight history rows", "rows", written)
	return nil
}

// saveJSON writes the run's records as a JSON array named after the route
// and date.
func (qr *QueryRunner) saveJSON(flights []*entity.FlightRecord, query entity.RouteQuery) error {
	data, err := json.MarshalIndent(flights, "", "  ")
	if err != nil {
		return err
	}
	name := fmt.Sprintf("flights_%s_%s_%s.json", query.FromCode, query.ToCode, query.DepartDate)
	path := filepath.Join(qr.outputDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	qr.logger.Info("Saved flight records", "file", path)
	return nil
}
