package main

import (
	"context"
	"flag"
	"strings"
	"time"

	"github.com/hz-bin/AirTicket/internal/domain/entity"
	"github.com/hz-bin/AirTicket/internal/infrastructure/browser"
	"github.com/hz-bin/AirTicket/internal/infrastructure/config"
	excelRepo "github.com/hz-bin/AirTicket/internal/interface/repository"
	"github.com/hz-bin/AirTicket/internal/usecase"
	"github.com/hz-bin/AirTicket/pkg/logger"
	"github.com/hz-bin/AirTicket/pkg/utils"
)

func main() {
	log := logger.NewConsoleLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	fromCity := flag.String("from", "hgh", "departure city code, e.g. hgh(杭州), sha(上海)")
	toCity := flag.String("to", "akl", "arrival city code, e.g. akl(奥克兰), syd(悉尼)")
	depDate := flag.String("date", time.Now().Format(utils.DATE_LAYOUT), "departure date YYYY-MM-DD, default today")
	headless := flag.Bool("headless", true, "run the browser headless")
	noHeadless := flag.Bool("no-headless", false, "show the browser window")
	debug := flag.Bool("debug", false, "save the fetched page source")
	targetFlight := flag.String("flight", "", "only keep flights whose number contains this code")
	flag.Parse()

	query := entity.RouteQuery{
		FromCode:   strings.ToLower(strings.TrimSpace(*fromCity)),
		ToCode:     strings.ToLower(strings.TrimSpace(*toCity)),
		DepartDate: *depDate,
	}

	log.Info("Direct flight query",
		"from", query.FromLabel(), "to", query.ToLabel(), "date", query.DepartDate)

	fetcher := browser.NewRodFetcher(browser.Options{
		Headless:        *headless && !*noHeadless,
		Debug:           *debug,
		DebugFile:       cfg.DebugFile,
		PageLoadTimeout: cfg.PageLoadTimeout,
		SettleWait:      cfg.SettleWait,
		PrimaryWait:     cfg.PrimaryWait,
		FallbackWait:    cfg.FallbackWait,
	}, log)

	parser := utils.NewListingParser(log)
	scraper := usecase.NewFlightScraper(fetcher, parser, cfg.ListingSelectors, log)
	historyRepo := excelRepo.NewExcelHistoryRepository(cfg.HistoryFile, log)
	runner := usecase.NewQueryRunner(scraper, historyRepo, nil, cfg.OutputDir, log)

	opts := utils.ParseOptions{
		DirectOnly:     true,
		TargetFlightNo: strings.TrimSpace(*targetFlight),
	}
	if err := runner.Run(context.Background(), query, opts); err != nil {
		log.Fatal("Query failed", "error", err)
	}
}
