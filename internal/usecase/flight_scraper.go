package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hz-bin/AirTicket/internal/domain/entity"
	"github.com/hz-bin/AirTicket/internal/infrastructure/browser"
	"github.com/hz-bin/AirTicket/pkg/logger"
	"github.com/hz-bin/AirTicket/pkg/utils"
)

// FlightScraper fetches a route's listing page and extracts flight records
type FlightScraper struct {
	fetcher   browser.PageFetcher
	parser    *utils.ListingParser
	selectors []string
	logger    logger.Logger
}

// NewFlightScraper creates a new flight scraper
func NewFlightScraper(fetcher browser.PageFetcher, parser *utils.ListingParser, selectors []string, logger logger.Logger) *FlightScraper {
	return &FlightScraper{
		fetcher:   fetcher,
		parser:    parser,
		selectors: selectors,
		logger:    logger,
	}
}

// BuildURL composes the one-way listing query URL for a route and date
func BuildURL(query entity.RouteQuery) string {
	return fmt.Sprintf(
		"https://flights.ctrip.com/online/list/oneway-%s-%s?depdate=%s&cabin=y_s&adult=1&child=0&infant=0",
		query.FromCode, query.ToCode, query.DepartDate)
}

// ScrapeFlights loads the listing page for query and returns the extracted
// flight records in document order
func (s *FlightScraper) ScrapeFlights(ctx context.Context, query entity.RouteQuery, opts utils.ParseOptions) ([]*entity.FlightRecord, error) {
	pageHTML, err := s.fetcher.Fetch(ctx, BuildURL(query))
	if err != nil {
		return nil, err
	}
	return s.ExtractListings(pageHTML, opts), nil
}

// ExtractListings locates listing entries in the page markup and parses each
// into a flight record. The selector chain is tried in order and the first
// selector with at least one match wins; entries from other selectors are
// never merged in.
func (s *FlightScraper) ExtractListings(pageHTML string, opts utils.ParseOptions) []*entity.FlightRecord {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		s.logger.Error("Failed to parse page markup", "error", err)
		return nil
	}

	var items *goquery.Selection
	for _, selector := range s.selectors {
		found := doc.Find(selector)
		if found.Length() > 0 {
			s.logger.Info("Selector matched listing entries", "selector", selector, "count", found.Length())
			items = found
			break
		}
	}

	if items == nil {
		pageError := strings.TrimSpace(doc.Find("div.error").Text())
		s.logger.Warn("No listing entries found on page", "pageError", pageError)
		return nil
	}

	var flights []*entity.FlightRecord
	items.Each(func(i int, sel *goquery.Selection) {
		record := s.parseEntry(i, sel, opts)
		if record != nil {
			flights = append(flights, record)
			s.logger.Debug("Parsed listing entry", "index", i+1, "flight", record.FlightNumber)
		}
	})

	s.logger.Info("Extracted flight records", "count", len(flights))
	return flights
}

// parseEntry parses one listing entry; an unexpected fault skips the entry
// rather than aborting the whole extraction.
func (s *FlightScraper) parseEntry(index int, sel *goquery.Selection, opts utils.ParseOptions) (record *entity.FlightRecord) {
	defer func() {
		if fault := recover(); fault != nil {
			s.logger.Warn("Skipping listing entry after parse fault", "index", index+1, "fault", fault)
			record = nil
		}
	}()

	itemHTML, err := goquery.OuterHtml(sel)
	if err != nil {
		itemHTML = ""
	}
	// Collapse whitespace so field patterns see one space between fragments.
	itemText := strings.Join(strings.Fields(sel.Text()), " ")

	return s.parser.ParseListing(itemHTML, itemText, opts)
}
