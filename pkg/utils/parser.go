package utils

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hz-bin/AirTicket/internal/domain/entity"
	"github.com/hz-bin/AirTicket/pkg/logger"
)

var (
	flightNoRegex = regexp.MustCompile(`[A-Z]{2}\d{2,4}`)
	airlineRegex  = regexp.MustCompile(`\p{Han}{2,6}航空`)
	timeRegex     = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
	durationRegex = regexp.MustCompile(`(\d+)小时(\d+)分`)
	priceRegex    = regexp.MustCompile(`¥?\s*(\d+)`)
)

// stopKeywords mark listings that include a layover or transfer segment.
var stopKeywords = []string{"经停", "中转", "转机", "联程", "含中转", "停留"}

// ListingParser extracts flight fields from one rendered listing entry
type ListingParser struct {
	logger logger.Logger
}

// NewListingParser creates a new listing parser
func NewListingParser(logger logger.Logger) *ListingParser {
	return &ListingParser{
		logger: logger,
	}
}

// ParseListing parses a single listing entry into a flight record. itemHTML is
// the entry's raw markup, itemText its visible text. It returns nil when the
// entry is rejected by a filter or yields neither a price nor a flight number.
func (p *ListingParser) ParseListing(itemHTML, itemText string, opts ParseOptions) *entity.FlightRecord {
	record := &entity.FlightRecord{}

	// Flight numbers: markup first, text as fallback. More than one distinct
	// code in one entry means a connecting flight.
	flightNos := flightNoRegex.FindAllString(itemHTML, -1)
	if len(flightNos) == 0 {
		flightNos = flightNoRegex.FindAllString(itemText, -1)
	}
	if len(flightNos) > 0 {
		record.FlightNumber = flightNos[0]
		if opts.DirectOnly && countDistinct(flightNos) > 1 {
			p.logger.Debug("Rejected entry with multiple flight numbers", "flightNos", flightNos)
			return nil
		}
	}

	if opts.TargetFlightNo != "" && record.FlightNumber != "" {
		if !strings.Contains(strings.ToUpper(record.FlightNumber), strings.ToUpper(opts.TargetFlightNo)) {
			return nil
		}
	}

	if opts.DirectOnly {
		for _, keyword := range stopKeywords {
			if strings.Contains(itemText, keyword) {
				p.logger.Debug("Rejected entry with stopover keyword", "keyword", keyword)
				return nil
			}
		}
	}

	if airline := airlineRegex.FindString(itemText); airline != "" {
		record.Airline = airline
	}

	// Departure/arrival wall-clock times; more than two pairs usually means
	// a transfer itinerary.
	times := timeRegex.FindAllStringSubmatch(itemText, -1)
	if opts.DirectOnly && len(times) > 2 {
		p.logger.Debug("Rejected entry with more than two times", "count", len(times))
		return nil
	}
	if len(times) >= 2 {
		record.DepartureTime = times[0][1] + ":" + times[0][2]
		record.ArrivalTime = times[1][1] + ":" + times[1][2]
	}

	if duration := durationRegex.FindStringSubmatch(itemText); len(duration) == 3 {
		record.Duration = duration[1] + "h" + duration[2] + "m"
	}

	if price := p.extractPrice(itemText); price != "" {
		record.Price = price
	}

	if !record.IsValid() {
		return nil
	}
	return record
}

// extractPrice picks the lowest number in the plausible fare range out of all
// integer-looking substrings in the entry text.
func (p *ListingParser) extractPrice(itemText string) string {
	matches := priceRegex.FindAllStringSubmatch(itemText, -1)
	best := 0
	for _, match := range matches {
		value, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if value < PRICE_MIN || value > PRICE_MAX {
			continue
		}
		if best == 0 || value < best {
			best = value
		}
	}
	if best == 0 {
		return ""
	}
	return strconv.Itoa(best)
}

func countDistinct(values []string) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}
