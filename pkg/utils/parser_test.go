package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hz-bin/AirTicket/pkg/logger"
)

func newTestParser() *ListingParser {
	return NewListingParser(logger.NewConsoleLogger())
}

func TestParseListing_DirectFlight(t *testing.T) {
	p := newTestParser()

	text := "东方航空 MU779 12:10 → 23:30 11小时20分 杭州国际机场 ¥3200"
	record := p.ParseListing(text, text, ParseOptions{DirectOnly: true})

	require.NotNil(t, record)
	assert.Equal(t, "MU779", record.FlightNumber)
	assert.Equal(t, "东方航空", record.Airline)
	assert.Equal(t, "12:10", record.DepartureTime)
	assert.Equal(t, "23:30", record.ArrivalTime)
	assert.Equal(t, "11h20m", record.Duration)
	assert.Equal(t, "3200", record.Price)
}

func TestParseListing_FlightNumberFromMarkupFirst(t *testing.T) {
	p := newTestParser()

	html := `<div data-flight="NZ289">新西兰航空 ¥4899</div>`
	text := "新西兰航空 ¥4899"
	record := p.ParseListing(html, text, ParseOptions{DirectOnly: true})

	require.NotNil(t, record)
	assert.Equal(t, "NZ289", record.FlightNumber)
}

func TestParseListing_MultipleFlightNumbersRejected(t *testing.T) {
	p := newTestParser()

	text := "东方航空 MU779 转 CA1234 08:00 12:00 ¥5600"
	record := p.ParseListing(text, text, ParseOptions{DirectOnly: true})
	assert.Nil(t, record)
}

func TestParseListing_RepeatedFlightNumberKept(t *testing.T) {
	p := newTestParser()

	// The same code appearing twice is still a single-segment flight.
	text := "MU779 东方航空 MU779 10:00 21:30 ¥3600"
	record := p.ParseListing(text, text, ParseOptions{DirectOnly: true})

	require.NotNil(t, record)
	assert.Equal(t, "MU779", record.FlightNumber)
}

func TestParseListing_StopoverKeywordRejected(t *testing.T) {
	p := newTestParser()

	for _, keyword := range []string{"经停", "中转", "转机", "联程", "含中转", "停留"} {
		text := "东方航空 MU779 10:00 21:30 " + keyword + " ¥3600"
		record := p.ParseListing(text, text, ParseOptions{DirectOnly: true})
		assert.Nil(t, record, "keyword %s should reject the entry", keyword)
	}
}

func TestParseListing_MoreThanTwoTimesRejected(t *testing.T) {
	p := newTestParser()

	text := "东方航空 MU779 10:00 13:20 15:40 21:30 ¥3600"
	record := p.ParseListing(text, text, ParseOptions{DirectOnly: true})
	assert.Nil(t, record)
}

func TestParseListing_NonDirectKeepsConnectingEntry(t *testing.T) {
	p := newTestParser()

	text := "东方航空 MU779 经停 10:00 13:20 15:40 21:30 ¥3600"
	record := p.ParseListing(text, text, ParseOptions{DirectOnly: false})

	require.NotNil(t, record)
	assert.Equal(t, "MU779", record.FlightNumber)
	assert.Equal(t, "10:00", record.DepartureTime)
	assert.Equal(t, "13:20", record.ArrivalTime)
}

func TestParseListing_PricePicksMinimumInRange(t *testing.T) {
	p := newTestParser()

	text := "MU779 税费 50 ¥3200 120000 4899"
	record := p.ParseListing(text, text, ParseOptions{DirectOnly: true})

	require.NotNil(t, record)
	assert.Equal(t, "3200", record.Price)
}

func TestParseListing_NoPriceInRange(t *testing.T) {
	p := newTestParser()

	text := "MU779 税费 50 序号 3"
	record := p.ParseListing(text, text, ParseOptions{DirectOnly: true})

	require.NotNil(t, record, "flight number alone keeps the record")
	assert.Empty(t, record.Price)
}

func TestParseListing_NoPriceNoFlightNumber(t *testing.T) {
	p := newTestParser()

	text := "东方航空 10:00 21:30"
	record := p.ParseListing(text, text, ParseOptions{DirectOnly: true})
	assert.Nil(t, record)
}

func TestParseListing_TargetFlightNumberFilter(t *testing.T) {
	p := newTestParser()
	text := "东方航空 MU779 10:00 21:30 ¥3600"

	record := p.ParseListing(text, text, ParseOptions{DirectOnly: true, TargetFlightNo: "mu77"})
	require.NotNil(t, record)
	assert.Equal(t, "MU779", record.FlightNumber)

	record = p.ParseListing(text, text, ParseOptions{DirectOnly: true, TargetFlightNo: "CA12"})
	assert.Nil(t, record)
}
