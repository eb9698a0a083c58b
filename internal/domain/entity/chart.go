// internal/domain/entity/chart.go
package entity

import "time"

// SheetData is the raw content of one history sheet as read back from the
// store: the sheet name, its header row and every data row below it.
type SheetData struct {
	Name   string
	Header []string
	Rows   [][]string
}

// PricePoint is one observed price at one query time.
type PricePoint struct {
	QueryTime time.Time
	Price     float64
}

// TimeLabel formats the query time as a time-of-day label for the chart axis.
func (p PricePoint) TimeLabel() string {
	return p.QueryTime.Format("15:04:05")
}

// ChartSeries is the price history of one flight on one flight date,
// rebuilt from scratch on every chart run.
type ChartSeries struct {
	Name          string
	FlightDate    string
	DepartureTime string
	ArrivalTime   string
	Points        []PricePoint
}
