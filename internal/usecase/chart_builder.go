package usecase

import (
	"context"
	"os"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/hz-bin/AirTicket/internal/domain/entity"
	"github.com/hz-bin/AirTicket/internal/domain/repository"
	"github.com/hz-bin/AirTicket/pkg/logger"
	"github.com/hz-bin/AirTicket/pkg/utils"
)

var sheetDateRegex = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// ChartBuilder rebuilds the per-flight price history series from the store
// and renders them as a self-contained chart page
type ChartBuilder struct {
	historyRepo       repository.HistoryRepository
	defaultFlightDate string
	logger            logger.Logger
}

// NewChartBuilder creates a new chart builder. defaultFlightDate labels rows
// whose flight date cannot be resolved from the sheet.
func NewChartBuilder(historyRepo repository.HistoryRepository, defaultFlightDate string, logger logger.Logger) *ChartBuilder {
	return &ChartBuilder{
		historyRepo:       historyRepo,
		defaultFlightDate: defaultFlightDate,
		logger:            logger,
	}
}

// Build reads every sheet in the store and reshapes it into chart series,
// grouped by flight date and then by flight identity. The result is ordered
// by flight date ascending; sheets within a date keep their first-seen order.
func (b *ChartBuilder) Build(ctx context.Context) ([]entity.ChartSeries, error) {
	sheets, err := b.historyRepo.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	b.logger.Info("Loaded history sheets", "count", len(sheets))

	seriesByDate := make(map[string][]entity.ChartSeries)
	var dates []string

	for _, sheet := range sheets {
		for _, series := range b.buildSheetSeries(sheet) {
			if _, seen := seriesByDate[series.FlightDate]; !seen {
				dates = append(dates, series.FlightDate)
			}
			seriesByDate[series.FlightDate] = append(seriesByDate[series.FlightDate], series)
		}
	}

	sort.Strings(dates)
	var result []entity.ChartSeries
	for _, date := range dates {
		result = append(result, seriesByDate[date]...)
	}

	b.logger.Info("Organized chart series", "count", len(result))
	return result, nil
}

// buildSheetSeries turns one sheet into zero or more series, one per flight
// date present in its rows. A sheet that cannot be processed is skipped.
func (b *ChartBuilder) buildSheetSeries(sheet entity.SheetData) []entity.ChartSeries {
	queryCol := findColumn(sheet.Header, "查询时间", "query_time")
	priceCol := findColumn(sheet.Header, "价格(¥)", "price")
	if queryCol < 0 || priceCol < 0 {
		b.logger.Warn("Sheet missing required columns, skipping", "sheet", sheet.Name)
		return nil
	}
	if len(sheet.Rows) == 0 {
		b.logger.Warn("Sheet has no data rows, skipping", "sheet", sheet.Name)
		return nil
	}

	dateCol := findColumn(sheet.Header, "出发日期", "flight_date")
	depCol := findColumn(sheet.Header, "出发时间", "departure_time")
	arrCol := findColumn(sheet.Header, "到达时间", "arrival_time")

	// Departure and arrival times are constant per sheet; take the first row.
	depTime := cellAt(sheet.Rows[0], depCol)
	arrTime := cellAt(sheet.Rows[0], arrCol)
	if depTime == "N/A" {
		depTime = ""
	}
	if arrTime == "N/A" {
		arrTime = ""
	}

	// Fallback date when the sheet has no date column: embedded in the sheet
	// name, or the configured placeholder.
	sheetDate := sheetDateRegex.FindString(sheet.Name)
	if sheetDate == "" {
		sheetDate = b.defaultFlightDate
	}

	pointsByDate := make(map[string][]entity.PricePoint)
	var dateOrder []string

	for _, row := range sheet.Rows {
		queryTime, err := time.Parse(utils.TIMESTAMP_LAYOUT, cellAt(row, queryCol))
		if err != nil {
			b.logger.Debug("Dropping row with unparseable query time", "sheet", sheet.Name, "value", cellAt(row, queryCol))
			continue
		}
		price, err := strconv.ParseFloat(cellAt(row, priceCol), 64)
		if err != nil {
			b.logger.Debug("Dropping row with non-numeric price", "sheet", sheet.Name, "value", cellAt(row, priceCol))
			continue
		}

		flightDate := sheetDate
		if dateCol >= 0 {
			flightDate = sheetDateRegex.FindString(cellAt(row, dateCol))
			if flightDate == "" {
				b.logger.Debug("Dropping row with unresolvable flight date", "sheet", sheet.Name)
				continue
			}
		}

		if _, seen := pointsByDate[flightDate]; !seen {
			dateOrder = append(dateOrder, flightDate)
		}
		pointsByDate[flightDate] = append(pointsByDate[flightDate], entity.PricePoint{
			QueryTime: queryTime,
			Price:     price,
		})
	}

	var result []entity.ChartSeries
	for _, date := range dateOrder {
		points := pointsByDate[date]
		sort.Slice(points, func(i, j int) bool { return points[i].QueryTime.Before(points[j].QueryTime) })
		result = append(result, entity.ChartSeries{
			Name:          sheet.Name,
			FlightDate:    date,
			DepartureTime: depTime,
			ArrivalTime:   arrTime,
			Points:        points,
		})
	}

	if len(result) == 0 {
		b.logger.Warn("Sheet has no usable rows, skipping", "sheet", sheet.Name)
	} else {
		b.logger.Info("Processed sheet", "sheet", sheet.Name, "series", len(result))
	}
	return result
}

// Render writes all series as one static page of line charts, one panel per
// flight, price against query time-of-day.
func (b *ChartBuilder) Render(series []entity.ChartSeries, outPath string) error {
	page := components.NewPage()
	page.PageTitle = "航班价格历史分析"
	page.SetLayout(components.PageFlexLayout)

	for _, s := range series {
		line := charts.NewLine()

		subtitle := s.FlightDate
		if s.DepartureTime != "" && s.ArrivalTime != "" {
			subtitle = s.FlightDate + "  " + s.DepartureTime + " → " + s.ArrivalTime
		}
		line.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{Width: "560px", Height: "280px"}),
			charts.WithTitleOpts(opts.Title{Title: s.Name, Subtitle: subtitle}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
			charts.WithYAxisOpts(opts.YAxis{Name: "价格 (元)", Scale: opts.Bool(true)}),
		)

		times := make([]string, 0, len(s.Points))
		values := make([]opts.LineData, 0, len(s.Points))
		for _, p := range s.Points {
			times = append(times, p.TimeLabel())
			values = append(values, opts.LineData{Value: p.Price})
		}
		line.SetXAxis(times).AddSeries(s.Name, values,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), Symbol: "circle"}))

		page.AddCharts(line)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}

func findColumn(header []string, names ...string) int {
	for _, name := range names {
		for i, h := range header {
			if h == name {
				return i
			}
		}
	}
	return -1
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
