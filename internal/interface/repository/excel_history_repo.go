package repository

import (
	"context"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/hz-bin/AirTicket/internal/domain/entity"
	"github.com/hz-bin/AirTicket/internal/domain/repository"
	"github.com/hz-bin/AirTicket/pkg/logger"
	"github.com/hz-bin/AirTicket/pkg/utils"
)

// sheetHeader is written once when a flight's sheet is first created. The
// chart builder accepts these names or their English fallbacks.
var sheetHeader = []string{
	"查询时间", "出发城市", "目的地", "出发日期", "航空公司", "航班号",
	"出发时间", "到达时间", "飞行时长", "价格(¥)",
}

// ExcelHistoryRepository implements HistoryRepository on a single xlsx
// workbook with one sheet per flight identity. Single-process access only.
type ExcelHistoryRepository struct {
	path   string
	logger logger.Logger
}

// NewExcelHistoryRepository creates a new excel-backed history repository
func NewExcelHistoryRepository(path string, logger logger.Logger) repository.HistoryRepository {
	return &ExcelHistoryRepository{
		path:   path,
		logger: logger,
	}
}

// Append writes one timestamped row per record into that flight's sheet,
// creating the workbook and sheets as needed. It never rewrites prior rows.
func (r *ExcelHistoryRepository) Append(ctx context.Context, records []*entity.FlightRecord, query entity.RouteQuery) (int, error) {
	f, created, err := r.openWorkbook()
	if err != nil {
		return 0, err
	}
	defer f.Close()

	queryTime := time.Now().Format(utils.TIMESTAMP_LAYOUT)
	written := 0

	for _, record := range records {
		sheet := BuildSheetName(query.FromLabel(), query.ToLabel(), query.DepartDate,
			record.Airline, record.FlightNumber)

		if err := r.ensureSheet(f, sheet); err != nil {
			return written, fmt.Errorf("create sheet %q: %w", sheet, err)
		}

		rows, err := f.GetRows(sheet)
		if err != nil {
			return written, fmt.Errorf("read sheet %q: %w", sheet, err)
		}

		row := []interface{}{
			queryTime,
			query.FromLabel(),
			query.ToLabel(),
			query.DepartDate,
			orNA(record.Airline),
			orNA(record.FlightNumber),
			orNA(record.DepartureTime),
			orNA(record.ArrivalTime),
			orNA(record.Duration),
			orNA(record.Price),
		}
		cell := fmt.Sprintf("A%d", len(rows)+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return written, fmt.Errorf("append row to %q: %w", sheet, err)
		}

		r.adjustColumnWidths(f, sheet)
		written++
	}

	// A fresh workbook starts with a default sheet; drop it before saving.
	// excelize keeps the sheet when it is the only one left.
	if created {
		f.DeleteSheet("Sheet1")
	}

	if err := f.SaveAs(r.path); err != nil {
		return written, fmt.Errorf("save workbook %q: %w", r.path, err)
	}
	return written, nil
}

// ReadAll returns the header and data rows of every sheet in the workbook.
func (r *ExcelHistoryRepository) ReadAll(ctx context.Context) ([]entity.SheetData, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", r.path, err)
	}
	defer f.Close()

	var sheets []entity.SheetData
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			r.logger.Warn("Failed to read sheet, skipping", "sheet", name, "error", err)
			continue
		}
		if len(rows) == 0 {
			continue
		}
		sheets = append(sheets, entity.SheetData{
			Name:   name,
			Header: rows[0],
			Rows:   rows[1:],
		})
	}
	return sheets, nil
}

func (r *ExcelHistoryRepository) openWorkbook() (*excelize.File, bool, error) {
	if _, err := os.Stat(r.path); err == nil {
		f, err := excelize.OpenFile(r.path)
		if err != nil {
			return nil, false, fmt.Errorf("open workbook %q: %w", r.path, err)
		}
		return f, false, nil
	} else if !os.IsNotExist(err) {
		return nil, false, err
	}
	return excelize.NewFile(), true, nil
}

// ensureSheet creates the sheet with a styled header row if it is missing.
func (r *ExcelHistoryRepository) ensureSheet(f *excelize.File, sheet string) error {
	index, err := f.GetSheetIndex(sheet)
	if err != nil {
		return err
	}
	if index >= 0 {
		return nil
	}

	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := make([]interface{}, len(sheetHeader))
	for i, h := range sheetHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	styleID, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(sheetHeader))
	return f.SetCellStyle(sheet, "A1", lastCol+"1", styleID)
}

// adjustColumnWidths resizes every column to its longest cell. Cosmetic only;
// failures here are ignored.
func (r *ExcelHistoryRepository) adjustColumnWidths(f *excelize.File, sheet string) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return
	}
	for col := 0; col < len(sheetHeader); col++ {
		maxLen := 0
		for _, row := range rows {
			if col < len(row) {
				if l := utf8.RuneCountInString(row[col]); l > maxLen {
					maxLen = l
				}
			}
		}
		width := maxLen + 2
		if width > 50 {
			width = 50
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			continue
		}
		f.SetColWidth(sheet, name, name, float64(width))
	}
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
