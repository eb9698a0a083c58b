package repository

import (
	"context"

	"github.com/hz-bin/AirTicket/internal/domain/entity"
)

// HistoryRepository defines the interface for the flight price history store.
// The store is append-only: rows are never edited or removed, so repeated
// queries for the same flight accumulate into that flight's price history.
type HistoryRepository interface {
	Append(ctx context.Context, records []*entity.FlightRecord, query entity.RouteQuery) (int, error)
	ReadAll(ctx context.Context) ([]entity.SheetData, error)
}
