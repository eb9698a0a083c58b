package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hz-bin/AirTicket/internal/domain/entity"
)

var tableQuery = entity.RouteQuery{FromCode: "hgh", ToCode: "akl", DepartDate: "2026-09-25"}

func TestFormatFlightTable(t *testing.T) {
	flights := []*entity.FlightRecord{
		{FlightNumber: "MU779", Airline: "东方航空", DepartureTime: "12:10", ArrivalTime: "23:30", Duration: "11h20m", Price: "3200"},
		{FlightNumber: "NZ289"},
	}

	out := FormatFlightTable(flights, tableQuery)
	assert.Contains(t, out, "杭州 → 奥克兰 直飞航班（2026-09-25）")
	assert.Contains(t, out, "MU779")
	assert.Contains(t, out, "3200")
	assert.Contains(t, out, "找到 2 班直飞航班")
	assert.Contains(t, out, "N/A")
}

func TestFormatFlightTable_Empty(t *testing.T) {
	out := FormatFlightTable(nil, tableQuery)
	assert.Contains(t, out, "未找到杭州 → 奥克兰直飞航班")
}
