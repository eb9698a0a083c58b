package templates

import (
	"fmt"
	"strings"

	"github.com/hz-bin/AirTicket/internal/domain/entity"
)

// FormatFlightTable renders the direct-flight results of one query as a
// console table
func FormatFlightTable(flights []*entity.FlightRecord, query entity.RouteQuery) string {
	var sb strings.Builder
	rule := strings.Repeat("=", 80)

	if len(flights) == 0 {
		sb.WriteString(fmt.Sprintf("\n未找到%s → %s直飞航班\n", query.FromLabel(), query.ToLabel()))
		sb.WriteString("可能原因：\n")
		sb.WriteString("  1. 该日期没有直飞航班\n")
		sb.WriteString("  2. 网站反爬虫保护\n")
		sb.WriteString("  3. 网络连接问题\n")
		return sb.String()
	}

	sb.WriteString("\n" + rule + "\n")
	sb.WriteString(fmt.Sprintf("%s → %s 直飞航班（%s）\n", query.FromLabel(), query.ToLabel(), query.DepartDate))
	sb.WriteString(rule + "\n")
	sb.WriteString(fmt.Sprintf("%-15s %-10s %-8s %-8s %-8s %-12s\n", "航空公司", "航班号", "出发", "到达", "时长", "价格"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, flight := range flights {
		sb.WriteString(fmt.Sprintf("%-15s %-10s %-8s %-8s %-8s ¥ %-10s\n",
			orNA(flight.Airline),
			orNA(flight.FlightNumber),
			orNA(flight.DepartureTime),
			orNA(flight.ArrivalTime),
			orNA(flight.Duration),
			orNA(flight.Price)))
	}

	sb.WriteString(rule + "\n")
	sb.WriteString(fmt.Sprintf("找到 %d 班直飞航班\n\n", len(flights)))
	return sb.String()
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
