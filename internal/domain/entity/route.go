// internal/domain/entity/route.go
package entity

import "strings"

// cityLabels maps the lowercase city codes used in Ctrip query URLs to the
// labels shown in the spreadsheet and on the console.
var cityLabels = map[string]string{
	"hgh": "杭州",
	"sha": "上海",
	"pek": "北京",
	"can": "广州",
	"szx": "深圳",
	"ctu": "成都",
	"akl": "奥克兰",
	"syd": "悉尼",
	"mel": "墨尔本",
}

// CityName resolves a city code to its display label, falling back to the
// uppercased code for cities not in the table.
func CityName(code string) string {
	if label, ok := cityLabels[strings.ToLower(code)]; ok {
		return label
	}
	return strings.ToUpper(code)
}

// RouteQuery identifies one scrape run: a one-way route and a departure date.
type RouteQuery struct {
	FromCode   string `json:"from"`
	ToCode     string `json:"to"`
	DepartDate string `json:"date"` // YYYY-MM-DD
}

// FromLabel returns the display label of the departure city.
func (q RouteQuery) FromLabel() string {
	return CityName(q.FromCode)
}

// ToLabel returns the display label of the arrival city.
func (q RouteQuery) ToLabel() string {
	return CityName(q.ToCode)
}
