// internal/domain/entity/flight_record.go
package entity

// FlightRecord is one flight offer observed at one query time. Every field is
// extracted heuristically from the rendered listing, so any of them may be
// missing; a record is only worth keeping when it carries at least a price or
// a flight number.
type FlightRecord struct {
	FlightNumber  string `json:"flight_number,omitempty"`
	Airline       string `json:"airline,omitempty"`
	DepartureTime string `json:"departure_time,omitempty"`
	ArrivalTime   string `json:"arrival_time,omitempty"`
	Duration      string `json:"duration,omitempty"`
	Price         string `json:"price,omitempty"`
}

// IsValid reports whether the record carries enough identity to be stored.
func (r *FlightRecord) IsValid() bool {
	return r.Price != "" || r.FlightNumber != ""
}
