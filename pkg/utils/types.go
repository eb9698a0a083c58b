package utils

// ParseOptions controls how a single listing entry is parsed
type ParseOptions struct {
	// TargetFlightNo keeps only entries whose flight number contains this
	// code (case-insensitive); empty means no filter
	TargetFlightNo string
	// DirectOnly rejects entries that look like connecting itineraries
	DirectOnly bool
}

// Constants
const (
	TIMESTAMP_LAYOUT = "2006-01-02 15:04:05"
	DATE_LAYOUT      = "2006-01-02"

	// Plausible fare range; numbers outside it are taxes, sequence numbers
	// or similar noise. Kept as documented heuristic bounds.
	PRICE_MIN = 1000
	PRICE_MAX = 50000
)
