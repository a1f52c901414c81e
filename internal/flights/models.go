package flights

import "time"

// Direction identifies which schedule feed a record came from.
type Direction string

const (
	DirectionArrival   Direction = "arrival"
	DirectionDeparture Direction = "departure"
)

// Mode returns the query-parameter value the provider expects for this direction.
func (d Direction) Mode() string {
	if d == DirectionArrival {
		return "arrivals"
	}
	return "departures"
}

// RawFlightRecord is one `flight` object from the provider envelope. The
// provider enforces no schema, so it stays an untyped map and every access
// goes through the lookup helpers.
type RawFlightRecord map[string]any

// FlightRecord is the flat, normalized view of a single flight. Pointer
// fields are nil when the source data lacked them; nil fields are omitted
// from JSON rather than serialized as empty strings.
type FlightRecord struct {
	Type          Direction `json:"type"`
	FlightNumber  *string   `json:"flightNumber,omitempty"`
	Airline       *string   `json:"airline,omitempty"`
	Status        *string   `json:"status,omitempty"`
	AircraftModel *string   `json:"aircraftModel,omitempty"`

	// Arrival-only fields.
	OriginAirport *string `json:"originAirport,omitempty"`
	OriginCity    *string `json:"originCity,omitempty"`
	OriginCountry *string `json:"originCountry,omitempty"`

	// Departure-only fields.
	DestinationAirport *string `json:"destinationAirport,omitempty"`
	DestinationCity    *string `json:"destinationCity,omitempty"`
	DestinationCountry *string `json:"destinationCountry,omitempty"`

	ScheduledTime *string `json:"scheduledTime,omitempty"`
}

// scheduledTimeLayout renders UNIX timestamps as UTC, second precision.
const scheduledTimeLayout = "2006-01-02 15:04:05 UTC"

// formatTimestamp converts UNIX seconds to a UTC string. Zero or negative
// input means the provider had no timestamp, so the field stays absent.
func formatTimestamp(ts int64) *string {
	if ts <= 0 {
		return nil
	}
	s := time.Unix(ts, 0).UTC().Format(scheduledTimeLayout)
	return &s
}
