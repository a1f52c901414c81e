package flights

// Normalize maps one raw provider record into a flat FlightRecord. It is a
// pure, total function: any missing or wrong-typed nested field becomes an
// absent output field, never an error.
func Normalize(raw RawFlightRecord, direction Direction) FlightRecord {
	record := FlightRecord{
		Type:          direction,
		FlightNumber:  stringAt(raw, "identification", "number", "default"),
		Airline:       stringAt(raw, "airline", "name"),
		Status:        stringAt(raw, "status", "text"),
		AircraftModel: stringAt(raw, "aircraft", "model", "text"),
	}

	if direction == DirectionArrival {
		record.OriginAirport = stringAt(raw, "airport", "origin", "name")
		record.OriginCity = stringAt(raw, "airport", "origin", "position", "region", "city")
		record.OriginCountry = stringAt(raw, "airport", "origin", "position", "country", "name")
		record.ScheduledTime = formatTimestamp(int64At(raw, "time", "scheduled", "arrival"))
	} else {
		record.DestinationAirport = stringAt(raw, "airport", "destination", "name")
		record.DestinationCity = stringAt(raw, "airport", "destination", "position", "region", "city")
		record.DestinationCountry = stringAt(raw, "airport", "destination", "position", "country", "name")
		record.ScheduledTime = formatTimestamp(int64At(raw, "time", "scheduled", "departure"))
	}

	return record
}

// NormalizeAll runs every raw record through Normalize, preserving order.
// Nil entries in the input are skipped rather than aborting the batch.
func NormalizeAll(raws []RawFlightRecord, direction Direction) []FlightRecord {
	records := make([]FlightRecord, 0, len(raws))
	for _, raw := range raws {
		if raw == nil {
			continue
		}
		records = append(records, Normalize(raw, direction))
	}
	return records
}
