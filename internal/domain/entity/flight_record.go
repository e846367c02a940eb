// internal/domain/entity/flight_record.go
package entity

// FlightRecord holds the flight details extracted from one email.
// Every field is a string; an empty string means the field was not found.
type FlightRecord struct {
	Date         string
	Airline      string
	FlightNumber string
	Origin       string
	Destination  string
	BookingRef   string
	EmailSubject string
	EmailDate    string
}

// HasSignal reports whether the record carries enough flight data to be
// worth exporting. Records without a flight number, booking reference or
// complete route are noise.
func (r *FlightRecord) HasSignal() bool {
	if r.FlightNumber != "" || r.BookingRef != "" {
		return true
	}
	return r.Origin != "" && r.Destination != ""
}

// IdentityKey returns the deduplication key for the record. A booking
// reference identifies a flight on its own; without one the key falls back
// to the (flightNumber, date) composite. Records with neither are never
// considered duplicates and get an empty key.
func (r *FlightRecord) IdentityKey() string {
	if r.BookingRef != "" {
		return "pnr:" + r.BookingRef
	}
	if r.FlightNumber != "" || r.Date != "" {
		return "flight:" + r.FlightNumber + "|" + r.Date
	}
	return ""
}
