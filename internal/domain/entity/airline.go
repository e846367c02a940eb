package entity

// Airline represents an airline entity
type Airline struct {
	Code string // IATA 2-letter flight-number prefix, e.g. "AI"
	Name string // display name, e.g. "Air India"
}
