package repository

import (
	"context"
	"strings"

	"github.com/iamsohail/GmailFlightScanner/internal/domain/entity"
	"github.com/iamsohail/GmailFlightScanner/internal/domain/repository"
)

// airlineCodes maps IATA 2-letter flight-number prefixes to airline names.
var airlineCodes = map[string]string{
	"AI": "Air India",
	"6E": "IndiGo",
	"SG": "SpiceJet",
	"UK": "Vistara",
	"QP": "Akasa Air",
	"I5": "AirAsia India",
	"EK": "Emirates",
	"EY": "Etihad",
	"QR": "Qatar Airways",
	"SQ": "Singapore Airlines",
	"LH": "Lufthansa",
	"BA": "British Airways",
	"KL": "KLM",
	"AF": "Air France",
	"UA": "United Airlines",
	"DL": "Delta Airlines",
	"AA": "American Airlines",
	"WN": "Southwest Airlines",
	"TG": "Thai Airways",
	"CX": "Cathay Pacific",
	"9W": "Jet Airways",
	"G8": "Go First",
	"9I": "Alliance Air",
	"S5": "Star Air",
	"FZ": "FlyDubai",
	"WY": "Oman Air",
	"SV": "Saudia",
	"TK": "Turkish Airlines",
}

type airlineAlias struct {
	key  string
	name string
}

// knownAirlines maps sender-domain fragments and lowercase names to
// airline names. Order matters: more specific keys come before substrings
// of themselves (e.g. "spicejet" before "jet"), so iteration must be
// deterministic.
var knownAirlines = []airlineAlias{
	{"airindia", "Air India"},
	{"goindigo", "IndiGo"},
	{"indigo", "IndiGo"},
	{"spicejet", "SpiceJet"},
	{"airvistara", "Vistara"},
	{"vistara", "Vistara"},
	{"akasaair", "Akasa Air"},
	{"airasia", "AirAsia"},
	{"emirates", "Emirates"},
	{"etihad", "Etihad"},
	{"qatarairways", "Qatar Airways"},
	{"qatar", "Qatar Airways"},
	{"singaporeair", "Singapore Airlines"},
	{"singapore", "Singapore Airlines"},
	{"lufthansa", "Lufthansa"},
	{"britishairways", "British Airways"},
	{"british", "British Airways"},
	{"klm", "KLM"},
	{"airfrance", "Air France"},
	{"united", "United Airlines"},
	{"delta", "Delta Airlines"},
	{"american", "American Airlines"},
	{"southwest", "Southwest Airlines"},
	{"thai", "Thai Airways"},
	{"cathaypacific", "Cathay Pacific"},
	{"cathay", "Cathay Pacific"},
	{"jetairways", "Jet Airways"},
	{"jet", "Jet Airways"},
	{"goair", "Go First"},
	{"gofirst", "Go First"},
	{"allianceair", "Alliance Air"},
	{"starair", "Star Air"},
	{"flydubai", "FlyDubai"},
	{"omanair", "Oman Air"},
	{"saudia", "Saudia"},
	{"turkishairlines", "Turkish Airlines"},
	{"turkish", "Turkish Airlines"},
}

// StaticAirlineRepository serves the built-in airline tables. It is the
// default when no reference database is configured.
type StaticAirlineRepository struct{}

// NewStaticAirlineRepository creates an airline repository backed by the
// built-in tables
func NewStaticAirlineRepository() repository.AirlineRepository {
	return &StaticAirlineRepository{}
}

// GetByCode finds an airline by its IATA flight-number prefix
func (r *StaticAirlineRepository) GetByCode(ctx context.Context, code string) (*entity.Airline, error) {
	name, ok := airlineCodes[strings.ToUpper(code)]
	if !ok {
		return nil, nil
	}
	return &entity.Airline{Code: strings.ToUpper(code), Name: name}, nil
}

// GetBySender finds an airline whose key appears in the sender domain.
// The domain is expected lowercase with dots stripped.
func (r *StaticAirlineRepository) GetBySender(ctx context.Context, domain string) (*entity.Airline, error) {
	for _, alias := range knownAirlines {
		if strings.Contains(domain, alias.key) {
			return &entity.Airline{Name: alias.name}, nil
		}
	}
	return nil, nil
}

// FindNameInText finds the first known airline mentioned in the text,
// either by key or by display name.
func (r *StaticAirlineRepository) FindNameInText(ctx context.Context, text string) (*entity.Airline, error) {
	textLower := strings.ToLower(text)
	for _, alias := range knownAirlines {
		if strings.Contains(textLower, alias.key) || strings.Contains(textLower, strings.ToLower(alias.name)) {
			return &entity.Airline{Name: alias.name}, nil
		}
	}
	return nil, nil
}
