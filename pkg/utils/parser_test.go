package utils

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iamsohail/GmailFlightScanner/internal/domain/entity"
	repo "github.com/iamsohail/GmailFlightScanner/internal/interface/repository"
	"github.com/iamsohail/GmailFlightScanner/pkg/logger"
)

func newTestParser() *EmailParser {
	return NewEmailParser(repo.NewStaticAirlineRepository(), logger.NewLoggerWithLevel("error"))
}

func TestParseBookingEmail(t *testing.T) {
	p := newTestParser()

	email := &entity.Email{
		EmailID:    "m1",
		From:       "Air India <noreply@airindia.in>",
		Subject:    "Your flight is confirmed",
		Body:       "Flight AI302 from DEL to BOM departs on 15 Jan 2025. PNR: XY123Z",
		DateHeader: "Thu, 2 Jan 2025 10:30:00 +0530",
	}

	got := p.Parse(context.Background(), email)
	want := &entity.FlightRecord{
		Date:         "2025-01-15",
		Airline:      "Air India",
		FlightNumber: "AI302",
		Origin:       "DEL",
		Destination:  "BOM",
		BookingRef:   "XY123Z",
		EmailSubject: "Your flight is confirmed",
		EmailDate:    "2025-01-02",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseIsIdempotent(t *testing.T) {
	p := newTestParser()

	email := &entity.Email{
		EmailID:    "m2",
		From:       "bookings@goindigo.in",
		Subject:    "IndiGo Itinerary",
		Body:       "6E 2341 BLR - HYD on 03/04/2024, booking reference: QWE45T",
		DateHeader: "Mon, 1 Apr 2024 08:00:00 +0530",
	}

	first := p.Parse(context.Background(), email)
	second := p.Parse(context.Background(), email)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Parse not idempotent (-first +second):\n%s", diff)
	}
}

func TestExtractFlightNumber(t *testing.T) {
	p := newTestParser()
	ctx := context.Background()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"known airline code", "Flight AI302 confirmed", "AI302"},
		{"alphanumeric code needs lookup", "Flight 6E2341 confirmed", "6E2341"},
		{"space between code and digits", "Your 6E 123 booking", "6E123"},
		{"alpha pair without lookup", "Boarding ZZ99 now", "ZZ99"},
		{"flight context fallback", "flight no. g8 455 rescheduled", "G8455"},
		{"number-only noise ignored", "Order 2025 total 1500", ""},
		{"no flight number", "See you at the gate", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ExtractFlightNumber(ctx, tt.text); got != tt.want {
				t.Errorf("ExtractFlightNumber(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractAirportCodes(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name     string
		text     string
		wantFrom string
		wantTo   string
	}{
		{"keyword anchored", "Departure: DEL Arrival: BOM", "DEL", "BOM"},
		{"route with to marker", "Your trip DEL to BOM is booked", "DEL", "BOM"},
		{"route with dash", "Route BLR-HYD confirmed", "BLR", "HYD"},
		{"route with arrow", "MAA → CCU boarding soon", "MAA", "CCU"},
		{"stopword rejected", "Travel from THE best deals", "", ""},
		{"lowercase ignored", "from del to bom", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := p.ExtractAirportCodes(tt.text)
			if from != tt.wantFrom || to != tt.wantTo {
				t.Errorf("ExtractAirportCodes(%q) = (%q, %q), want (%q, %q)",
					tt.text, from, to, tt.wantFrom, tt.wantTo)
			}
		})
	}
}

func TestExtractFlightDate(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"day month year", "travel date 15 Jan 2025", "2025-01-15"},
		{"dashed day month year", "departure 5-Mar-2024 morning", "2024-03-05"},
		{"month day year", "flight on Jan 15, 2025", "2025-01-15"},
		{"iso", "journey 2025-01-15 confirmed", "2025-01-15"},
		{"slashed day first", "departing 15/01/2025 early", "2025-01-15"},
		{"first candidate wins", "travel 10 Feb 2024 then 12 Feb 2024", "2024-02-10"},
		{"year out of range", "flight on 15 Jan 2077", ""},
		{"no date", "no dates here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ExtractFlightDate(tt.text); got != tt.want {
				t.Errorf("ExtractFlightDate(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractAirline(t *testing.T) {
	p := newTestParser()
	ctx := context.Background()

	tests := []struct {
		name   string
		text   string
		sender string
		want   string
	}{
		{"sender domain", "your booking", "noreply@spicejet.com", "SpiceJet"},
		{"flight number prefix", "Flight EK501 to DXB", "noreply@agency.example", "Emirates"},
		{"literal name in body", "Thank you for flying Qatar Airways", "info@travel.example", "Qatar Airways"},
		{"nothing known", "your order shipped", "shop@example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ExtractAirline(ctx, tt.text, tt.sender); got != tt.want {
				t.Errorf("ExtractAirline(%q, %q) = %q, want %q", tt.text, tt.sender, got, tt.want)
			}
		})
	}
}

func TestExtractPNR(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"pnr colon", "PNR: XY123Z", "XY123Z"},
		{"pnr number", "PNR Number AB12CD", "AB12CD"},
		{"booking reference", "booking reference: QWE45T issued", "QWE45T"},
		{"confirmation number", "confirmation no: Z9Y8X7", "Z9Y8X7"},
		{"stopword rejected", "Your booking reference number will follow", ""},
		{"too short", "PNR: AB1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ExtractPNR(tt.text); got != tt.want {
				t.Errorf("ExtractPNR(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseEmailDate(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"rfc822 with zone", "Thu, 2 Jan 2025 10:30:00 +0530", "2025-01-02"},
		{"no weekday", "2 Jan 2025 10:30:00 +0530", "2025-01-02"},
		{"zone comment stripped", "Thu, 2 Jan 2025 10:30:00 +0000 (GMT)", "2025-01-02"},
		{"no zone", "Thu, 2 Jan 2025 10:30:00", "2025-01-02"},
		{"garbage", "not a date", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ParseEmailDate(tt.header); got != tt.want {
				t.Errorf("ParseEmailDate(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestEmailTextPrefersPlain(t *testing.T) {
	email := &entity.Email{
		Body:     "plain body",
		HTMLBody: "<p>html body</p>",
	}
	if got := EmailText(email); got != "plain body" {
		t.Errorf("EmailText = %q, want plain body", got)
	}

	email.Body = ""
	if got := EmailText(email); got != "html body" {
		t.Errorf("EmailText = %q, want stripped html", got)
	}
}
