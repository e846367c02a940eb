package utils

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/iamsohail/GmailFlightScanner/internal/domain/entity"
	"github.com/iamsohail/GmailFlightScanner/internal/domain/repository"
	"github.com/iamsohail/GmailFlightScanner/pkg/logger"
)

// EmailParser extracts flight details from email text
type EmailParser struct {
	airlineRepo repository.AirlineRepository
	logger      logger.Logger
}

// NewEmailParser creates a new email parser with dependencies
func NewEmailParser(airlineRepo repository.AirlineRepository, logger logger.Logger) *EmailParser {
	return &EmailParser{
		airlineRepo: airlineRepo,
		logger:      logger,
	}
}

// datePattern pairs a regex with the order its groups map to day, month
// and year.
type datePattern struct {
	re     *regexp.Regexp
	layout string
}

var datePatterns = []datePattern{
	// 15 Jan 2025, 15-Jan-2025
	{regexp.MustCompile(`(?i)\b(\d{1,2})\s*[-/]?\s*(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s*[-/,]?\s*(\d{4})\b`), "2 Jan 2006"},
	// Jan 15, 2025
	{regexp.MustCompile(`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+(\d{1,2})\s*,?\s*(\d{4})\b`), "Jan 2 2006"},
	// 2025-01-15
	{regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`), "2006-01-02"},
	// 15/01/2025 or 15-01-2025
	{regexp.MustCompile(`\b(\d{2})[/-](\d{2})[/-](\d{4})\b`), "02/01/2006"},
}

var (
	flightNumberRe        = regexp.MustCompile(`\b([A-Z0-9]{2})\s?(\d{1,4})\b`)
	flightNumberContextRe = regexp.MustCompile(`(?i)(?:flight|flt\.?)\s*(?:no\.?\s*)?([A-Z0-9]{2}\s?\d{1,4})`)
	fromAirportRe         = regexp.MustCompile(`(?i:from|departure|depart|origin)\s*:?\s*.{0,30}?\b([A-Z]{3})\b`)
	toAirportRe           = regexp.MustCompile(`(?i:to|arrival|arrive|destination)\s*:?\s*.{0,30}?\b([A-Z]{3})\b`)
	routeRe               = regexp.MustCompile(`\b([A-Z]{3})\s*(?:→|->|–|—|-|\s[Tt][Oo]\s)\s*([A-Z]{3})\b`)
	dateContextRe         = regexp.MustCompile(`(?i)(?:date|departure|depart|travel|journey|flight).{0,80}`)
	senderDomainRe        = regexp.MustCompile(`@([\w.-]+)`)
)

var pnrPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)PNR\s*(?:no\.?|number|#|:)?\s*:?\s*\b([A-Z0-9]{5,8})\b`),
	regexp.MustCompile(`(?i)(?:booking\s*(?:ref|reference|id|code|no)|confirmation\s*(?:no|number|code|#))\s*:?\s*\b([A-Z0-9]{5,8})\b`),
	regexp.MustCompile(`(?i)(?:reference|ref\.?)\s*(?:no\.?|number|#|:)?\s*:?\s*\b([A-Z0-9]{6})\b`),
}

// EmailText returns the readable body of an email: the plain-text part
// when present, otherwise the HTML part stripped to text.
func EmailText(email *entity.Email) string {
	if email.Body != "" {
		return email.Body
	}
	if email.HTMLBody != "" {
		return HTMLToText(email.HTMLBody)
	}
	return ""
}

// Parse extracts a flight record from a fetched email. Missing fields stay
// empty; the caller decides whether the record has enough signal to keep.
func (p *EmailParser) Parse(ctx context.Context, email *entity.Email) *entity.FlightRecord {
	fullText := email.Subject + " " + EmailText(email)

	emailDate := p.ParseEmailDate(email.DateHeader)
	origin, destination := p.ExtractAirportCodes(fullText)

	record := &entity.FlightRecord{
		Airline:      p.ExtractAirline(ctx, fullText, email.From),
		FlightNumber: p.ExtractFlightNumber(ctx, fullText),
		Origin:       origin,
		Destination:  destination,
		Date:         p.ExtractFlightDate(fullText),
		BookingRef:   p.ExtractPNR(fullText),
		EmailSubject: email.Subject,
		EmailDate:    emailDate,
	}

	// No explicit flight date in the body: fall back to the email date.
	if record.Date == "" {
		record.Date = emailDate
	}

	p.logger.Debug("Extracted flight record",
		"emailID", email.EmailID,
		"flightNumber", record.FlightNumber,
		"route", record.Origin+"-"+record.Destination,
		"date", record.Date,
		"pnr", record.BookingRef)

	return record
}

// ExtractFlightNumber extracts a flight number in IATA format, e.g. AI302
// or 6E2341. A two-character code followed by digits only counts when the
// code is a known airline prefix or purely alphabetic.
func (p *EmailParser) ExtractFlightNumber(ctx context.Context, text string) string {
	for _, match := range flightNumberRe.FindAllStringSubmatch(text, -1) {
		code, num := match[1], match[2]
		if p.knownAirlineCode(ctx, code) || isAlphaPair(code) {
			return code + num
		}
	}

	// Fallback: patterns with explicit flight context
	if match := flightNumberContextRe.FindStringSubmatch(text); match != nil {
		return strings.ToUpper(strings.ReplaceAll(match[1], " ", ""))
	}
	return ""
}

func (p *EmailParser) knownAirlineCode(ctx context.Context, code string) bool {
	if p.airlineRepo == nil {
		return false
	}
	airline, err := p.airlineRepo.GetByCode(ctx, code)
	return err == nil && airline != nil
}

func isAlphaPair(code string) bool {
	return len(code) == 2 &&
		code[0] >= 'A' && code[0] <= 'Z' &&
		code[1] >= 'A' && code[1] <= 'Z'
}

// ExtractAirportCodes extracts origin and destination airport codes
func (p *EmailParser) ExtractAirportCodes(text string) (string, string) {
	var fromCode, toCode string

	for _, match := range fromAirportRe.FindAllStringSubmatch(text, -1) {
		if validAirport(match[1]) {
			fromCode = match[1]
			break
		}
	}

	for _, match := range toAirportRe.FindAllStringSubmatch(text, -1) {
		if validAirport(match[1]) {
			toCode = match[1]
			break
		}
	}

	// Fallback: "DEL → BOM", "DEL-BOM", "DEL to BOM" route patterns
	if fromCode == "" || toCode == "" {
		if match := routeRe.FindStringSubmatch(text); match != nil {
			if fromCode == "" && validAirport(match[1]) {
				fromCode = match[1]
			}
			if toCode == "" && validAirport(match[2]) {
				toCode = match[2]
			}
		}
	}

	return fromCode, toCode
}

func validAirport(code string) bool {
	return !airportStopwords[code]
}

// ExtractFlightDate extracts the flight date and normalizes it to ISO
// form. Text near flight-related keywords is searched before the full
// body; the first parseable candidate wins.
func (p *EmailParser) ExtractFlightDate(text string) string {
	searchTexts := dateContextRe.FindAllString(text, -1)
	searchTexts = append(searchTexts, text)

	for _, searchText := range searchTexts {
		for _, dp := range datePatterns {
			match := dp.re.FindStringSubmatch(searchText)
			if match == nil {
				continue
			}

			var dateStr string
			switch dp.layout {
			case "2 Jan 2006":
				dateStr = match[1] + " " + titleMonth(match[2]) + " " + match[3]
			case "Jan 2 2006":
				dateStr = titleMonth(match[1]) + " " + match[2] + " " + match[3]
			case "2006-01-02":
				dateStr = match[1] + "-" + match[2] + "-" + match[3]
			case "02/01/2006":
				dateStr = match[1] + "/" + match[2] + "/" + match[3]
			}

			parsed, err := time.Parse(dp.layout, dateStr)
			if err != nil {
				continue
			}
			// Reject dates outside a reasonable range
			if parsed.Year() < 1990 || parsed.Year() > 2030 {
				continue
			}
			return parsed.Format("2006-01-02")
		}
	}

	return ""
}

func titleMonth(m string) string {
	m = m[:3]
	return strings.ToUpper(m[:1]) + strings.ToLower(m[1:])
}

// ExtractAirline extracts the airline name from the sender address, the
// flight-number prefix, or a literal airline name in the text.
func (p *EmailParser) ExtractAirline(ctx context.Context, text, sender string) string {
	if p.airlineRepo == nil {
		return ""
	}

	if match := senderDomainRe.FindStringSubmatch(sender); match != nil {
		domain := strings.ReplaceAll(strings.ToLower(match[1]), ".", "")
		if airline, err := p.airlineRepo.GetBySender(ctx, domain); err == nil && airline != nil {
			return airline.Name
		}
	}

	if flightNum := p.ExtractFlightNumber(ctx, text); len(flightNum) >= 2 {
		if airline, err := p.airlineRepo.GetByCode(ctx, flightNum[:2]); err == nil && airline != nil {
			return airline.Name
		}
	}

	if airline, err := p.airlineRepo.FindNameInText(ctx, text); err == nil && airline != nil {
		return airline.Name
	}

	return ""
}

// ExtractPNR extracts the PNR or booking reference
func (p *EmailParser) ExtractPNR(text string) string {
	for _, re := range pnrPatterns {
		match := re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		candidate := strings.ToUpper(match[1])
		if !pnrStopwords[candidate] {
			return candidate
		}
	}
	return ""
}

// emailDateLayouts are the header date formats seen in the wild, tried in
// order.
var emailDateLayouts = []string{
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05",
	"2 Jan 2006 15:04:05",
}

var dateCommentRe = regexp.MustCompile(`\s*\(.*\)`)

// ParseEmailDate normalizes an RFC 822 style Date header to an ISO date.
// Returns empty when the header cannot be parsed.
func (p *EmailParser) ParseEmailDate(header string) string {
	if header == "" {
		return ""
	}

	// Drop trailing comments like "(GMT)" before parsing
	clean := strings.TrimSpace(dateCommentRe.ReplaceAllString(header, ""))
	for _, layout := range emailDateLayouts {
		if parsed, err := time.Parse(layout, clean); err == nil {
			return parsed.Format("2006-01-02")
		}
	}
	return ""
}
