package usecase

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/iamsohail/GmailFlightScanner/internal/domain/entity"
	"github.com/iamsohail/GmailFlightScanner/internal/domain/repository"
	"github.com/iamsohail/GmailFlightScanner/pkg/logger"
	"github.com/iamsohail/GmailFlightScanner/pkg/utils"
)

// maxBodyChars truncates very long bodies in the verification report.
const maxBodyChars = 2000

// VerifyExporter re-finds the source email for each exported flight and
// dumps it into a flat text report for manual checking.
type VerifyExporter struct {
	mail       MailClient
	reportRepo repository.FlightReportRepository
	logger     logger.Logger
}

// NewVerifyExporter creates a new verify exporter
func NewVerifyExporter(mail MailClient, reportRepo repository.FlightReportRepository, logger logger.Logger) *VerifyExporter {
	return &VerifyExporter{
		mail:       mail,
		reportRepo: reportRepo,
		logger:     logger,
	}
}

// Run reads the flights report at inputFile and writes the verification
// text to outputFile.
func (v *VerifyExporter) Run(ctx context.Context, inputFile, outputFile string) error {
	records, err := v.reportRepo.Read(inputFile)
	if err != nil {
		return err
	}
	v.logger.Info("Loaded flight records", "count", len(records), "input", inputFile)

	var lines []string
	lines = append(lines,
		strings.Repeat("=", 80),
		"FLIGHT EMAILS - VERIFICATION EXPORT",
		fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")),
		fmt.Sprintf("Total flights: %d", len(records)),
		strings.Repeat("=", 80),
	)

	for i, record := range records {
		v.logger.Info("Fetching source email",
			"n", i+1,
			"total", len(records),
			"date", record.Date,
			"pnr", record.BookingRef)

		lines = append(lines,
			"",
			strings.Repeat("-", 80),
			fmt.Sprintf("FLIGHT #%d", i+1),
			strings.Repeat("-", 80),
			fmt.Sprintf("  Date:          %s", record.Date),
			fmt.Sprintf("  Airline:       %s", record.Airline),
			fmt.Sprintf("  Flight Number: %s", record.FlightNumber),
			fmt.Sprintf("  From:          %s", record.Origin),
			fmt.Sprintf("  To:            %s", record.Destination),
			fmt.Sprintf("  PNR:           %s", record.BookingRef),
			fmt.Sprintf("  Email Subject: %s", strings.TrimSpace(record.EmailSubject)),
			fmt.Sprintf("  Email Date:    %s", record.EmailDate),
			"",
		)

		email, err := v.findEmail(ctx, record)
		if err != nil {
			return err
		}
		if email == nil {
			lines = append(lines, "  [EMAIL NOT FOUND]")
			continue
		}

		lines = append(lines,
			"  --- EMAIL HEADERS ---",
			fmt.Sprintf("  From:    %s", email.From),
			fmt.Sprintf("  To:      %s", email.To),
			fmt.Sprintf("  Date:    %s", email.DateHeader),
			fmt.Sprintf("  Subject: %s", email.Subject),
			"",
			"  --- EMAIL BODY ---",
		)

		body := utils.EmailText(email)
		if body == "" {
			body = "(no body)"
		}
		body = truncateBody(body)
		for _, line := range strings.Split(body, "\n") {
			lines = append(lines, "  "+line)
		}
	}

	if err := os.WriteFile(outputFile, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("failed to write verification report: %w", err)
	}

	v.logger.Info("Verification report written", "output", outputFile)
	return nil
}

// truncateBody caps very long bodies, backing up to a rune boundary so
// the cut never splits a multi-byte character.
func truncateBody(body string) string {
	if len(body) <= maxBodyChars {
		return body
	}
	cut := maxBodyChars
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut] + "\n  ... [TRUNCATED] ..."
}

// findEmail locates the email behind a record: by PNR first (most unique),
// then by a quoted subject prefix.
func (v *VerifyExporter) findEmail(ctx context.Context, record *entity.FlightRecord) (*entity.Email, error) {
	if pnr := strings.TrimSpace(record.BookingRef); pnr != "" {
		ids, err := v.mail.Search(ctx, pnr)
		if err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			return v.mail.Fetch(ctx, ids[0])
		}
	}

	if subject := strings.TrimSpace(record.EmailSubject); subject != "" {
		if len(subject) > 60 {
			subject = subject[:60]
		}
		subject = strings.ReplaceAll(subject, `"`, `\"`)
		ids, err := v.mail.Search(ctx, `subject:"`+subject+`"`)
		if err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			return v.mail.Fetch(ctx, ids[0])
		}
	}

	return nil, nil
}
