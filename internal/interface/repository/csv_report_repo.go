package repository

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/iamsohail/GmailFlightScanner/internal/domain/entity"
	"github.com/iamsohail/GmailFlightScanner/internal/domain/repository"
	"github.com/iamsohail/GmailFlightScanner/pkg/logger"
)

// csvHeader is the fixed column list of the export. Readers of the file
// depend on this exact order.
var csvHeader = []string{
	"Date",
	"Airline",
	"Flight Number",
	"From",
	"To",
	"PNR/Booking Ref",
	"Email Subject",
	"Email Date",
}

// CSVReportRepository writes flight records to a CSV file and reads them
// back for verification.
type CSVReportRepository struct {
	logger logger.Logger
}

// NewCSVReportRepository creates a new CSV report repository
func NewCSVReportRepository(logger logger.Logger) repository.FlightReportRepository {
	return &CSVReportRepository{
		logger: logger,
	}
}

// Write serializes the records to path with a header row, overwriting any
// existing file.
func (r *CSVReportRepository) Write(path string, records []*entity.FlightRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.Date,
			record.Airline,
			record.FlightNumber,
			record.Origin,
			record.Destination,
			record.BookingRef,
			record.EmailSubject,
			record.EmailDate,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush output file: %w", err)
	}

	r.logger.Info("Report written", "path", path, "records", len(records))
	return nil
}

// Read parses a previously written report back into records.
func (r *CSVReportRepository) Read(path string) ([]*entity.FlightRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("report %s is empty", path)
	}

	if len(rows[0]) != len(csvHeader) {
		return nil, fmt.Errorf("report %s has %d columns, want %d", path, len(rows[0]), len(csvHeader))
	}

	var records []*entity.FlightRecord
	for _, row := range rows[1:] {
		records = append(records, &entity.FlightRecord{
			Date:         row[0],
			Airline:      row[1],
			FlightNumber: row[2],
			Origin:       row[3],
			Destination:  row[4],
			BookingRef:   row[5],
			EmailSubject: row[6],
			EmailDate:    row[7],
		})
	}
	return records, nil
}
