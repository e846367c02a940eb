package repository

import (
	"github.com/iamsohail/GmailFlightScanner/internal/domain/entity"
)

// FlightReportRepository persists the final flight records as a delimited
// report and reads one back for verification.
type FlightReportRepository interface {
	Write(path string, records []*entity.FlightRecord) error
	Read(path string) ([]*entity.FlightRecord, error)
}
