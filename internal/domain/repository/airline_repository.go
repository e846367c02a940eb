package repository

import (
	"context"

	"github.com/iamsohail/GmailFlightScanner/internal/domain/entity"
)

// AirlineRepository resolves airline names from the different hints an
// email gives us: the IATA prefix of a flight number, the sender address,
// or a literal airline name somewhere in the text.
type AirlineRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Airline, error)
	GetBySender(ctx context.Context, sender string) (*entity.Airline, error)
	FindNameInText(ctx context.Context, text string) (*entity.Airline, error)
}
