package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iamsohail/GmailFlightScanner/internal/domain/entity"
	"github.com/iamsohail/GmailFlightScanner/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirlineRepository resolves airline codes against a Postgres
// reference table and falls back to the built-in tables for sender and
// name lookups, which the table does not carry.
type GormAirlineRepository struct {
	db       *gorm.DB
	fallback repository.AirlineRepository
}

// NewGormAirlineRepository creates a new GORM airline repository
func NewGormAirlineRepository(db *gorm.DB) repository.AirlineRepository {
	return &GormAirlineRepository{
		db:       db,
		fallback: NewStaticAirlineRepository(),
	}
}

// Airlines GORM model for database mapping
type Airlines struct {
	ID        uint           `gorm:"primaryKey"`
	Code      string         `gorm:"column:code;unique"`
	Name      string         `gorm:"column:name;unique"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Airlines) TableName() string {
	return "m_airlines"
}

// GetByCode finds an airline by its IATA flight-number prefix. Codes not
// present in the table fall back to the built-in list.
func (r *GormAirlineRepository) GetByCode(ctx context.Context, code string) (*entity.Airline, error) {
	var airline Airlines
	result := r.db.WithContext(ctx).Where("code = ?", strings.ToUpper(code)).First(&airline)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return r.fallback.GetByCode(ctx, code)
		}
		return nil, result.Error
	}

	return &entity.Airline{
		Code: airline.Code,
		Name: airline.Name,
	}, nil
}

// GetBySender finds an airline whose key appears in the sender domain
func (r *GormAirlineRepository) GetBySender(ctx context.Context, domain string) (*entity.Airline, error) {
	return r.fallback.GetBySender(ctx, domain)
}

// FindNameInText finds the first known airline mentioned in the text
func (r *GormAirlineRepository) FindNameInText(ctx context.Context, text string) (*entity.Airline, error) {
	return r.fallback.FindNameInText(ctx, text)
}
