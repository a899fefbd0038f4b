package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a catalog entry. Price, image and description are optional.
type Service struct {
	ID          string
	Category    string
	Name        string
	Price       decimal.NullDecimal
	ImageURL    *string
	Description *string
	CreatedAt   time.Time
}
