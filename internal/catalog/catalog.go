package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("catalog entry not found")

// Category groups treatments for reporting.
type Category string

const (
	CategoryMedical   Category = "medical"
	CategoryAesthetic Category = "aesthetic"
	CategoryCosmetic  Category = "cosmetic"
)

// Entry is a treatment offered by the clinic. Prices are in cents and
// include VAT on the sale side. Entries are never hard-deleted: daily
// records keep joining against deactivated ones.
type Entry struct {
	ID           uuid.UUID
	Name         string
	Category     Category
	SalePrice    int64
	CostPrice    int64
	DurationMins int
	Description  string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
