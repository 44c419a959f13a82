package treatment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("treatment record not found")

// PaymentMethod is how the client paid for the treatment.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

// Record is one treatment performed on a given day. SalePrice and
// CostPrice are captured at recording time (cents, sale includes VAT), so
// later catalog price changes never rewrite history. CatalogID goes nil if
// the catalog entry is removed.
type Record struct {
	ID            uuid.UUID
	Date          time.Time
	CatalogID     *uuid.UUID
	CatalogName   string // loaded via JOIN; falls back to the captured name
	Quantity      int
	SalePrice     int64
	CostPrice     int64
	PaymentMethod PaymentMethod
	Notes         string
	CreatedAt     time.Time
}

// TotalRevenue is the VAT-inclusive sale amount for the line.
func (r *Record) TotalRevenue() int64 { return r.SalePrice * int64(r.Quantity) }

// TotalCost is the product cost consumed by the line.
func (r *Record) TotalCost() int64 { return r.CostPrice * int64(r.Quantity) }

// GrossProfit is revenue minus direct cost, before any overhead.
func (r *Record) GrossProfit() int64 { return r.TotalRevenue() - r.TotalCost() }
