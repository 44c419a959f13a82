package expense

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("expense not found")

// Frequency is how often a fixed expense recurs.
type Frequency string

const (
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnual    Frequency = "annual"
)

// FixedExpense is a recurring business cost (rent, insurance, software).
// Amount is in cents per occurrence. Deactivated expenses are kept for
// historical integrity.
type FixedExpense struct {
	ID          uuid.UUID
	Description string
	Amount      int64
	Frequency   Frequency
	StartDate   time.Time
	EndDate     *time.Time
	Active      bool
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// VariableExpense is an ad-hoc non-recurring business cost.
type VariableExpense struct {
	ID            uuid.UUID
	Date          time.Time
	Description   string
	Amount        int64
	HasVAT        bool
	VATAmount     *int64
	InvoiceNumber string
	Supplier      string
	Notes         string
	CreatedAt     time.Time
}

// ProductCost is an inventory purchase. This ledger tracks acquisition;
// consumption is what the daily records capture, and the two are reported
// side by side, never merged.
type ProductCost struct {
	ID          uuid.UUID
	Date        time.Time
	ProductName string
	Supplier    string
	Quantity    int
	UnitCost    int64
	Notes       string
	CreatedAt   time.Time
}

// TotalCost is quantity times unit cost, in cents.
func (p *ProductCost) TotalCost() int64 { return p.UnitCost * int64(p.Quantity) }
