package company

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrConfigMissing is returned when no company configuration exists.
	// Profit computations refuse to run without one.
	ErrConfigMissing = errors.New("company config missing")

	ErrNotFound = errors.New("not found")
)

// Config is the singleton company configuration. All salary fields are
// monthly amounts in cents.
type Config struct {
	ID                  uuid.UUID
	CompanyName         string
	CIF                 string
	NumEmployees        int
	EmployeeNetSalary   int64
	EmployeeGrossSalary int64
	OwnerNetSalary      int64
	OwnerGrossSalary    int64
	OwnerSSAutonomo     int64
	VATRatePct          float64
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}

// TaxRate is a named tax with an effective window. The active corporate
// rate feeds the monthly summary; other types are informational.
type TaxRate struct {
	ID            uuid.UUID
	TaxType       string
	Description   string
	RatePct       float64
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	Active        bool
	CreatedAt     time.Time
}

const TaxTypeCorporate = "corporate"
