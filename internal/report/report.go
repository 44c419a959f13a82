// Package report computes the daily and monthly financial summaries from
// raw ledger records. The computations are pure: they never touch the
// database and are safe to run in parallel for different windows.
package report

import (
	"fmt"
	"time"
)

// Settings are the accounting assumptions behind the summaries. They used
// to be scattered as magic numbers in the presentation layer; keeping them
// together means adjusting one of them cannot miss a call site.
type Settings struct {
	// WorkingDaysPerMonth divides the monthly labor cost into a daily one.
	WorkingDaysPerMonth int
	// DaysPerMonth divides the monthly fixed-cost total into a daily one.
	DaysPerMonth int
	// EmployerOverheadPct approximates employer-side social security on
	// top of each employee's gross salary.
	EmployerOverheadPct float64
	// CorporateTaxPct applies when no active corporate tax rate exists.
	CorporateTaxPct float64
}

func DefaultSettings() Settings {
	return Settings{
		WorkingDaysPerMonth: 22,
		DaysPerMonth:        30,
		EmployerOverheadPct: 30,
		CorporateTaxPct:     25,
	}
}

func (s Settings) validate() error {
	if s.WorkingDaysPerMonth <= 0 || s.DaysPerMonth <= 0 {
		return fmt.Errorf("report settings: day divisors must be positive")
	}

	return nil
}

// DailySummary is the computed result for one calendar date with activity.
// A date without records has no summary at all; "no row" means "no
// activity", which is not the same as zero profit. Monetary fields are
// cents.
type DailySummary struct {
	Date                      time.Time
	GrossRevenue              int64
	NetRevenueExVAT           int64
	ProductCosts              int64
	GrossProfitBeforeOverhead int64
	DailyFixedCost            int64
	DailyLaborCost            int64
	DailyNetProfit            int64
	ProfitMarginPct           float64 // rounded to whole percent
	CashAmount                int64
	CardAmount                int64
	TransferAmount            int64
	NumTreatments             int // record count, not quantity sum
}

// MonthlySummary is the computed result for one calendar month. Monetary
// fields are cents. ProductCosts is consumption captured on the daily
// records; ProductPurchases is the separate acquisition ledger, reported
// alongside for reconciliation and never mixed into the expense total.
type MonthlySummary struct {
	Year             int
	Month            time.Month
	GrossRevenue     int64
	NetRevenueExVAT  int64
	ProductCosts     int64
	ProductPurchases int64
	VariableExpenses int64
	FixedExpenses    int64
	LaborCosts       int64
	TotalExpenses    int64
	GrossProfit      int64
	CorporateTax     int64
	NetProfit        int64
	ProfitMarginPct  float64 // not rounded
}

// YearMonth renders the summary period as "2025-03".
func (m *MonthlySummary) YearMonth() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
