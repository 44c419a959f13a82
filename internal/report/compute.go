package report

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dromeroc/beneficios/internal/company"
	"github.com/dromeroc/beneficios/internal/expense"
	"github.com/dromeroc/beneficios/internal/treatment"
)

// MonthlyEquivalent normalizes a fixed expense to a per-month amount in
// cents: monthly unchanged, quarterly divided by 3, annual by 12. Rounding
// happens per expense, so the total is independent of summing order.
func MonthlyEquivalent(e *expense.FixedExpense) int64 {
	amount := decimal.NewFromInt(e.Amount)

	switch e.Frequency {
	case expense.FrequencyQuarterly:
		return amount.Div(decimal.NewFromInt(3)).Round(0).IntPart()
	case expense.FrequencyAnnual:
		return amount.Div(decimal.NewFromInt(12)).Round(0).IntPart()
	default:
		return e.Amount
	}
}

// MonthlyFixedTotal sums the monthly equivalents of all active fixed
// expenses.
func MonthlyFixedTotal(expenses []*expense.FixedExpense) int64 {
	var total int64
	for _, e := range expenses {
		total += MonthlyEquivalent(e)
	}

	return total
}

// MonthlyLaborCost is the full monthly cost of keeping the staff:
// employees at gross salary plus employer overhead, plus the owner's gross
// salary and autónomo social security.
func MonthlyLaborCost(cfg *company.Config, settings Settings) int64 {
	overhead := decimal.NewFromFloat(1 + settings.EmployerOverheadPct/100)

	employees := decimal.NewFromInt(cfg.EmployeeGrossSalary).
		Mul(overhead).
		Mul(decimal.NewFromInt(int64(cfg.NumEmployees))).
		Round(0).IntPart()

	return employees + cfg.OwnerGrossSalary + cfg.OwnerSSAutonomo
}

// netExVAT strips the VAT portion from a VAT-inclusive amount.
func netExVAT(grossCents int64, vatRatePct float64) int64 {
	divisor := decimal.NewFromFloat(1 + vatRatePct/100)

	return decimal.NewFromInt(grossCents).Div(divisor).Round(0).IntPart()
}

func divideCents(cents int64, by int) int64 {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(int64(by))).Round(0).IntPart()
}

// ComputeDailySummary computes the summary for one date from the records
// of that date. A day without records yields (nil, nil): absence, not a
// zero-valued row. The company configuration is mandatory; labor costs
// must never silently default to zero.
func ComputeDailySummary(
	date time.Time,
	records []*treatment.Record,
	cfg *company.Config,
	fixedExpenses []*expense.FixedExpense,
	settings Settings,
) (*DailySummary, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}

	if cfg == nil {
		return nil, company.ErrConfigMissing
	}

	if len(records) == 0 {
		return nil, nil
	}

	s := &DailySummary{
		Date:          date,
		NumTreatments: len(records),
	}

	for _, r := range records {
		s.GrossRevenue += r.TotalRevenue()
		s.ProductCosts += r.TotalCost()

		switch r.PaymentMethod {
		case treatment.PaymentCash:
			s.CashAmount += r.TotalRevenue()
		case treatment.PaymentCard:
			s.CardAmount += r.TotalRevenue()
		case treatment.PaymentTransfer:
			s.TransferAmount += r.TotalRevenue()
		default:
			return nil, fmt.Errorf("record %s: unknown payment method %q", r.ID, r.PaymentMethod)
		}
	}

	s.NetRevenueExVAT = netExVAT(s.GrossRevenue, cfg.VATRatePct)
	s.GrossProfitBeforeOverhead = s.GrossRevenue - s.ProductCosts
	s.DailyFixedCost = divideCents(MonthlyFixedTotal(fixedExpenses), settings.DaysPerMonth)
	s.DailyLaborCost = divideCents(MonthlyLaborCost(cfg, settings), settings.WorkingDaysPerMonth)
	s.DailyNetProfit = s.GrossProfitBeforeOverhead - s.DailyFixedCost - s.DailyLaborCost

	if s.GrossRevenue > 0 {
		s.ProfitMarginPct = math.Round(float64(s.DailyNetProfit) / float64(s.GrossRevenue) * 100)
	}

	return s, nil
}

// ComputeMonthlySummary computes the summary for one calendar month from
// the records of that month. Each month is computed from scratch with no
// carry-over, so trailing-trend computations can run in any order.
func ComputeMonthlySummary(
	year int,
	month time.Month,
	records []*treatment.Record,
	productCosts []*expense.ProductCost,
	variableExpenses []*expense.VariableExpense,
	fixedExpenses []*expense.FixedExpense,
	cfg *company.Config,
	corporateTaxPct float64,
	settings Settings,
) (*MonthlySummary, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}

	if cfg == nil {
		return nil, company.ErrConfigMissing
	}

	s := &MonthlySummary{
		Year:  year,
		Month: month,
	}

	for _, r := range records {
		s.GrossRevenue += r.TotalRevenue()
		s.ProductCosts += r.TotalCost()
	}

	for _, p := range productCosts {
		s.ProductPurchases += p.TotalCost()
	}

	for _, v := range variableExpenses {
		s.VariableExpenses += v.Amount
	}

	s.NetRevenueExVAT = netExVAT(s.GrossRevenue, cfg.VATRatePct)
	s.FixedExpenses = MonthlyFixedTotal(fixedExpenses)
	s.LaborCosts = MonthlyLaborCost(cfg, settings)
	s.TotalExpenses = s.ProductCosts + s.VariableExpenses + s.FixedExpenses + s.LaborCosts
	s.GrossProfit = s.NetRevenueExVAT - s.TotalExpenses

	// No tax liability on a loss month, and no tax credit either.
	if s.GrossProfit > 0 {
		s.CorporateTax = decimal.NewFromInt(s.GrossProfit).
			Mul(decimal.NewFromFloat(corporateTaxPct / 100)).
			Round(0).IntPart()
	}

	s.NetProfit = s.GrossProfit - s.CorporateTax

	if s.NetRevenueExVAT > 0 {
		s.ProfitMarginPct = float64(s.NetProfit) / float64(s.NetRevenueExVAT) * 100
	}

	return s, nil
}
