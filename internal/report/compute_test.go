package report_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dromeroc/beneficios/internal/company"
	"github.com/dromeroc/beneficios/internal/expense"
	"github.com/dromeroc/beneficios/internal/report"
	"github.com/dromeroc/beneficios/internal/treatment"
)

func testConfig() *company.Config {
	return &company.Config{
		ID:           uuid.New(),
		CompanyName:  "Clinica Test",
		NumEmployees: 2,
		// 1500.00 gross per employee, 2000.00 owner gross, 300.00 autonomo.
		EmployeeGrossSalary: 150_000,
		OwnerGrossSalary:    200_000,
		OwnerSSAutonomo:     30_000,
		VATRatePct:          21,
	}
}

// soloConfig has no staff costs at all, which isolates the revenue math.
func soloConfig() *company.Config {
	return &company.Config{
		ID:          uuid.New(),
		CompanyName: "Clinica Solo",
		VATRatePct:  21,
	}
}

func record(date time.Time, sale, cost int64, qty int, pm treatment.PaymentMethod) *treatment.Record {
	return &treatment.Record{
		ID:            uuid.New(),
		Date:          date,
		CatalogName:   "Limpieza facial",
		Quantity:      qty,
		SalePrice:     sale,
		CostPrice:     cost,
		PaymentMethod: pm,
	}
}

func TestComputeDailySummary(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("SingleSale", func(t *testing.T) {
		// 100.00 sale with 20.00 product cost at 21% VAT.
		records := []*treatment.Record{
			record(date, 10_000, 2_000, 1, treatment.PaymentCash),
		}

		s, err := report.ComputeDailySummary(date, records, soloConfig(), nil, report.DefaultSettings())
		require.NoError(t, err)
		require.NotNil(t, s)

		assert.Equal(t, int64(10_000), s.GrossRevenue)
		assert.Equal(t, int64(8_264), s.NetRevenueExVAT) // 10000 / 1.21
		assert.Equal(t, int64(2_000), s.ProductCosts)
		assert.Equal(t, int64(8_000), s.GrossProfitBeforeOverhead)
		assert.Equal(t, int64(0), s.DailyFixedCost)
		assert.Equal(t, int64(0), s.DailyLaborCost)
		assert.Equal(t, int64(8_000), s.DailyNetProfit)
		assert.Equal(t, float64(80), s.ProfitMarginPct)
		assert.Equal(t, int64(10_000), s.CashAmount)
		assert.Equal(t, 1, s.NumTreatments)
	})

	t.Run("NoRecordsMeansNoSummary", func(t *testing.T) {
		s, err := report.ComputeDailySummary(date, nil, testConfig(), nil, report.DefaultSettings())
		require.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("MissingConfig", func(t *testing.T) {
		records := []*treatment.Record{
			record(date, 10_000, 2_000, 1, treatment.PaymentCash),
		}

		_, err := report.ComputeDailySummary(date, records, nil, nil, report.DefaultSettings())
		assert.ErrorIs(t, err, company.ErrConfigMissing)
	})

	t.Run("UnknownPaymentMethod", func(t *testing.T) {
		records := []*treatment.Record{
			record(date, 10_000, 2_000, 1, treatment.PaymentMethod("cheque")),
		}

		_, err := report.ComputeDailySummary(date, records, testConfig(), nil, report.DefaultSettings())
		assert.Error(t, err)
	})

	t.Run("PaymentBreakdown", func(t *testing.T) {
		records := []*treatment.Record{
			record(date, 10_000, 0, 1, treatment.PaymentCash),
			record(date, 5_000, 0, 2, treatment.PaymentCard),
			record(date, 3_000, 0, 1, treatment.PaymentTransfer),
		}

		s, err := report.ComputeDailySummary(date, records, soloConfig(), nil, report.DefaultSettings())
		require.NoError(t, err)

		assert.Equal(t, int64(10_000), s.CashAmount)
		assert.Equal(t, int64(10_000), s.CardAmount)
		assert.Equal(t, int64(3_000), s.TransferAmount)
		assert.Equal(t, int64(23_000), s.GrossRevenue)
		assert.Equal(t, 3, s.NumTreatments)
	})

	t.Run("OverheadCosts", func(t *testing.T) {
		records := []*treatment.Record{
			record(date, 10_000, 2_000, 1, treatment.PaymentCard),
		}

		fixed := []*expense.FixedExpense{
			{Amount: 60_000, Frequency: expense.FrequencyMonthly, Active: true},
			{Amount: 30_000, Frequency: expense.FrequencyQuarterly, Active: true},
			{Amount: 120_000, Frequency: expense.FrequencyAnnual, Active: true},
		}

		s, err := report.ComputeDailySummary(date, records, testConfig(), fixed, report.DefaultSettings())
		require.NoError(t, err)

		// Monthly fixed: 600 + 100 + 100 = 800.00, over 30 days.
		assert.Equal(t, int64(2_667), s.DailyFixedCost)
		// Labor: 2 x 1500 x 1.30 + 2000 + 300 = 6200.00, over 22 working days.
		assert.Equal(t, int64(28_182), s.DailyLaborCost)
		assert.Equal(t, int64(8_000-2_667-28_182), s.DailyNetProfit)
	})

	t.Run("InvalidSettings", func(t *testing.T) {
		records := []*treatment.Record{
			record(date, 10_000, 2_000, 1, treatment.PaymentCash),
		}

		_, err := report.ComputeDailySummary(date, records, testConfig(), nil, report.Settings{})
		assert.Error(t, err)
	})
}

func TestMonthlyEquivalent(t *testing.T) {
	tests := []struct {
		name      string
		amount    int64
		frequency expense.Frequency
		want      int64
	}{
		{"Monthly", 60_000, expense.FrequencyMonthly, 60_000},
		{"Quarterly", 30_000, expense.FrequencyQuarterly, 10_000},
		{"Annual", 120_000, expense.FrequencyAnnual, 10_000},
		{"QuarterlyRounds", 10_000, expense.FrequencyQuarterly, 3_333},
		{"AnnualRounds", 10_000, expense.FrequencyAnnual, 833},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &expense.FixedExpense{Amount: tt.amount, Frequency: tt.frequency}
			assert.Equal(t, tt.want, report.MonthlyEquivalent(e))
		})
	}
}

func TestMonthlyFixedTotal_OrderInvariant(t *testing.T) {
	a := &expense.FixedExpense{Amount: 10_000, Frequency: expense.FrequencyQuarterly}
	b := &expense.FixedExpense{Amount: 10_000, Frequency: expense.FrequencyAnnual}
	c := &expense.FixedExpense{Amount: 99_999, Frequency: expense.FrequencyMonthly}

	forward := report.MonthlyFixedTotal([]*expense.FixedExpense{a, b, c})
	backward := report.MonthlyFixedTotal([]*expense.FixedExpense{c, b, a})

	assert.Equal(t, forward, backward)
}

func TestMonthlyLaborCost(t *testing.T) {
	got := report.MonthlyLaborCost(testConfig(), report.DefaultSettings())

	// 2 x 1500 x 1.30 = 3900, plus 2000 owner gross and 300 autonomo.
	assert.Equal(t, int64(620_000), got)
}

func TestDailyLaborTracksMonthly(t *testing.T) {
	settings := report.DefaultSettings()
	monthly := report.MonthlyLaborCost(testConfig(), settings)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	records := []*treatment.Record{
		record(date, 10_000, 0, 1, treatment.PaymentCash),
	}

	s, err := report.ComputeDailySummary(date, records, testConfig(), nil, settings)
	require.NoError(t, err)

	// The daily rate times the working days must land within rounding
	// distance of the monthly figure.
	assert.InDelta(t, float64(monthly), float64(s.DailyLaborCost*int64(settings.WorkingDaysPerMonth)),
		float64(settings.WorkingDaysPerMonth))
}

func TestComputeMonthlySummary(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("ProfitableMonth", func(t *testing.T) {
		var records []*treatment.Record
		for day := 1; day <= 10; day++ {
			records = append(records, record(start.AddDate(0, 0, day-1), 10_000, 2_000, 1, treatment.PaymentCard))
		}

		s, err := report.ComputeMonthlySummary(2025, time.March, records, nil, nil, nil,
			soloConfig(), 25, report.DefaultSettings())
		require.NoError(t, err)

		assert.Equal(t, int64(100_000), s.GrossRevenue)
		assert.Equal(t, int64(82_645), s.NetRevenueExVAT) // 100000 / 1.21
		assert.Equal(t, int64(20_000), s.ProductCosts)
		assert.Equal(t, int64(20_000), s.TotalExpenses)
		assert.Equal(t, int64(62_645), s.GrossProfit)
		assert.Equal(t, int64(15_661), s.CorporateTax) // 25% of 626.45
		assert.Equal(t, int64(46_984), s.NetProfit)
		assert.InDelta(t, 56.85, s.ProfitMarginPct, 0.01)
		assert.Equal(t, "2025-03", s.YearMonth())
	})

	t.Run("LossMonthPaysNoTax", func(t *testing.T) {
		records := []*treatment.Record{
			record(start, 10_000, 2_000, 1, treatment.PaymentCash),
		}

		s, err := report.ComputeMonthlySummary(2025, time.March, records, nil, nil, nil,
			testConfig(), 25, report.DefaultSettings())
		require.NoError(t, err)

		assert.Negative(t, s.GrossProfit)
		assert.Equal(t, int64(0), s.CorporateTax)
		assert.Equal(t, s.GrossProfit, s.NetProfit)
	})

	t.Run("PurchasesStaySeparate", func(t *testing.T) {
		records := []*treatment.Record{
			record(start, 10_000, 2_000, 1, treatment.PaymentCash),
		}

		purchases := []*expense.ProductCost{
			{ProductName: "Acido hialuronico", Quantity: 3, UnitCost: 15_000},
		}

		s, err := report.ComputeMonthlySummary(2025, time.March, records, purchases, nil, nil,
			soloConfig(), 25, report.DefaultSettings())
		require.NoError(t, err)

		assert.Equal(t, int64(2_000), s.ProductCosts)
		assert.Equal(t, int64(45_000), s.ProductPurchases)
		// The purchase ledger never enters the expense total.
		assert.Equal(t, int64(2_000), s.TotalExpenses)
	})

	t.Run("EmptyMonthIsZeroRow", func(t *testing.T) {
		s, err := report.ComputeMonthlySummary(2025, time.March, nil, nil, nil, nil,
			testConfig(), 25, report.DefaultSettings())
		require.NoError(t, err)
		require.NotNil(t, s)

		assert.Equal(t, int64(0), s.GrossRevenue)
		assert.Equal(t, float64(0), s.ProfitMarginPct)
		// Fixed and labor costs accrue even without revenue.
		assert.Equal(t, int64(620_000), s.LaborCosts)
	})

	t.Run("MissingConfig", func(t *testing.T) {
		_, err := report.ComputeMonthlySummary(2025, time.March, nil, nil, nil, nil,
			nil, 25, report.DefaultSettings())
		assert.ErrorIs(t, err, company.ErrConfigMissing)
	})
}

// Monthly gross revenue must equal the sum of the daily gross revenues of
// the same records.
func TestDailyMonthlyRevenueAgreement(t *testing.T) {
	cfg := soloConfig()
	settings := report.DefaultSettings()
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	byDay := map[time.Time][]*treatment.Record{}

	var all []*treatment.Record

	for day := 0; day < 5; day++ {
		date := start.AddDate(0, 0, day)
		recs := []*treatment.Record{
			record(date, 7_500, 1_200, 1, treatment.PaymentCash),
			record(date, 12_000, 3_000, 2, treatment.PaymentCard),
		}
		byDay[date] = recs
		all = append(all, recs...)
	}

	var dailyGross int64

	for date, recs := range byDay {
		s, err := report.ComputeDailySummary(date, recs, cfg, nil, settings)
		require.NoError(t, err)
		dailyGross += s.GrossRevenue
	}

	monthly, err := report.ComputeMonthlySummary(2025, time.March, all, nil, nil, nil, cfg, 25, settings)
	require.NoError(t, err)

	assert.Equal(t, monthly.GrossRevenue, dailyGross)
}
