package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/dromeroc/beneficios/internal/company"
	"github.com/dromeroc/beneficios/internal/report"
	"github.com/dromeroc/beneficios/internal/treatment"
)

func TestService_Export(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tmpDir, err := os.MkdirTemp("", "export_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	records := []*treatment.Record{
		{
			ID:            uuid.New(),
			Date:          date,
			CatalogName:   "Limpieza facial",
			Quantity:      1,
			SalePrice:     8_000,
			CostPrice:     1_500,
			PaymentMethod: treatment.PaymentCash,
		},
	}

	cfg := &company.Config{
		ID:          uuid.New(),
		CompanyName: "Clinica Test",
		VATRatePct:  21,
	}

	reportRepo := report.NewMockRepository(ctrl)
	reportRepo.EXPECT().CompanyConfig(gomock.Any()).Return(cfg, nil)
	reportRepo.EXPECT().TreatmentsInRange(gomock.Any(), gomock.Any(), gomock.Any()).Return(records, nil)
	reportRepo.EXPECT().ProductCostsInRange(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	reportRepo.EXPECT().VariableExpensesInRange(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	reportRepo.EXPECT().ActiveFixedExpenses(gomock.Any()).Return(nil, nil)
	reportRepo.EXPECT().
		ActiveTaxRate(gomock.Any(), company.TaxTypeCorporate).
		Return(nil, company.ErrNotFound)

	treatmentRepo := treatment.NewMockRepository(ctrl)
	treatmentRepo.EXPECT().
		ListRecords(gomock.Any(), gomock.Any()).
		Return(records, nil)

	svc := NewService(
		treatment.NewService(treatmentRepo),
		report.NewService(reportRepo, report.DefaultSettings()),
	)

	book, err := svc.Export(context.Background(), 2025, time.March, tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "2025-03", book.Summary.YearMonth())
	assert.Len(t, book.Records, 1)
	assert.Equal(t, "tratamientos_2025-03.csv", filepath.Base(book.LedgerPath))
	assert.Equal(t, "informe_2025-03.txt", filepath.Base(book.ReportPath))

	ledger, err := os.ReadFile(book.LedgerPath)
	require.NoError(t, err)
	assert.Contains(t, string(ledger), "2025-03-10;Limpieza facial;1;80.00;15.00;80.00;65.00;cash")

	note, err := os.ReadFile(book.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(note), "Resumen mensual 2025-03")
	assert.Contains(t, string(note), "Ingresos brutos (IVA incl.): 80.00 €")
}

func TestRenderReportText(t *testing.T) {
	s := &report.MonthlySummary{
		Year:             2025,
		Month:            time.March,
		GrossRevenue:     100_000,
		NetRevenueExVAT:  82_645,
		ProductCosts:     20_000,
		ProductPurchases: 45_000,
		FixedExpenses:    10_000,
		TotalExpenses:    30_000,
		GrossProfit:      52_645,
		CorporateTax:     13_161,
		NetProfit:        39_484,
		ProfitMarginPct:  47.78,
	}

	body := RenderReportText(s)

	expectedSubstrings := []string{
		"Resumen mensual 2025-03",
		"Ingresos brutos (IVA incl.): 1000.00 €",
		"Beneficio neto:              394.84 €",
		"Margen:                      47.78%",
		// Consumption and purchases differ, so the reconciliation note
		// appears.
		"no coinciden este mes",
	}

	for _, sub := range expectedSubstrings {
		assert.Contains(t, body, sub)
	}
}

func TestRenderReportText_NoReconciliationNote(t *testing.T) {
	s := &report.MonthlySummary{
		Year:             2025,
		Month:            time.April,
		ProductCosts:     20_000,
		ProductPurchases: 20_000,
	}

	body := RenderReportText(s)
	assert.NotContains(t, body, "no coinciden")
	assert.True(t, strings.HasPrefix(body, "Resumen mensual 2025-04"))
}
