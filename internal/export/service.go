package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dromeroc/beneficios/internal/report"
	"github.com/dromeroc/beneficios/internal/treatment"
)

// Book is one month's export: the raw treatment ledger plus the computed
// summary, as written to disk.
type Book struct {
	Summary    *report.MonthlySummary
	Records    []*treatment.Record
	LedgerPath string
	ReportPath string
}

// Service assembles the monthly book the clinic hands to its accountant.
type Service struct {
	treatments *treatment.Service
	reports    *report.Service
}

func NewService(treatments *treatment.Service, reports *report.Service) *Service {
	return &Service{
		treatments: treatments,
		reports:    reports,
	}
}

// Export writes the ledger CSV and the rendered report for the given month
// into outputDir and returns the assembled book.
func (s *Service) Export(ctx context.Context, year int, month time.Month, outputDir string) (*Book, error) {
	summary, err := s.reports.Monthly(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("computing monthly summary: %w", err)
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	records, err := s.treatments.List(ctx, treatment.ListFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, fmt.Errorf("listing treatments: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	book := &Book{
		Summary: summary,
		Records: records,
	}

	book.LedgerPath = filepath.Join(outputDir, fmt.Sprintf("tratamientos_%s.csv", summary.YearMonth()))
	if err := writeLedger(book.LedgerPath, records); err != nil {
		return nil, err
	}

	book.ReportPath = filepath.Join(outputDir, fmt.Sprintf("informe_%s.txt", summary.YearMonth()))
	if err := os.WriteFile(book.ReportPath, []byte(RenderReportText(summary)), 0o644); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}

	return book, nil
}

func writeLedger(path string, records []*treatment.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating ledger file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'

	header := []string{"date", "treatment", "quantity", "sale_price", "cost_price", "total_revenue", "gross_profit", "payment_method"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing ledger header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.Date.Format("2006-01-02"),
			r.CatalogName,
			fmt.Sprintf("%d", r.Quantity),
			formatCents(r.SalePrice),
			formatCents(r.CostPrice),
			formatCents(r.TotalRevenue()),
			formatCents(r.GrossProfit()),
			string(r.PaymentMethod),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing ledger row: %w", err)
		}
	}

	w.Flush()

	return w.Error()
}

// RenderReportText renders the monthly summary as the plain-text note that
// accompanies the ledger.
func RenderReportText(s *report.MonthlySummary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Resumen mensual %s\n\n", s.YearMonth())
	fmt.Fprintf(&sb, "Ingresos brutos (IVA incl.): %s €\n", formatCents(s.GrossRevenue))
	fmt.Fprintf(&sb, "Ingresos netos (sin IVA):    %s €\n", formatCents(s.NetRevenueExVAT))
	fmt.Fprintf(&sb, "Coste de producto:           %s €\n", formatCents(s.ProductCosts))
	fmt.Fprintf(&sb, "Compras de producto:         %s €\n", formatCents(s.ProductPurchases))
	fmt.Fprintf(&sb, "Gastos variables:            %s €\n", formatCents(s.VariableExpenses))
	fmt.Fprintf(&sb, "Gastos fijos:                %s €\n", formatCents(s.FixedExpenses))
	fmt.Fprintf(&sb, "Costes laborales:            %s €\n", formatCents(s.LaborCosts))
	fmt.Fprintf(&sb, "Gastos totales:              %s €\n", formatCents(s.TotalExpenses))
	fmt.Fprintf(&sb, "Beneficio bruto:             %s €\n", formatCents(s.GrossProfit))
	fmt.Fprintf(&sb, "Impuesto de sociedades:      %s €\n", formatCents(s.CorporateTax))
	fmt.Fprintf(&sb, "Beneficio neto:              %s €\n", formatCents(s.NetProfit))
	fmt.Fprintf(&sb, "Margen:                      %.2f%%\n", s.ProfitMarginPct)

	if s.ProductCosts != s.ProductPurchases {
		fmt.Fprintf(&sb, "\nNota: el coste consumido (%s €) y las compras registradas (%s €) no coinciden este mes.\n",
			formatCents(s.ProductCosts), formatCents(s.ProductPurchases))
	}

	return sb.String()
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100.0)
}
