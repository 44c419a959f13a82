package report

import (
	"context"
	"time"

	"github.com/dromeroc/beneficios/internal/company"
	"github.com/dromeroc/beneficios/internal/expense"
	"github.com/dromeroc/beneficios/internal/treatment"
)

// Gateway adapts the domain services to the Repository read contract, so
// the aggregator reads through the same code paths the CRUD surface
// writes through.
type Gateway struct {
	Treatments *treatment.Service
	Expenses   *expense.Service
	Company    *company.Service
}

func NewGateway(treatments *treatment.Service, expenses *expense.Service, comp *company.Service) *Gateway {
	return &Gateway{
		Treatments: treatments,
		Expenses:   expenses,
		Company:    comp,
	}
}

func (g *Gateway) TreatmentsInRange(ctx context.Context, start, end time.Time) ([]*treatment.Record, error) {
	return g.Treatments.List(ctx, treatment.ListFilter{StartDate: &start, EndDate: &end})
}

func (g *Gateway) ProductCostsInRange(ctx context.Context, start, end time.Time) ([]*expense.ProductCost, error) {
	return g.Expenses.ListProductCosts(ctx, start, end)
}

func (g *Gateway) ActiveFixedExpenses(ctx context.Context) ([]*expense.FixedExpense, error) {
	return g.Expenses.ListActiveFixed(ctx)
}

func (g *Gateway) VariableExpensesInRange(ctx context.Context, start, end time.Time) ([]*expense.VariableExpense, error) {
	return g.Expenses.ListVariable(ctx, start, end)
}

func (g *Gateway) CompanyConfig(ctx context.Context) (*company.Config, error) {
	return g.Company.Get(ctx)
}

func (g *Gateway) ActiveTaxRate(ctx context.Context, taxType string) (*company.TaxRate, error) {
	return g.Company.ActiveTaxRate(ctx, taxType)
}
