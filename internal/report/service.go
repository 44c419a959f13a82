package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dromeroc/beneficios/internal/company"
	"github.com/dromeroc/beneficios/internal/expense"
	"github.com/dromeroc/beneficios/internal/treatment"
)

// Repository is the persistence gateway read contract the aggregator
// consumes. Write paths belong to the individual domain services and never
// pass through here.
//
//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	TreatmentsInRange(ctx context.Context, start, end time.Time) ([]*treatment.Record, error)
	ProductCostsInRange(ctx context.Context, start, end time.Time) ([]*expense.ProductCost, error)
	ActiveFixedExpenses(ctx context.Context) ([]*expense.FixedExpense, error)
	VariableExpensesInRange(ctx context.Context, start, end time.Time) ([]*expense.VariableExpense, error)
	CompanyConfig(ctx context.Context) (*company.Config, error)
	ActiveTaxRate(ctx context.Context, taxType string) (*company.TaxRate, error)
}

type Service struct {
	repo     Repository
	settings Settings
}

func NewService(repo Repository, settings Settings) *Service {
	return &Service{repo: repo, settings: settings}
}

// Daily computes the summary for one date. It returns (nil, nil) when the
// date has no records; a missing company configuration is an error, never
// a zero-filled summary.
func (s *Service) Daily(ctx context.Context, date time.Time) (*DailySummary, error) {
	cfg, err := s.repo.CompanyConfig(ctx)
	if err != nil {
		return nil, err
	}

	start, end := dayRange(date)

	records, err := s.repo.TreatmentsInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching treatments: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	fixed, err := s.repo.ActiveFixedExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching fixed expenses: %w", err)
	}

	return ComputeDailySummary(start, records, cfg, fixed, s.settings)
}

// Monthly computes the summary for one calendar month.
func (s *Service) Monthly(ctx context.Context, year int, month time.Month) (*MonthlySummary, error) {
	cfg, err := s.repo.CompanyConfig(ctx)
	if err != nil {
		return nil, err
	}

	start, end := monthRange(year, month)

	records, err := s.repo.TreatmentsInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching treatments: %w", err)
	}

	productCosts, err := s.repo.ProductCostsInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching product costs: %w", err)
	}

	variable, err := s.repo.VariableExpensesInRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetching variable expenses: %w", err)
	}

	fixed, err := s.repo.ActiveFixedExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching fixed expenses: %w", err)
	}

	taxPct, err := s.corporateTaxPct(ctx)
	if err != nil {
		return nil, err
	}

	return ComputeMonthlySummary(year, month, records, productCosts, variable, fixed, cfg, taxPct, s.settings)
}

// Trend computes the trailing n months ending at the given month, oldest
// first. Every month is computed independently from its own window.
func (s *Service) Trend(ctx context.Context, year int, month time.Month, n int) ([]*MonthlySummary, error) {
	if n < 1 {
		return nil, fmt.Errorf("trend length must be at least 1")
	}

	summaries := make([]*MonthlySummary, 0, n)

	anchor := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	for i := n - 1; i >= 0; i-- {
		m := anchor.AddDate(0, -i, 0)

		summary, err := s.Monthly(ctx, m.Year(), m.Month())
		if err != nil {
			return nil, fmt.Errorf("computing %04d-%02d: %w", m.Year(), int(m.Month()), err)
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// corporateTaxPct prefers the active corporate tax rate and falls back to
// the configured default when none exists.
func (s *Service) corporateTaxPct(ctx context.Context) (float64, error) {
	rate, err := s.repo.ActiveTaxRate(ctx, company.TaxTypeCorporate)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return s.settings.CorporateTaxPct, nil
		}

		return 0, fmt.Errorf("fetching corporate tax rate: %w", err)
	}

	return rate.RatePct, nil
}

func dayRange(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func monthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond)
}
