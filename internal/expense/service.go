package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	CreateFixed(ctx context.Context, e *FixedExpense) error
	ListActiveFixed(ctx context.Context) ([]*FixedExpense, error)
	UpdateFixed(ctx context.Context, e *FixedExpense) error
	DeactivateFixed(ctx context.Context, id uuid.UUID) error

	CreateVariable(ctx context.Context, e *VariableExpense) error
	ListVariable(ctx context.Context, start, end time.Time) ([]*VariableExpense, error)
	DeleteVariable(ctx context.Context, id uuid.UUID) error

	CreateProductCost(ctx context.Context, p *ProductCost) error
	ListProductCosts(ctx context.Context, start, end time.Time) ([]*ProductCost, error)
	DeleteProductCost(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type FixedParams struct {
	Description string
	Amount      int64
	Frequency   Frequency
	StartDate   time.Time
	EndDate     *time.Time
	Notes       string
}

func (s *Service) CreateFixed(ctx context.Context, params FixedParams) (*FixedExpense, error) {
	if params.Amount < 0 {
		return nil, fmt.Errorf("amount must not be negative")
	}

	switch params.Frequency {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyAnnual:
	default:
		return nil, fmt.Errorf("unknown frequency: %s", params.Frequency)
	}

	e := &FixedExpense{
		Description: params.Description,
		Amount:      params.Amount,
		Frequency:   params.Frequency,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		Active:      true,
		Notes:       params.Notes,
	}

	if err := s.repo.CreateFixed(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) ListActiveFixed(ctx context.Context) ([]*FixedExpense, error) {
	return s.repo.ListActiveFixed(ctx)
}

func (s *Service) UpdateFixed(ctx context.Context, e *FixedExpense) error {
	if e.Amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}

	return s.repo.UpdateFixed(ctx, e)
}

// DeactivateFixed soft-deletes a recurring expense so past summaries stay
// explainable.
func (s *Service) DeactivateFixed(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeactivateFixed(ctx, id)
}

type VariableParams struct {
	Date          time.Time
	Description   string
	Amount        int64
	HasVAT        bool
	VATAmount     *int64
	InvoiceNumber string
	Supplier      string
	Notes         string
}

func (s *Service) CreateVariable(ctx context.Context, params VariableParams) (*VariableExpense, error) {
	if params.Amount < 0 {
		return nil, fmt.Errorf("amount must not be negative")
	}

	e := &VariableExpense{
		Date:          params.Date,
		Description:   params.Description,
		Amount:        params.Amount,
		HasVAT:        params.HasVAT,
		VATAmount:     params.VATAmount,
		InvoiceNumber: params.InvoiceNumber,
		Supplier:      params.Supplier,
		Notes:         params.Notes,
	}

	if err := s.repo.CreateVariable(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) ListVariable(ctx context.Context, start, end time.Time) ([]*VariableExpense, error) {
	return s.repo.ListVariable(ctx, start, end)
}

func (s *Service) DeleteVariable(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteVariable(ctx, id)
}

type ProductCostParams struct {
	Date        time.Time
	ProductName string
	Supplier    string
	Quantity    int
	UnitCost    int64
	Notes       string
}

func (s *Service) CreateProductCost(ctx context.Context, params ProductCostParams) (*ProductCost, error) {
	if params.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}

	if params.UnitCost < 0 {
		return nil, fmt.Errorf("unit cost must not be negative")
	}

	p := &ProductCost{
		Date:        params.Date,
		ProductName: params.ProductName,
		Supplier:    params.Supplier,
		Quantity:    params.Quantity,
		UnitCost:    params.UnitCost,
		Notes:       params.Notes,
	}

	if err := s.repo.CreateProductCost(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) ListProductCosts(ctx context.Context, start, end time.Time) ([]*ProductCost, error) {
	return s.repo.ListProductCosts(ctx, start, end)
}

func (s *Service) DeleteProductCost(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteProductCost(ctx, id)
}
