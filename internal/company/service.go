package company

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=company
type Repository interface {
	GetConfig(ctx context.Context) (*Config, error)
	UpsertConfig(ctx context.Context, cfg *Config) error

	ListTaxRates(ctx context.Context) ([]*TaxRate, error)
	CreateTaxRate(ctx context.Context, rate *TaxRate) error
	DeactivateTaxRate(ctx context.Context, id uuid.UUID) error
	ActiveTaxRate(ctx context.Context, taxType string) (*TaxRate, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ConfigParams struct {
	CompanyName         string
	CIF                 string
	NumEmployees        int
	EmployeeNetSalary   int64
	EmployeeGrossSalary int64
	OwnerNetSalary      int64
	OwnerGrossSalary    int64
	OwnerSSAutonomo     int64
	VATRatePct          float64
}

// Get returns the active configuration, failing with ErrConfigMissing when
// none has been saved yet.
func (s *Service) Get(ctx context.Context) (*Config, error) {
	return s.repo.GetConfig(ctx)
}

// Save validates and persists the configuration. There is at most one
// active row; repeated saves replace it.
func (s *Service) Save(ctx context.Context, params ConfigParams) (*Config, error) {
	if params.EmployeeGrossSalary < params.EmployeeNetSalary {
		return nil, fmt.Errorf("employee gross salary below net")
	}

	if params.OwnerGrossSalary < params.OwnerNetSalary {
		return nil, fmt.Errorf("owner gross salary below net")
	}

	cfg := &Config{
		CompanyName:         params.CompanyName,
		CIF:                 params.CIF,
		NumEmployees:        params.NumEmployees,
		EmployeeNetSalary:   params.EmployeeNetSalary,
		EmployeeGrossSalary: params.EmployeeGrossSalary,
		OwnerNetSalary:      params.OwnerNetSalary,
		OwnerGrossSalary:    params.OwnerGrossSalary,
		OwnerSSAutonomo:     params.OwnerSSAutonomo,
		VATRatePct:          params.VATRatePct,
	}

	if err := s.repo.UpsertConfig(ctx, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (s *Service) ListTaxRates(ctx context.Context) ([]*TaxRate, error) {
	return s.repo.ListTaxRates(ctx)
}

func (s *Service) CreateTaxRate(ctx context.Context, rate *TaxRate) error {
	return s.repo.CreateTaxRate(ctx, rate)
}

func (s *Service) DeactivateTaxRate(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeactivateTaxRate(ctx, id)
}

// ActiveTaxRate returns the currently effective rate of the given type,
// or ErrNotFound when none is active.
func (s *Service) ActiveTaxRate(ctx context.Context, taxType string) (*TaxRate, error) {
	return s.repo.ActiveTaxRate(ctx, taxType)
}
