package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dromeroc/beneficios/internal/company"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectConfigColumns = `
	id, company_name, cif, num_employees,
	employee_net_salary, employee_gross_salary,
	owner_net_salary, owner_gross_salary, owner_ss_autonomo,
	vat_rate, created_at, updated_at
`

// GetConfig returns the most recently saved configuration. The table is
// meant to hold a single row; ordering by created_at keeps reads sane if a
// stray second row ever appears.
func (s *Store) GetConfig(ctx context.Context) (*company.Config, error) {
	query := `SELECT ` + selectConfigColumns + `
		FROM company_config
		ORDER BY created_at DESC
		LIMIT 1`

	var cfg company.Config

	var cif sql.NullString

	err := s.db.QueryRowContext(ctx, query).Scan(
		&cfg.ID, &cfg.CompanyName, &cif, &cfg.NumEmployees,
		&cfg.EmployeeNetSalary, &cfg.EmployeeGrossSalary,
		&cfg.OwnerNetSalary, &cfg.OwnerGrossSalary, &cfg.OwnerSSAutonomo,
		&cfg.VATRatePct, &cfg.CreatedAt, &cfg.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, company.ErrConfigMissing
		}

		return nil, fmt.Errorf("getting company config: %w", err)
	}

	cfg.CIF = cif.String

	return &cfg, nil
}

// UpsertConfig replaces the singleton configuration row.
func (s *Store) UpsertConfig(ctx context.Context, cfg *company.Config) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM company_config`); err != nil {
		return fmt.Errorf("clearing company config: %w", err)
	}

	query := `
		INSERT INTO company_config (
			company_name, cif, num_employees,
			employee_net_salary, employee_gross_salary,
			owner_net_salary, owner_gross_salary, owner_ss_autonomo,
			vat_rate, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = dbTx.QueryRowContext(ctx, query,
		cfg.CompanyName,
		cfg.CIF,
		cfg.NumEmployees,
		cfg.EmployeeNetSalary,
		cfg.EmployeeGrossSalary,
		cfg.OwnerNetSalary,
		cfg.OwnerGrossSalary,
		cfg.OwnerSSAutonomo,
		cfg.VATRatePct,
	).Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving company config: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing config: %w", err)
	}

	return nil
}

func (s *Store) ListTaxRates(ctx context.Context) ([]*company.TaxRate, error) {
	query := `
		SELECT id, tax_type, description, rate_percentage,
			effective_from, effective_to, is_active, created_at
		FROM tax_rates
		ORDER BY effective_from DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tax rates: %w", err)
	}
	defer rows.Close()

	var rates []*company.TaxRate

	for rows.Next() {
		rate, err := scanTaxRate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning tax rate: %w", err)
		}

		rates = append(rates, rate)
	}

	return rates, rows.Err()
}

func (s *Store) CreateTaxRate(ctx context.Context, rate *company.TaxRate) error {
	query := `
		INSERT INTO tax_rates (tax_type, description, rate_percentage, effective_from, effective_to, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		rate.TaxType,
		rate.Description,
		rate.RatePct,
		rate.EffectiveFrom,
		rate.EffectiveTo,
		rate.Active,
	).Scan(&rate.ID, &rate.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating tax rate: %w", err)
	}

	return nil
}

func (s *Store) DeactivateTaxRate(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE tax_rates
		SET is_active = FALSE
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivating tax rate: %w", err)
	}

	return nil
}

// ActiveTaxRate returns the effective rate of the given type. When several
// are active the most recent effective_from wins.
func (s *Store) ActiveTaxRate(ctx context.Context, taxType string) (*company.TaxRate, error) {
	query := `
		SELECT id, tax_type, description, rate_percentage,
			effective_from, effective_to, is_active, created_at
		FROM tax_rates
		WHERE tax_type = $1
			AND is_active = TRUE
			AND effective_from <= NOW()
			AND (effective_to IS NULL OR effective_to >= NOW())
		ORDER BY effective_from DESC
		LIMIT 1
	`

	rate, err := scanTaxRate(s.db.QueryRowContext(ctx, query, taxType))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, company.ErrNotFound
		}

		return nil, fmt.Errorf("getting active tax rate: %w", err)
	}

	return rate, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTaxRate(s scanner) (*company.TaxRate, error) {
	var rate company.TaxRate

	var desc sql.NullString

	if err := s.Scan(
		&rate.ID, &rate.TaxType, &desc, &rate.RatePct,
		&rate.EffectiveFrom, &rate.EffectiveTo, &rate.Active, &rate.CreatedAt,
	); err != nil {
		return nil, err
	}

	rate.Description = desc.String

	return &rate, nil
}
