package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dromeroc/beneficios/internal/expense"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) CreateFixed(ctx context.Context, e *expense.FixedExpense) error {
	query := `
		INSERT INTO fixed_expenses (description, amount, frequency, start_date, end_date, is_active, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.Description,
		e.Amount,
		e.Frequency,
		e.StartDate,
		e.EndDate,
		e.Active,
		e.Notes,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating fixed expense: %w", err)
	}

	return nil
}

func (s *Store) ListActiveFixed(ctx context.Context) ([]*expense.FixedExpense, error) {
	query := `
		SELECT id, description, amount, frequency, start_date, end_date, is_active, notes, created_at, updated_at
		FROM fixed_expenses
		WHERE is_active = TRUE
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing fixed expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*expense.FixedExpense

	for rows.Next() {
		e, err := scanFixed(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning fixed expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

func (s *Store) UpdateFixed(ctx context.Context, e *expense.FixedExpense) error {
	query := `
		UPDATE fixed_expenses
		SET description = $1, amount = $2, frequency = $3, start_date = $4,
			end_date = $5, is_active = $6, notes = $7, updated_at = NOW()
		WHERE id = $8
	`

	_, err := s.db.ExecContext(ctx, query,
		e.Description,
		e.Amount,
		e.Frequency,
		e.StartDate,
		e.EndDate,
		e.Active,
		e.Notes,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating fixed expense: %w", err)
	}

	return nil
}

func (s *Store) DeactivateFixed(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE fixed_expenses
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivating fixed expense: %w", err)
	}

	return nil
}

func (s *Store) CreateVariable(ctx context.Context, e *expense.VariableExpense) error {
	query := `
		INSERT INTO variable_expenses (expense_date, description, amount, has_vat, vat_amount, invoice_number, supplier, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.Date,
		e.Description,
		e.Amount,
		e.HasVAT,
		e.VATAmount,
		e.InvoiceNumber,
		e.Supplier,
		e.Notes,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating variable expense: %w", err)
	}

	return nil
}

func (s *Store) ListVariable(ctx context.Context, start, end time.Time) ([]*expense.VariableExpense, error) {
	query := `
		SELECT id, expense_date, description, amount, has_vat, vat_amount, invoice_number, supplier, notes, created_at
		FROM variable_expenses
		WHERE expense_date >= $1 AND expense_date <= $2
		ORDER BY expense_date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing variable expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*expense.VariableExpense

	for rows.Next() {
		e, err := scanVariable(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning variable expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

func (s *Store) DeleteVariable(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM variable_expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting variable expense: %w", err)
	}

	return nil
}

func (s *Store) CreateProductCost(ctx context.Context, p *expense.ProductCost) error {
	query := `
		INSERT INTO product_costs (cost_date, product_name, supplier, quantity, unit_cost, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.Date,
		p.ProductName,
		p.Supplier,
		p.Quantity,
		p.UnitCost,
		p.Notes,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating product cost: %w", err)
	}

	return nil
}

func (s *Store) ListProductCosts(ctx context.Context, start, end time.Time) ([]*expense.ProductCost, error) {
	query := `
		SELECT id, cost_date, product_name, supplier, quantity, unit_cost, notes, created_at
		FROM product_costs
		WHERE cost_date >= $1 AND cost_date <= $2
		ORDER BY cost_date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing product costs: %w", err)
	}
	defer rows.Close()

	var costs []*expense.ProductCost

	for rows.Next() {
		p, err := scanProductCost(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product cost: %w", err)
		}

		costs = append(costs, p)
	}

	return costs, rows.Err()
}

func (s *Store) DeleteProductCost(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM product_costs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting product cost: %w", err)
	}

	return nil
}

func scanFixed(s scanner) (*expense.FixedExpense, error) {
	var e expense.FixedExpense

	var freqStr string

	var notes sql.NullString

	if err := s.Scan(
		&e.ID, &e.Description, &e.Amount, &freqStr, &e.StartDate,
		&e.EndDate, &e.Active, &notes, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Frequency = expense.Frequency(freqStr)
	e.Notes = notes.String

	return &e, nil
}

func scanVariable(s scanner) (*expense.VariableExpense, error) {
	var e expense.VariableExpense

	var invoiceNumber, supplier, notes sql.NullString

	if err := s.Scan(
		&e.ID, &e.Date, &e.Description, &e.Amount, &e.HasVAT,
		&e.VATAmount, &invoiceNumber, &supplier, &notes, &e.CreatedAt,
	); err != nil {
		return nil, err
	}

	e.InvoiceNumber = invoiceNumber.String
	e.Supplier = supplier.String
	e.Notes = notes.String

	return &e, nil
}

func scanProductCost(s scanner) (*expense.ProductCost, error) {
	var p expense.ProductCost

	var supplier, notes sql.NullString

	if err := s.Scan(
		&p.ID, &p.Date, &p.ProductName, &supplier, &p.Quantity,
		&p.UnitCost, &notes, &p.CreatedAt,
	); err != nil {
		return nil, err
	}

	p.Supplier = supplier.String
	p.Notes = notes.String

	return &p, nil
}
