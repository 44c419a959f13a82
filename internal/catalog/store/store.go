package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dromeroc/beneficios/internal/catalog"
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

const selectEntryColumns = `
	id, name, category, sale_price, cost_price, duration_mins,
	description, is_active, created_at, updated_at
`

func scanEntry(s scanner) (*catalog.Entry, error) {
	var entry catalog.Entry

	var categoryStr string

	var desc sql.NullString

	if err := s.Scan(
		&entry.ID, &entry.Name, &categoryStr, &entry.SalePrice, &entry.CostPrice,
		&entry.DurationMins, &desc, &entry.Active, &entry.CreatedAt, &entry.UpdatedAt,
	); err != nil {
		return nil, err
	}

	entry.Category = catalog.Category(categoryStr)
	entry.Description = desc.String

	return &entry, nil
}

func (s *Store) CreateEntry(ctx context.Context, entry *catalog.Entry) error {
	query := `
		INSERT INTO treatments_catalog (name, category, sale_price, cost_price, duration_mins, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		entry.Name,
		entry.Category,
		entry.SalePrice,
		entry.CostPrice,
		entry.DurationMins,
		entry.Description,
		entry.Active,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating catalog entry: %w", err)
	}

	return nil
}

func (s *Store) GetEntry(ctx context.Context, id uuid.UUID) (*catalog.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM treatments_catalog WHERE id = $1`

	entry, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("getting catalog entry: %w", err)
	}

	return entry, nil
}

// FindEntryByName matches the treatment name case-insensitively. Till
// exports carry free-typed names, so exact-case matching would miss most.
func (s *Store) FindEntryByName(ctx context.Context, name string) (*catalog.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM treatments_catalog
		WHERE LOWER(name) = LOWER($1)
		ORDER BY is_active DESC, created_at DESC
		LIMIT 1`

	entry, err := scanEntry(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("finding catalog entry: %w", err)
	}

	return entry, nil
}

func (s *Store) ListEntries(ctx context.Context, activeOnly bool) ([]*catalog.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM treatments_catalog`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}

	query += ` ORDER BY category, name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing catalog entries: %w", err)
	}
	defer rows.Close()

	var entries []*catalog.Entry

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning catalog entry: %w", err)
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (s *Store) UpdateEntry(ctx context.Context, entry *catalog.Entry) error {
	query := `
		UPDATE treatments_catalog
		SET name = $1, category = $2, sale_price = $3, cost_price = $4,
			duration_mins = $5, description = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8
	`

	_, err := s.db.ExecContext(ctx, query,
		entry.Name,
		entry.Category,
		entry.SalePrice,
		entry.CostPrice,
		entry.DurationMins,
		entry.Description,
		entry.Active,
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("updating catalog entry: %w", err)
	}

	return nil
}

func (s *Store) DeactivateEntry(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE treatments_catalog
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1
	`

	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivating catalog entry: %w", err)
	}

	return nil
}
